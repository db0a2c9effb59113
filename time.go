// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwvcd

import (
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/db47h/hwvcd/vcd"
	"github.com/pkg/errors"
)

// Fraction is a rational number of seconds: Num/Den.
//
type Fraction struct {
	Num uint64
	Den uint64
}

func (f Fraction) String() string {
	return strconv.FormatUint(f.Num, 10) + "/" + strconv.FormatUint(f.Den, 10) + "s"
}

// Nanosecond is one nanosecond.
//
var Nanosecond = Fraction{1, 1e9}

// resolveScale returns the duration of one tick in a VCD file.
//
func resolveScale(h *vcd.Header) (Fraction, error) {
	if h.Timescale == nil {
		return Fraction{}, ErrMissingTimescale
	}
	return Fraction{Num: uint64(h.Timescale.Scale), Den: h.Timescale.Unit.Divisor()}, nil
}

// Time is a point in time in a VCD trace: Ticks times Scale.
//
// Time values are exact; no rounding is ever performed.
//
type Time struct {
	Ticks uint64
	Scale Fraction
}

// Nanoseconds returns a Time of n nanoseconds.
//
func Nanoseconds(n uint64) Time {
	return Time{Ticks: n, Scale: Nanosecond}
}

var nsPerSecond = big.NewInt(1e9)

// Nanoseconds returns t as a whole number of nanoseconds. It returns an error
// wrapping ErrTimestampConversion if t is not a whole number of nanoseconds
// or does not fit in an uint64.
//
func (t Time) Nanoseconds() (uint64, error) {
	if t.Scale.Den == 0 {
		return 0, errors.Wrapf(ErrTimestampConversion, "%s: zero denominator", t.raw())
	}
	n := new(big.Int).SetUint64(t.Ticks)
	n.Mul(n, new(big.Int).SetUint64(t.Scale.Num))
	n.Mul(n, nsPerSecond)
	r := new(big.Int)
	n.QuoRem(n, new(big.Int).SetUint64(t.Scale.Den), r)
	if r.Sign() != 0 {
		return 0, errors.Wrapf(ErrTimestampConversion, "%s: not a whole number of nanoseconds", t.raw())
	}
	if !n.IsUint64() {
		return 0, errors.Wrapf(ErrTimestampConversion, "%s: out of range", t.raw())
	}
	return n.Uint64(), nil
}

// Duration returns t as a time.Duration. It fails under the same conditions
// as Nanoseconds or if the result overflows a time.Duration.
//
func (t Time) Duration() (time.Duration, error) {
	ns, err := t.Nanoseconds()
	if err != nil {
		return 0, err
	}
	if ns > math.MaxInt64 {
		return 0, errors.Wrapf(ErrTimestampConversion, "%s: out of range", t.raw())
	}
	return time.Duration(ns), nil
}

func (t Time) String() string {
	if ns, err := t.Nanoseconds(); err == nil {
		return strconv.FormatUint(ns, 10) + "ns"
	}
	return t.raw()
}

func (t Time) raw() string {
	return strconv.FormatUint(t.Ticks, 10) + "*" + t.Scale.String()
}

// A Nanoseconder is a time value convertible to a whole number of
// nanoseconds. Time implements Nanoseconder, use Duration to convert a
// time.Duration.
//
type Nanoseconder interface {
	Nanoseconds() (uint64, error)
}

type stdDuration time.Duration

func (d stdDuration) Nanoseconds() (uint64, error) {
	if d < 0 {
		return 0, errors.Wrapf(ErrTimestampConversion, "negative duration %v", time.Duration(d))
	}
	return uint64(d), nil
}

// Duration returns a Nanoseconder for d. Negative durations cannot be
// converted.
//
func Duration(d time.Duration) Nanoseconder {
	return stdDuration(d)
}
