package vcd

import (
	"strconv"

	"github.com/pkg/errors"
)

// TimescaleUnit is the time unit of a Timescale.
//
type TimescaleUnit int

// Time units.
//
const (
	S TimescaleUnit = iota
	MS
	US
	NS
	PS
	FS
)

var units = [...]struct {
	name    string
	divisor uint64
}{
	S:  {"s", 1},
	MS: {"ms", 1e3},
	US: {"us", 1e6},
	NS: {"ns", 1e9},
	PS: {"ps", 1e12},
	FS: {"fs", 1e15},
}

// ParseTimescaleUnit parses a unit name: s, ms, us, ns, ps or fs.
//
func ParseTimescaleUnit(s string) (TimescaleUnit, error) {
	for u := range units {
		if units[u].name == s {
			return TimescaleUnit(u), nil
		}
	}
	return 0, errors.Errorf("invalid timescale unit %q", s)
}

func (u TimescaleUnit) valid() bool {
	return u >= 0 && int(u) < len(units)
}

func (u TimescaleUnit) String() string {
	if !u.valid() {
		return "TimescaleUnit(" + strconv.Itoa(int(u)) + ")"
	}
	return units[u].name
}

// Divisor returns the number of units in one second.
//
func (u TimescaleUnit) Divisor() uint64 {
	if !u.valid() {
		panic("invalid timescale unit " + u.String())
	}
	return units[u].divisor
}

// Timescale is the duration of one tick: Scale times Unit.
//
type Timescale struct {
	Scale uint32
	Unit  TimescaleUnit
}

func (t Timescale) String() string {
	return strconv.FormatUint(uint64(t.Scale), 10) + " " + t.Unit.String()
}

// parseTimescale parses the arguments of a $timescale declaration. Both "1 ns"
// and "1ns" forms are accepted.
//
func parseTimescale(args []string) (Timescale, error) {
	var num, unit string
	switch len(args) {
	case 1:
		i := 0
		for i < len(args[0]) && '0' <= args[0][i] && args[0][i] <= '9' {
			i++
		}
		num, unit = args[0][:i], args[0][i:]
	case 2:
		num, unit = args[0], args[1]
	default:
		return Timescale{}, errors.New("expected scale and unit")
	}
	n, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return Timescale{}, errors.Errorf("invalid timescale %q", num)
	}
	if n == 0 {
		return Timescale{}, errors.New("timescale must be positive")
	}
	u, err := ParseTimescaleUnit(unit)
	if err != nil {
		return Timescale{}, err
	}
	return Timescale{Scale: uint32(n), Unit: u}, nil
}
