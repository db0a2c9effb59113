// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package vcdtest provides utility functions for testing VCD traces.
//
package vcdtest

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/hwvcd"
	"github.com/db47h/hwvcd/pins"
	"github.com/db47h/hwvcd/vcd"
	"github.com/pkg/errors"
)

// Step is the state of a single bit signal at a given time.
//
type Step struct {
	Time  hwvcd.Time
	State pins.State
}

func (s Step) String() string {
	return s.Time.String() + ":" + s.State.String()
}

// History reads a whole VCD trace and returns the state of the signal at path
// at every timestamp.
//
func History(r io.Reader, path ...string) ([]Step, error) {
	vr, err := hwvcd.NewReader(r)
	if err != nil {
		return nil, err
	}
	pin := vr.Pin(path...)
	if pin == nil {
		return nil, errors.Errorf("signal %s not found", strings.Join(path, "."))
	}
	var (
		h    []Step
		last *hwvcd.Time
	)
	for vr.Next() {
		if last != nil {
			h = append(h, Step{*last, pin.State()})
		}
		t := vr.Time()
		last = &t
	}
	if err = vr.Err(); err != nil {
		return h, err
	}
	if last != nil {
		h = append(h, Step{*last, pin.State()})
	}
	return h, nil
}

// WriteHistory writes a VCD trace for a single signal named name in the
// given module. The state at each step is written, whether it changed or not.
//
func WriteHistory(w io.Writer, module, name string, h []Step) error {
	vw := vcd.NewWriter(w)
	if err := vw.Timescale(1, vcd.NS); err != nil {
		return err
	}
	if err := vw.AddModule(module); err != nil {
		return err
	}
	id, err := vw.AddWire(1, name)
	if err != nil {
		return err
	}
	if err = vw.Upscope(); err != nil {
		return err
	}
	if err = vw.EndDefinitions(); err != nil {
		return err
	}
	for _, s := range h {
		ns, err := s.Time.Nanoseconds()
		if err != nil {
			return err
		}
		if err = vw.Timestamp(ns); err != nil {
			return err
		}
		if err = vw.ChangeScalar(id, hwvcd.ValueOf(s.State)); err != nil {
			return err
		}
	}
	return nil
}

// RandomHistory returns a history of n steps of random states, period
// nanoseconds apart, starting at time 0.
//
func RandomHistory(rnd *rand.Rand, n int, period uint64) []Step {
	states := [...]pins.State{pins.Floating, pins.High, pins.Low}
	h := make([]Step, n)
	for i := range h {
		h[i] = Step{hwvcd.Nanoseconds(uint64(i) * period), states[rnd.Intn(len(states))]}
	}
	return h
}

// CompareTraces checks that the signal at path has the same history in both
// traces. Timestamps are compared by value, regardless of the timescale of
// each trace.
//
func CompareTraces(t testing.TB, path []string, want, got io.Reader) {
	t.Helper()

	hw, err := History(want, path...)
	if err != nil {
		t.Fatalf("reference trace: %+v", err)
	}
	hg, err := History(got, path...)
	if err != nil {
		t.Fatalf("trace under test: %+v", err)
	}
	errString := func(i int) string {
		var w, g string
		if i < len(hw) {
			w = hw[i].String()
		}
		if i < len(hg) {
			g = hg[i].String()
		}
		return fmt.Sprintf("%s, step %d:\nExpected %s\nGot %s", strings.Join(path, "."), i, w, g)
	}
	n := len(hw)
	if len(hg) > n {
		n = len(hg)
	}
	for i := 0; i < n; i++ {
		if i >= len(hw) || i >= len(hg) || hw[i].String() != hg[i].String() {
			t.Fatal(errString(i))
		}
	}
}
