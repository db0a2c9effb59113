// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwvcd

import (
	"io"

	"github.com/db47h/hwvcd/pins"
	"github.com/db47h/hwvcd/vcd"
)

// StateOf returns the pin state for a VCD value. The unknown value X maps to
// pins.Floating.
//
func StateOf(v vcd.Value) pins.State {
	switch v {
	case vcd.V0:
		return pins.Low
	case vcd.V1:
		return pins.High
	}
	return pins.Floating
}

// ValueOf returns the VCD value for a pin state. It never returns vcd.X.
//
func ValueOf(s pins.State) vcd.Value {
	switch s {
	case pins.High:
		return vcd.V1
	case pins.Low:
		return vcd.V0
	}
	return vcd.Z
}

// Reader reads a VCD trace and updates the pins obtained from Pin.
//
// A Reader is not safe for concurrent use, but the pins it returns are.
//
type Reader struct {
	p     *vcd.Parser
	h     *vcd.Header
	scale Fraction
	cells map[vcd.IDCode]*pins.AtomicState
	t     Time
	err   error
	done  bool
}

// NewReader returns a new Reader for r. It reads and parses the VCD header
// before returning.
//
// The header must declare a timescale, ErrMissingTimescale is returned
// otherwise.
//
func NewReader(r io.Reader) (*Reader, error) {
	p := vcd.NewParser(r)
	h, err := p.ParseHeader()
	if err != nil {
		return nil, err
	}
	scale, err := resolveScale(h)
	if err != nil {
		return nil, err
	}
	return &Reader{
		p:     p,
		h:     h,
		scale: scale,
		cells: make(map[vcd.IDCode]*pins.AtomicState),
	}, nil
}

// Scale returns the duration of one tick as declared by the $timescale
// command.
//
func (r *Reader) Scale() Fraction {
	return r.scale
}

// Header returns the parsed VCD header.
//
func (r *Reader) Header() *vcd.Header {
	return r.h
}

// Pin returns an input pin for the single bit variable at the given path.
// The path is a list of scope names followed by the variable name (see
// vcd.Header.FindVar). It returns nil if no such variable exists or if it is
// not a single bit variable.
//
// The pin state is Floating until the first value change for that variable.
// Value changes read before Pin is called are lost. Requesting the same
// variable more than once returns pins sharing the same state.
//
func (r *Reader) Pin(path ...string) *pins.InputPin {
	v := r.h.FindVar(path...)
	if v == nil || v.Width != 1 {
		return nil
	}
	cell := r.cells[v.ID]
	if cell == nil {
		cell = pins.NewAtomicState(pins.Floating)
		r.cells[v.ID] = cell
	}
	return pins.NewInputPin(cell)
}

// Next advances to the next timestamp in the trace. It returns false at the
// end of the input or if an error occurred. See Err.
//
// All value changes read along the way are applied to the pins. Since value
// changes follow the timestamp they belong to, once Next returns true, pin
// states are those of the timestamp returned by the previous call to Time, not
// the new one:
//
//	var last *hwvcd.Time
//	for r.Next() {
//		if last != nil {
//			// pins are in the state they were at *last
//		}
//		t := r.Time()
//		last = &t
//	}
//
// Changes following the last timestamp are applied before Next returns
// false.
//
func (r *Reader) Next() bool {
	if r.done {
		return false
	}
	for {
		cmd, err := r.p.Next()
		if err != nil {
			r.done = true
			if err != io.EOF {
				r.err = err
			}
			return false
		}
		switch cmd.Kind {
		case vcd.CmdTimestamp:
			r.t = Time{Ticks: cmd.Time, Scale: r.scale}
			return true
		case vcd.CmdChangeScalar:
			if cell := r.cells[cmd.ID]; cell != nil {
				cell.Store(StateOf(cmd.Value))
			}
		}
	}
}

// Time returns the timestamp read by the last successful call to Next.
//
func (r *Reader) Time() Time {
	return r.t
}

// Err returns the first non-EOF error encountered by Next.
//
func (r *Reader) Err() error {
	return r.err
}
