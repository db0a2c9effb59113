// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwvcd

import (
	"io"

	"github.com/db47h/hwvcd/pins"
	"github.com/db47h/hwvcd/vcd"
	"github.com/pkg/errors"
)

// DefaultModule is the name of the top level scope used by NewWriterBuilder.
//
const DefaultModule = "top"

type binding struct {
	id   vcd.IDCode
	cell *pins.AtomicState
}

// WriterBuilder declares the output pins of a Writer.
//
// Output pins are declared as single bit wires in a VCD header with a fixed
// timescale of 1ns.
//
type WriterBuilder struct {
	w     *vcd.Writer
	cells []binding
	built bool
}

// NewWriterBuilder returns a new WriterBuilder writing to w. Pins are added
// to the DefaultModule scope.
//
func NewWriterBuilder(w io.Writer) (*WriterBuilder, error) {
	return NewWriterBuilderWithModule(w, DefaultModule)
}

// NewWriterBuilderWithModule returns a new WriterBuilder writing to w. Pins
// are added to a scope with the given module name.
//
func NewWriterBuilderWithModule(w io.Writer, module string) (*WriterBuilder, error) {
	vw := vcd.NewWriter(w)
	if err := vw.Timescale(1, vcd.NS); err != nil {
		return nil, err
	}
	if err := vw.AddModule(module); err != nil {
		return nil, err
	}
	return &WriterBuilder{w: vw}, nil
}

func (b *WriterBuilder) addPin(name string, initial pins.State) (*pins.AtomicState, error) {
	if b.built {
		return nil, ErrBuilderConsumed
	}
	id, err := b.w.AddWire(1, name)
	if err != nil {
		return nil, errors.Wrap(err, "add pin "+name)
	}
	cell := pins.NewAtomicState(initial)
	b.cells = append(b.cells, binding{id, cell})
	return cell, nil
}

// AddPushPullPin adds a push-pull output pin with a corresponding VCD
// variable. The pin state is written to the VCD file as follows:
//
//	Pin set | VCD value
//	--------+----------
//	high    | 1
//	low     | 0
//
// The initial pin state is low.
//
func (b *WriterBuilder) AddPushPullPin(name string) (*pins.PushPullPin, error) {
	cell, err := b.addPin(name, pins.Low)
	if err != nil {
		return nil, err
	}
	return pins.NewPushPullPin(cell), nil
}

// AddOpenDrainPin adds an open drain output pin with a corresponding VCD
// variable. The pin state is written to the VCD file as follows:
//
//	Pin set | VCD value
//	--------+----------
//	high    | 0
//	low     | z
//
// The initial pin state is floating.
//
func (b *WriterBuilder) AddOpenDrainPin(name string) (*pins.OpenDrainPin, error) {
	cell, err := b.addPin(name, pins.Floating)
	if err != nil {
		return nil, err
	}
	return pins.NewOpenDrainPin(cell), nil
}

// AddOpenGainPin is the former name of AddOpenDrainPin.
//
// Deprecated: use AddOpenDrainPin.
//
func (b *WriterBuilder) AddOpenGainPin(name string) (*pins.OpenDrainPin, error) {
	return b.AddOpenDrainPin(name)
}

// AddModule opens a new module scope, nested in the current one. Pins added
// hereafter are declared in that scope.
//
func (b *WriterBuilder) AddModule(name string) error {
	if b.built {
		return ErrBuilderConsumed
	}
	return b.w.AddModule(name)
}

// Build closes all open scopes, ends the VCD header and returns a Writer for
// the pins added so far. The builder cannot be used afterwards.
//
func (b *WriterBuilder) Build() (*Writer, error) {
	if b.built {
		return nil, ErrBuilderConsumed
	}
	b.built = true
	for b.w.Depth() > 0 {
		if err := b.w.Upscope(); err != nil {
			return nil, err
		}
	}
	if err := b.w.EndDefinitions(); err != nil {
		return nil, err
	}
	return &Writer{w: b.w, cells: b.cells}, nil
}

// Writer writes timestamps and pin samples to a VCD file.
//
// A Writer is not safe for concurrent use, but its pins are.
//
type Writer struct {
	w     *vcd.Writer
	cells []binding
}

// Timestamp writes a timestamp. Samples written after it belong to that point
// in time. Timestamps are expected to be increasing; this is not checked.
//
// It returns an error wrapping ErrTimestampConversion if t cannot be
// converted to a whole number of nanoseconds. Nothing is written in that case
// and the Writer remains usable.
//
func (w *Writer) Timestamp(t Nanoseconder) error {
	ns, err := t.Nanoseconds()
	if err != nil {
		return err
	}
	return w.w.Timestamp(ns)
}

// Sample writes the current state of every pin, in the order the pins were
// added. All pins are written, whether their state changed or not.
//
func (w *Writer) Sample() error {
	for _, b := range w.cells {
		if err := w.w.ChangeScalar(b.id, ValueOf(b.cell.Load())); err != nil {
			return err
		}
	}
	return nil
}
