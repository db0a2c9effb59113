// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package pins provides digital pins whose state can be safely shared between
// goroutines.
//
// A pin is a view over an AtomicState. Several pins may share the same
// AtomicState: for instance a VCD reader updates the state of an InputPin
// handed to a driver under test, or a driver sets a PushPullPin that a VCD
// writer samples.
//
// All state accesses go through sync/atomic and are sequentially consistent.
// There are no locks and no operation ever blocks.
//
package pins

import "sync/atomic"

// State is a digital pin state.
//
type State uint32

// Pin states. The zero value is Floating.
//
const (
	Floating State = iota // not connected / high impedance
	High                  // logical high
	Low                   // logical low
)

func (s State) String() string {
	switch s {
	case Floating:
		return "Floating"
	case High:
		return "High"
	case Low:
		return "Low"
	}
	return "State(?)"
}

// AtomicState is a pin State which can be safely shared between goroutines.
//
// The zero value is a Floating state. An AtomicState must not be copied after
// first use; share it by pointer.
//
type AtomicState struct {
	v atomic.Uint32
}

// NewAtomicState returns a new AtomicState set to s.
//
func NewAtomicState(s State) *AtomicState {
	a := new(AtomicState)
	a.Store(s)
	return a
}

// Load returns the current state.
//
func (a *AtomicState) Load() State {
	return State(a.v.Load())
}

// Store sets the current state.
//
func (a *AtomicState) Store(s State) {
	a.v.Store(uint32(s))
}

func (a *AtomicState) String() string {
	return a.Load().String()
}
