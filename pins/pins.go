// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pins

// Input is implemented by pins whose level can be read.
//
// A Floating pin is neither high nor low.
//
type Input interface {
	IsHigh() bool
	IsLow() bool
}

// Output is implemented by pins that can be driven.
//
type Output interface {
	SetHigh()
	SetLow()
}

// StatefulOutput is an Output that can report the level it was last set to
// and toggle it.
//
type StatefulOutput interface {
	Output
	IsSetHigh() bool
	IsSetLow() bool
	Toggle()
}

var (
	_ Input          = (*InputPin)(nil)
	_ Input          = (*PushPullPin)(nil)
	_ StatefulOutput = (*PushPullPin)(nil)
	_ Input          = (*OpenDrainPin)(nil)
	_ StatefulOutput = (*OpenDrainPin)(nil)
)

// InputPin is a read-only pin.
//
type InputPin struct {
	state *AtomicState
}

// NewInputPin returns a new InputPin reading state.
//
func NewInputPin(state *AtomicState) *InputPin {
	return &InputPin{state}
}

// IsHigh returns true if the pin state is High.
//
func (p *InputPin) IsHigh() bool { return p.state.Load() == High }

// IsLow returns true if the pin state is Low.
//
func (p *InputPin) IsLow() bool { return p.state.Load() == Low }

// State returns the current pin state.
//
func (p *InputPin) State() State { return p.state.Load() }

func (p *InputPin) String() string { return "InputPin(" + p.state.String() + ")" }

// PushPullPin is an output pin in push-pull configuration: it is High when set
// high and Low when set low.
//
type PushPullPin struct {
	state *AtomicState
}

// NewPushPullPin returns a new PushPullPin driving state.
//
func NewPushPullPin(state *AtomicState) *PushPullPin {
	return &PushPullPin{state}
}

func (p *PushPullPin) SetHigh()        { p.state.Store(High) }
func (p *PushPullPin) SetLow()         { p.state.Store(Low) }
func (p *PushPullPin) IsHigh() bool    { return p.state.Load() == High }
func (p *PushPullPin) IsLow() bool     { return p.state.Load() == Low }
func (p *PushPullPin) IsSetHigh() bool { return p.state.Load() == High }
func (p *PushPullPin) IsSetLow() bool  { return p.state.Load() == Low }

// Toggle sets the pin high if it is currently set low, low otherwise.
//
func (p *PushPullPin) Toggle() {
	if p.IsSetLow() {
		p.SetHigh()
	} else {
		p.SetLow()
	}
}

// State returns the current pin state.
//
func (p *PushPullPin) State() State { return p.state.Load() }

func (p *PushPullPin) String() string { return "PushPullPin(" + p.state.String() + ")" }

// OpenDrainPin is an output pin in open drain configuration. Setting it high
// pulls the line to ground (Low), setting it low releases the line (Floating).
//
// Reading an OpenDrainPin as an Input therefore never reports high.
//
type OpenDrainPin struct {
	state *AtomicState
}

// NewOpenDrainPin returns a new OpenDrainPin driving state.
//
func NewOpenDrainPin(state *AtomicState) *OpenDrainPin {
	return &OpenDrainPin{state}
}

func (p *OpenDrainPin) SetHigh()        { p.state.Store(Low) }
func (p *OpenDrainPin) SetLow()         { p.state.Store(Floating) }
func (p *OpenDrainPin) IsHigh() bool    { return p.state.Load() == High }
func (p *OpenDrainPin) IsLow() bool     { return p.state.Load() == Low }
func (p *OpenDrainPin) IsSetHigh() bool { return p.state.Load() == Low }
func (p *OpenDrainPin) IsSetLow() bool  { return p.state.Load() == Floating }

// Toggle sets the pin high if it is currently set low, low otherwise.
//
func (p *OpenDrainPin) Toggle() {
	if p.IsSetLow() {
		p.SetHigh()
	} else {
		p.SetLow()
	}
}

// State returns the current pin state.
//
func (p *OpenDrainPin) State() State { return p.state.Load() }

func (p *OpenDrainPin) String() string { return "OpenDrainPin(" + p.state.String() + ")" }
