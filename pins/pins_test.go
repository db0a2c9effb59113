package pins_test

import (
	"sync"
	"testing"

	"github.com/db47h/hwvcd/pins"
)

func TestAtomicState(t *testing.T) {
	var zero pins.AtomicState
	if s := zero.Load(); s != pins.Floating {
		t.Errorf("zero value = %v, expected Floating", s)
	}
	s := pins.NewAtomicState(pins.Floating)
	if got := s.Load(); got != pins.Floating {
		t.Errorf("Load() = %v, expected Floating", got)
	}
	// loading a second time should still return the same value
	if got := s.Load(); got != pins.Floating {
		t.Errorf("Load() = %v, expected Floating", got)
	}
	s.Store(pins.High)
	if got := s.Load(); got != pins.High {
		t.Errorf("Load() = %v, expected High", got)
	}
	if got := pins.NewAtomicState(pins.Low).Load(); got != pins.Low {
		t.Errorf("Load() = %v, expected Low", got)
	}
}

func TestInputPin(t *testing.T) {
	s := pins.NewAtomicState(pins.Floating)
	p := pins.NewInputPin(s)
	data := []struct {
		state     pins.State
		high, low bool
	}{
		{pins.Floating, false, false},
		{pins.High, true, false},
		{pins.Low, false, true},
	}
	for _, d := range data {
		s.Store(d.state)
		if p.IsHigh() != d.high || p.IsLow() != d.low {
			t.Errorf("%v: IsHigh() = %v, IsLow() = %v, expected %v, %v", d.state, p.IsHigh(), p.IsLow(), d.high, d.low)
		}
		if p.State() != d.state {
			t.Errorf("State() = %v, expected %v", p.State(), d.state)
		}
	}
}

type outputPin interface {
	pins.Input
	pins.StatefulOutput
}

func TestOutputPins(t *testing.T) {
	type check struct {
		state                              pins.State
		isHigh, isLow, isSetHigh, isSetLow bool
	}
	data := []struct {
		name    string
		pin     func(*pins.AtomicState) outputPin
		setHigh check
		setLow  check
	}{
		{"PushPull",
			func(s *pins.AtomicState) outputPin { return pins.NewPushPullPin(s) },
			check{pins.High, true, false, true, false},
			check{pins.Low, false, true, false, true}},
		{"OpenDrain",
			func(s *pins.AtomicState) outputPin { return pins.NewOpenDrainPin(s) },
			check{pins.Low, false, true, true, false},
			check{pins.Floating, false, false, false, true}},
	}
	verify := func(t *testing.T, op string, s *pins.AtomicState, p outputPin, c check) {
		t.Helper()
		if got := s.Load(); got != c.state {
			t.Errorf("%s: state = %v, expected %v", op, got, c.state)
		}
		if p.IsHigh() != c.isHigh || p.IsLow() != c.isLow {
			t.Errorf("%s: IsHigh() = %v, IsLow() = %v, expected %v, %v", op, p.IsHigh(), p.IsLow(), c.isHigh, c.isLow)
		}
		if p.IsSetHigh() != c.isSetHigh || p.IsSetLow() != c.isSetLow {
			t.Errorf("%s: IsSetHigh() = %v, IsSetLow() = %v, expected %v, %v", op, p.IsSetHigh(), p.IsSetLow(), c.isSetHigh, c.isSetLow)
		}
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			s := pins.NewAtomicState(pins.Floating)
			p := d.pin(s)
			p.SetHigh()
			verify(t, "SetHigh", s, p, d.setHigh)
			p.SetLow()
			verify(t, "SetLow", s, p, d.setLow)
			p.Toggle()
			verify(t, "Toggle", s, p, d.setHigh)
			p.Toggle()
			verify(t, "Toggle", s, p, d.setLow)
		})
	}
}

// Pins sharing the same state see each other's writes from other goroutines.
func TestSharedState(t *testing.T) {
	s := pins.NewAtomicState(pins.Low)
	out := pins.NewPushPullPin(s)
	in := pins.NewInputPin(s)

	const n = 1000
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			out.Toggle()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			if st := in.State(); st != pins.High && st != pins.Low {
				t.Errorf("unexpected state %v", st)
				return
			}
		}
	}()
	wg.Wait()
	// an even number of toggles brings the pin back to its initial state.
	if !in.IsLow() {
		t.Errorf("got %v, expected Low", in)
	}
}
