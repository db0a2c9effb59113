// Package replay copies signals from a VCD trace into another.
//
package replay

import (
	"strings"

	"github.com/db47h/hwvcd"
	"github.com/db47h/hwvcd/internal/config"
	"github.com/db47h/hwvcd/pins"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("vcdcopy.replay")

// ErrPinNotFound is returned by Copy when a source signal is not declared as
// a single bit variable in the input trace.
//
var ErrPinNotFound = errors.New("pin not found")

// Stats reports what Copy did.
//
type Stats struct {
	Timestamps int // timestamps written
	Values     int // value changes written
}

type link struct {
	in   *pins.InputPin
	copy func()
}

func bind(r *hwvcd.Reader, b *hwvcd.WriterBuilder, m config.Pin) (link, error) {
	in := r.Pin(m.From...)
	if in == nil {
		return link{}, errors.Wrap(ErrPinNotFound, strings.Join(m.From, "."))
	}
	switch m.Kind {
	case config.OpenDrain:
		out, err := b.AddOpenDrainPin(m.To)
		if err != nil {
			return link{}, err
		}
		// an open drain output can only pull low or release the line.
		return link{in, func() {
			if in.IsLow() {
				out.SetHigh()
			} else {
				out.SetLow()
			}
		}}, nil
	case config.PushPull, "":
		out, err := b.AddPushPullPin(m.To)
		if err != nil {
			return link{}, err
		}
		return link{in, func() {
			if in.IsHigh() {
				out.SetHigh()
			} else {
				out.SetLow()
			}
		}}, nil
	}
	return link{}, errors.Errorf("%s: unknown pin kind %q", m.To, m.Kind)
}

// Copy binds each source signal in maps to a new output pin in b, builds the
// writer, then replays the whole input trace into it.
//
// The state of every output pin is written at each timestamp of the input.
// Since the states read by r after a call to Next are those of the previous
// timestamp, each timestamp is written once the next one has been read, or
// at the end of the input.
//
func Copy(r *hwvcd.Reader, b *hwvcd.WriterBuilder, maps []config.Pin) (Stats, error) {
	var st Stats
	links := make([]link, 0, len(maps))
	for _, m := range maps {
		l, err := bind(r, b, m)
		if err != nil {
			return st, err
		}
		log.Debugf("%s (%s)", m.String(), m.Kind)
		links = append(links, l)
	}
	w, err := b.Build()
	if err != nil {
		return st, err
	}
	log.Infof("copying %d pins", len(links))

	emit := func(t hwvcd.Time) error {
		for _, l := range links {
			l.copy()
		}
		if err := w.Timestamp(t); err != nil {
			return err
		}
		if err := w.Sample(); err != nil {
			return err
		}
		st.Timestamps++
		st.Values += len(links)
		return nil
	}

	var last *hwvcd.Time
	for r.Next() {
		if last != nil {
			if err = emit(*last); err != nil {
				return st, err
			}
		}
		t := r.Time()
		last = &t
	}
	if err = r.Err(); err != nil {
		return st, err
	}
	if last != nil {
		if err = emit(*last); err != nil {
			return st, err
		}
	}
	log.Infof("wrote %d timestamps, %d values", st.Timestamps, st.Values)
	return st, nil
}
