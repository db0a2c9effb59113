// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"math"

	"github.com/pkg/errors"
)

const (
	idCharMin  = '!'
	idCharMax  = '~'
	numIDChars = idCharMax - idCharMin + 1
)

// An IDCode is the short identifier code used by a VCD file in value changes
// instead of the variable name.
//
// IDCodes are printed as a little-endian sequence of printable ASCII
// characters from '!' to '~'. The first code is "!".
//
type IDCode uint64

// FirstIDCode is the first IDCode assigned by a Writer.
//
const FirstIDCode IDCode = 0

// Next returns the IDCode following c.
//
func (c IDCode) Next() IDCode {
	return c + 1
}

func (c IDCode) String() string {
	var buf [12]byte
	b := buf[:0]
	i := uint64(c)
	for {
		b = append(b, byte(i%numIDChars)+idCharMin)
		if i < numIDChars {
			break
		}
		i = i/numIDChars - 1
	}
	return string(b)
}

// ParseIDCode parses the given identifier code.
//
func ParseIDCode(s string) (IDCode, error) {
	if s == "" {
		return 0, errors.New("empty identifier code")
	}
	var r uint64
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c < idCharMin || c > idCharMax {
			return 0, errors.Errorf("invalid character %q in identifier code %q", c, s)
		}
		d := uint64(c-idCharMin) + 1
		if r > (math.MaxUint64-d)/numIDChars {
			return 0, errors.Errorf("identifier code %q too large", s)
		}
		r = r*numIDChars + d
	}
	return IDCode(r - 1), nil
}
