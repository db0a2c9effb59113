package vcd

import "github.com/pkg/errors"

// Value is a scalar four-state logic value.
//
type Value byte

// Scalar values.
//
const (
	V0 Value = '0' // logic low
	V1 Value = '1' // logic high
	X  Value = 'x' // unknown
	Z  Value = 'z' // high impedance
)

// ParseValue returns the Value for the given character. Upper case 'X' and
// 'Z' are accepted.
//
func ParseValue(c byte) (Value, error) {
	switch c {
	case '0':
		return V0, nil
	case '1':
		return V1, nil
	case 'x', 'X':
		return X, nil
	case 'z', 'Z':
		return Z, nil
	}
	return 0, errors.Errorf("invalid scalar value %q", c)
}

func (v Value) String() string {
	return string(rune(v))
}
