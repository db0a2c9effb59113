package hwvcd

import "github.com/pkg/errors"

// Errors returned by this package. Use errors.Cause to test for them:
//
//	if errors.Cause(err) == hwvcd.ErrMissingTimescale {
//		// ...
//	}
//
// Malformed headers are reported as a *vcd.SyntaxError and I/O failures are
// returned wrapped, as is.
//
var (
	ErrMissingTimescale    = errors.New("missing $timescale declaration")
	ErrTimestampConversion = errors.New("cannot convert timestamp to nanoseconds")
	ErrBuilderConsumed     = errors.New("writer builder already built")
)
