package vcd

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Writer writes VCD commands to an io.Writer.
//
// Every command is written immediately with a single Write call. Callers
// writing to a file should wrap it in a bufio.Writer.
//
type Writer struct {
	w     io.Writer
	next  IDCode
	depth int
	buf   []byte
}

// NewWriter returns a new Writer writing to w.
//
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, next: FirstIDCode}
}

func (w *Writer) flush() error {
	_, err := w.w.Write(w.buf)
	w.buf = w.buf[:0]
	if err != nil {
		return errors.Wrap(err, "write vcd")
	}
	return nil
}

func checkName(what, name string) error {
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return errors.Errorf("invalid %s name %q", what, name)
	}
	return nil
}

// Timescale writes a $timescale command.
//
func (w *Writer) Timescale(scale uint32, unit TimescaleUnit) error {
	if scale == 0 || !unit.valid() {
		return errors.Errorf("invalid timescale %d %v", scale, unit)
	}
	w.buf = append(w.buf, "$timescale "...)
	w.buf = strconv.AppendUint(w.buf, uint64(scale), 10)
	w.buf = append(w.buf, ' ')
	w.buf = append(w.buf, unit.String()...)
	w.buf = append(w.buf, " $end\n"...)
	return w.flush()
}

// Scope opens a new scope of the given type.
//
func (w *Writer) Scope(typ, name string) error {
	if err := checkName("scope type", typ); err != nil {
		return err
	}
	if err := checkName("scope", name); err != nil {
		return err
	}
	w.buf = append(w.buf, "$scope "...)
	w.buf = append(w.buf, typ...)
	w.buf = append(w.buf, ' ')
	w.buf = append(w.buf, name...)
	w.buf = append(w.buf, " $end\n"...)
	if err := w.flush(); err != nil {
		return err
	}
	w.depth++
	return nil
}

// AddModule opens a new module scope.
//
func (w *Writer) AddModule(name string) error {
	return w.Scope("module", name)
}

// Upscope closes the current scope.
//
func (w *Writer) Upscope() error {
	if w.depth == 0 {
		return errors.New("upscope: no open scope")
	}
	w.buf = append(w.buf, "$upscope $end\n"...)
	if err := w.flush(); err != nil {
		return err
	}
	w.depth--
	return nil
}

// Depth returns the number of open scopes.
//
func (w *Writer) Depth() int {
	return w.depth
}

// AddVar declares a new variable and returns the IDCode assigned to it.
// IDCodes are assigned sequentially, starting with FirstIDCode.
//
func (w *Writer) AddVar(typ string, width int, reference string) (IDCode, error) {
	if err := checkName("variable type", typ); err != nil {
		return 0, err
	}
	if err := checkName("variable", reference); err != nil {
		return 0, err
	}
	if width <= 0 {
		return 0, errors.Errorf("invalid width %d for variable %q", width, reference)
	}
	id := w.next
	w.buf = append(w.buf, "$var "...)
	w.buf = append(w.buf, typ...)
	w.buf = append(w.buf, ' ')
	w.buf = strconv.AppendInt(w.buf, int64(width), 10)
	w.buf = append(w.buf, ' ')
	w.buf = append(w.buf, id.String()...)
	w.buf = append(w.buf, ' ')
	w.buf = append(w.buf, reference...)
	w.buf = append(w.buf, " $end\n"...)
	if err := w.flush(); err != nil {
		return 0, err
	}
	w.next = id.Next()
	return id, nil
}

// AddWire declares a new wire variable.
//
func (w *Writer) AddWire(width int, reference string) (IDCode, error) {
	return w.AddVar("wire", width, reference)
}

// EndDefinitions writes the $enddefinitions command, ending the header.
//
func (w *Writer) EndDefinitions() error {
	w.buf = append(w.buf, "$enddefinitions $end\n"...)
	return w.flush()
}

// Timestamp writes a timestamp.
//
func (w *Writer) Timestamp(t uint64) error {
	w.buf = append(w.buf, '#')
	w.buf = strconv.AppendUint(w.buf, t, 10)
	w.buf = append(w.buf, '\n')
	return w.flush()
}

// ChangeScalar writes a value change for a single bit variable.
//
func (w *Writer) ChangeScalar(id IDCode, v Value) error {
	switch v {
	case V0, V1, X, Z:
	default:
		return errors.Errorf("invalid scalar value %q", byte(v))
	}
	w.buf = append(w.buf, byte(v))
	w.buf = append(w.buf, id.String()...)
	w.buf = append(w.buf, '\n')
	return w.flush()
}
