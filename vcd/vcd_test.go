package vcd_test

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"
	"testing/quick"

	"github.com/db47h/hwvcd/vcd"
	"github.com/pkg/errors"
)

func TestIDCode(t *testing.T) {
	data := []struct {
		id vcd.IDCode
		s  string
	}{
		{vcd.FirstIDCode, "!"},
		{1, "\""},
		{93, "~"},
		{94, "!!"},
		{95, "\"!"},
		{94 + 94*94 - 1, "~~"},
		{94 + 94*94, "!!!"},
	}
	for _, d := range data {
		if s := d.id.String(); s != d.s {
			t.Errorf("IDCode(%d).String() = %q, expected %q", uint64(d.id), s, d.s)
		}
		id, err := vcd.ParseIDCode(d.s)
		if err != nil {
			t.Errorf("ParseIDCode(%q): %v", d.s, err)
			continue
		}
		if id != d.id {
			t.Errorf("ParseIDCode(%q) = %d, expected %d", d.s, uint64(id), uint64(d.id))
		}
	}

	f := func(n uint64) bool {
		if n == math.MaxUint64 {
			return true
		}
		id, err := vcd.ParseIDCode(vcd.IDCode(n).String())
		return err == nil && id == vcd.IDCode(n)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}

	for _, s := range []string{"", "a b", "\x7f", "~~~~~~~~~~~~"} {
		if _, err := vcd.ParseIDCode(s); err == nil {
			t.Errorf("ParseIDCode(%q): expected an error", s)
		}
	}
}

func TestParseValue(t *testing.T) {
	data := []struct {
		c byte
		v vcd.Value
	}{
		{'0', vcd.V0}, {'1', vcd.V1}, {'x', vcd.X}, {'X', vcd.X}, {'z', vcd.Z}, {'Z', vcd.Z},
	}
	for _, d := range data {
		v, err := vcd.ParseValue(d.c)
		if err != nil || v != d.v {
			t.Errorf("ParseValue(%q) = %v, %v, expected %v", d.c, v, err, d.v)
		}
	}
	if _, err := vcd.ParseValue('b'); err == nil {
		t.Error("ParseValue('b'): expected an error")
	}
}

const header = `$date
	Mon Feb 22 19:49:29 2021
$end
$version libsigrok 0.5.2 $end
$comment
  Acquisition with 2/8 channels at 1 MHz
$end
$timescale 1 us $end
$scope module libsigrok $end
$var wire 1 ! data $end
$var wire 1 " clk $end
$scope module sub $end
$var reg 8 # bus [7:0] $end
$upscope $end
$upscope $end
$var wire 1 $ top $end
$enddefinitions $end
`

func TestParser_header(t *testing.T) {
	h, err := vcd.NewParser(strings.NewReader(header)).ParseHeader()
	if err != nil {
		t.Fatal(err)
	}
	if h.Date != "Mon Feb 22 19:49:29 2021" {
		t.Errorf("Date = %q", h.Date)
	}
	if h.Version != "libsigrok 0.5.2" {
		t.Errorf("Version = %q", h.Version)
	}
	if h.Comment != "Acquisition with 2/8 channels at 1 MHz" {
		t.Errorf("Comment = %q", h.Comment)
	}
	if h.Timescale == nil || *h.Timescale != (vcd.Timescale{Scale: 1, Unit: vcd.US}) {
		t.Errorf("Timescale = %v, expected 1 us", h.Timescale)
	}

	data := []struct {
		path  []string
		id    string
		width int
	}{
		{[]string{"libsigrok", "data"}, "!", 1},
		{[]string{"libsigrok", "clk"}, "\"", 1},
		{[]string{"libsigrok", "sub", "bus"}, "#", 8},
		{[]string{"top"}, "$", 1},
		{[]string{"libsigrok"}, "", 0},
		{[]string{"data"}, "", 0},
		{[]string{"libsigrok", "nope"}, "", 0},
		{nil, "", 0},
	}
	for _, d := range data {
		v := h.FindVar(d.path...)
		if d.id == "" {
			if v != nil {
				t.Errorf("FindVar(%q) = %+v, expected nil", d.path, v)
			}
			continue
		}
		if v == nil {
			t.Errorf("FindVar(%q) = nil", d.path)
			continue
		}
		if v.ID.String() != d.id || v.Width != d.width {
			t.Errorf("FindVar(%q) = %+v, expected id %q width %d", d.path, v, d.id, d.width)
		}
	}
	if v := h.FindVar("libsigrok", "sub", "bus"); v == nil || v.Index != "[7:0]" {
		t.Errorf("bus index = %+v", v)
	}
	if s := h.FindScope("libsigrok", "sub"); s == nil || len(s.Items) != 1 {
		t.Errorf("FindScope(libsigrok, sub) = %+v", s)
	}

	var paths []string
	h.Walk(func(path []string, v *vcd.Var) {
		paths = append(paths, strings.Join(append(path, v.Reference), "."))
	})
	if got := strings.Join(paths, " "); got != "libsigrok.data libsigrok.clk libsigrok.sub.bus top" {
		t.Errorf("Walk: got %q", got)
	}
}

func TestParser_headerErrors(t *testing.T) {
	data := []struct {
		name string
		in   string
		line int
	}{
		{"eof", "$timescale 1 ns $end\n", 2},
		{"empty", "", 1},
		{"stray_word", "$timescale 1 ns $end\nfoo\n", 2},
		{"missing_end", "$timescale 1 ns\n$scope module a $end\n", 2},
		{"missing_end_eof", "$var wire 1 ! a", 1},
		{"bad_scale", "$timescale 0 ns $end\n$enddefinitions $end\n", 1},
		{"bad_unit", "$timescale 10 ks $end\n$enddefinitions $end\n", 1},
		{"bad_width", "$var wire x ! a $end\n$enddefinitions $end\n", 1},
		{"bad_id", "$var wire 1 \x01 a $end\n$enddefinitions $end\n", 1},
		{"short_var", "$var wire 1 ! $end\n", 1},
		{"upscope", "$scope module a $end\n$upscope $end\n$upscope $end\n", 3},
		{"stray_end", "$end\n", 1},
		{"scope_args", "$scope module $end\n", 1},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := vcd.NewParser(strings.NewReader(d.in)).ParseHeader()
			serr, ok := errors.Cause(err).(*vcd.SyntaxError)
			if !ok {
				t.Fatalf("got error %v, expected a *SyntaxError", err)
			}
			if serr.Line != d.line {
				t.Errorf("got error %q at line %d, expected line %d", serr.Msg, serr.Line, d.line)
			}
		})
	}
}

func TestParser_headerSkipsUnknown(t *testing.T) {
	in := "$timescale 10ps $end\n$attrbegin misc 07 \"\" 1 $end\n$enddefinitions $end\n"
	h, err := vcd.NewParser(strings.NewReader(in)).ParseHeader()
	if err != nil {
		t.Fatal(err)
	}
	if *h.Timescale != (vcd.Timescale{Scale: 10, Unit: vcd.PS}) {
		t.Errorf("Timescale = %v, expected 10 ps", h.Timescale)
	}
}

func TestParser_body(t *testing.T) {
	in := header + `$dumpvars
0!
x"
b00000000 #
$end
#0
1!
$comment 1" is ignored $end
#10
Z"
b1010 0!
r1.5 $
junk
bogus
#15
b
#16
b01
#17
r1.2.3 #18
#bad
z!
X!
1%
#20
`
	p := vcd.NewParser(strings.NewReader(in))
	if _, err := p.ParseHeader(); err != nil {
		t.Fatal(err)
	}
	ts := vcd.Command{Kind: vcd.CmdTimestamp}
	ch := func(id vcd.IDCode, v vcd.Value) vcd.Command {
		return vcd.Command{Kind: vcd.CmdChangeScalar, ID: id, Value: v}
	}
	at := func(n uint64) vcd.Command { c := ts; c.Time = n; return c }
	exp := []vcd.Command{
		ch(0, vcd.V0),
		ch(1, vcd.X),
		at(0),
		ch(0, vcd.V1),
		at(10),
		ch(1, vcd.Z),
		at(15),
		at(16),
		at(17),
		at(18),
		ch(0, vcd.Z),
		ch(0, vcd.X),
		ch(4, vcd.V1),
		at(20),
	}
	for n, e := range exp {
		c, err := p.Next()
		if err != nil {
			t.Fatalf("command %d: %v", n, err)
		}
		if c != e {
			t.Errorf("command %d: got %+v, expected %+v", n, c, e)
		}
	}
	if _, err := p.Next(); err != io.EOF {
		t.Fatalf("got error %v, expected io.EOF", err)
	}
}

func TestWriter(t *testing.T) {
	var b bytes.Buffer
	w := vcd.NewWriter(&b)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(w.Timescale(1, vcd.NS))
	must(w.AddModule("top"))
	a, err := w.AddWire(1, "a")
	must(err)
	must(w.Scope("task", "sub"))
	bus, err := w.AddVar("reg", 4, "bus")
	must(err)
	if w.Depth() != 2 {
		t.Errorf("Depth() = %d, expected 2", w.Depth())
	}
	must(w.Upscope())
	must(w.Upscope())
	if err = w.Upscope(); err == nil {
		t.Error("Upscope: expected an error with no open scope")
	}
	must(w.EndDefinitions())
	must(w.Timestamp(0))
	must(w.ChangeScalar(a, vcd.Z))
	must(w.Timestamp(42))
	must(w.ChangeScalar(a, vcd.V1))
	if err = w.ChangeScalar(bus, vcd.Value('q')); err == nil {
		t.Error("ChangeScalar: expected an error for an invalid value")
	}

	exp := `$timescale 1 ns $end
$scope module top $end
$var wire 1 ! a $end
$scope task sub $end
$var reg 4 " bus $end
$upscope $end
$upscope $end
$enddefinitions $end
#0
z!
#42
1!
`
	if b.String() != exp {
		t.Errorf("got:\n%s\nexpected:\n%s", b.String(), exp)
	}

	for _, name := range []string{"", "a b", "new\nline"} {
		if _, err := w.AddWire(1, name); err == nil {
			t.Errorf("AddWire(%q): expected an error", name)
		}
	}
	if _, err := w.AddWire(0, "zero"); err == nil {
		t.Error("AddWire(0): expected an error")
	}
}

type errWriter struct{ err error }

func (w errWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriter_ioError(t *testing.T) {
	ioErr := errors.New("disk full")
	w := vcd.NewWriter(errWriter{ioErr})
	if err := w.AddModule("top"); errors.Cause(err) != ioErr {
		t.Errorf("got error %v, expected %v", err, ioErr)
	}
	if w.Depth() != 0 {
		t.Errorf("Depth() = %d after failed write, expected 0", w.Depth())
	}
}

func TestTimescaleUnit(t *testing.T) {
	data := []struct {
		s string
		u vcd.TimescaleUnit
		d uint64
	}{
		{"s", vcd.S, 1},
		{"ms", vcd.MS, 1e3},
		{"us", vcd.US, 1e6},
		{"ns", vcd.NS, 1e9},
		{"ps", vcd.PS, 1e12},
		{"fs", vcd.FS, 1e15},
	}
	for _, d := range data {
		u, err := vcd.ParseTimescaleUnit(d.s)
		if err != nil || u != d.u || u.Divisor() != d.d || u.String() != d.s {
			t.Errorf("ParseTimescaleUnit(%q) = %v, %v", d.s, u, err)
		}
	}
}
