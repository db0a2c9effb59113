// Command vcdcopy copies single bit signals from a VCD trace into a new one,
// going through emulated input and output pins.
//
// Usage:
//
//	vcdcopy [-config vcdcopy.toml] [-in file] [-out file] [-module name] [-pin scope.var=name]... [-v n]
//	vcdcopy -list -in file
//
// A file name of "-" stands for the standard input or output.
//
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/db47h/hwvcd"
	"github.com/db47h/hwvcd/internal/config"
	"github.com/db47h/hwvcd/internal/replay"
	"github.com/db47h/hwvcd/vcd"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("vcdcopy")

type pinFlags []config.Pin

func (p *pinFlags) String() string {
	s := make([]string, len(*p))
	for i := range *p {
		s[i] = (*p)[i].String()
	}
	return strings.Join(s, ",")
}

func (p *pinFlags) Set(s string) error {
	pin, err := config.ParsePin(s)
	if err != nil {
		return err
	}
	*p = append(*p, pin)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if err != flag.ErrHelp {
			log.Errorf("%v", err)
			fmt.Fprintln(os.Stderr, "vcdcopy:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) (err error) {
	var (
		fs      = flag.NewFlagSet("vcdcopy", flag.ContinueOnError)
		cfgName = fs.String("config", "", "configuration `file`")
		in      = fs.String("in", "", "input VCD `file`")
		out     = fs.String("out", "", "output VCD `file`")
		module  = fs.String("module", "", "output module `name`")
		list    = fs.Bool("list", false, "list the signals of the input file and exit")
		verbose = fs.Int("v", 0, "log verbosity")
		pins    pinFlags
	)
	fs.Var(&pins, "pin", "copy signal `scope.var=name` (repeatable)")
	if err = fs.Parse(args); err != nil {
		return err
	}
	commonlog.Configure(*verbose, nil)

	cfg := new(config.Config)
	if *cfgName != "" {
		if cfg, err = config.Load(*cfgName); err != nil {
			return err
		}
		log.Infof("loaded %s", *cfgName)
	}
	if *in != "" {
		cfg.Input = *in
	}
	if *out != "" {
		cfg.Output = *out
	}
	if *module != "" {
		cfg.Module = *module
	}
	cfg.Pins = append(cfg.Pins, pins...)
	cfg.SetDefaults()

	if *list {
		if cfg.Input == "" {
			return errors.New("no input file")
		}
		return listSignals(cfg.Input, stdin, stdout)
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	src, err := openInput(cfg.Input, stdin)
	if err != nil {
		return err
	}
	defer src.Close()
	r, err := hwvcd.NewReader(src)
	if err != nil {
		return errors.Wrap(err, cfg.Input)
	}
	log.Infof("%s: timescale %v", cfg.Input, r.Header().Timescale)

	dst, err := createOutput(cfg.Output, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if e := dst.Close(); err == nil && e != nil {
			err = errors.Wrap(e, cfg.Output)
		}
	}()
	bw := bufio.NewWriter(dst)
	b, err := hwvcd.NewWriterBuilderWithModule(bw, cfg.Module)
	if err != nil {
		return errors.Wrap(err, cfg.Output)
	}
	st, err := replay.Copy(r, b, cfg.Pins)
	if err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return errors.Wrap(err, cfg.Output)
	}
	log.Noticef("%s: %d timestamps, %d values", cfg.Output, st.Timestamps, st.Values)
	return nil
}

func listSignals(name string, stdin io.Reader, stdout io.Writer) error {
	src, err := openInput(name, stdin)
	if err != nil {
		return err
	}
	defer src.Close()
	r, err := hwvcd.NewReader(src)
	if err != nil {
		return errors.Wrap(err, name)
	}
	w := bufio.NewWriter(stdout)
	r.Header().Walk(func(path []string, v *vcd.Var) {
		name := strings.Join(append(path[:len(path):len(path)], v.Reference), ".")
		fmt.Fprintf(w, "%s\t%s %d %s\n", name, v.Type, v.Width, v.ID)
	})
	return w.Flush()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func openInput(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	return f, nil
}

func createOutput(name string, stdout io.Writer) (io.WriteCloser, error) {
	if name == "-" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, errors.Wrap(err, "create output")
	}
	return f, nil
}
