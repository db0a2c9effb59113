// Package config loads the configuration of the vcdcopy tool.
//
// A configuration file looks like:
//
//	input = "capture.vcd"
//	output = "copy.vcd"
//	module = "logic"
//
//	[[pin]]
//	from = ["libsigrok", "D0"]
//	to = "clk"
//
//	[[pin]]
//	from = ["libsigrok", "D1"]
//	to = "sda"
//	kind = "open-drain"
//
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Kind is the kind of an output pin.
//
type Kind string

// Output pin kinds.
//
const (
	PushPull  Kind = "push-pull"
	OpenDrain Kind = "open-drain"
)

// DefaultModule is the output module name used when none is configured.
//
const DefaultModule = "top"

// Pin maps a signal of the input trace to an output pin.
//
type Pin struct {
	From []string `toml:"from"` // scope names followed by the variable name
	To   string   `toml:"to"`
	Kind Kind     `toml:"kind"`
}

func (p *Pin) String() string {
	return strings.Join(p.From, ".") + "=" + p.To
}

// ParsePin parses a pin mapping of the form "scope.var=name". The kind of
// the returned pin is PushPull.
//
func ParsePin(s string) (Pin, error) {
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return Pin{}, errors.Errorf("invalid pin mapping %q: expected from=to", s)
	}
	p := Pin{From: strings.Split(s[:eq], "."), To: s[eq+1:], Kind: PushPull}
	if err := p.validate(); err != nil {
		return Pin{}, errors.Wrapf(err, "invalid pin mapping %q", s)
	}
	return p, nil
}

func (p *Pin) validate() error {
	if len(p.From) == 0 {
		return errors.New("empty source path")
	}
	for _, n := range p.From {
		if n == "" {
			return errors.New("empty name in source path")
		}
	}
	if p.To == "" || strings.ContainsAny(p.To, " \t\r\n") {
		return errors.Errorf("invalid output name %q", p.To)
	}
	switch p.Kind {
	case PushPull, OpenDrain:
	default:
		return errors.Errorf("unknown pin kind %q", p.Kind)
	}
	return nil
}

// Config is the vcdcopy configuration.
//
type Config struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
	Module string `toml:"module"`
	Pins   []Pin  `toml:"pin"`
}

// Load reads a configuration file and applies defaults. The configuration is
// not validated, see Validate.
//
func Load(name string) (*Config, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return c, nil
}

// Parse decodes a configuration and applies defaults.
//
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.SetDefaults()
	return &c, nil
}

// SetDefaults sets the output module and pin kinds when empty.
//
func (c *Config) SetDefaults() {
	if c.Module == "" {
		c.Module = DefaultModule
	}
	for i := range c.Pins {
		if c.Pins[i].Kind == "" {
			c.Pins[i].Kind = PushPull
		}
	}
}

// Validate checks that the configuration is complete.
//
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("no input file")
	}
	if c.Output == "" {
		return errors.New("no output file")
	}
	if len(c.Pins) == 0 {
		return errors.New("no pins")
	}
	seen := make(map[string]bool, len(c.Pins))
	for i := range c.Pins {
		p := &c.Pins[i]
		if err := p.validate(); err != nil {
			return errors.Wrapf(err, "pin %d", i+1)
		}
		if seen[p.To] {
			return errors.Errorf("pin %d: duplicate output name %q", i+1, p.To)
		}
		seen[p.To] = true
	}
	return nil
}
