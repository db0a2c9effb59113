// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vcd

import (
	"io"
	"strconv"
	"strings"

	"github.com/db47h/hwvcd/internal/lex"
	"github.com/pkg/errors"
)

// A SyntaxError reports a malformed VCD header.
//
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": " + e.Msg
}

func syntaxError(i lex.Item, msg string) error {
	return &SyntaxError{Line: i.Line, Msg: msg}
}

// CommandKind identifies the kind of a body Command.
//
type CommandKind int

// Body commands.
//
const (
	CmdTimestamp CommandKind = iota + 1 // #ticks
	CmdChangeScalar                     // value change of a single bit variable
)

// Command is a command in the body of a VCD file.
//
type Command struct {
	Kind  CommandKind
	Time  uint64 // CmdTimestamp
	ID    IDCode // CmdChangeScalar
	Value Value  // CmdChangeScalar
}

// Parser is a streaming VCD parser.
//
// ParseHeader must be called first. Next is then called repeatedly to read
// body commands one at a time.
//
type Parser struct {
	l    lex.Interface
	next *lex.Item
}

// NewParser returns a new parser reading from r.
//
func NewParser(r io.Reader) *Parser {
	return &Parser{l: lexer(r)}
}

func (p *Parser) lex() lex.Item {
	if i := p.next; i != nil {
		p.next = nil
		return *i
	}
	return p.l.Lex()
}

func (p *Parser) backup(i lex.Item) {
	p.next = &i
}

func (p *Parser) ioErr() error {
	if err := p.l.Err(); err != nil {
		return errors.Wrap(err, "read vcd")
	}
	return nil
}

// ParseHeader parses the definitions section of a VCD file, up to and
// including the $enddefinitions command.
//
// It returns a *SyntaxError if the header is malformed or an error wrapping
// the underlying reader's error.
//
func (p *Parser) ParseHeader() (*Header, error) {
	h := new(Header)
	var scopes []*Scope
	add := func(it ScopeItem) {
		if len(scopes) == 0 {
			h.Items = append(h.Items, it)
			return
		}
		s := scopes[len(scopes)-1]
		s.Items = append(s.Items, it)
	}

	for {
		i := p.lex()
		switch i.Type {
		case tokEOF:
			if err := p.ioErr(); err != nil {
				return nil, err
			}
			return nil, syntaxError(i, "unexpected end of input in header")
		case tokWord:
			return nil, syntaxError(i, "unexpected "+i.String()+", expected a command")
		}

		switch kw := i.Value.(string); kw {
		case "$date", "$version", "$comment":
			text, err := p.text(i)
			if err != nil {
				return nil, err
			}
			switch kw {
			case "$date":
				h.Date = text
			case "$version":
				h.Version = text
			default:
				h.Comment = text
			}
		case "$timescale":
			args, err := p.args(i)
			if err != nil {
				return nil, err
			}
			ts, err := parseTimescale(args)
			if err != nil {
				return nil, syntaxError(i, err.Error())
			}
			h.Timescale = &ts
		case "$scope":
			args, err := p.args(i)
			if err != nil {
				return nil, err
			}
			if len(args) != 2 {
				return nil, syntaxError(i, "$scope: expected scope type and name")
			}
			s := &Scope{Type: args[0], Name: args[1]}
			add(s)
			scopes = append(scopes, s)
		case "$upscope":
			args, err := p.args(i)
			if err != nil {
				return nil, err
			}
			if len(args) != 0 {
				return nil, syntaxError(i, "$upscope: unexpected arguments")
			}
			if len(scopes) == 0 {
				return nil, syntaxError(i, "$upscope without matching $scope")
			}
			scopes = scopes[:len(scopes)-1]
		case "$var":
			v, err := p.variable(i)
			if err != nil {
				return nil, err
			}
			add(v)
		case "$enddefinitions":
			args, err := p.args(i)
			if err != nil {
				return nil, err
			}
			if len(args) != 0 {
				return nil, syntaxError(i, "$enddefinitions: unexpected arguments")
			}
			return h, nil
		case "$end":
			return nil, syntaxError(i, "unexpected $end")
		default:
			// unknown commands are skipped.
			if _, err := p.text(i); err != nil {
				return nil, err
			}
		}
	}
}

func (p *Parser) variable(kw lex.Item) (*Var, error) {
	args, err := p.args(kw)
	if err != nil {
		return nil, err
	}
	if len(args) != 4 && len(args) != 5 {
		return nil, syntaxError(kw, "$var: expected type, width, identifier code and reference")
	}
	w, err := strconv.Atoi(args[1])
	if err != nil || w <= 0 {
		return nil, syntaxError(kw, "$var: invalid width "+strconv.Quote(args[1]))
	}
	id, err := ParseIDCode(args[2])
	if err != nil {
		return nil, syntaxError(kw, "$var: "+err.Error())
	}
	v := &Var{Type: args[0], Width: w, ID: id, Reference: args[3]}
	if len(args) == 5 {
		v.Index = args[4]
	}
	return v, nil
}

var commands = map[string]bool{
	"$comment":        true,
	"$date":           true,
	"$enddefinitions": true,
	"$scope":          true,
	"$timescale":      true,
	"$upscope":        true,
	"$var":            true,
	"$version":        true,
	"$dumpall":        true,
	"$dumpoff":        true,
	"$dumpon":         true,
	"$dumpvars":       true,
}

// args returns the words following keyword kw up to the next $end.
//
func (p *Parser) args(kw lex.Item) ([]string, error) {
	var args []string
	for {
		i := p.lex()
		switch i.Type {
		case tokEOF:
			if err := p.ioErr(); err != nil {
				return nil, err
			}
			return nil, syntaxError(kw, "missing $end after "+kw.Value.(string))
		case tokKeyword:
			s := i.Value.(string)
			if s == "$end" {
				return args, nil
			}
			// '$' is a valid identifier code character.
			if commands[s] {
				return nil, syntaxError(i, "unexpected "+i.String()+", expected $end")
			}
		}
		args = append(args, i.Value.(string))
	}
}

// text is like args but accepts keywords in the text and joins all words with
// a single space.
//
func (p *Parser) text(kw lex.Item) (string, error) {
	var b strings.Builder
	for {
		i := p.lex()
		switch {
		case i.Type == tokEOF:
			if err := p.ioErr(); err != nil {
				return "", err
			}
			return "", syntaxError(kw, "missing $end after "+kw.Value.(string))
		case i.Type == tokKeyword && i.Value.(string) == "$end":
			return b.String(), nil
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(i.Value.(string))
	}
}

// Next returns the next timestamp or scalar value change in the body. It
// returns io.EOF once the input is exhausted.
//
// Anything else is skipped: vector and real value changes, dump control
// keywords ($dumpvars, $dumpall, $dumpon, $dumpoff and their $end),
// $comment blocks and malformed words. Errors other than io.EOF come from
// the underlying reader.
//
func (p *Parser) Next() (Command, error) {
	for {
		i := p.lex()
		switch i.Type {
		case tokEOF:
			if err := p.ioErr(); err != nil {
				return Command{}, err
			}
			return Command{}, io.EOF
		case tokKeyword:
			if i.Value.(string) == "$comment" {
				if err := p.skipComment(); err != nil {
					return Command{}, err
				}
			}
			continue
		}

		w := i.Value.(string)
		switch c := w[0]; c {
		case '#':
			t, err := strconv.ParseUint(w[1:], 10, 64)
			if err != nil {
				continue
			}
			return Command{Kind: CmdTimestamp, Time: t}, nil
		case '0', '1', 'x', 'X', 'z', 'Z':
			id, err := ParseIDCode(w[1:])
			if err != nil {
				continue
			}
			v, _ := ParseValue(c)
			return Command{Kind: CmdChangeScalar, ID: id, Value: v}, nil
		case 'b', 'B', 'r', 'R':
			if !vectorValue(c, w[1:]) {
				continue
			}
			// vector or real value: the identifier code is the next word.
			i = p.lex()
			if !isIDWord(i) {
				p.backup(i)
			}
		}
	}
}

// vectorValue reports whether v is a valid vector (b) or real (r) value.
//
func vectorValue(kind byte, v string) bool {
	if v == "" {
		return false
	}
	if kind == 'r' || kind == 'R' {
		_, err := strconv.ParseFloat(v, 64)
		return err == nil
	}
	for i := 0; i < len(v); i++ {
		if _, err := ParseValue(v[i]); err != nil {
			return false
		}
	}
	return true
}

// isIDWord reports whether i can be the identifier code of a vector or real
// value change.
//
func isIDWord(i lex.Item) bool {
	switch i.Type {
	case tokKeyword:
		s := i.Value.(string)
		return !commands[s] && s != "$end"
	case tokWord:
		return i.Value.(string)[0] != '#'
	}
	return false
}

func (p *Parser) skipComment() error {
	for {
		i := p.lex()
		switch {
		case i.Type == tokEOF:
			return p.ioErr()
		case i.Type == tokKeyword && i.Value.(string) == "$end":
			return nil
		}
	}
}
