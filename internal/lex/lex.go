// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lex provides a simple state function based lexer.
//
// A lexer is driven by state functions. The initial state function is called
// at the start of every token and returns the next state function or nil once
// it has emitted an item or skipped input.
//
package lex

import (
	"bufio"
	"io"
	"strconv"
)

// EOF is returned by Next when the end of the input has been reached and is
// also the Type of the end-of-input item.
//
const EOF = -1

// Type is an item type.
//
type Type int

// Pos is a byte offset in the input.
//
type Pos int

// Item is a lexed token.
//
type Item struct {
	Type  Type
	Pos   Pos // byte offset of the first rune of the item
	Line  int // line of the first rune of the item, starting at 1
	Value interface{}
}

func (i Item) String() string {
	switch v := i.Value.(type) {
	case string:
		return strconv.Quote(v)
	case rune:
		return strconv.QuoteRune(v)
	case nil:
		return "<nil>"
	}
	return "item"
}

// StateFn is a state function.
//
type StateFn func(l *Lexer) StateFn

// Interface wraps the Lex and Err methods.
//
type Interface interface {
	Lex() Item
	Err() error
}

var _ Interface = (*Lexer)(nil)

// Lexer is a rune lexer. Its zero value is not usable, use New.
//
type Lexer struct {
	r     io.RuneReader
	init  StateFn
	state StateFn
	items []Item

	cur    rune
	width  int
	backed bool
	pos    Pos
	line   int
	start  Pos
	sline  int
	err    error
}

// New returns a new lexer reading from r. init is the initial state function.
// If r does not implement io.RuneReader, it is wrapped into a bufio.Reader.
//
func New(r io.Reader, init StateFn) *Lexer {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return &Lexer{
		r:    rr,
		init: init,
		line: 1,
	}
}

// Lex returns the next item in the input stream. Once the input is
// exhausted, the behavior depends on the state functions; most lexers keep
// returning an EOF item.
//
func (l *Lexer) Lex() Item {
	for len(l.items) == 0 {
		if l.state == nil {
			l.state = l.init
			l.start, l.sline = l.pos, l.line
		}
		l.state = l.state(l)
	}
	i := l.items[0]
	l.items = l.items[:copy(l.items, l.items[1:])]
	return i
}

// Next reads and returns the next rune in the input. It returns EOF at the
// end of the input or if the underlying reader failed. See Err.
//
func (l *Lexer) Next() rune {
	if l.backed {
		l.backed = false
	} else {
		l.cur, l.width = l.read()
	}
	l.pos += Pos(l.width)
	if l.cur == '\n' {
		l.line++
	}
	return l.cur
}

func (l *Lexer) read() (rune, int) {
	if l.err != nil {
		return EOF, 0
	}
	r, w, err := l.r.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.err = err
		}
		return EOF, 0
	}
	return r, w
}

// Backup unreads the last rune read by Next. Only one rune of backup is
// supported.
//
func (l *Lexer) Backup() {
	l.backed = true
	l.pos -= Pos(l.width)
	if l.cur == '\n' {
		l.line--
	}
}

// Current returns the last rune read by Next.
//
func (l *Lexer) Current() rune {
	return l.cur
}

// AcceptWhile reads runes as long as f returns true. The first rune for
// which f returns false is not consumed.
//
func (l *Lexer) AcceptWhile(f func(r rune) bool) {
	for r := l.Next(); r != EOF && f(r); r = l.Next() {
	}
	l.Backup()
}

// Emit emits a new item of type t with value v. The item position is the
// position of the first rune read since the initial state was entered.
//
func (l *Lexer) Emit(t Type, v interface{}) {
	l.items = append(l.items, Item{Type: t, Pos: l.start, Line: l.sline, Value: v})
}

// Pos returns the current position in the input.
//
func (l *Lexer) Pos() Pos {
	return l.pos
}

// Line returns the current line in the input.
//
func (l *Lexer) Line() int {
	return l.line
}

// Err returns the first non io.EOF error returned by the underlying reader.
//
func (l *Lexer) Err() error {
	return l.err
}
