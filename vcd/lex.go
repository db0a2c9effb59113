package vcd

import (
	"io"
	"strings"
	"unicode"

	"github.com/db47h/hwvcd/internal/lex"
)

// Tokens
const (
	tokEOF     lex.Type = lex.EOF
	tokKeyword lex.Type = iota // $keyword
	tokWord                    // anything else
)

// lexer returns a new lexer for VCD input. VCD is a sequence of words
// separated by white space.
//
func lexer(r io.Reader) lex.Interface {
	return lex.New(r, lexInit)
}

func lexInit(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	switch {
	case r == lex.EOF:
		return lexEOF
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
	case r == '$':
		lexWord(l, tokKeyword)
	default:
		lexWord(l, tokWord)
	}
	return nil
}

func lexWord(l *lex.Lexer, t lex.Type) {
	var buf strings.Builder
	buf.Grow(8)
	buf.WriteRune(l.Current())
	r := l.Next()
	for r != lex.EOF && !unicode.IsSpace(r) {
		buf.WriteRune(r)
		r = l.Next()
	}
	l.Backup()
	l.Emit(t, buf.String())
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *lex.Lexer) lex.StateFn {
	l.Emit(tokEOF, nil)
	return lexEOF
}
