// Package lexer implements the tokenizer described in spec.md §4.1: skip
// whitespace and line comments, then recognize the fixed set of one- and
// two-character tokens before falling back to a maximal run of
// non-delimiter bytes. Grounded on the teacher's parser/lexer.Lexer
// (NextToken, one switch over the current character) and on
// original_source/lisp.c's lex(), which is the same skip-whitespace/
// single-char-or-maximal-run strategy spec.md §4.1 asks for.
package lexer

import (
	"strings"

	"github.com/steshaw/golisp/reader/token"
)

const whitespace = " \t\n"

// delimiters bounds an ATOM token: parens and whitespace. Nothing else is a
// delimiter, which is why "-12" lexes as a single token (see
// DESIGN.md's Open Question decision on this) and why "+" or "<=" are
// themselves valid ATOM text.
const delimiters = "() \t\n"

// Lexer tokenizes a fixed input string. Unlike the teacher's io.Reader-
// backed Scanner, golisp's lexer works directly over an in-memory string:
// spec.md's Non-goals exclude streaming/incremental reads beyond what the
// REPL's line-buffering already provides, and the whole grammar is a
// handful of one-byte delimiters, so a byte-offset cursor is all §4.1
// needs.
type Lexer struct {
	input string
	pos   int
}

// New returns a Lexer that tokenizes input starting at offset 0.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Pos reports the lexer's current byte offset. The parser does not call
// it: syntax errors carry each token's own Source offset, and the REPL's
// multi-line buffering uses Rest.
func (l *Lexer) Pos() int {
	return l.pos
}

// Rest returns the unconsumed suffix of the input, corresponding to the
// "rest" output of spec.md §4.1's lex(input) → (token_start, token_end,
// rest).
func (l *Lexer) Rest() string {
	return l.input[l.pos:]
}

// Next scans and returns the next token, advancing past it. Skips
// whitespace and ';'-to-end-of-line comments first. Returns an EOF token
// (Text == "") when the input is exhausted, so callers distinguish
// end-of-input via a zero-length token exactly as spec.md §4.1 specifies.
func (l *Lexer) Next() token.Token {
	l.skipSpaceAndComments()
	start := l.pos
	if l.pos >= len(l.input) {
		return token.Token{Type: token.EOF, Source: token.Location{Pos: start}}
	}

	c := l.input[l.pos]
	switch c {
	case '(':
		l.pos++
		return l.charToken(token.PAREN_L, start)
	case ')':
		l.pos++
		return l.charToken(token.PAREN_R, start)
	case '\'':
		l.pos++
		return l.charToken(token.QUOTE, start)
	case '`':
		l.pos++
		return l.charToken(token.QUASI, start)
	case ',':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '@' {
			l.pos++
			return l.charToken(token.SPLICE, start)
		}
		return l.charToken(token.UNQUOTE, start)
	default:
		end := start + strcspn(l.input[start:], delimiters)
		l.pos = end
		return token.Token{Type: token.ATOM, Text: l.input[start:end], Source: token.Location{Pos: start}}
	}
}

func (l *Lexer) charToken(typ token.Type, start int) token.Token {
	return token.Token{Type: typ, Text: l.input[start:l.pos], Source: token.Location{Pos: start}}
}

func (l *Lexer) skipSpaceAndComments() {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if strings.IndexByte(whitespace, c) >= 0 {
			l.pos++
			continue
		}
		if c == ';' {
			nl := strings.IndexByte(l.input[l.pos:], '\n')
			if nl < 0 {
				l.pos = len(l.input)
				return
			}
			l.pos += nl + 1
			continue
		}
		return
	}
}

// strcspn mirrors the C standard library function of the same name that
// original_source/lisp.c's lex() calls directly: the length of the
// initial segment of s containing no byte from reject.
func strcspn(s, reject string) int {
	i := strings.IndexAny(s, reject)
	if i < 0 {
		return len(s)
	}
	return i
}
