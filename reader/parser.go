// Package reader implements the recursive-descent parser of spec.md §4.1:
// read_expr and read_list built on top of reader/lexer and reader/token.
// Grounded on the teacher's parser/rdparser.Parser (curr/peek token
// buffering, one ParseXxx method per token type) but with the buffering
// collapsed to a single peeked token, since golisp's grammar never needs
// two tokens of lookahead the way elps's qualified-symbol handling does.
package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/steshaw/golisp/lisp"
	"github.com/steshaw/golisp/reader/lexer"
	"github.com/steshaw/golisp/reader/token"
)

// Parser reads Values out of a fixed input string against a *lisp.Interp
// (needed to intern symbols and to allocate the Pairs a list literal
// becomes).
type Parser struct {
	in   *lisp.Interp
	lex  *lexer.Lexer
	peek token.Token
	have bool
}

// New returns a Parser that reads input against in's symbol table and heap.
func New(in *lisp.Interp, input string) *Parser {
	return &Parser{in: in, lex: lexer.New(input)}
}

// Rest returns the unconsumed suffix of the input following whatever has
// been read so far — what the REPL feeds back in as the start of the next
// line when a form is incomplete.
func (p *Parser) Rest() string {
	if p.have {
		return p.peek.Text + p.lex.Rest()
	}
	return p.lex.Rest()
}

func (p *Parser) peekTok() token.Token {
	if !p.have {
		p.peek = p.lex.Next()
		p.have = true
	}
	return p.peek
}

func (p *Parser) advance() token.Token {
	tok := p.peekTok()
	p.have = false
	return tok
}

// AtEOF reports whether the input has no more tokens, letting callers
// distinguish "nothing left to read" from a genuine syntax error.
func (p *Parser) AtEOF() bool {
	return p.peekTok().Type == token.EOF
}

// errIncomplete is the sentinel *lisp.Error returned whenever a read ran
// out of tokens partway through a form (an unclosed "(", a dangling
// reader-macro prefix, a dotted tail with no closing paren). Its identity,
// not its text, is what Incomplete checks, so the message itself can stay
// a plain, displayable description for callers — such as a truncated
// source file passed to `golisp run` — that have no more input coming and
// must report it as a real error.
var errIncomplete = lisp.Errorf(lisp.KindSyntax, "incomplete form: unexpected end of input")

// Incomplete reports whether err was raised because the input ran out of
// tokens mid-form, rather than a genuine syntax error. The REPL uses this
// to decide whether to show a continuation prompt and wait for another
// line instead of reporting a failure.
func Incomplete(err *lisp.Error) bool {
	return err == errIncomplete
}

// ReadExpr reads and returns the next top-level Value in the input,
// spec.md §4.1's read_expr. Returns (Nil, nil, true) at end of input with
// nothing consumed.
func (p *Parser) ReadExpr() (lisp.Value, *lisp.Error, bool) {
	if p.AtEOF() {
		return lisp.Nil, nil, true
	}
	v, err := p.readExpr()
	return v, err, false
}

func (p *Parser) readExpr() (lisp.Value, *lisp.Error) {
	tok := p.advance()
	switch tok.Type {
	case token.PAREN_L:
		return p.readList()
	case token.PAREN_R:
		return lisp.Nil, syntaxErrorf(tok, "unexpected )")
	case token.QUOTE:
		return p.readWrapped(tok, "QUOTE")
	case token.QUASI:
		return p.readWrapped(tok, "QUASIQUOTE")
	case token.UNQUOTE:
		return p.readWrapped(tok, "UNQUOTE")
	case token.SPLICE:
		return p.readWrapped(tok, "UNQUOTE-SPLICING")
	case token.ATOM:
		return p.parseAtom(tok.Text)
	default: // token.EOF, token.INVALID
		return lisp.Nil, errIncomplete
	}
}

// readWrapped implements the four reader-macro rewrites of spec.md §6:
// 'x → (QUOTE x), `x → (QUASIQUOTE x), ,x → (UNQUOTE x), ,@x →
// (UNQUOTE-SPLICING x).
func (p *Parser) readWrapped(tok token.Token, name string) (lisp.Value, *lisp.Error) {
	if p.AtEOF() {
		return lisp.Nil, errIncomplete
	}
	v, err := p.readExpr()
	if err != nil {
		return lisp.Nil, err
	}
	sym := p.in.Intern(name)
	return p.in.Heap.Cons(sym, p.in.Heap.Cons(v, lisp.Nil)), nil
}

// readList implements read_list. The opening "(" has already been
// consumed by readExpr. Items are appended left to right onto the tail of
// the growing list via a moving cursor (no reverse at the end), exactly as
// spec.md §4.1 specifies, so the source form's element order matches the
// input's left-to-right order without a second pass.
func (p *Parser) readList() (lisp.Value, *lisp.Error) {
	result := lisp.Nil
	var tailCell lisp.Value // most recently appended cons cell
	first := true

	for {
		tok := p.peekTok()
		switch {
		case tok.Type == token.EOF:
			return lisp.Nil, errIncomplete

		case tok.Type == token.PAREN_R:
			p.advance()
			return result, nil

		case tok.Type == token.ATOM && tok.Text == ".":
			if first {
				return lisp.Nil, syntaxErrorf(tok, "unexpected . at start of list")
			}
			p.advance()
			if p.AtEOF() {
				return lisp.Nil, errIncomplete
			}
			item, err := p.readExpr()
			if err != nil {
				return lisp.Nil, err
			}
			tailCell.Pair.Tail = item
			closeTok := p.advance()
			if closeTok.Type == token.EOF {
				return lisp.Nil, errIncomplete
			}
			if closeTok.Type != token.PAREN_R {
				return lisp.Nil, syntaxErrorf(closeTok, "expected ) after dotted tail")
			}
			return result, nil

		default:
			item, err := p.readExpr()
			if err != nil {
				return lisp.Nil, err
			}
			cell := p.in.Heap.Cons(item, lisp.Nil)
			if first {
				result = cell
			} else {
				tailCell.Pair.Tail = cell
			}
			tailCell = cell
			first = false
		}
	}
}

// parseAtom implements parse_simple: attempt a base-10 signed-integer
// parse over the whole token, on success an Integer; otherwise uppercase
// the token and intern it as a Symbol, except that the literal uppercased
// string "NIL" yields the Nil value rather than a symbol named NIL.
func (p *Parser) parseAtom(text string) (lisp.Value, *lisp.Error) {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return lisp.Integer(n), nil
	}
	upper := strings.ToUpper(text)
	if upper == "NIL" {
		return lisp.Nil, nil
	}
	return p.in.Intern(upper), nil
}

func syntaxErrorf(tok token.Token, format string, v ...interface{}) *lisp.Error {
	msg := tok.Source.String() + ": " + fmt.Sprintf(format, v...)
	return lisp.Errorf(lisp.KindSyntax, "%s", msg)
}
