package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/steshaw/golisp/reader/lexer"
	"github.com/steshaw/golisp/reader/token"
)

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	l := lexer.New(input)
	var out []token.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Type == token.EOF {
			return out
		}
	}
}

func types(toks []token.Token) []token.Type {
	var out []token.Type
	for _, tok := range toks {
		out = append(out, tok.Type)
	}
	return out
}

func TestDelimiters(t *testing.T) {
	toks := tokenize(t, "()'`,,@")
	assert.Equal(t, []token.Type{
		token.PAREN_L, token.PAREN_R, token.QUOTE, token.QUASI,
		token.UNQUOTE, token.SPLICE, token.EOF,
	}, types(toks))
}

func TestAtomRuns(t *testing.T) {
	toks := tokenize(t, "foo bar-baz <= +")
	want := []string{"foo", "bar-baz", "<=", "+"}
	var got []string
	for _, tok := range toks {
		if tok.Type == token.ATOM {
			got = append(got, tok.Text)
		}
	}
	assert.Equal(t, want, got)
}

// A leading minus followed directly by digits is a single ATOM token, not a
// UNQUOTE-like prefix plus a number: '-' isn't a reader-macro character, so
// it folds into the maximal non-delimiter run exactly like any other atom
// byte.
func TestNegativeNumberIsOneToken(t *testing.T) {
	toks := tokenize(t, "-12")
	assert.Len(t, toks, 2) // ATOM, EOF
	assert.Equal(t, token.ATOM, toks[0].Type)
	assert.Equal(t, "-12", toks[0].Text)
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := tokenize(t, "1 ; a comment\n2")
	var got []string
	for _, tok := range toks {
		if tok.Type == token.ATOM {
			got = append(got, tok.Text)
		}
	}
	assert.Equal(t, []string{"1", "2"}, got)
}

func TestCommentToEndOfInputWithNoTrailingNewline(t *testing.T) {
	toks := tokenize(t, "1 ; trailing comment, no newline")
	assert.Equal(t, []token.Type{token.ATOM, token.EOF}, types(toks))
}

func TestUnquoteSplicingVsPlainUnquote(t *testing.T) {
	toks := tokenize(t, ",@x ,y")
	assert.Equal(t, []token.Type{
		token.SPLICE, token.ATOM, token.UNQUOTE, token.ATOM, token.EOF,
	}, types(toks))
}

func TestEmptyInputIsImmediateEOF(t *testing.T) {
	toks := tokenize(t, "")
	assert.Equal(t, []token.Type{token.EOF}, types(toks))
}

func TestEOFTokenHasEmptyText(t *testing.T) {
	toks := tokenize(t, "  ")
	assert.Equal(t, token.EOF, toks[0].Type)
	assert.Equal(t, "", toks[0].Text)
}

func TestRestReflectsCursor(t *testing.T) {
	l := lexer.New("(+ 1 2)")
	l.Next() // consumes "("
	assert.Equal(t, "+ 1 2)", l.Rest())
}
