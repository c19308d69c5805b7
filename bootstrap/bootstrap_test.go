package bootstrap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steshaw/golisp/bootstrap"
	"github.com/steshaw/golisp/lisp"
	"github.com/steshaw/golisp/reader"
)

// newLoaded returns an Interp with the embedded prelude already loaded.
func newLoaded(t *testing.T) *lisp.Interp {
	t.Helper()
	in := lisp.New()
	require.Nil(t, bootstrap.Load(in))
	return in
}

func evalForms(t *testing.T, in *lisp.Interp, src string) []string {
	t.Helper()
	p := reader.New(in, src)
	var out []string
	for {
		v, err, eof := p.ReadExpr()
		if eof {
			return out
		}
		require.Nil(t, err, "read error in %q", src)
		result, evalErr := lisp.Eval(in, v, in.Root)
		require.Nil(t, evalErr, "eval error in %q", src)
		out = append(out, lisp.Print(result))
	}
}

func TestPreludeLoadsCleanly(t *testing.T) {
	in := lisp.New()
	assert.Nil(t, bootstrap.Load(in))
}

func TestVariadicArithmetic(t *testing.T) {
	in := newLoaded(t)
	assert.Equal(t, []string{"0"}, evalForms(t, in, "(+)"))
	assert.Equal(t, []string{"5"}, evalForms(t, in, "(+ 5)"))
	assert.Equal(t, []string{"6"}, evalForms(t, in, "(+ 1 2 3)"))
	assert.Equal(t, []string{"1"}, evalForms(t, in, "(*)"))
	assert.Equal(t, []string{"24"}, evalForms(t, in, "(* 2 3 4)"))
	assert.Equal(t, []string{"-5"}, evalForms(t, in, "(- 5)"))
	assert.Equal(t, []string{"1"}, evalForms(t, in, "(- 6 3 2)"))
	assert.Equal(t, []string{"0"}, evalForms(t, in, "(-)"))
}

func TestListAndAppend(t *testing.T) {
	in := newLoaded(t)
	got := evalForms(t, in, `
		(list 1 2 3)
		(append (list 1 2) (list 3 4))
		(append nil (list 1))`)
	assert.Equal(t, []string{"(1 2 3)", "(1 2 3 4)", "(1)"}, got)
}

func TestNotAndNullP(t *testing.T) {
	in := newLoaded(t)
	got := evalForms(t, in, `
		(not nil)
		(not t)
		(null? nil)
		(null? 1)`)
	assert.Equal(t, []string{"T", "NIL", "T", "NIL"}, got)
}

func TestAndOrShortCircuit(t *testing.T) {
	in := newLoaded(t)
	got := evalForms(t, in, `
		(and 1 2 3)
		(and 1 nil 3)
		(or nil nil 5)
		(or nil nil)`)
	assert.Equal(t, []string{"3", "NIL", "5", "NIL"}, got)
}

func TestAndOrDoNotEvaluatePastTheDecidingForm(t *testing.T) {
	in := newLoaded(t)
	got := evalForms(t, in, `
		(define hit nil)
		(define (mark) (define hit t) t)
		(and nil (mark))
		hit
		(or t (mark))
		hit`)
	assert.Equal(t, []string{"HIT", "MARK", "NIL", "NIL", "T", "NIL"}, got)
}

func TestWhenUnless(t *testing.T) {
	in := newLoaded(t)
	got := evalForms(t, in, `
		(when t 1 2 3)
		(when nil 1 2 3)
		(unless nil 1 2 3)
		(unless t 1 2 3)`)
	assert.Equal(t, []string{"3", "NIL", "3", "NIL"}, got)
}

func TestCxrHelpersAndMap(t *testing.T) {
	in := newLoaded(t)
	got := evalForms(t, in, `
		(cadr (list 1 2 3))
		(cddr (list 1 2 3))
		(caddr (list 1 2 3))
		(map (lambda (x) (* x x)) (list 1 2 3))`)
	assert.Equal(t, []string{"2", "(3)", "3", "(1 4 9)"}, got)
}

func TestQuasiquoteLiteral(t *testing.T) {
	in := newLoaded(t)
	got := evalForms(t, in, "`(1 2 3)")
	assert.Equal(t, []string{"(1 2 3)"}, got)
}

func TestQuasiquoteUnquote(t *testing.T) {
	in := newLoaded(t)
	got := evalForms(t, in, `
		(define x 5)
		`+"`(a ,x c)")
	assert.Equal(t, []string{"X", "(A 5 C)"}, got)
}

func TestQuasiquoteUnquoteSplicing(t *testing.T) {
	in := newLoaded(t)
	got := evalForms(t, in, `
		(define xs (list 2 3))
		`+"`(1 ,@xs 4)")
	assert.Equal(t, []string{"XS", "(1 2 3 4)"}, got)
}
