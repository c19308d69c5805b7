package lisp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steshaw/golisp/lisp"
	"github.com/steshaw/golisp/reader"
)

// evalForms reads and evaluates every top-level form in src in order
// against a shared env, returning the printed result of each. It mirrors
// the input->output table style the teacher's elpstest package uses,
// without pulling in that package's full test-suite-from-package-library
// machinery, which this much smaller language has no use for.
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

func TestArithmetic(t *testing.T) {
	in := lisp.New()
	assert.Equal(t, []string{"3"}, evalForms(t, in, "(+ 1 2)"))
	assert.Equal(t, []string{"2"}, evalForms(t, in, "(- 5 3)"))
	assert.Equal(t, []string{"6"}, evalForms(t, in, "(* 2 3)"))
	assert.Equal(t, []string{"3"}, evalForms(t, in, "(/ 6 2)"))
	assert.Equal(t, []string{"T"}, evalForms(t, in, "(= 1 1)"))
	assert.Equal(t, []string{"NIL"}, evalForms(t, in, "(< 2 1)"))
}

func TestFactorial(t *testing.T) {
	in := lisp.New()
	got := evalForms(t, in, `
		(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))
		(fact 5)`)
	assert.Equal(t, []string{"FACT", "120"}, got)
}

func TestDottedListLiteralUppercases(t *testing.T) {
	in := lisp.New()
	assert.Equal(t, []string{"(A B . C)"}, evalForms(t, in, "'(a b . c)"))
}

func TestVariadicClosureParams(t *testing.T) {
	in := lisp.New()
	assert.Equal(t, []string{"(2 3)"}, evalForms(t, in, "((lambda (x . xs) xs) 1 2 3)"))
}

func TestLexicalScopeUpdateInPlace(t *testing.T) {
	in := lisp.New()
	got := evalForms(t, in, `
		(define x 1)
		(define f (lambda () x))
		(define x 2)
		(f)`)
	assert.Equal(t, []string{"X", "F", "X", "2"}, got)
}

func TestLexicalScopeSiblingEnvsAreIndependent(t *testing.T) {
	in := lisp.New()
	got := evalForms(t, in, `
		(define (make-adder n) (lambda (x) (+ x n)))
		(define add1 (make-adder 1))
		(define add5 (make-adder 5))
		(add1 10)
		(add5 10)`)
	assert.Equal(t, []string{"MAKE-ADDER", "ADD1", "ADD5", "11", "15"}, got)
}

func TestDefmacro(t *testing.T) {
	in := lisp.New()
	got := evalForms(t, in, `
		(define (list . args) args)
		(define (last lst) (if (pair? (cdr lst)) (last (cdr lst)) (car lst)))
		(define (begin . forms) (last forms))
		(defmacro (when2 c . body) (list 'if c (cons 'begin body) nil))
		(when2 t 42)`)
	assert.Equal(t, []string{"LIST", "LAST", "BEGIN", "WHEN2", "42"}, got)
}

func TestEqIdentity(t *testing.T) {
	in := lisp.New()
	got := evalForms(t, in, `
		(eq? 'foo 'foo)
		(eq? '(1) '(1))
		(eq? 1 1)`)
	assert.Equal(t, []string{"T", "NIL", "T"}, got)
}

func TestQuoteYieldsUnevaluated(t *testing.T) {
	in := lisp.New()
	got := evalForms(t, in, "(quote (+ 1 2))")
	assert.Equal(t, []string{"(+ 1 2)"}, got)
}

func TestApplySpecialForm(t *testing.T) {
	in := lisp.New()
	got := evalForms(t, in, `
		(define (list . args) args)
		(apply + (list 1 2))`)
	assert.Equal(t, []string{"LIST", "3"}, got)
}

func TestUnboundSymbolError(t *testing.T) {
	in := lisp.New()
	p := reader.New(in, "undefined-name")
	v, err, eof := p.ReadExpr()
	require.False(t, eof)
	require.Nil(t, err)
	_, evalErr := lisp.Eval(in, v, in.Root)
	require.NotNil(t, evalErr)
	assert.Equal(t, lisp.KindUnbound, evalErr.Kind)
}

func TestArityErrors(t *testing.T) {
	in := lisp.New()
	for _, src := range []string{"(+ 1)", "(+ 1 2 3)", "(if 1 2)", "(quote 1 2)"} {
		p := reader.New(in, src)
		v, rerr, eof := p.ReadExpr()
		require.False(t, eof)
		require.Nil(t, rerr)
		_, evalErr := lisp.Eval(in, v, in.Root)
		require.NotNil(t, evalErr, "expected an error evaluating %q", src)
		assert.Equal(t, lisp.KindArgs, evalErr.Kind, "source: %q", src)
	}
}

func TestCarCdrOnNonPair(t *testing.T) {
	in := lisp.New()
	assert.Equal(t, []string{"NIL"}, evalForms(t, in, "(car nil)"))
	assert.Equal(t, []string{"NIL"}, evalForms(t, in, "(cdr nil)"))

	p := reader.New(in, "(car 1)")
	v, rerr, _ := p.ReadExpr()
	require.Nil(t, rerr)
	_, evalErr := lisp.Eval(in, v, in.Root)
	require.NotNil(t, evalErr)
	assert.Equal(t, lisp.KindType, evalErr.Kind)
}

func TestTailCallDoesNotOverflowForDeepRecursion(t *testing.T) {
	in := lisp.New()
	got := evalForms(t, in, `
		(define (count-down n)
			(if (= n 0) 'done (count-down (- n 1))))
		(count-down 200000)`)
	assert.Equal(t, []string{"COUNT-DOWN", "DONE"}, got)
}

func TestGCReclaimsUnreachableAllocations(t *testing.T) {
	in := lisp.New()
	evalForms(t, in, `(define kept (cons 1 2))`)
	in.Collect(lisp.Nil, in.Root, nil)
	reachable := in.Heap.Stats().Live

	evalForms(t, in, `(cons 99 (cons 98 nil))`) // garbage: result discarded, nothing binds it
	in.Collect(lisp.Nil, in.Root, nil)
	afterGarbage := in.Heap.Stats().Live

	assert.Equal(t, reachable, afterGarbage,
		"a collection should reclaim cons cells unreachable from any live binding")
	assert.Equal(t, []string{"(1 . 2)"}, evalForms(t, in, "kept"))
}

func TestGCKeepsValueReachableFromLiveBinding(t *testing.T) {
	in := lisp.New()
	evalForms(t, in, `(define kept (cons 1 (cons 2 nil)))`)
	in.Collect(lisp.Nil, in.Root, nil)
	assert.Equal(t, []string{"(1 2)"}, evalForms(t, in, "kept"))
}
