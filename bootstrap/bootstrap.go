// Package bootstrap loads the user-level prelude spec.md §4.3 and §6
// assign to library code rather than the core evaluator: variadic
// `+ - * /` rebound over the 2-ary primitives, and the quasiquote/
// unquote/unquote-splicing macro. Grounded on the teacher's
// lisplib.LoadLibrary concept (a library loaded into a fresh environment
// before user code runs), collapsed from a package tree to a single
// embedded source file since golisp's bootstrap surface is a handful of
// definitions, not a standard library.
package bootstrap

import (
	_ "embed"

	"github.com/steshaw/golisp/lisp"
	"github.com/steshaw/golisp/reader"
)

//go:embed prelude.lisp
var preludeSource string

// Load evaluates the embedded prelude against in's root environment.
func Load(in *lisp.Interp) *lisp.Error {
	return LoadString(in, preludeSource)
}

// LoadString evaluates every top-level form in source against in's root
// environment in order, stopping at the first error. The `run` subcommand
// in cmd loads its files through this same entry point.
func LoadString(in *lisp.Interp, source string) *lisp.Error {
	p := reader.New(in, source)
	for {
		v, err, eof := p.ReadExpr()
		if eof {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := lisp.Eval(in, v, in.Root); err != nil {
			return err
		}
	}
}
