package lisp

import (
	"io"
	"os"
)

// DefaultGCThreshold is the number of evaluator-loop iterations between
// automatic collections.
const DefaultGCThreshold = 10000

// Interp is the explicit interpreter context threaded through every
// operation: the pair heap, the symbol table, and the root environment.
// Nothing here is package-level state; every operation takes an *Interp
// explicitly so multiple independent interpreters can coexist.
type Interp struct {
	Heap    *Heap
	Symbols *SymbolTable
	Root    Value // the root environment, (NIL . bindings)

	Stderr io.Writer

	gcThreshold    int
	gcCounter      int
	gcCycles       int
	symbolTableCap int
}

// Config configures an Interp during construction using the functional-
// options pattern.
type Config func(*Interp)

// WithGCThreshold overrides DefaultGCThreshold.
func WithGCThreshold(n int) Config {
	return func(in *Interp) { in.gcThreshold = n }
}

// WithStderr sets Interp.Stderr; the default is os.Stderr. Nothing in this
// package writes to it.
func WithStderr(w io.Writer) Config {
	return func(in *Interp) { in.Stderr = w }
}

// WithSymbolTableCap pre-sizes the symbol table's lookup cache for
// programs known to intern a large number of distinct names, avoiding
// incremental map growth during startup.
func WithSymbolTableCap(n int) Config {
	return func(in *Interp) { in.symbolTableCap = n }
}

// New returns a fresh Interp with an empty heap, an empty symbol table, and
// a root environment populated with the default builtins and the truth
// symbol T bound to itself.
func New(opts ...Config) *Interp {
	heap := NewHeap()
	in := &Interp{
		Heap:        heap,
		Stderr:      os.Stderr,
		gcThreshold: DefaultGCThreshold,
	}
	for _, opt := range opts {
		opt(in)
	}
	in.Symbols = NewSymbolTableCap(heap, in.symbolTableCap)
	in.Root = NewEnv(in, Nil)
	installBuiltins(in, in.Root)
	t := in.Symbols.Intern("T")
	EnvPut(in, in.Root, t, t)
	return in
}

// Intern interns name in in's symbol table.
func (in *Interp) Intern(name string) Value {
	return in.Symbols.Intern(name)
}

// True returns the canonical truth value: the symbol T, bound to itself in
// the root environment. Only Nil is false; everything else, including
// this value, is true.
func (in *Interp) True() Value {
	return in.Symbols.Intern("T")
}

// Bool maps a Go bool onto the truth convention: True() for true, Nil for
// false.
func (in *Interp) Bool(b bool) Value {
	if b {
		return in.True()
	}
	return Nil
}

// Collect runs one mark-sweep cycle rooted at expr, env, the evaluator's
// frame stack, and the symbol table. It resets the automatic-collection
// counter.
func (in *Interp) Collect(expr, env Value, st stack) Stats {
	mark(expr)
	mark(env)
	st.markRoots()
	mark(in.Symbols.Table)
	in.Heap.sweep()
	in.gcCounter = 0
	in.gcCycles++
	return in.Heap.Stats()
}

// GCCycles reports how many collections have run, for tests.
func (in *Interp) GCCycles() int {
	return in.gcCycles
}

// tick advances the automatic-collection counter by one evaluator-loop
// iteration and reports whether a collection is due. The evaluator only
// calls this at a point where expr, env, and the frame stack are all
// pinned and can be passed straight to Collect.
func (in *Interp) tick() bool {
	in.gcCounter++
	if in.gcCounter >= in.gcThreshold {
		return true
	}
	return false
}
