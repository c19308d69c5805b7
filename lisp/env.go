package lisp

// Environments are represented directly as Values — (parent . bindings) —
// rather than as a separate Go struct. bindings is itself a proper list of
// (symbol . value) cells. Representing environments this way means the
// mark-sweep collector needs no special case for them: an environment
// Value is just a Pair chain and is walked by the same code that walks
// any other structure.

// NewEnv returns a fresh environment whose parent is parent (Nil for a root
// environment) and whose bindings list is empty.
func NewEnv(in *Interp, parent Value) Value {
	return in.Heap.Cons(parent, Nil)
}

// envParent returns the parent of env.
func envParent(env Value) Value {
	return env.Pair.Head
}

// envBindings returns the bindings list of env.
func envBindings(env Value) Value {
	return env.Pair.Tail
}

// setEnvBindings mutates env's bindings list in place.
func setEnvBindings(env Value, bindings Value) {
	env.Pair.Tail = bindings
}

// findBindingCell searches only env's own frame (not its ancestors) for a
// binding of sym and returns the (symbol . value) cell if found.
func findBindingCell(env, sym Value) (Value, bool) {
	node := envBindings(env)
	for !node.IsNil() {
		cell := node.Pair.Head
		if Eq(cell.Pair.Head, sym) {
			return cell, true
		}
		node = node.Pair.Tail
	}
	return Value{}, false
}

// EnvGet looks up sym starting at env and walking parent frames. It
// returns an Unbound error if sym is bound nowhere on the chain.
func EnvGet(in *Interp, env, sym Value) (Value, *Error) {
	for cur := env; !cur.IsNil(); cur = envParent(cur) {
		if cell, ok := findBindingCell(cur, sym); ok {
			return cell.Pair.Tail, nil
		}
	}
	return Nil, unboundErrorf("unbound symbol: %s", sym.Sym.Name)
}

// EnvPut updates the nearest enclosing binding for sym if one exists
// anywhere on the chain, mutating the binding cell in place (which is what
// gives closures their update-in-place lexical scoping), otherwise it
// creates a new binding in env itself. Callers distinguish "define in the
// current frame" from "set! the nearest binding" only by which env they
// pass in.
func EnvPut(in *Interp, env, sym, val Value) {
	for cur := env; !cur.IsNil(); cur = envParent(cur) {
		if cell, ok := findBindingCell(cur, sym); ok {
			cell.Pair.Tail = val
			return
		}
	}
	cell := in.Heap.Cons(sym, val)
	setEnvBindings(env, in.Heap.Cons(cell, envBindings(env)))
}

// EnvDefineLocal binds sym to val in env's own frame without searching
// ancestors, used when the evaluator already knows the binding is new
// (parameter binding for a fresh call frame).
func EnvDefineLocal(in *Interp, env, sym, val Value) {
	cell := in.Heap.Cons(sym, val)
	setEnvBindings(env, in.Heap.Cons(cell, envBindings(env)))
}

// EnvNames returns the symbols bound in env's own frame, used by the REPL's
// tab-completion.
func EnvNames(env Value) []string {
	var names []string
	node := envBindings(env)
	for !node.IsNil() {
		cell := node.Pair.Head
		names = append(names, cell.Pair.Head.Sym.Name)
		node = node.Pair.Tail
	}
	return names
}
