package lisp

// Closures and Macros share one payload shape: a pair-backed triple (env,
// params, body) distinguished only by Value.Tag. These helpers centralize
// that aliasing behind named accessors so the rest of the evaluator never
// pokes at .Pair.Head/.Pair.Tail directly for a function value.

// newClosure allocates a Closure value capturing env, with the given
// params form and body expression list.
func newClosure(in *Interp, env, params, body Value) Value {
	return in.Heap.Closure(env, in.Heap.Cons(params, body))
}

// newMacro allocates a Macro value with the same shape as newClosure.
func newMacro(in *Interp, env, params, body Value) Value {
	return in.Heap.Macro(env, in.Heap.Cons(params, body))
}

func closureEnv(v Value) Value {
	return v.Pair.Head
}

func closureParams(v Value) Value {
	return v.Pair.Tail.Pair.Head
}

func closureBody(v Value) Value {
	return v.Pair.Tail.Pair.Tail
}
