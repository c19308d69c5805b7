package lisp

// Builtin is a reference to a native function: it receives its already-
// evaluated argument list and produces a result or an error. Arity checks
// reject wrong counts with Args; type checks reject wrong tags with Type.
type Builtin struct {
	Name string
	Fn   func(in *Interp, args Value) (Value, *Error)
}

// listArgs validates that args is a proper list of exactly n elements and
// returns them positionally. Builtins use it so every arity mismatch
// reports the same Args error uniformly.
func listArgs(name string, args Value, n int) ([]Value, *Error) {
	vals := make([]Value, 0, n)
	cur := args
	for i := 0; i < n; i++ {
		if !cur.IsPair() {
			return nil, argsErrorf("%s: expected %d argument(s)", name, n)
		}
		vals = append(vals, cur.Pair.Head)
		cur = cur.Pair.Tail
	}
	if !cur.IsNil() {
		return nil, argsErrorf("%s: expected %d argument(s)", name, n)
	}
	return vals, nil
}

func asInteger(name string, v Value) (int64, *Error) {
	if v.Tag != TagInteger {
		return 0, typeErrorf("%s: expected Integer, got %s", name, v.Tag)
	}
	return v.Int, nil
}

// builtinCar and builtinCdr share one non-Pair policy: Nil yields Nil,
// every other non-Pair tag is a Type error. This resolves the unreachable-
// branch ambiguity by picking a single uniform rule instead of leaving car
// and cdr free to diverge from each other.
func builtinCar(in *Interp, args Value) (Value, *Error) {
	vs, err := listArgs("car", args, 1)
	if err != nil {
		return Nil, err
	}
	v := vs[0]
	switch {
	case v.IsNil():
		return Nil, nil
	case v.IsPair():
		return v.Pair.Head, nil
	default:
		return Nil, typeErrorf("car: expected Pair or Nil, got %s", v.Tag)
	}
}

func builtinCdr(in *Interp, args Value) (Value, *Error) {
	vs, err := listArgs("cdr", args, 1)
	if err != nil {
		return Nil, err
	}
	v := vs[0]
	switch {
	case v.IsNil():
		return Nil, nil
	case v.IsPair():
		return v.Pair.Tail, nil
	default:
		return Nil, typeErrorf("cdr: expected Pair or Nil, got %s", v.Tag)
	}
}

func builtinCons(in *Interp, args Value) (Value, *Error) {
	vs, err := listArgs("cons", args, 2)
	if err != nil {
		return Nil, err
	}
	return in.Heap.Cons(vs[0], vs[1]), nil
}

func builtinPairP(in *Interp, args Value) (Value, *Error) {
	vs, err := listArgs("pair?", args, 1)
	if err != nil {
		return Nil, err
	}
	return in.Bool(vs[0].IsPair()), nil
}

func builtinEqP(in *Interp, args Value) (Value, *Error) {
	vs, err := listArgs("eq?", args, 2)
	if err != nil {
		return Nil, err
	}
	return in.Bool(Eq(vs[0], vs[1])), nil
}

func arithBuiltin(name string, fn func(a, b int64) (int64, *Error)) func(*Interp, Value) (Value, *Error) {
	return func(in *Interp, args Value) (Value, *Error) {
		vs, err := listArgs(name, args, 2)
		if err != nil {
			return Nil, err
		}
		a, err := asInteger(name, vs[0])
		if err != nil {
			return Nil, err
		}
		b, err := asInteger(name, vs[1])
		if err != nil {
			return Nil, err
		}
		r, err := fn(a, b)
		if err != nil {
			return Nil, err
		}
		return Integer(r), nil
	}
}

func compareBuiltin(name string, fn func(a, b int64) bool) func(*Interp, Value) (Value, *Error) {
	return func(in *Interp, args Value) (Value, *Error) {
		vs, err := listArgs(name, args, 2)
		if err != nil {
			return Nil, err
		}
		a, err := asInteger(name, vs[0])
		if err != nil {
			return Nil, err
		}
		b, err := asInteger(name, vs[1])
		if err != nil {
			return Nil, err
		}
		return in.Bool(fn(a, b)), nil
	}
}

// installBuiltins populates env with the root environment's builtin
// bindings. APPLY is not among them: it is dispatched as a special form
// (see eval.go) because its tail-call-replacing behavior needs evaluator
// support no ordinary Builtin has. It is still bound to itself here, the
// same way T is, so a bare reference to the name does not raise Unbound.
func installBuiltins(in *Interp, env Value) {
	builtins := []Builtin{
		{"CAR", builtinCar},
		{"CDR", builtinCdr},
		{"CONS", builtinCons},
		{"PAIR?", builtinPairP},
		{"EQ?", builtinEqP},
		{"+", arithBuiltin("+", func(a, b int64) (int64, *Error) { return a + b, nil })},
		{"-", arithBuiltin("-", func(a, b int64) (int64, *Error) { return a - b, nil })},
		{"*", arithBuiltin("*", func(a, b int64) (int64, *Error) { return a * b, nil })},
		{"/", arithBuiltin("/", func(a, b int64) (int64, *Error) {
			if b == 0 {
				return 0, typeErrorf("/: division by zero")
			}
			return a / b, nil
		})},
		{"=", compareBuiltin("=", func(a, b int64) bool { return a == b })},
		{"<", compareBuiltin("<", func(a, b int64) bool { return a < b })},
		{"<=", compareBuiltin("<=", func(a, b int64) bool { return a <= b })},
		{">", compareBuiltin(">", func(a, b int64) bool { return a > b })},
		{">=", compareBuiltin(">=", func(a, b int64) bool { return a >= b })},
	}

	for i := range builtins {
		b := &builtins[i]
		sym := in.Symbols.Intern(b.Name)
		EnvDefineLocal(in, env, sym, Value{Tag: TagBuiltin, Builtin: b})
	}

	apply := in.Symbols.Intern("APPLY")
	EnvDefineLocal(in, env, apply, apply)
}
