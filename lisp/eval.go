package lisp

// Eval is the trampolined evaluator. It holds four mutable values — expr,
// env, an explicit frame stack, and result — and loops until the stack is
// empty, never recursing through Go's own call stack to evaluate a
// subexpression. This is what lets a tail-recursive Lisp definition run
// to arbitrary depth without growing anything but the explicit stack (and
// the tail-call case does not even do that: it replaces the top frame
// instead of pushing another).
func Eval(in *Interp, expr0, env0 Value) (Value, *Error) {
	expr := expr0
	env := env0
	var st stack
	var result Value

	for {
		if in.tick() {
			in.Collect(expr, env, st)
		}

		var out stepOutcome
		var err *Error
		switch expr.Tag {
		case TagSymbol:
			result, err = EnvGet(in, env, expr)
			if err != nil {
				in.Collect(expr, env, st)
				return Nil, err
			}
			out = stepOutcome{result: result}
		case TagPair:
			out, err = evalList(in, expr, env, &st)
			if err != nil {
				in.Collect(expr, env, st)
				return Nil, err
			}
		default:
			// Integers, Builtins, Closures, and Macros encountered directly
			// (not through a Symbol lookup) evaluate to themselves.
			out = stepOutcome{result: expr}
		}

		if out.dive {
			expr, env = out.expr, out.env
			continue
		}
		result = out.result

		// Feed result up through the frame stack until either the stack is
		// empty (evaluation is finished) or a frame needs another
		// subexpression evaluated (dive again, from the top of this loop).
		for {
			if st.empty() {
				in.Collect(result, env0, st)
				return result, nil
			}
			out, err = stepFrame(in, &st, result)
			if err != nil {
				in.Collect(expr, env, st)
				return Nil, err
			}
			if out.dive {
				expr, env = out.expr, out.env
				break
			}
			result = out.result
		}
	}
}

// stepOutcome is what both evalList and stepFrame produce: either "dive
// into this new (expr, env)" (dive=true) or "here is a result, feed it to
// whatever comes next" (dive=false).
type stepOutcome struct {
	dive   bool
	expr   Value
	env    Value
	result Value
}

func dive(expr, env Value) stepOutcome { return stepOutcome{dive: true, expr: expr, env: env} }
func done(result Value) stepOutcome    { return stepOutcome{result: result} }

// evalList handles expr when it is a Pair: special-form dispatch, or
// pushing a call frame and evaluating the operator first.
func evalList(in *Interp, expr, env Value, st *stack) (stepOutcome, *Error) {
	headv := expr.Pair.Head
	argsForm := expr.Pair.Tail

	if headv.Tag == TagSymbol {
		switch headv.Sym.Name {
		case "QUOTE":
			vs, err := listArgs("quote", argsForm, 1)
			if err != nil {
				return stepOutcome{}, err
			}
			return done(vs[0]), nil

		case "IF":
			vs, err := listArgs("if", argsForm, 3)
			if err != nil {
				return stepOutcome{}, err
			}
			st.push(frame{kind: frameIf, env: env, thenExpr: vs[1], elseExpr: vs[2]})
			return dive(vs[0], env), nil

		case "LAMBDA":
			if !argsForm.IsPair() {
				return stepOutcome{}, argsErrorf("lambda: missing parameter list")
			}
			params := argsForm.Pair.Head
			body := argsForm.Pair.Tail
			if body.IsNil() {
				return stepOutcome{}, argsErrorf("lambda: at least one body form required")
			}
			return done(newClosure(in, env, params, body)), nil

		case "DEFINE":
			if !argsForm.IsPair() {
				return stepOutcome{}, argsErrorf("define: missing target")
			}
			target := argsForm.Pair.Head
			switch {
			case target.Tag == TagSymbol:
				rest := argsForm.Pair.Tail
				if !rest.IsPair() || !rest.Pair.Tail.IsNil() {
					return stepOutcome{}, argsErrorf("define: expected (define sym expr)")
				}
				st.push(frame{kind: frameDefine, env: env, sym: target})
				return dive(rest.Pair.Head, env), nil
			case target.IsPair():
				name := target.Pair.Head
				if name.Tag != TagSymbol {
					return stepOutcome{}, typeErrorf("define: function name must be a Symbol")
				}
				params := target.Pair.Tail
				body := argsForm.Pair.Tail
				if body.IsNil() {
					return stepOutcome{}, argsErrorf("define: at least one body form required")
				}
				lambdaForm := in.Heap.Cons(in.Symbols.Intern("LAMBDA"), in.Heap.Cons(params, body))
				st.push(frame{kind: frameDefine, env: env, sym: name})
				return dive(lambdaForm, env), nil
			default:
				return stepOutcome{}, typeErrorf("define: invalid target")
			}

		case "DEFMACRO":
			if !argsForm.IsPair() {
				return stepOutcome{}, argsErrorf("defmacro: missing target")
			}
			target := argsForm.Pair.Head
			if target.Tag != TagPair {
				return stepOutcome{}, typeErrorf("defmacro: expected (name params...)")
			}
			name := target.Pair.Head
			if name.Tag != TagSymbol {
				return stepOutcome{}, typeErrorf("defmacro: macro name must be a Symbol")
			}
			params := target.Pair.Tail
			body := argsForm.Pair.Tail
			if body.IsNil() {
				return stepOutcome{}, argsErrorf("defmacro: at least one body form required")
			}
			macroVal := newMacro(in, env, params, body)
			EnvPut(in, env, name, macroVal)
			return done(name), nil

		case "APPLY":
			vs, err := listArgs("apply", argsForm, 2)
			if err != nil {
				return stepOutcome{}, err
			}
			st.push(frame{kind: frameApplyFn, env: env, pendingArgs: vs[1]})
			return dive(vs[0], env), nil

		case "GC":
			if _, err := listArgs("gc", argsForm, 0); err != nil {
				return stepOutcome{}, err
			}
			in.Collect(expr, env, *st)
			return done(in.True()), nil
		}
	}

	// Ordinary call: evaluate the operator first, then left-to-right
	// arguments, then apply.
	st.push(frame{kind: frameCall, env: env, pendingArgs: argsForm, revArgs: Nil})
	return dive(headv, env), nil
}

// stepFrame resumes the frame on top of st now that its pending
// subexpression has produced result.
func stepFrame(in *Interp, st *stack, result Value) (stepOutcome, *Error) {
	top := st.top()
	switch top.kind {
	case frameIf:
		thenExpr, elseExpr, env := top.thenExpr, top.elseExpr, top.env
		st.pop()
		if result.IsTruthy() {
			return dive(thenExpr, env), nil
		}
		return dive(elseExpr, env), nil

	case frameDefine:
		sym, env := top.sym, top.env
		st.pop()
		EnvPut(in, env, sym, result)
		return done(sym), nil

	case frameApplyFn:
		top.applyFn = result
		top.kind = frameApplyArgs
		return dive(top.pendingArgs, top.env), nil

	case frameApplyArgs:
		callee, callerEnv := top.applyFn, top.env
		st.pop()
		if !isProperList(result) {
			return stepOutcome{}, typeErrorf("apply: second argument must be a proper list")
		}
		return completeCall(in, st, callee, result, callerEnv)

	case frameCall:
		if !top.opResolved {
			top.op = result
			top.opResolved = true

			if top.op.Tag == TagMacro {
				macro, rawArgs, callerEnv := top.op, top.pendingArgs, top.env
				st.pop()
				return enterMacro(in, st, macro, rawArgs, callerEnv)
			}
			if !top.op.IsCallable() {
				return stepOutcome{}, typeErrorf("cannot call non-callable value of type %s", top.op.Tag)
			}
			if top.pendingArgs.IsNil() {
				callee, callerEnv := top.op, top.env
				st.pop()
				return completeCall(in, st, callee, Nil, callerEnv)
			}
			return dive(top.pendingArgs.Pair.Head, top.env), nil
		}

		// Resuming after evaluating one argument: accumulate it and move on
		// to the next, or perform the call once none remain.
		top.revArgs = in.Heap.Cons(result, top.revArgs)
		top.pendingArgs = top.pendingArgs.Pair.Tail
		if !top.pendingArgs.IsNil() {
			return dive(top.pendingArgs.Pair.Head, top.env), nil
		}
		argsList := reverseList(in, top.revArgs)
		callee, callerEnv := top.op, top.env
		st.pop()
		return completeCall(in, st, callee, argsList, callerEnv)

	case frameBody:
		// One non-tail body form just ran for effect; its value is
		// discarded. Move on to what remains.
		remaining, bodyEnv, isMacro, callerEnv := top.pending.Pair.Tail, top.bodyEnv, top.isMacro, top.callerEnv
		st.pop()
		return enterBody(st, remaining, bodyEnv, isMacro, callerEnv), nil

	case frameMacroResult:
		callerEnv := top.callerEnv
		st.pop()
		return dive(result, callerEnv), nil
	}

	panic("lisp: unreachable frame kind")
}

// completeCall dispatches a fully-resolved callee against an already
// -evaluated argsList. callerEnv is only used if callee is a Macro (the
// environment its expansion is re-evaluated in).
func completeCall(in *Interp, st *stack, callee, argsList, callerEnv Value) (stepOutcome, *Error) {
	if callee.Tag == TagMacro {
		return enterMacro(in, st, callee, argsList, callerEnv)
	}
	if !callee.IsCallable() {
		return stepOutcome{}, typeErrorf("cannot call non-callable value of type %s", callee.Tag)
	}
	if callee.Tag == TagBuiltin {
		r, err := callee.Builtin.Fn(in, argsList)
		if err != nil {
			return stepOutcome{}, err
		}
		return done(r), nil
	}

	// Closure.
	callEnv := NewEnv(in, closureEnv(callee))
	if err := bindParams(in, callEnv, closureParams(callee), argsList); err != nil {
		return stepOutcome{}, err
	}
	body := closureBody(callee)
	if body.IsNil() {
		return done(Nil), nil
	}
	return enterBody(st, body, callEnv, false, Nil), nil
}

// enterMacro binds rawArgs (unevaluated) against macro's parameters and
// begins executing its body; the body's final value is re-entered as a
// new expr in callerEnv once the body completes.
func enterMacro(in *Interp, st *stack, macro, rawArgs, callerEnv Value) (stepOutcome, *Error) {
	callEnv := NewEnv(in, closureEnv(macro))
	if err := bindParams(in, callEnv, closureParams(macro), rawArgs); err != nil {
		return stepOutcome{}, err
	}
	body := closureBody(macro)
	if body.IsNil() {
		return dive(Nil, callerEnv), nil
	}
	return enterBody(st, body, callEnv, true, callerEnv), nil
}

// enterBody begins (or continues) executing a closure/macro body, a
// sequence of forms evaluated left to right where only the last sits in
// tail position. For an ordinary closure, reaching the last form pops the
// call's frame entirely and dives straight into it — the trampoline's tail
// call. For a macro, the last form still runs in callEnv, but its result
// is a new expression that must be re-evaluated in callerEnv, so a
// frameMacroResult is pushed to carry out that extra hop.
func enterBody(st *stack, bodyForms, bodyEnv Value, isMacro bool, callerEnv Value) stepOutcome {
	if bodyForms.Pair.Tail.IsNil() {
		if isMacro {
			st.push(frame{kind: frameMacroResult, callerEnv: callerEnv})
		}
		return dive(bodyForms.Pair.Head, bodyEnv)
	}
	st.push(frame{kind: frameBody, pending: bodyForms, bodyEnv: bodyEnv, isMacro: isMacro, callerEnv: callerEnv})
	return dive(bodyForms.Pair.Head, bodyEnv)
}

// bindParams implements the three parameter-list shapes: a bare symbol
// binds the whole argument list; a proper list of symbols binds
// positionally; an improper list ending in a rest symbol binds the
// leading positionals and then the rest symbol to whatever remains.
func bindParams(in *Interp, env, params, args Value) *Error {
	for {
		switch {
		case params.Tag == TagSymbol:
			EnvDefineLocal(in, env, params, args)
			return nil
		case params.IsNil():
			if !args.IsNil() {
				return argsErrorf("too many arguments")
			}
			return nil
		case params.IsPair():
			head := params.Pair.Head
			if head.Tag != TagSymbol {
				return typeErrorf("parameter name must be a Symbol, got %s", head.Tag)
			}
			if !args.IsPair() {
				return argsErrorf("too few arguments")
			}
			EnvDefineLocal(in, env, head, args.Pair.Head)
			params = params.Pair.Tail
			args = args.Pair.Tail
		default:
			return typeErrorf("invalid parameter list")
		}
	}
}

// reverseList builds a fresh proper list holding v's elements in reverse
// order. Used to turn the reverse-order accumulator of evaluated call
// arguments back into a normal-order argument list. Because it always
// allocates a new spine, the original source form's Pair chain is never
// destructively overwritten, which keeps it intact for GC marking and for
// any macro that inspects its own call site.
func reverseList(in *Interp, v Value) Value {
	result := Nil
	for cur := v; cur.IsPair(); cur = cur.Pair.Tail {
		result = in.Heap.Cons(cur.Pair.Head, result)
	}
	return result
}

// isProperList reports whether v is Nil or a chain of Pairs terminated by
// Nil.
func isProperList(v Value) bool {
	cur := v
	for cur.IsPair() {
		cur = cur.Pair.Tail
	}
	return cur.IsNil()
}
