package tscheme

import "fmt"

// evaluate is the direct-style recursive evaluator.  Special forms
// are recognized by identity on the operator symbol.  The final
// expression of a begin or body, the chosen branch of an if, cond or
// case, and a closure application all re-enter the dispatch with the
// current expression and environment reassigned, so they do not grow
// control state.  Argument evaluation and non-tail positions recurse.
func (it *Interp) evaluate(exp, env Value) Value {
	e, r := exp, env
	var op, args, tmp Value

	mark := it.protect(&e, &r, &op, &args, &tmp)
	defer it.releaseTo(mark)

	goto evalOne

evalBegin:
	if isNull(e) {
		return it.unspecifiedValue
	}
	for !isNull(it.cdr(e)) {
		it.evaluate(it.car(e), r)
		e = it.cdr(e)
	}
	e = it.car(e)

evalOne:
	it.checkInterrupt()
	switch it.typeOf(e) {
	case tFixnum, tBoolean, tCharacter, tNull, tString, tEOFValue:
		return e
	case tSymbol:
		return it.getSymval(r, e)
	case tPair:
	default:
		it.error0("invalid expression type.")
	}

	op, args = it.car(e), it.cdr(e)
	switch op {
	case it.symQuote:
		return it.car(args)

	case it.symBegin:
		e = args
		goto evalBegin

	case it.symLet:
		if it.isSymbol(it.first(args)) {
			fmt.Fprintf(it.stdoutWriter(), "sorry\n")
			return theNull
		}
		e = it.cdr(args)
		r = it.extendLetEnv(r, it.first(args))
		goto evalBegin

	case it.symLetStar:
		e = it.cdr(args)
		r = it.extendLetStarEnv(r, it.first(args))
		goto evalBegin

	case it.symLetrec:
		e = it.cdr(args)
		r = it.extendLetrecEnv(r, it.first(args))
		goto evalBegin

	case it.symIf:
		if it.evaluate(it.first(args), r) == booleanFalse {
			e = it.cddr(args)
			goto evalBegin
		}
		e = it.second(args)
		goto evalOne

	case it.symCond:
		for !isNull(args) {
			if it.caar(args) == it.symElse {
				e = it.cdar(args)
				goto evalBegin
			}
			tmp = it.evaluate(it.caar(args), r)
			if tmp != booleanFalse {
				e = it.cdar(args)
				if isNull(e) {
					return tmp
				}
				goto evalBegin
			}
			args = it.cdr(args)
			if !(it.isPair(args) || isNull(args)) {
				it.error0("cond: ill-formed expression")
			}
		}
		return it.unspecifiedValue

	case it.symCase:
		tmp = it.evaluate(it.first(args), r)
		args = it.cdr(args)
		for !isNull(args) {
			if it.caar(args) == it.symElse {
				e = it.cdar(args)
				goto evalBegin
			}
			if !it.isPair(it.caar(args)) {
				it.error0("case: ill-formed expression")
			}
			if it.memq(tmp, it.caar(args)) {
				e = it.cdar(args)
				goto evalBegin
			}
			args = it.cdr(args)
			if !(it.isPair(args) || isNull(args)) {
				it.error0("case: ill-formed expression")
			}
		}
		return it.unspecifiedValue

	case it.symAnd:
		tmp = booleanTrue
		for !isNull(args) {
			tmp = it.evaluate(it.first(args), r)
			if tmp == booleanFalse {
				return booleanFalse
			}
			args = it.cdr(args)
		}
		return tmp

	case it.symOr:
		for !isNull(args) {
			tmp = it.evaluate(it.first(args), r)
			if tmp != booleanFalse {
				return tmp
			}
			args = it.cdr(args)
		}
		return booleanFalse

	case it.symLambda:
		return it.mkClosure(it.car(args), it.cdr(args), r)

	case it.symSet:
		if !it.isSymbol(it.car(args)) {
			it.error0("set!: 1st arg is not a symbol.")
		}
		it.setSymval(r, it.car(args), it.evaluate(it.cadr(args), r), false)
		return it.unspecifiedValue

	case it.symDefine:
		switch it.typeOf(it.car(args)) {
		case tSymbol:
			it.setSymval(r, it.car(args), it.evaluate(it.cadr(args), r), true)
			return it.unspecifiedValue
		case tPair:
			closure := it.mkClosure(it.cdar(args), it.cdr(args), r)
			it.setSymval(r, it.caar(args), closure, true)
			return it.unspecifiedValue
		default:
			it.error0("define: wrong expression")
		}
	}

	op = it.evaluate(op, r)
	switch it.typeOf(op) {
	case tFsubr:
		return it.cell(op).fn.(func(*Interp, Value, Value) Value)(it, args, r)

	case tSubr0:
		it.checkNargs(it.subrSname(op), args, 0, 0)
		return it.cell(op).fn.(func(*Interp) Value)(it)

	case tSubr1:
		it.checkNargs(it.subrSname(op), args, 1, 1)
		return it.cell(op).fn.(func(*Interp, Value) Value)(it, it.evaluate(it.first(args), r))

	case tSubr2:
		it.checkNargs(it.subrSname(op), args, 2, 2)
		a := it.evaluate(it.first(args), r)
		m := it.protect1(&a)
		b := it.evaluate(it.second(args), r)
		it.releaseTo(m)
		return it.cell(op).fn.(func(*Interp, Value, Value) Value)(it, a, b)

	case tSubr3:
		it.checkNargs(it.subrSname(op), args, 3, 3)
		a := it.evaluate(it.first(args), r)
		m := it.protect1(&a)
		b := it.evaluate(it.second(args), r)
		it.protect1(&b)
		c := it.evaluate(it.third(args), r)
		it.releaseTo(m)
		return it.cell(op).fn.(func(*Interp, Value, Value, Value) Value)(it, a, b, c)

	case tSubrN:
		if !isNull(args) {
			if !it.isPair(args) {
				it.error0("invalid expression.")
			}
			args = it.evaluateList(args, r)
		}
		return it.cell(op).fn.(func(*Interp, Value) Value)(it, args)

	case tClosure:
		if !isNull(args) {
			if !it.isPair(args) {
				it.error0("invalid expression.")
			}
			args = it.evaluateList(args, r)
		}
		r = it.extendEnv(it.closureEnv(op), it.car(it.closureCode(op)), args)
		e = it.cdr(it.closureCode(op))
		goto evalBegin

	default:
		it.error0("unknown function type")
	}
	return it.unspecifiedValue
}

// evaluateList evaluates exps left to right into a fresh proper list.
func (it *Interp) evaluateList(exps, env Value) Value {
	if isNull(exps) {
		return theNull
	}
	result := it.mkPair(it.evaluate(it.car(exps), env), theNull)
	tail := result
	mark := it.protect3(&result, &exps, &env)
	defer it.releaseTo(mark)
	for {
		exps = it.cdr(exps)
		if isNull(exps) {
			return result
		}
		next := it.mkPair(it.evaluate(it.car(exps), env), theNull)
		it.setCdr(tail, next)
		tail = next
	}
}

// Environments are association lists: chains of pairs whose car is a
// (symbol . value) pair.  A bare-symbol parameter slot binds the
// remaining argument list in one go.

func (it *Interp) extendEnv(alist, vars, vals Value) Value {
	mark := it.protect3(&alist, &vars, &vals)
	defer it.releaseTo(mark)
	for !isNull(vars) {
		switch {
		case it.isSymbol(vars):
			return it.mkPair(it.mkPair(vars, vals), alist)
		case it.isPair(vars):
			alist = it.mkPair(it.mkPair(it.car(vars), it.car(vals)), alist)
			vars = it.cdr(vars)
			vals = it.cdr(vals)
		default:
			it.error0("extend_env: invalid arg.")
		}
	}
	return alist
}

// extendLetEnv evaluates every initializer in the outer environment.
// A binding without an initializer gets the unbound sentinel.
func (it *Interp) extendLetEnv(alist, letList Value) Value {
	org := alist
	mark := it.protect3(&alist, &org, &letList)
	defer it.releaseTo(mark)
	for !isNull(letList) {
		first := it.car(letList)
		val := it.unboundValue
		if !isNull(it.cdr(first)) {
			val = it.evaluate(it.cadr(first), org)
		}
		alist = it.mkPair(it.mkPair(it.car(first), val), alist)
		letList = it.cdr(letList)
	}
	return alist
}

// extendLetStarEnv is like extendLetEnv but each initializer sees the
// bindings made so far.
func (it *Interp) extendLetStarEnv(alist, letList Value) Value {
	mark := it.protect2(&alist, &letList)
	defer it.releaseTo(mark)
	for !isNull(letList) {
		first := it.car(letList)
		val := it.unboundValue
		if !isNull(it.cdr(first)) {
			val = it.evaluate(it.cadr(first), alist)
		}
		alist = it.mkPair(it.mkPair(it.car(first), val), alist)
		letList = it.cdr(letList)
	}
	return alist
}

// extendLetrecEnv pre-binds every variable to the unbound sentinel,
// then evaluates the initializers in the extended environment and
// patches the bindings in place, which is what makes mutual recursion
// work.
func (it *Interp) extendLetrecEnv(alist, letList Value) Value {
	mark := it.protect2(&alist, &letList)
	defer it.releaseTo(mark)
	for tmp := letList; !isNull(tmp); tmp = it.cdr(tmp) {
		alist = it.mkPair(it.mkPair(it.caar(tmp), it.unboundValue), alist)
	}
	for tmp := letList; !isNull(tmp); tmp = it.cdr(tmp) {
		first := it.car(tmp)
		it.setSymval(alist, it.first(first), it.evaluate(it.second(first), alist), false)
	}
	return alist
}

// getSymcell finds the innermost (symbol . value) pair for sym, or
// the empty list when the environment has no binding.
func (it *Interp) getSymcell(alist, sym Value) Value {
	for l := alist; !isNull(l); l = it.cdr(l) {
		if it.caar(l) == sym {
			return it.car(l)
		}
	}
	return theNull
}

// getSymval looks sym up in the environment, falling through to the
// symbol's own value slot.  Hitting the unbound sentinel either way
// is an error.
func (it *Interp) getSymval(alist, sym Value) Value {
	cell := it.getSymcell(alist, sym)
	if isNull(cell) {
		v := it.symValue(sym)
		if v == it.unboundValue {
			it.error1("ERROR: unbound variable %s.\n", it.symName(sym))
		}
		return v
	}
	if it.cdr(cell) == it.unboundValue {
		it.error1("ERROR: unbound variable %s.\n", it.symName(sym))
	}
	return it.cdr(cell)
}

// setSymval updates the innermost binding, or the symbol's value slot
// when no local binding exists.  Assigning an unbound global is only
// legal when definep is set.
func (it *Interp) setSymval(alist, sym, val Value, definep bool) Value {
	cell := it.getSymcell(alist, sym)
	if isNull(cell) {
		if it.symValue(sym) == it.unboundValue && !definep {
			it.error1("ERROR: unbound variable %s.\n", it.symName(sym))
		}
		it.setSymValue(sym, val)
		return val
	}
	it.setCdr(cell, val)
	return val
}

// memq is the identity membership test used by case clauses.
func (it *Interp) memq(key, list Value) bool {
	l := list
	for !isNull(l) {
		if !it.isPair(l) {
			it.wtaError("memq", 2)
		}
		if key == it.car(l) {
			return true
		}
		l = it.cdr(l)
	}
	return false
}
