package tscheme

import "strconv"

// Built-in procedures.  Fixed-arity primitives receive their
// evaluated arguments directly; variadic ones receive the evaluated
// argument list; fsubrs receive the raw argument list and the calling
// environment.  The evaluator asserts these shapes at the call site.

func boolValue(b bool) Value {
	if b {
		return booleanTrue
	}
	return booleanFalse
}

func sEq(it *Interp, x, y Value) Value { return boolValue(x == y) }

func sNeq(it *Interp, x, y Value) Value { return boolValue(x != y) }

// Null and pairs

func sPairp(it *Interp, x Value) Value { return boolValue(it.isPair(x)) }

func sNullp(it *Interp, x Value) Value { return boolValue(isNull(x)) }

func sListp(it *Interp, x Value) Value {
	p := x
	if isNull(p) {
		return booleanTrue
	}
	for it.isPair(p) {
		p = it.cdr(p)
		if isNull(p) {
			return booleanTrue
		}
	}
	return booleanFalse
}

func sCar(it *Interp, pair Value) Value {
	if !it.isPair(pair) {
		it.wtaError("car", 1)
	}
	return it.car(pair)
}

func sCdr(it *Interp, pair Value) Value {
	if !it.isPair(pair) {
		it.wtaError("cdr", 1)
	}
	return it.cdr(pair)
}

func sSetcar(it *Interp, pair, x Value) Value {
	if !it.isPair(pair) {
		it.wtaError("set-car!", 1)
	}
	it.setCar(pair, x)
	return it.unspecifiedValue
}

func sSetcdr(it *Interp, pair, x Value) Value {
	if !it.isPair(pair) {
		it.wtaError("set-cdr!", 1)
	}
	it.setCdr(pair, x)
	return it.unspecifiedValue
}

func nList(it *Interp, xs Value) Value { return xs }

// sLength demands a pair, so the empty list is an error.  That quirk
// is observable and kept.
func sLength(it *Interp, list Value) Value {
	if !it.isPair(list) {
		it.wtaError("length", 1)
	}
	n := 0
	for x := list; it.isPair(x); x = it.cdr(x) {
		n++
	}
	return mkFixnum(int32(n))
}

// sMemq returns the sublist starting at the first identity match, or
// false.
func sMemq(it *Interp, key, list Value) Value {
	l := list
	for !isNull(l) {
		if !it.isPair(l) {
			it.wtaError("memq", 2)
		}
		if key == it.car(l) {
			return l
		}
		l = it.cdr(l)
	}
	return booleanFalse
}

func sLast(it *Interp, list Value) Value {
	p := list
	if !(it.isPair(p) || isNull(p)) {
		it.wtaError("last", 1)
	}
	if it.isPair(p) {
		for it.isPair(it.cdr(p)) {
			p = it.cdr(p)
		}
	}
	return p
}

func sRecAppend(it *Interp, xs, ys Value) Value {
	if !(it.isPair(xs) || isNull(xs)) {
		it.wtaError("rec-append", 1)
	}
	if isNull(xs) {
		return ys
	}
	mark := it.protect2(&xs, &ys)
	defer it.releaseTo(mark)
	rest := sRecAppend(it, it.cdr(xs), ys)
	return it.mkPair(it.car(xs), rest)
}

// Booleans

func sBooleanp(it *Interp, x Value) Value { return boolValue(it.isBoolean(x)) }

func sNot(it *Interp, x Value) Value { return boolValue(x == booleanFalse) }

// Characters

func sCharp(it *Interp, x Value) Value { return boolValue(it.isChar(x)) }

func (it *Interp) charPair(fname string, x, y Value) (int, int) {
	if !it.isChar(x) {
		it.wtaError(fname, 1)
	}
	if !it.isChar(y) {
		it.wtaError(fname, 2)
	}
	return it.character(x), it.character(y)
}

func sCharEqual(it *Interp, x, y Value) Value {
	a, b := it.charPair("char=?", x, y)
	return boolValue(a == b)
}

func sCharLessthan(it *Interp, x, y Value) Value {
	a, b := it.charPair("char<?", x, y)
	return boolValue(a < b)
}

func sCharLessequal(it *Interp, x, y Value) Value {
	a, b := it.charPair("char<=?", x, y)
	return boolValue(a <= b)
}

func sCharGreaterthan(it *Interp, x, y Value) Value {
	a, b := it.charPair("char>?", x, y)
	return boolValue(a > b)
}

func sCharGreaterequal(it *Interp, x, y Value) Value {
	a, b := it.charPair("char>=?", x, y)
	return boolValue(a >= b)
}

// Symbols

func sSymbolp(it *Interp, x Value) Value { return boolValue(it.isSymbol(x)) }

func sSymbolToString(it *Interp, symbol Value) Value {
	if !it.isSymbol(symbol) {
		it.wtaError("symbol->string", 1)
	}
	return it.symPname(symbol)
}

func sStringToSymbol(it *Interp, s Value) Value {
	if !it.isString(s) {
		it.wtaError("string->symbol", 1)
	}
	return it.mkSymbol(string(it.strData(s)))
}

// Strings

func sStringp(it *Interp, x Value) Value { return boolValue(it.isString(x)) }

func nStringAppend(it *Interp, strings Value) Value {
	var buf []byte
	nargs := 0
	for xs := strings; !isNull(xs); xs = it.cdr(xs) {
		nargs++
		if !it.isString(it.car(xs)) {
			it.wtaError("string-append", nargs)
		}
		buf = append(buf, it.strData(it.car(xs))...)
	}
	v := it.newCell(tString)
	it.cell(v).str = buf
	return v
}

// Fixnums

func sNumberp(it *Interp, x Value) Value { return boolValue(isFixnum(x)) }

func sZerop(it *Interp, x Value) Value {
	if !isFixnum(x) {
		it.wtaError("zero?", 1)
	}
	return boolValue(x == mkFixnum(0))
}

func (it *Interp) fixnumPair(fname string, x, y Value) (int32, int32) {
	if !isFixnum(x) {
		it.wtaError(fname, 1)
	}
	if !isFixnum(y) {
		it.wtaError(fname, 2)
	}
	return fixnum(x), fixnum(y)
}

func sPlus(it *Interp, x, y Value) Value {
	a, b := it.fixnumPair("+", x, y)
	return mkFixnum(a + b)
}

func sMinus(it *Interp, x, y Value) Value {
	a, b := it.fixnumPair("-", x, y)
	return mkFixnum(a - b)
}

func sTimes(it *Interp, x, y Value) Value {
	a, b := it.fixnumPair("*", x, y)
	return mkFixnum(a * b)
}

func sQuotient(it *Interp, x, y Value) Value {
	a, b := it.fixnumPair("/", x, y)
	if b == 0 {
		it.error0("ERROR: /: division by zero.\n")
	}
	return mkFixnum(a / b)
}

func sOneplus(it *Interp, x Value) Value {
	if !isFixnum(x) {
		it.wtaError("1+", 1)
	}
	return mkFixnum(fixnum(x) + 1)
}

func sMinusoneplus(it *Interp, x Value) Value {
	if !isFixnum(x) {
		it.wtaError("-1+", 1)
	}
	return mkFixnum(fixnum(x) - 1)
}

func sNumequal(it *Interp, x, y Value) Value {
	a, b := it.fixnumPair("=", x, y)
	return boolValue(a == b)
}

func sLessthan(it *Interp, x, y Value) Value {
	a, b := it.fixnumPair("<", x, y)
	return boolValue(a < b)
}

func sLessequal(it *Interp, x, y Value) Value {
	a, b := it.fixnumPair("<=", x, y)
	return boolValue(a <= b)
}

func sGreaterthan(it *Interp, x, y Value) Value {
	a, b := it.fixnumPair(">", x, y)
	return boolValue(a > b)
}

func sGreaterequal(it *Interp, x, y Value) Value {
	a, b := it.fixnumPair(">=", x, y)
	return boolValue(a >= b)
}

// sStringToNumber parses the longest leading decimal integer, like
// atoi: no digits means zero.
func sStringToNumber(it *Interp, s Value) Value {
	if !it.isString(s) {
		it.wtaError("string->number", 1)
	}
	return mkFixnum(atoi(it.strData(s)))
}

func atoi(s []byte) int32 {
	i, neg := 0, false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	var n int32
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int32(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

func sNumberToString(it *Interp, n Value) Value {
	if !isFixnum(n) {
		it.wtaError("number->string", 1)
	}
	return it.mkString([]byte(strconv.Itoa(int(fixnum(n)))))
}

// Closures

func sClosurep(it *Interp, x Value) Value { return boolValue(it.isClosure(x)) }

func sClosureBody(it *Interp, closure Value) Value {
	if !it.isClosure(closure) {
		it.wtaError("closure-body", 1)
	}
	return it.cdr(it.closureCode(closure))
}

func sClosureVars(it *Interp, closure Value) Value {
	if !it.isClosure(closure) {
		it.wtaError("closure-vars", 1)
	}
	return it.car(it.closureCode(closure))
}

func sClosureEnv(it *Interp, closure Value) Value {
	if !it.isClosure(closure) {
		it.wtaError("closure-env", 1)
	}
	return it.closureEnv(closure)
}

func sProcedurep(it *Interp, x Value) Value {
	return boolValue(it.isClosure(x) || it.isSubr(x) || it.isType(x, tFsubr))
}

// Environments

func sEnvironmentp(it *Interp, x Value) Value { return boolValue(it.isEnv(x)) }

// sTheEnvironment reifies the calling environment; it is an fsubr so
// the environment reaches it unevaluated and intact.
func sTheEnvironment(it *Interp, args, env Value) Value {
	return it.mkEnv(env)
}

func sListifyEnvironment(it *Interp, env Value) Value {
	if !it.isEnv(env) {
		it.wtaError("listify-environment", 1)
	}
	return it.car(env)
}

func (it *Interp) initSubrs() {
	// Any
	it.mkSubr("EQ?", sEq, 2)
	it.mkSubr("NEQ?", sNeq, 2)

	// Null & pairs
	it.mkSubr("PAIR?", sPairp, 1)
	it.mkSubr("NULL?", sNullp, 1)
	it.mkSubr("LIST?", sListp, 1)
	it.mkSubr("CONS", (*Interp).mkPair, 2)
	it.mkSubr("CAR", sCar, 1)
	it.mkSubr("CDR", sCdr, 1)
	it.mkSubr("SET-CAR!", sSetcar, 2)
	it.mkSubr("SET-CDR!", sSetcdr, 2)
	it.mkSubr("LIST", nList, -1)
	it.mkSubr("LENGTH", sLength, 1)
	it.mkSubr("MEMQ", sMemq, 2)
	it.mkSubr("LAST", sLast, 1)
	it.mkSubr("REC-APPEND", sRecAppend, 2)

	// Characters
	it.mkSubr("CHAR?", sCharp, 1)
	it.mkSubr("CHAR=?", sCharEqual, 2)
	it.mkSubr("CHAR<?", sCharLessthan, 2)
	it.mkSubr("CHAR<=?", sCharLessequal, 2)
	it.mkSubr("CHAR>?", sCharGreaterthan, 2)
	it.mkSubr("CHAR>=?", sCharGreaterequal, 2)

	// Booleans
	it.mkSubr("BOOLEAN?", sBooleanp, 1)
	it.mkSubr("NOT", sNot, 1)

	// Symbols
	it.mkSubr("SYMBOL?", sSymbolp, 1)
	it.mkSubr("SYMBOL->STRING", sSymbolToString, 1)
	it.mkSubr("STRING->SYMBOL", sStringToSymbol, 1)

	// Strings
	it.mkSubr("STRING?", sStringp, 1)
	it.mkSubr("STRING-APPEND", nStringAppend, -1)

	// Fixnums
	it.mkSubr("NUMBER?", sNumberp, 1)
	it.mkSubr("ZERO?", sZerop, 1)
	it.mkSubr("+", sPlus, 2)
	it.mkSubr("-", sMinus, 2)
	it.mkSubr("*", sTimes, 2)
	it.mkSubr("/", sQuotient, 2)
	it.mkSubr("1+", sOneplus, 1)
	it.mkSubr("-1+", sMinusoneplus, 1)
	it.mkSubr("=", sNumequal, 2)
	it.mkSubr("<", sLessthan, 2)
	it.mkSubr("<=", sLessequal, 2)
	it.mkSubr(">", sGreaterthan, 2)
	it.mkSubr(">=", sGreaterequal, 2)
	it.mkSubr("STRING->NUMBER", sStringToNumber, 1)
	it.mkSubr("NUMBER->STRING", sNumberToString, 1)

	// Closures
	it.mkSubr("CLOSURE?", sClosurep, 1)
	it.mkSubr("CLOSURE-BODY", sClosureBody, 1)
	it.mkSubr("CLOSURE-VARS", sClosureVars, 1)
	it.mkSubr("CLOSURE-ENV", sClosureEnv, 1)

	// Functions
	it.mkSubr("PROCEDURE?", sProcedurep, 1)

	// Environments
	it.mkSubr("ENVIRONMENT?", sEnvironmentp, 1)
	it.mkFsubr("THE-ENVIRONMENT", sTheEnvironment)
	it.mkSubr("LISTIFY-ENVIRONMENT", sListifyEnvironment, 1)

	// Special
	it.mkSubr("SYS:EVAL", (*Interp).evaluate, 2)
}
