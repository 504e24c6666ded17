package tscheme

// Constructors.  Each one that receives cell references protects them
// for the duration of its own allocation, so a collection triggered
// by the free-list pop cannot reclaim a value that is about to be
// stored.  Callers only need to root values they hold across *other*
// allocations.

func (it *Interp) mkPair(car, cdr Value) Value {
	mark := it.protect2(&car, &cdr)
	v := it.newCell(tPair)
	it.releaseTo(mark)
	c := it.cell(v)
	c.car = car
	c.cdr = cdr
	return v
}

// mkString copies data into a fresh buffer owned by the cell.  The
// buffer lives outside the cell heap and is dropped by the sweep
// finalizer.
func (it *Interp) mkString(data []byte) Value {
	owned := make([]byte, len(data))
	copy(owned, data)
	v := it.newCell(tString)
	it.cell(v).str = owned
	return v
}

func (it *Interp) mkCharacter(code int) Value {
	v := it.newCell(tCharacter)
	it.cell(v).n = code
	return v
}

func (it *Interp) newSym(pname, value Value) Value {
	mark := it.protect2(&pname, &value)
	v := it.newCell(tSymbol)
	it.releaseTo(mark)
	c := it.cell(v)
	c.car = pname
	c.cdr = value
	return v
}

// mkSymbol interns name: at most one symbol cell exists per distinct
// print name.  The bucket is found by folding the bytes of the name
// with hash := ((hash*17) XOR byte) mod dim.
func (it *Interp) mkSymbol(name string) Value {
	hash := 0
	for i := 0; i < len(name); i++ {
		hash = ((hash * 17) ^ int(name[i])) % len(it.obarray)
	}
	for l := it.obarray[hash]; !isNull(l); l = it.cdr(l) {
		if string(it.strData(it.symPname(it.car(l)))) == name {
			return it.car(l)
		}
	}
	x := it.newSym(it.mkString([]byte(name)), it.unboundValue)
	it.obarray[hash] = it.mkPair(x, it.obarray[hash])
	return x
}

// mkSubr builds a primitive of the given arity, interns its name and
// installs the primitive in the symbol's value slot.  fn keeps the
// uniform raw-function shape asserted at the call sites in the
// evaluator.
func (it *Interp) mkSubr(name string, fn any, nargs int) Value {
	var t cellType
	switch nargs {
	case 0:
		t = tSubr0
	case 1:
		t = tSubr1
	case 2:
		t = tSubr2
	case 3:
		t = tSubr3
	default:
		t = tSubrN
	}
	sym := it.mkSymbol(name)
	v := it.newCell(t)
	c := it.cell(v)
	c.car = sym
	c.fn = fn
	it.setSymValue(sym, v)
	return v
}

func (it *Interp) mkFsubr(name string, fn any) Value {
	sym := it.mkSymbol(name)
	v := it.newCell(tFsubr)
	c := it.cell(v)
	c.car = sym
	c.fn = fn
	it.setSymValue(sym, v)
	return v
}

func (it *Interp) mkClosure(params, code, env Value) Value {
	mark := it.protect1(&env)
	pc := it.mkPair(params, code)
	it.protect1(&pc)
	v := it.newCell(tClosure)
	it.releaseTo(mark)
	c := it.cell(v)
	c.car = env
	c.cdr = pc
	return v
}

func (it *Interp) mkEnv(env Value) Value {
	mark := it.protect1(&env)
	v := it.newCell(tEnv)
	it.releaseTo(mark)
	it.cell(v).car = env
	return v
}

func (it *Interp) mkPortCell(p *Port) Value {
	v := it.newCell(tPort)
	it.cell(v).port = p
	return v
}
