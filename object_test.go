package tscheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolInterning(t *testing.T) {
	it := newTestInterp(t, 1000)

	a := it.mkSymbol("HELLO")
	b := it.mkSymbol("HELLO")
	assert.Equal(t, a, b, "same print name must intern to the same cell")

	c := it.mkSymbol("WORLD")
	assert.NotEqual(t, a, c)

	assert.Equal(t, "HELLO", it.symName(a))
	assert.Equal(t, it.unboundValue, it.symValue(c))
}

func TestSymbolInterningSurvivesGC(t *testing.T) {
	it := newTestInterp(t, 1000)
	a := it.mkSymbol("SURVIVOR")
	it.gc()
	assert.Equal(t, a, it.mkSymbol("SURVIVOR"))
	assert.Equal(t, tSymbol, it.typeOf(a))
}

func TestObarrayOneCellPerName(t *testing.T) {
	it := newTestInterp(t, 2000)
	for i := 0; i < 3; i++ {
		it.mkSymbol("REPEATED-NAME")
	}
	count := 0
	for _, bucket := range it.obarray {
		for l := bucket; !isNull(l); l = it.cdr(l) {
			if it.symName(it.car(l)) == "REPEATED-NAME" {
				count++
			}
		}
	}
	assert.Equal(t, 1, count)
}

func TestMkPair(t *testing.T) {
	it := newTestInterp(t, 1000)
	p := it.mkPair(mkFixnum(1), mkFixnum(2))
	require.True(t, it.isPair(p))
	assert.Equal(t, mkFixnum(1), it.car(p))
	assert.Equal(t, mkFixnum(2), it.cdr(p))
}

func TestMkStringOwnsItsBuffer(t *testing.T) {
	it := newTestInterp(t, 1000)
	src := []byte("abc")
	s := it.mkString(src)
	src[0] = 'z'
	assert.Equal(t, "abc", string(it.strData(s)))
}

func TestMkSubrBindsSymbol(t *testing.T) {
	it := newTestInterp(t, 1000)
	subr := it.symValue(it.mkSymbol("CONS"))
	require.Equal(t, tSubr2, it.typeOf(subr))
	assert.Equal(t, "CONS", it.subrSname(subr))
}

func TestMkClosureLayout(t *testing.T) {
	it := newTestInterp(t, 1000)
	params := it.mkPair(it.mkSymbol("X"), theNull)
	body := it.mkPair(it.mkSymbol("X"), theNull)
	cl := it.mkClosure(params, body, theNull)
	require.True(t, it.isClosure(cl))
	assert.Equal(t, params, it.car(it.closureCode(cl)))
	assert.Equal(t, body, it.cdr(it.closureCode(cl)))
	assert.Equal(t, theNull, it.closureEnv(cl))
}

func TestUnboundSentinelRefersToItself(t *testing.T) {
	it := newTestInterp(t, 1000)
	assert.Equal(t, it.unboundValue, it.symValue(it.unboundValue))
}
