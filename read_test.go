package tscheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFixnums(t *testing.T) {
	it := newTestInterp(t, 2000)

	tests := []struct {
		src string
		n   int32
	}{
		{src: "0", n: 0},
		{src: "42", n: 42},
		{src: "-7", n: -7},
		{src: "007", n: 7},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v := testRead(it, tt.src+" ")
			require.True(t, isFixnum(v))
			assert.Equal(t, tt.n, fixnum(v))
		})
	}
}

func TestReadSymbolCaseFolding(t *testing.T) {
	it := newTestInterp(t, 2000)

	a := testRead(it, "abc ")
	b := testRead(it, "ABC ")
	c := testRead(it, "aBc ")
	require.True(t, it.isSymbol(a))
	assert.Equal(t, a, b, "reader is case-insensitive for symbols")
	assert.Equal(t, a, c)
	assert.Equal(t, "ABC", it.symName(a))
}

func TestReadHashForms(t *testing.T) {
	it := newTestInterp(t, 2000)

	assert.Equal(t, booleanTrue, testRead(it, "#t "))
	assert.Equal(t, booleanTrue, testRead(it, "#T "))
	assert.Equal(t, booleanFalse, testRead(it, "#f "))
	assert.Equal(t, booleanFalse, testRead(it, "#F "))

	ch := testRead(it, `#\a `)
	require.True(t, it.isChar(ch))
	assert.Equal(t, int('a'), it.character(ch))

	// character bytes are not case folded
	upper := testRead(it, `#\A `)
	assert.Equal(t, int('A'), it.character(upper))
}

func TestReadStrings(t *testing.T) {
	it := newTestInterp(t, 2000)

	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{name: "plain", src: `"hello"`, expected: "hello"},
		{name: "case preserved", src: `"MiXeD"`, expected: "MiXeD"},
		{name: "newline escape", src: `"a\nb"`, expected: "a\nb"},
		{name: "identity escape", src: `"a\xb"`, expected: "axb"},
		{name: "escaped quote", src: `"a\"b"`, expected: `a"b`},
		{name: "empty", src: `""`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testRead(it, tt.src)
			require.True(t, it.isString(v))
			assert.Equal(t, tt.expected, string(it.strData(v)))
		})
	}
}

func TestReadLists(t *testing.T) {
	it := newTestInterp(t, 2000)

	tests := []struct {
		name    string
		src     string
		written string
	}{
		{name: "empty", src: "()", written: "()"},
		{name: "proper", src: "(a b c)", written: "(A B C)"},
		{name: "nested", src: "(a (b c) d)", written: "(A (B C) D)"},
		{name: "dotted", src: "(a . b)", written: "(A . B)"},
		{name: "dotted chain collapses", src: "(a . (b . (c . ())))", written: "(A B C)"},
		{name: "mixed", src: "(1 #t x)", written: "(1 #t X)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testRead(it, tt.src)
			assert.Equal(t, tt.written, writeToString(it, v, false))
		})
	}
}

func TestReadQuoteFamily(t *testing.T) {
	it := newTestInterp(t, 2000)

	tests := []struct {
		src     string
		written string
	}{
		{src: "'x ", written: "(QUOTE X)"},
		{src: "`x ", written: "(QUASIQUOTE X)"},
		{src: ",x ", written: "(UNQUOTE X)"},
		{src: ",@x ", written: "(UNQUOTE-SPLICING X)"},
		{src: "'(1 2) ", written: "(QUOTE (1 2))"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v := testRead(it, tt.src)
			assert.Equal(t, tt.written, writeToString(it, v, false))
		})
	}
}

func TestReadSkipsCommentsAndWhitespace(t *testing.T) {
	it := newTestInterp(t, 2000)

	v := testRead(it, "; a comment\n  \t 42 ")
	assert.Equal(t, mkFixnum(42), v)

	v = testRead(it, "(1 ; inline\n 2)")
	assert.Equal(t, "(1 2)", writeToString(it, v, false))
}

func TestReadEOF(t *testing.T) {
	it := newTestInterp(t, 2000)
	assert.Equal(t, eofValue, testRead(it, ""))
	assert.Equal(t, eofValue, testRead(it, "   ; just a comment"))
}

func TestReadErrors(t *testing.T) {
	it := newTestInterp(t, 2000)

	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{name: "stray close paren", src: ")", msg: "unexpected close paren"},
		{name: "eof inside list", src: "(a b", msg: "Unexpected EOF inside list"},
		{name: "eof inside string", src: `"abc`, msg: "Unexpected EOF inside string"},
		{name: "malformed hash", src: "#x ", msg: "syntax"},
		{name: "dot without tail", src: "(a . )", msg: "unexpected close paren"},
		{name: "two tails after dot", src: "(a . b c)", msg: "missing closing paren"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := it.capture(func() { testRead(it, tt.src) })
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	it := newTestInterp(t, 4000)

	sources := []string{
		"42",
		"-42",
		"#t",
		"#f",
		`#\z`,
		"()",
		"FOO",
		`"a b c"`,
		"(1 2 3)",
		"(a . b)",
		"(a (b (c)) . d)",
		"(quote x)",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			v := testRead(it, src+" ")
			text := writeToString(it, v, false)
			v2 := testRead(it, text+" ")
			assert.Equal(t, text, writeToString(it, v2, false))
			assert.Equal(t, it.typeOf(v), it.typeOf(v2))
		})
	}
}
