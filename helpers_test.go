package tscheme

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// newTestInterp builds an interpreter with a small heap and silenced
// streams.  The heap must leave room for the boot image: sentinel and
// reserved symbols, ports and the primitive tables.
func newTestInterp(t *testing.T, heapSize int) *Interp {
	t.Helper()
	return NewInterp(Options{
		HeapSize: heapSize,
		Stdin:    strings.NewReader(""),
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		Diag:     io.Discard,
	})
}

// newCapturedInterp exposes the stdout and diagnostic streams.
func newCapturedInterp(t *testing.T, heapSize int) (*Interp, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, diag bytes.Buffer
	it := NewInterp(Options{
		HeapSize: heapSize,
		Stdin:    strings.NewReader(""),
		Stdout:   &stdout,
		Stderr:   io.Discard,
		Diag:     &diag,
	})
	return it, &stdout, &diag
}

func testRead(it *Interp, src string) Value {
	p := &Port{name: "test", r: bufio.NewReader(strings.NewReader(src))}
	return it.doRead(p)
}

func writeToString(it *Interp, v Value, displayp bool) string {
	var b strings.Builder
	it.doWrite(v, &b, displayp)
	return b.String()
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func (it *Interp) freeCellCount() int {
	n := 0
	for v := it.freeList; !isNull(v); v = it.cdr(v) {
		n++
	}
	return n
}
