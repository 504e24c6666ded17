package tscheme

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Options tunes a fresh interpreter.  The zero value selects the
// process streams and the default sizes.
type Options struct {
	// HeapSize is the number of collectable cells in the arena.
	HeapSize int

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Diag receives GC phase reports, load progress and error
	// messages.  Defaults to Stderr.
	Diag io.Writer
}

// NewInterp allocates the arena, seeds the obarray with the sentinel
// and reserved symbols, opens the standard ports and installs the
// primitive tables.
func NewInterp(opts Options) *Interp {
	if opts.HeapSize <= 0 {
		opts.HeapSize = defaultHeapSize
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Diag == nil {
		opts.Diag = opts.Stderr
	}

	it := &Interp{
		diag:   opts.Diag,
		strbuf: make([]byte, strBufSize),
	}
	it.initStorage(opts.HeapSize)
	it.initPorts(opts.Stdin, opts.Stdout, opts.Stderr)
	it.initSubrs()
	it.initIOSubrs()
	return it
}

// Load reads and evaluates every form in the named file.  A non-fatal
// interpreter error is returned as *Error, an aborted run as
// *FatalError.
func (it *Interp) Load(path string) error {
	return it.capture(func() { it.doLoad(path) })
}

// EvalString evaluates every form in src against the empty
// environment and returns the written representation of the last
// result.
func (it *Interp) EvalString(src string) (string, error) {
	var last string
	err := it.capture(func() {
		p := &Port{name: "string", r: bufio.NewReader(strings.NewReader(src))}
		for {
			e := it.doRead(p)
			if e == eofValue {
				break
			}
			v := it.evaluate(e, theNull)
			var b strings.Builder
			it.doWrite(v, &b, false)
			last = b.String()
		}
	})
	return last, err
}

// Run evaluates (SYS:TOPLEVEL), the read-eval-print loop installed by
// the init script.  It returns nil when the toplevel returns
// normally, which happens on end of input.
func (it *Interp) Run() error {
	return it.capture(func() {
		it.evaluate(it.mkPair(it.symToplevel, theNull), theNull)
	})
}
