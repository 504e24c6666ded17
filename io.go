package tscheme

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Port is the out-of-heap payload of a port cell: a named stream with
// a buffered reader on the input side.  The sweep finalizer closes
// whatever is left open when the cell becomes unreachable.
type Port struct {
	name   string
	r      *bufio.Reader
	w      io.Writer
	closer io.Closer
	closed bool
}

func (p *Port) readByte() (byte, bool) {
	if p.r == nil {
		return 0, false
	}
	b, err := p.r.ReadByte()
	if err != nil {
		return 0, false
	}
	return b, true
}

func (p *Port) unread() {
	if p.r != nil {
		_ = p.r.UnreadByte()
	}
}

func (p *Port) close() {
	if p.closed {
		return
	}
	p.closed = true
	if p.closer != nil {
		_ = p.closer.Close()
	}
}

// initPorts seeds the three always-open standard ports and binds them
// to their symbols.
func (it *Interp) initPorts(stdin io.Reader, stdout, stderr io.Writer) {
	it.stdinValue = it.mkPortCell(&Port{name: "standard_input", r: bufio.NewReader(stdin)})
	it.setSymValue(it.mkSymbol("STDIN"), it.stdinValue)

	it.stdoutValue = it.mkPortCell(&Port{name: "standard_output", w: stdout})
	it.setSymValue(it.mkSymbol("STDOUT"), it.stdoutValue)

	it.stderrValue = it.mkPortCell(&Port{name: "standard_error", w: stderr})
	it.setSymValue(it.mkSymbol("STDERR"), it.stderrValue)
}

func (it *Interp) stdoutWriter() io.Writer { return it.portOf(it.stdoutValue).w }

func sOpenInputFile(it *Interp, file Value) Value {
	if !it.isString(file) {
		it.wtaError("open-input-file", 1)
	}
	name := string(it.strData(file))
	f, err := os.Open(name)
	if err != nil {
		it.error1("Cannot open file %s\n", name)
	}
	return it.mkPortCell(&Port{name: name, r: bufio.NewReader(f), closer: f})
}

func sOpenOutputFile(it *Interp, file Value) Value {
	if !it.isString(file) {
		it.wtaError("open-output-file", 1)
	}
	name := string(it.strData(file))
	f, err := os.Create(name)
	if err != nil {
		it.error1("Cannot open file: %s\n", name)
	}
	return it.mkPortCell(&Port{name: name, w: f, closer: f})
}

func sCloseInputPort(it *Interp, port Value) Value {
	if !it.isPort(port) {
		it.wtaError("close-input-port", 1)
	}
	it.portOf(port).close()
	return it.unspecifiedValue
}

func sCloseOutputPort(it *Interp, port Value) Value {
	if !it.isPort(port) {
		it.wtaError("close-output-port", 1)
	}
	it.portOf(port).close()
	return it.unspecifiedValue
}

func nWrite(it *Interp, args Value) Value {
	if it.checkNargs("write", args, 1, 2) == 1 {
		return it.schemeWrite(it.first(args), it.stdoutValue, false)
	}
	return it.schemeWrite(it.first(args), it.second(args), false)
}

func nDisplay(it *Interp, args Value) Value {
	if it.checkNargs("display", args, 1, 2) == 1 {
		return it.schemeWrite(it.first(args), it.stdoutValue, true)
	}
	return it.schemeWrite(it.first(args), it.second(args), true)
}

func nNewline(it *Interp, args Value) Value {
	if it.checkNargs("newline", args, 0, 1) == 0 {
		fmt.Fprint(it.stdoutWriter(), "\n")
		return it.unspecifiedValue
	}
	port := it.first(args)
	if !it.isPort(port) || it.portOf(port).w == nil {
		it.wtaError("newline", 1)
	}
	fmt.Fprint(it.portOf(port).w, "\n")
	return it.unspecifiedValue
}

func sEofObjectp(it *Interp, x Value) Value {
	if x == eofValue {
		return booleanTrue
	}
	return booleanFalse
}

// schemeWrite prints data on port, in write mode (re-readable) or
// display mode (raw strings).
func (it *Interp) schemeWrite(data, port Value, displayp bool) Value {
	fname := "write"
	if displayp {
		fname = "display"
	}
	if !it.isPort(port) || it.portOf(port).w == nil {
		it.wtaError(fname, 2)
	}
	it.doWrite(data, it.portOf(port).w, displayp)
	return it.unspecifiedValue
}

func (it *Interp) doWrite(x Value, w io.Writer, displayp bool) {
	switch it.typeOf(x) {
	case tFixnum:
		fmt.Fprintf(w, "%d", fixnum(x))
	case tBoolean:
		if x == booleanTrue {
			io.WriteString(w, "#t")
		} else {
			io.WriteString(w, "#f")
		}
	case tCharacter:
		fmt.Fprintf(w, "#\\%c", it.character(x))
	case tNull:
		io.WriteString(w, "()")
	case tPair:
		it.doWritePair(x, w, displayp)
	case tSymbol:
		w.Write(it.strData(it.symPname(x)))
	case tString:
		if displayp {
			w.Write(it.strData(x))
		} else {
			fmt.Fprintf(w, "\"%s\"", it.strData(x))
		}
	case tSubr0, tSubr1, tSubr2, tSubr3, tSubrN:
		fmt.Fprintf(w, "#<subr %s>", it.subrSname(x))
	case tFsubr:
		fmt.Fprintf(w, "#<fsubr %s>", it.subrSname(x))
	case tClosure:
		fmt.Fprintf(w, "#<closure %x>", uint32(x))
	case tEnv:
		fmt.Fprintf(w, "#<environment %x>", uint32(x))
	case tPort:
		fmt.Fprintf(w, "#<port %s>", it.portOf(x).name)
	case tEOFValue:
		io.WriteString(w, "#<eof>")
	case tFreeCell:
		it.error0("write: free cell")
	default:
		it.error0("write: unknown value")
	}
}

// doWritePair walks the cdr spine iteratively, so long lists cost no
// stack; improper tails print in dotted form.
func (it *Interp) doWritePair(x Value, w io.Writer, displayp bool) {
	io.WriteString(w, "(")
	p := x
	for {
		it.doWrite(it.car(p), w, displayp)
		switch it.typeOf(it.cdr(p)) {
		case tNull:
			io.WriteString(w, ")")
			return
		case tPair:
			io.WriteString(w, " ")
			p = it.cdr(p)
		default:
			io.WriteString(w, " . ")
			it.doWrite(it.cdr(p), w, displayp)
			io.WriteString(w, ")")
			return
		}
	}
}

func sLoad(it *Interp, file Value) Value {
	if !it.isString(file) {
		it.wtaError("load", 1)
	}
	it.doLoad(string(it.strData(file)))
	return it.unspecifiedValue
}

// doLoad reads and evaluates every form in the file against the empty
// environment.  The transient port never enters the heap, so an error
// mid-file cannot leak a collectable handle.
func (it *Interp) doLoad(file string) {
	f, err := os.Open(file)
	if err != nil {
		it.error1("sys:load: cannot open file %s\n", file)
	}
	defer f.Close()
	fmt.Fprintf(it.diag, "Loading %s ... ", file)
	p := &Port{name: file, r: bufio.NewReader(f)}
	for {
		e := it.doRead(p)
		if e == eofValue {
			break
		}
		it.evaluate(e, theNull)
	}
	fmt.Fprintf(it.diag, "done!\n")
}

func sShowObarray(it *Interp) Value {
	w := it.stdoutWriter()
	for i, bucket := range it.obarray {
		if !isNull(bucket) {
			fmt.Fprintf(w, "%3d : ", i)
			it.doWrite(bucket, w, false)
			fmt.Fprintln(w)
		}
	}
	return it.unspecifiedValue
}

func (it *Interp) initIOSubrs() {
	it.mkSubr("OPEN-INPUT-FILE", sOpenInputFile, 1)
	it.mkSubr("OPEN-OUTPUT-FILE", sOpenOutputFile, 1)
	it.mkSubr("CLOSE-INPUT-PORT", sCloseInputPort, 1)
	it.mkSubr("CLOSE-OUTPUT-PORT", sCloseOutputPort, 1)
	it.mkSubr("WRITE", nWrite, -1)
	it.mkSubr("DISPLAY", nDisplay, -1)
	it.mkSubr("NEWLINE", nNewline, -1)
	it.mkSubr("EOF-OBJECT?", sEofObjectp, 1)
	it.mkSubr("LOAD", sLoad, 1)
	it.mkSubr("SHOW-OBARRAY", sShowObarray, 0)
	it.mkSubr("READ", (*Interp).nRead, -1)
}
