package tscheme

import "strconv"

// The reader consumes bytes from a port with one byte of lookahead
// and produces one value per call.  End of input at the top level
// yields the EOF value; everywhere else it is a syntax error.

func (it *Interp) nRead(args Value) Value {
	if it.checkNargs("read", args, 0, 1) == 0 {
		return it.schemeRead(it.stdinValue)
	}
	return it.schemeRead(it.first(args))
}

func (it *Interp) schemeRead(port Value) Value {
	if !it.isPort(port) {
		it.wtaError("read", 1)
	}
	return it.doRead(it.portOf(port))
}

func (it *Interp) doRead(p *Port) Value {
	_, ok := it.skipSpaces(p, "")
	if !ok {
		return eofValue
	}
	p.unread()
	return it.readExpr(p)
}

func (it *Interp) readExpr(p *Port) Value {
	c := it.skipSpacesMust(p, "Unexpected EOF")
	switch c {
	case '(':
		return it.readParen(p)
	case ')':
		it.error0("unexpected close paren")
	case '#':
		c, ok := p.readByte()
		if !ok {
			it.error0("unexpected EOF")
		}
		switch c {
		case 't', 'T':
			return booleanTrue
		case 'f', 'F':
			return booleanFalse
		case '\\':
			c, ok := p.readByte()
			if !ok {
				it.error0("unexpected EOF")
			}
			return it.mkCharacter(int(c))
		default:
			it.error0("syntax")
		}
	case '\'':
		return it.readQuoted(it.symQuote, p)
	case '`':
		return it.readQuoted(it.symQuasiquote, p)
	case ',':
		c, ok := p.readByte()
		if !ok {
			it.error0("unexpected EOF")
		}
		if c == '@' {
			return it.readQuoted(it.symUnquoteSplicing, p)
		}
		p.unread()
		return it.readQuoted(it.symUnquote, p)
	case '"':
		return it.readString(p)
	default:
		p.unread()
		return it.readToken(p)
	}
	return it.unspecifiedValue
}

// readQuoted wraps the next expression as (sym expr).
func (it *Interp) readQuoted(sym Value, p *Port) Value {
	x := it.readExpr(p)
	inner := it.mkPair(x, theNull)
	return it.mkPair(sym, inner)
}

// readParen reads the elements of a list.  A bare dot token
// introduces the final cdr; exactly one expression may follow it
// before the closing paren.
func (it *Interp) readParen(p *Port) Value {
	c := it.skipSpacesMust(p, "Unexpected EOF inside list")
	if c == ')' {
		return theNull
	}
	p.unread()
	tmp := it.readExpr(p)
	if tmp == it.symDot {
		tmp = it.readExpr(p)
		c = it.skipSpacesMust(p, "Unexpected EOF inside list")
		if c != ')' {
			it.error0("missing closing paren")
		}
		return tmp
	}
	mark := it.protect1(&tmp)
	defer it.releaseTo(mark)
	return it.mkPair(tmp, it.readParen(p))
}

// readString scans up to the closing quote.  Inside strings \n is a
// newline and any other escaped byte stands for itself.
func (it *Interp) readString(p *Port) Value {
	i := 0
	for {
		c, ok := p.readByte()
		if !ok {
			it.error0("Unexpected EOF inside string")
		}
		switch c {
		case '"':
			return it.mkString(it.strbuf[:i])
		case '\\':
			e, ok := p.readByte()
			if !ok {
				it.error0("Unexpected EOF inside string")
			}
			if e == 'n' {
				c = '\n'
			} else {
				c = e
			}
		}
		if i >= strBufSize {
			it.fatalError("I/O buffer size exceeded")
		}
		it.strbuf[i] = c
		i++
	}
}

// readToken accumulates a symbol or number token up to the next
// delimiter.  Symbol names are folded to upper case byte by byte;
// the folding is observable and deliberate.
func (it *Interp) readToken(p *Port) Value {
	i := 0
	for {
		c, ok := p.readByte()
		if !ok {
			return it.finishToken(it.strbuf[:i])
		}
		switch c {
		case '(', ')', '\'', '"', '`', ',', ' ', '\t', '\n', '\r':
			p.unread()
			return it.finishToken(it.strbuf[:i])
		}
		if i >= strBufSize {
			it.fatalError("I/O buffer size exceeded")
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		it.strbuf[i] = c
		i++
	}
}

func (it *Interp) finishToken(token []byte) Value {
	if isNumberToken(token) {
		n, _ := strconv.Atoi(string(token))
		return mkFixnum(int32(n))
	}
	return it.mkSymbol(string(token))
}

// skipSpaces discards whitespace and ;-to-end-of-line comments.  On
// end of input it raises eoferr when one is supplied, otherwise it
// reports EOF to the caller.
func (it *Interp) skipSpaces(p *Port, eoferr string) (byte, bool) {
	comment := false
	for {
		c, ok := p.readByte()
		if !ok {
			if eoferr != "" {
				it.error0(eoferr)
			}
			return 0, false
		}
		switch {
		case comment:
			if c == '\n' {
				comment = false
			}
		case c == ';':
			comment = true
		case !isSpaceByte(c):
			return c, true
		}
	}
}

func (it *Interp) skipSpacesMust(p *Port, eoferr string) byte {
	c, _ := it.skipSpaces(p, eoferr)
	return c
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// isNumberToken reports whether the token matches -?[0-9]+.
func isNumberToken(token []byte) bool {
	if len(token) > 0 && token[0] == '-' {
		token = token[1:]
	}
	if len(token) == 0 {
		return false
	}
	for _, c := range token {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
