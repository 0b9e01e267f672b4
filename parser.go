package objstm

import (
	"bytes"
	"errors"
	"strconv"
)

func isWhitespace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isRegular(c byte) bool {
	return !isWhitespace(c) && !isDelimiter(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParseObject parses one direct object from the start of data and returns it
// together with the number of bytes consumed. Bytes after the object are
// ignored.
func ParseObject(data []byte, opts ...ReadOption) (Object, int, error) {
	cfg := newReadConfig(opts)
	return parseDirect(data, cfg.limits)
}

func parseDirect(data []byte, limits Limits) (Object, int, error) {
	p := &parser{data: data, maxDepth: limits.MaxNestingDepth}
	obj, err := p.object(0)
	if err != nil {
		return nil, p.pos, err
	}
	return obj, p.pos, nil
}

type parser struct {
	data     []byte
	pos      int
	maxDepth int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *parser) atBoundary() bool {
	return p.eof() || !isRegular(p.data[p.pos])
}

func (p *parser) skipSpace() {
	for !p.eof() {
		c := p.data[p.pos]
		switch {
		case isWhitespace(c):
			p.pos++
		case c == '%':
			for !p.eof() && p.data[p.pos] != '\r' && p.data[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *parser) object(depth int) (Object, error) {
	p.skipSpace()
	if p.eof() {
		return nil, syntaxErrf(p.pos, nil, "unexpected end of data")
	}
	switch c := p.data[p.pos]; {
	case c == '/':
		return p.name()
	case c == '(':
		return p.literalString()
	case c == '<':
		if p.pos+1 < len(p.data) && p.data[p.pos+1] == '<' {
			return p.dict(depth)
		}
		return p.hexString()
	case c == '[':
		return p.array(depth)
	case c == '+' || c == '-' || c == '.' || isDigit(c):
		return p.numberOrReference()
	case isRegular(c):
		return p.keyword()
	default:
		return nil, syntaxErrf(p.pos, nil, "unexpected %q", c)
	}
}

func (p *parser) keyword() (Object, error) {
	start := p.pos
	for !p.atBoundary() {
		p.pos++
	}
	switch word := string(p.data[start:p.pos]); word {
	case "true":
		return Boolean(true), nil
	case "false":
		return Boolean(false), nil
	case "null":
		return Null{}, nil
	default:
		return nil, syntaxErrf(start, nil, "unknown keyword %q", word)
	}
}

func (p *parser) numberOrReference() (Object, error) {
	start := p.pos
	if c := p.data[p.pos]; c == '+' || c == '-' {
		p.pos++
	}
	digits, dots := 0, 0
	for !p.eof() {
		c := p.data[p.pos]
		if isDigit(c) {
			digits++
		} else if c == '.' {
			dots++
		} else {
			break
		}
		p.pos++
	}
	if digits == 0 || dots > 1 || !p.atBoundary() {
		return nil, syntaxErrf(start, nil, "malformed number")
	}
	tok := string(p.data[start:p.pos])
	if dots == 1 {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, syntaxErrf(start, nil, "malformed real %q", tok)
		}
		return Real(f), nil
	}
	i, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return nil, syntaxErrf(start, nil, "integer %q out of range", tok)
	}
	if isDigit(tok[0]) && i <= int64(^uint32(0)) {
		if ref, ok := p.referenceTail(uint32(i)); ok {
			return ref, nil
		}
	}
	return Integer(i), nil
}

// referenceTail looks for "G R" after an object number and rewinds if absent.
func (p *parser) referenceTail(num uint32) (Reference, bool) {
	save := p.pos
	p.skipSpace()
	start := p.pos
	for !p.eof() && isDigit(p.data[p.pos]) {
		p.pos++
	}
	if p.pos == start || p.eof() || !isWhitespace(p.data[p.pos]) {
		p.pos = save
		return Reference{}, false
	}
	gen, err := strconv.ParseUint(string(p.data[start:p.pos]), 10, 16)
	if err != nil {
		p.pos = save
		return Reference{}, false
	}
	p.skipSpace()
	if p.eof() || p.data[p.pos] != 'R' {
		p.pos = save
		return Reference{}, false
	}
	p.pos++
	if !p.atBoundary() {
		p.pos = save
		return Reference{}, false
	}
	return Reference{Number: num, Generation: uint16(gen)}, true
}

func (p *parser) name() (Object, error) {
	p.pos++
	var buf []byte
	for !p.atBoundary() {
		c := p.data[p.pos]
		if c == '#' && p.pos+2 < len(p.data) {
			hi, ok1 := hexValue(p.data[p.pos+1])
			lo, ok2 := hexValue(p.data[p.pos+2])
			if ok1 && ok2 {
				buf = append(buf, hi<<4|lo)
				p.pos += 3
				continue
			}
		}
		buf = append(buf, c)
		p.pos++
	}
	return Name(buf), nil
}

func (p *parser) literalString() (Object, error) {
	start := p.pos
	p.pos++
	var buf []byte
	nest := 1
	for !p.eof() {
		c := p.data[p.pos]
		p.pos++
		switch c {
		case '\\':
			if p.eof() {
				return nil, syntaxErrf(start, nil, "unterminated string")
			}
			buf = p.escape(buf)
		case '(':
			nest++
			buf = append(buf, c)
		case ')':
			nest--
			if nest == 0 {
				return String(buf), nil
			}
			buf = append(buf, c)
		case '\r':
			if !p.eof() && p.data[p.pos] == '\n' {
				p.pos++
			}
			buf = append(buf, '\n')
		default:
			buf = append(buf, c)
		}
	}
	return nil, syntaxErrf(start, nil, "unterminated string")
}

// escape decodes the escape sequence following a backslash.
func (p *parser) escape(buf []byte) []byte {
	c := p.data[p.pos]
	p.pos++
	switch c {
	case 'n':
		return append(buf, '\n')
	case 'r':
		return append(buf, '\r')
	case 't':
		return append(buf, '\t')
	case 'b':
		return append(buf, '\b')
	case 'f':
		return append(buf, '\f')
	case '\r':
		if !p.eof() && p.data[p.pos] == '\n' {
			p.pos++
		}
		return buf
	case '\n':
		return buf
	}
	if c >= '0' && c <= '7' {
		v := c - '0'
		for i := 0; i < 2 && !p.eof() && p.data[p.pos] >= '0' && p.data[p.pos] <= '7'; i++ {
			v = v<<3 | (p.data[p.pos] - '0')
			p.pos++
		}
		return append(buf, v)
	}
	return append(buf, c)
}

func (p *parser) hexString() (Object, error) {
	start := p.pos
	p.pos++
	var buf []byte
	var hi byte
	odd := false
	for !p.eof() {
		c := p.data[p.pos]
		p.pos++
		if c == '>' {
			if odd {
				buf = append(buf, hi<<4)
			}
			return String(buf), nil
		}
		if isWhitespace(c) {
			continue
		}
		v, ok := hexValue(c)
		if !ok {
			return nil, syntaxErrf(p.pos-1, nil, "invalid hex digit %q", c)
		}
		if odd {
			buf = append(buf, hi<<4|v)
		} else {
			hi = v
		}
		odd = !odd
	}
	return nil, syntaxErrf(start, nil, "unterminated hex string")
}

func (p *parser) enter(depth int) error {
	if depth >= p.maxDepth {
		return syntaxErrf(p.pos, ErrLimitExceeded, "nesting deeper than %d", p.maxDepth)
	}
	return nil
}

func (p *parser) array(depth int) (Object, error) {
	if err := p.enter(depth); err != nil {
		return nil, err
	}
	start := p.pos
	p.pos++
	arr := Array{}
	for {
		p.skipSpace()
		if p.eof() {
			return nil, syntaxErrf(start, nil, "unterminated array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		elem, err := p.object(depth + 1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, elem)
	}
}

func (p *parser) dict(depth int) (Object, error) {
	if err := p.enter(depth); err != nil {
		return nil, err
	}
	start := p.pos
	p.pos += 2
	d := Dict{}
	for {
		p.skipSpace()
		if p.eof() {
			return nil, syntaxErrf(start, nil, "unterminated dictionary")
		}
		if bytes.HasPrefix(p.data[p.pos:], []byte(">>")) {
			p.pos += 2
			return d, nil
		}
		if p.data[p.pos] != '/' {
			return nil, syntaxErrf(p.pos, nil, "dictionary key is not a name")
		}
		key, err := p.name()
		if err != nil {
			return nil, err
		}
		value, err := p.object(depth + 1)
		if err != nil {
			return nil, err
		}
		d.Set(key.(Name), value)
	}
}

// isLimitError reports whether err came from a configured bound rather than
// from malformed input.
func isLimitError(err error) bool {
	return errors.Is(err, ErrLimitExceeded)
}
