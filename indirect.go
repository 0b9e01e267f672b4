package objstm

import (
	"bytes"
	"fmt"
	"strconv"
)

// AppendIndirect appends the definition "N G obj ... endobj" of obj.
// Streams are written with their payload between "stream" and "endstream";
// /Length must already match the payload, as NewStream and SetContent ensure.
func AppendIndirect(dst []byte, id ObjectID, obj Object) ([]byte, error) {
	dst = strconv.AppendUint(dst, uint64(id.Number), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(id.Generation), 10)
	dst = append(dst, " obj\n"...)
	var err error
	if s, ok := obj.(*Stream); ok {
		if dst, err = AppendObject(dst, s.Dict); err != nil {
			return nil, err
		}
		dst = append(dst, "\nstream\n"...)
		dst = append(dst, s.Content...)
		dst = append(dst, "\nendstream"...)
	} else if dst, err = AppendObject(dst, obj); err != nil {
		return nil, err
	}
	return append(dst, "\nendobj\n"...), nil
}

// ParseIndirect parses one indirect object definition from the start of
// data and returns it with the number of bytes consumed. The stream payload
// length is taken from a direct /Length entry.
func ParseIndirect(data []byte, opts ...ReadOption) (ObjectID, Object, int, error) {
	cfg := newReadConfig(opts)
	p := &parser{data: data, maxDepth: cfg.limits.MaxNestingDepth}

	num, err := p.unsigned(32)
	if err != nil {
		return ObjectID{}, nil, p.pos, err
	}
	gen, err := p.unsigned(16)
	if err != nil {
		return ObjectID{}, nil, p.pos, err
	}
	id := ObjectID{Number: uint32(num), Generation: uint16(gen)}
	if err := p.expectKeyword("obj"); err != nil {
		return id, nil, p.pos, err
	}
	obj, err := p.object(0)
	if err != nil {
		return id, nil, p.pos, err
	}
	if d, ok := obj.(Dict); ok {
		save := p.pos
		if p.expectKeyword("stream") == nil {
			s, err := p.streamBody(d)
			if err != nil {
				return id, nil, p.pos, err
			}
			obj = s
		} else {
			p.pos = save
		}
	}
	if err := p.expectKeyword("endobj"); err != nil {
		return id, nil, p.pos, err
	}
	return id, obj, p.pos, nil
}

func (p *parser) unsigned(bits int) (uint64, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() && isDigit(p.data[p.pos]) {
		p.pos++
	}
	if p.pos == start || !p.atBoundary() {
		return 0, syntaxErrf(start, nil, "expected unsigned integer")
	}
	v, err := strconv.ParseUint(string(p.data[start:p.pos]), 10, bits)
	if err != nil {
		return 0, syntaxErrf(start, nil, "integer out of range")
	}
	return v, nil
}

func (p *parser) expectKeyword(word string) error {
	p.skipSpace()
	start := p.pos
	for !p.atBoundary() {
		p.pos++
	}
	if string(p.data[start:p.pos]) != word {
		return syntaxErrf(start, nil, "expected %q", word)
	}
	return nil
}

// streamBody reads the payload following the "stream" keyword.
func (p *parser) streamBody(d Dict) (*Stream, error) {
	if bytes.HasPrefix(p.data[p.pos:], []byte("\r\n")) {
		p.pos += 2
	} else if !p.eof() && p.data[p.pos] == '\n' {
		p.pos++
	} else {
		return nil, syntaxErrf(p.pos, nil, "stream keyword not followed by EOL")
	}
	n, ok := d.IntegerValue(KeyLength)
	if !ok || n < 0 {
		return nil, syntaxErrf(p.pos, ErrInvalidContainer, "stream without direct /Length")
	}
	if n > int64(len(p.data)-p.pos) {
		return nil, syntaxErrf(p.pos, ErrInvalidOffset, "stream /Length %d past end of data", n)
	}
	content := p.data[p.pos : p.pos+int(n)]
	p.pos += int(n)
	if err := p.expectKeyword("endstream"); err != nil {
		return nil, err
	}
	return &Stream{Dict: d, Content: bytes.Clone(content)}, nil
}

// Format renders obj in its canonical form, or a diagnostic for objects
// that cannot be written.
func Format(obj Object) string {
	if obj == nil {
		return "<nil>"
	}
	b, err := AppendObject(nil, obj)
	if err != nil {
		return fmt.Sprintf("<%v: %v>", obj.Kind(), err)
	}
	return string(b)
}
