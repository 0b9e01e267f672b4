package objstm

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

const hexDigits = "0123456789ABCDEF"

// AppendObject appends the canonical serialization of obj to dst.
//
// Every variant except *Stream is writable and reads back to an equal value
// through ParseObject.
func AppendObject(dst []byte, obj Object) ([]byte, error) {
	switch v := obj.(type) {
	case Null:
		return append(dst, "null"...), nil
	case Boolean:
		return strconv.AppendBool(dst, bool(v)), nil
	case Integer:
		return strconv.AppendInt(dst, int64(v), 10), nil
	case Real:
		return appendReal(dst, float64(v))
	case String:
		return appendLiteralString(dst, string(v)), nil
	case Name:
		return appendName(dst, v), nil
	case Array:
		dst = append(dst, '[')
		for i, elem := range v {
			if i > 0 {
				dst = append(dst, ' ')
			}
			var err error
			if dst, err = AppendObject(dst, elem); err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case Dict:
		dst = append(dst, "<<"...)
		for i, e := range v {
			if i > 0 {
				dst = append(dst, ' ')
			}
			dst = appendName(dst, e.Key)
			dst = append(dst, ' ')
			var err error
			if dst, err = AppendObject(dst, e.Value); err != nil {
				return nil, err
			}
		}
		return append(dst, ">>"...), nil
	case *Stream:
		return nil, fmt.Errorf("%w: stream is not a direct object", ErrUnsupportedObject)
	case Reference:
		dst = strconv.AppendUint(dst, uint64(v.Number), 10)
		dst = append(dst, ' ')
		dst = strconv.AppendUint(dst, uint64(v.Generation), 10)
		return append(dst, " R"...), nil
	case nil:
		return nil, fmt.Errorf("%w: nil object", ErrUnsupportedObject)
	default:
		panic(fmt.Sprintf("objstm: unhandled object type %T", obj))
	}
}

func appendReal(dst []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: real %v is not finite", ErrUnsupportedObject, f)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'f', -1, 64)
	if bytes.IndexByte(dst[start:], '.') < 0 {
		dst = append(dst, ".0"...)
	}
	return dst, nil
}

func appendLiteralString(dst []byte, s string) []byte {
	dst = append(dst, '(')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '(', ')':
			dst = append(dst, '\\', c)
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\n':
			dst = append(dst, '\\', 'n')
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, ')')
}

func appendName(dst []byte, n Name) []byte {
	dst = append(dst, '/')
	for i := 0; i < len(n); i++ {
		c := n[i]
		if c < '!' || c > '~' || c == '#' || isDelimiter(c) {
			dst = append(dst, '#', hexDigits[c>>4], hexDigits[c&0xF])
			continue
		}
		dst = append(dst, c)
	}
	return dst
}
