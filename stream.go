package objstm

import (
	"fmt"
	"slices"
)

// Stream is a dictionary bound to a byte payload.
type Stream struct {
	Dict    Dict
	Content []byte
}

// NewStream binds content to dict and records /Length.
func NewStream(dict Dict, content []byte) *Stream {
	s := &Stream{Dict: dict}
	s.SetContent(content)
	return s
}

// SetContent replaces the payload and keeps /Length in step.
func (s *Stream) SetContent(content []byte) {
	s.Content = content
	s.Dict.Set(KeyLength, Integer(len(content)))
}

// Clone copies the dictionary and payload.
func (s *Stream) Clone() *Stream {
	return &Stream{Dict: s.Dict.Clone(), Content: slices.Clone(s.Content)}
}

// Filter reports the single filter applied to the stream, if any.
// A one-element filter array is treated as that filter.
func (s *Stream) Filter() (Name, error) {
	v, ok := s.Dict.Get(KeyFilter)
	if !ok {
		return "", nil
	}
	switch f := v.(type) {
	case Name:
		return f, nil
	case Array:
		if len(f) == 0 {
			return "", nil
		}
		if len(f) == 1 {
			if n, ok := f[0].(Name); ok {
				return n, nil
			}
		}
		return "", fmt.Errorf("%w: filter chain %d entries", ErrUnsupportedFilter, len(f))
	default:
		return "", fmt.Errorf("%w: /Filter is a %v", ErrUnsupportedFilter, v.Kind())
	}
}

// Decompress decodes the payload in place. A stream without /Filter is left
// as is. On success /Filter and /DecodeParms are removed. Any failure leaves
// the stream unchanged.
func (s *Stream) Decompress(limits Limits) error {
	filter, err := s.Filter()
	if err != nil {
		return err
	}
	if filter == "" {
		return nil
	}
	if _, ok := s.Dict.Get(KeyDecodeParms); ok {
		return fmt.Errorf("%w: %s with /DecodeParms", ErrUnsupportedFilter, filter)
	}
	limits = limits.withDefaults()
	out, err := decodeFilter(filter, s.Content, limits.MaxDecompressedLen)
	if err != nil {
		return err
	}
	s.Dict.Delete(KeyFilter)
	s.Dict.Delete(KeyDecodeParms)
	s.SetContent(out)
	return nil
}
