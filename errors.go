package objstm

import (
	"errors"
	"fmt"
)

var (
	ErrNumericCast        = errors.New("objstm: numeric cast")
	ErrInvalidOffset      = errors.New("objstm: invalid offset")
	ErrInvalidContainer   = errors.New("objstm: invalid object stream")
	ErrDisallowedContent  = errors.New("objstm: stream objects cannot be stored in object streams")
	ErrCapacityExceeded   = errors.New("objstm: object stream capacity exceeded")
	ErrFinalized          = errors.New("objstm: builder already finalized")
	ErrInvalidConfig      = errors.New("objstm: invalid configuration")
	ErrObjectNotFound     = errors.New("objstm: object not found")
	ErrUnsupportedObject  = errors.New("objstm: unsupported object")
	ErrUnsupportedFilter  = errors.New("objstm: unsupported filter")
	ErrSyntax             = errors.New("objstm: syntax error")
	ErrLimitExceeded      = errors.New("objstm: limit exceeded")
	ErrInvalidCompression = errors.New("objstm: invalid compressed data")
)

// SyntaxError reports where the direct-object parser gave up.
type SyntaxError struct {
	Off int
	Msg string
	Err error
}

func syntaxErrf(off int, err error, format string, args ...any) error {
	if err == nil {
		err = ErrSyntax
	}
	return &SyntaxError{Off: off, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Off, e.Msg)
}
