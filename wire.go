package objstm

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// indexEntry is one (object number, relative offset) pair of the index block.
type indexEntry struct {
	Number uint32
	Offset int
}

// appendIndexBlock writes "num off num off ... " with a trailing space.
func appendIndexBlock(dst []byte, entries []indexEntry) []byte {
	for i, e := range entries {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendUint(dst, uint64(e.Number), 10)
		dst = append(dst, ' ')
		dst = strconv.AppendInt(dst, int64(e.Offset), 10)
	}
	if len(entries) > 0 {
		dst = append(dst, ' ')
	}
	return dst
}

// indexToken is a parsed index number. ok is false for a token that did not
// parse as a uint32.
type indexToken struct {
	v  uint32
	ok bool
}

// readIndexTokens splits the index block on whitespace. Only invalid UTF-8
// is an error; unparsable tokens become holes. A single leading '+' is
// accepted.
func readIndexTokens(block []byte) ([]indexToken, error) {
	if !utf8.Valid(block) {
		return nil, fmt.Errorf("%w: index block is not valid UTF-8", ErrInvalidContainer)
	}
	fields := strings.Fields(string(block))
	tokens := make([]indexToken, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimPrefix(f, "+"), 10, 32)
		if err == nil {
			tokens[i] = indexToken{v: uint32(v), ok: true}
		}
	}
	return tokens, nil
}
