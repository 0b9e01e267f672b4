package objstm

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Container is the read-only result of decoding an object stream.
type Container struct {
	Objects map[ObjectID]Object
}

func (c *Container) Len() int {
	return len(c.Objects)
}

func (c *Container) Get(id ObjectID) (Object, bool) {
	obj, ok := c.Objects[id]
	return obj, ok
}

// IDs returns the contained ids in ascending order.
func (c *Container) IDs() []ObjectID {
	ids := make([]ObjectID, 0, len(c.Objects))
	for id := range c.Objects {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, ObjectID.Compare)
	return ids
}

// Decode reads the objects packed in an /ObjStm stream.
//
// The payload is decompressed first when its filter is recognised; an
// unrecognised filter is not an error by itself. stream is not modified.
// See DecodeContent for the failure modes.
func Decode(stream *Stream, opts ...ReadOption) (*Container, error) {
	cfg := newReadConfig(opts)
	s := stream.Clone()
	if err := s.Decompress(cfg.limits); err != nil {
		cfg.logger.LogAttrs(context.Background(), slog.LevelWarn, "objstm: decompress failed, decoding stored bytes", slog.Any("err", err))
	}
	return decodeContent(s.Dict, s.Content, cfg)
}

// DecodeContent decodes already decompressed object stream content using
// /First and /N from dict.
//
// Only structural problems fail the call: ErrNumericCast if /First does not
// fit an int, ErrInvalidOffset if it lies past the content, and
// ErrInvalidContainer if /First is missing or the index block is not UTF-8.
// Individual entries that are malformed, out of range or unparsable are
// dropped, and a wrong /N is only logged.
func DecodeContent(dict Dict, content []byte, opts ...ReadOption) (*Container, error) {
	return decodeContent(dict, content, newReadConfig(opts))
}

func decodeContent(dict Dict, content []byte, cfg readConfig) (*Container, error) {
	ctx := context.Background()
	if len(content) == 0 {
		return &Container{Objects: map[ObjectID]Object{}}, nil
	}

	first, err := firstOffset(dict)
	if err != nil {
		return nil, err
	}
	if first > len(content) {
		return nil, fmt.Errorf("%w: /First %d beyond content length %d", ErrInvalidOffset, first, len(content))
	}
	tokens, err := readIndexTokens(content[:first])
	if err != nil {
		return nil, err
	}
	tokens = tokens[:len(tokens)/2*2]

	n, ok := dict.IntegerValue(KeyN)
	if !ok || n < 0 || n > math.MaxInt/2 || int(n)*2 != len(tokens) {
		cfg.logger.LogAttrs(ctx, slog.LevelWarn, "objstm: the object stream dictionary specifies a wrong number of objects",
			slog.Int64("n", n), slog.Int("pairs", len(tokens)/2))
	}

	pairs := len(tokens) / 2
	results := make([]Object, pairs)
	parsePair := func(i int) {
		num, rel := tokens[2*i], tokens[2*i+1]
		if !num.ok || !rel.ok {
			return
		}
		if uint64(rel.v) >= uint64(len(content)-first) {
			cfg.logger.LogAttrs(ctx, slog.LevelWarn, "objstm: out-of-bounds offset in object stream",
				slog.Uint64("object", uint64(num.v)), slog.Uint64("offset", uint64(first)+uint64(rel.v)), slog.Int("len", len(content)))
			return
		}
		off := first + int(rel.v)
		obj, _, err := parseDirect(content[off:], cfg.limits)
		if err != nil {
			cfg.logger.LogAttrs(ctx, slog.LevelDebug, "objstm: dropping unparsable object",
				slog.Uint64("object", uint64(num.v)), slog.Bool("limit", isLimitError(err)), slog.Any("err", err))
			return
		}
		results[i] = obj
	}

	if cfg.concurrency > 1 && pairs > 1 {
		var g errgroup.Group
		g.SetLimit(cfg.concurrency)
		for i := range pairs {
			g.Go(func() error {
				parsePair(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range pairs {
			parsePair(i)
		}
	}

	objects := make(map[ObjectID]Object, pairs)
	for i, obj := range results {
		if obj != nil {
			objects[ObjectID{Number: tokens[2*i].v}] = obj
		}
	}
	return &Container{Objects: objects}, nil
}

func firstOffset(dict Dict) (int, error) {
	v, ok := dict.Get(KeyFirst)
	if !ok {
		return 0, fmt.Errorf("%w: missing /First", ErrInvalidContainer)
	}
	first, ok := v.(Integer)
	if !ok {
		return 0, fmt.Errorf("%w: /First is a %v", ErrInvalidContainer, v.Kind())
	}
	if first < 0 || uint64(first) > math.MaxInt {
		return 0, fmt.Errorf("%w: /First %d", ErrNumericCast, first)
	}
	return int(first), nil
}
