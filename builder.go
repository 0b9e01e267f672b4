package objstm

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
)

// Builder accumulates objects for one object stream. It is owned by a
// single goroutine and finalized once.
type Builder struct {
	cfg       buildConfig
	objects   map[ObjectID]Object
	finalized bool
}

// NewBuilder returns an empty builder. Without options it holds up to 100
// objects and compresses with FlateDecode at level 6.
func NewBuilder(opts ...BuildOption) (*Builder, error) {
	cfg, err := newBuildConfig(opts)
	if err != nil {
		return nil, err
	}
	return newBuilder(cfg), nil
}

func newBuilder(cfg buildConfig) *Builder {
	return &Builder{cfg: cfg, objects: make(map[ObjectID]Object)}
}

// Add stores obj under id, replacing any previous value for id.
// Streams are rejected with ErrDisallowedContent and a full builder with
// ErrCapacityExceeded; in both cases the builder is unchanged.
func (b *Builder) Add(id ObjectID, obj Object) error {
	if b.finalized {
		return ErrFinalized
	}
	if err := validateStorable(obj); err != nil {
		return err
	}
	if len(b.objects) >= b.cfg.MaxObjectsPerStream {
		return fmt.Errorf("%w: maximum of %d objects reached", ErrCapacityExceeded, b.cfg.MaxObjectsPerStream)
	}
	b.objects[id] = obj
	return nil
}

func (b *Builder) Count() int {
	return len(b.objects)
}

// MaxObjects returns the configured capacity.
func (b *Builder) MaxObjects() int {
	return b.cfg.MaxObjectsPerStream
}

// CompressionLevel returns the configured compression level, 0 through 9.
func (b *Builder) CompressionLevel() int {
	return b.cfg.CompressionLevel
}

// IDs returns the stored ids in the order Finalize writes them.
func (b *Builder) IDs() []ObjectID {
	ids := make([]ObjectID, 0, len(b.objects))
	for id := range b.objects {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, ObjectID.Compare)
	return ids
}

// Finalize serializes the stored objects into an /ObjStm stream.
//
// The content is the index block "num off num off ... " followed by every
// object in ascending id order, each trailed by one space. Offsets are
// relative to /First, which is the index block length. With a non-zero
// compression level the content is compressed and /Filter recorded; an
// empty builder always yields empty, unfiltered content.
// On error the builder stays usable.
func (b *Builder) Finalize() (*Stream, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	ids := b.IDs()

	entries := make([]indexEntry, len(ids))
	var body []byte
	for i, id := range ids {
		entries[i] = indexEntry{Number: id.Number, Offset: len(body)}
		var err error
		if body, err = AppendObject(body, b.objects[id]); err != nil {
			return nil, fmt.Errorf("object %v: %w", id, err)
		}
		body = append(body, ' ')
	}
	index := appendIndexBlock(nil, entries)
	content := append(index, body...)

	dict := Dict{
		{Key: KeyType, Value: TypeObjStm},
		{Key: KeyN, Value: Integer(len(ids))},
		{Key: KeyFirst, Value: Integer(len(index))},
	}
	rawLen := len(content)
	comp := compressionForLevel(b.cfg.CompressionLevel)
	if len(content) == 0 {
		comp = CompNone
	}
	if comp != CompNone {
		compressed, err := encodeFilter(b.cfg.filter, comp, content)
		if err != nil {
			return nil, err
		}
		content = compressed
		dict.Set(KeyFilter, b.cfg.filter)
	}
	stream := NewStream(dict, content)

	b.finalized = true
	b.objects = nil
	b.cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "objstm: finalized",
		slog.Int("n", len(ids)),
		slog.Int("first", len(index)),
		slog.Int("raw", rawLen),
		slog.Int("stored", len(content)),
		slog.String("compression", compressionName(comp)))
	return stream, nil
}
