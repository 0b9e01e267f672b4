package objstm

import (
	"context"
	"log/slog"
	"slices"
)

// Packed is one finalized object stream and the objects it holds, in index
// order.
type Packed struct {
	ID      ObjectID
	Stream  *Stream
	Members []ObjectID
}

// Location is where a packed object lives: the containing stream and its
// position in that stream's index.
type Location struct {
	Container ObjectID
	Index     int
}

// Layout describes how a document's objects are split between top-level
// objects and object streams.
type Layout struct {
	Containers []Packed
	Locations  map[ObjectID]Location
	TopLevel   []ObjectID
}

// Pack groups every object of doc that may be compressed into object streams.
//
// Eligible objects are those outside NonCompressible(doc) with generation 0,
// taken in ascending id order and split into streams of the configured
// capacity. Streams are numbered from doc.MaxObjectNumber()+1 upward. doc is
// not modified.
func Pack(doc *Document, opts ...BuildOption) (*Layout, error) {
	cfg, err := newBuildConfig(opts)
	if err != nil {
		return nil, err
	}
	fixed := NonCompressible(doc)

	ids := make([]ObjectID, 0, len(doc.Objects))
	for id := range doc.Objects {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, ObjectID.Compare)

	layout := &Layout{Locations: make(map[ObjectID]Location)}
	var eligible []ObjectID
	for _, id := range ids {
		if fixed.Has(id) || id.Generation != 0 {
			layout.TopLevel = append(layout.TopLevel, id)
			continue
		}
		eligible = append(eligible, id)
	}

	next := doc.MaxObjectNumber() + 1
	for chunk := range slices.Chunk(eligible, cfg.MaxObjectsPerStream) {
		b := newBuilder(cfg)
		for _, id := range chunk {
			if err := b.Add(id, doc.Objects[id]); err != nil {
				return nil, err
			}
		}
		stream, err := b.Finalize()
		if err != nil {
			return nil, err
		}
		p := Packed{ID: ObjectID{Number: next}, Stream: stream, Members: chunk}
		for i, id := range chunk {
			layout.Locations[id] = Location{Container: p.ID, Index: i}
		}
		layout.Containers = append(layout.Containers, p)
		next++
	}

	cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "objstm: packed document",
		slog.Int("objects", len(ids)),
		slog.Int("packed", len(eligible)),
		slog.Int("streams", len(layout.Containers)))
	return layout, nil
}
