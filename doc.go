// Package objstm reads and writes PDF object streams.
//
// An object stream (/Type /ObjStm) packs many small indirect objects into a
// single, usually compressed, stream instead of storing each as a separate
// top-level entry of the file.
//
// # Stream Layout
//
// The decoded content of an object stream consists of:
//   - An index block of space-separated pairs "number offset", where offset
//     is relative to the start of the object data
//   - The object data: each object serialized in turn, followed by a space
//
// The stream dictionary records /N (number of pairs) and /First (length of
// the index block, i.e. where the object data begins). Content is
// compressed with FlateDecode by default; BrotliDecode is also supported.
//
// # Basic Usage
//
// To build an object stream:
//
//	b, _ := objstm.NewBuilder(objstm.WithCompressionLevel(9))
//	_ = b.Add(objstm.ObjectID{Number: 12}, objstm.Dict{{Key: "Kind", Value: objstm.Name("Note")}})
//	stream, err := b.Finalize()
//
// To read one back:
//
//	c, err := objstm.Decode(stream)
//	obj, ok := c.Get(objstm.ObjectID{Number: 12})
//
// To decide which objects of a whole document may be packed, use
// [NonCompressible], [CanBeCompressed], or [Pack] which does the whole
// layout pass.
//
// # Error Handling
//
// Decoding is strict about the stream's self-description (/First, the index
// block encoding) and lenient about individual entries: an entry that is
// malformed or unparsable is dropped and logged through log/slog, and the
// rest of the stream is still returned.
package objstm
