package objstm

import "fmt"

// structuralTypes must stay directly addressable from the cross-reference
// table, so objects of these types never go into an object stream.
var structuralTypes = map[Name]bool{
	TypePage:    true,
	TypePages:   true,
	TypeCatalog: true,
	TypeXRef:    true,
	TypeObjStm:  true,
}

// NonCompressible returns the ids in doc that must remain top-level objects.
//
// Streams, structural dictionaries and objects referenced directly from the
// trailer are marked first; everything reachable from a marked object is then
// marked too. Dangling references are ignored. doc is not modified.
func NonCompressible(doc *Document) IDSet {
	marked := make(IDSet)
	var queue []ObjectID
	for id, obj := range doc.Objects {
		if seedNonCompressible(id, obj, doc.Trailer) {
			marked.Add(id)
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		id := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		obj, err := doc.Get(id)
		if err != nil {
			continue
		}
		for ref := range CollectReferences(obj) {
			if marked.Has(ref) || !doc.Has(ref) {
				continue
			}
			marked.Add(ref)
			queue = append(queue, ref)
		}
	}
	return marked
}

// CanBeCompressed reports whether id may be packed into an object stream.
func CanBeCompressed(doc *Document, id ObjectID) bool {
	return !NonCompressible(doc).Has(id)
}

func seedNonCompressible(id ObjectID, obj Object, trailer Dict) bool {
	switch v := obj.(type) {
	case *Stream:
		return true
	case Dict:
		if t, ok := v.NameValue(KeyType); ok && structuralTypes[t] {
			return true
		}
	case Null, Boolean, Integer, Real, String, Name, Array, Reference, nil:
	default:
		panic(fmt.Sprintf("objstm: unhandled object type %T", obj))
	}
	for _, e := range trailer {
		if ref, ok := e.Value.(Reference); ok && ref.ID() == id {
			return true
		}
	}
	return false
}
