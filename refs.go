package objstm

import "fmt"

// CollectReferences returns every id referenced by obj, directly or through
// nested arrays and dictionaries. For a stream only the dictionary is
// searched; the payload is opaque.
func CollectReferences(obj Object) IDSet {
	refs := make(IDSet)
	collectReferences(obj, refs)
	return refs
}

func collectReferences(obj Object, refs IDSet) {
	switch v := obj.(type) {
	case Reference:
		refs.Add(v.ID())
	case Array:
		for _, elem := range v {
			collectReferences(elem, refs)
		}
	case Dict:
		for _, e := range v {
			collectReferences(e.Value, refs)
		}
	case *Stream:
		collectReferences(v.Dict, refs)
	case Null, Boolean, Integer, Real, String, Name, nil:
	default:
		panic(fmt.Sprintf("objstm: unhandled object type %T", obj))
	}
}
