package objstm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func oid(n uint32) ObjectID { return ObjectID{Number: n} }

func idSet(ids ...ObjectID) IDSet {
	s := make(IDSet)
	for _, i := range ids {
		s.Add(i)
	}
	return s
}

func TestCollectReferences(t *testing.T) {
	obj := Dict{
		{Key: "A", Value: Reference{Number: 1}},
		{Key: "B", Value: Array{Integer(2), Reference{Number: 3, Generation: 2}, Dict{{Key: "C", Value: Reference{Number: 4}}}}},
		{Key: "D", Value: Reference{Number: 1}},
		{Key: "E", Value: String("9 0 R")},
	}
	require.Equal(t, idSet(oid(1), ObjectID{Number: 3, Generation: 2}, oid(4)), CollectReferences(obj))

	s := NewStream(Dict{{Key: "Font", Value: Reference{Number: 7}}}, []byte("8 0 R"))
	require.Equal(t, idSet(oid(7)), CollectReferences(s))

	require.Empty(t, CollectReferences(Integer(5)))
	require.Equal(t, idSet(oid(6)), CollectReferences(Reference{Number: 6}))
}

func TestNonCompressible_CatalogChain(t *testing.T) {
	doc := NewDocument()
	doc.Objects[oid(1)] = Dict{{Key: KeyType, Value: TypeCatalog}, {Key: "Next", Value: Ref(2)}}
	doc.Objects[oid(2)] = Dict{{Key: "Next", Value: Ref(3)}}
	doc.Objects[oid(3)] = Integer(3)
	doc.Objects[oid(4)] = Dict{{Key: "Loose", Value: Boolean(true)}}

	nc := NonCompressible(doc)
	require.Equal(t, idSet(oid(1), oid(2), oid(3)), nc)
	require.False(t, CanBeCompressed(doc, oid(3)))
	require.True(t, CanBeCompressed(doc, oid(4)))
}

func TestNonCompressible_Cycles(t *testing.T) {
	doc := NewDocument()
	doc.Objects[oid(1)] = Dict{{Key: KeyType, Value: TypePages}, {Key: "Kids", Value: Array{Ref(2)}}}
	doc.Objects[oid(2)] = Dict{{Key: "Parent", Value: Ref(1)}, {Key: "Next", Value: Ref(3)}}
	doc.Objects[oid(3)] = Dict{{Key: "Prev", Value: Ref(2)}}
	// An unmarked cycle stays eligible.
	doc.Objects[oid(5)] = Array{Ref(6)}
	doc.Objects[oid(6)] = Array{Ref(5)}

	nc := NonCompressible(doc)
	require.Equal(t, idSet(oid(1), oid(2), oid(3)), nc)
	require.True(t, CanBeCompressed(doc, oid(5)))
	require.True(t, CanBeCompressed(doc, oid(6)))
}

func TestNonCompressible_Seeds(t *testing.T) {
	doc := NewDocument()
	doc.Objects[oid(1)] = NewStream(Dict{{Key: "Resources", Value: Ref(2)}}, []byte("3 0 R"))
	doc.Objects[oid(2)] = Dict{}
	doc.Objects[oid(3)] = Dict{}
	doc.Objects[oid(4)] = Dict{{Key: KeyType, Value: TypePage}}
	doc.Objects[oid(5)] = Dict{{Key: KeyType, Value: TypeXRef}}
	doc.Objects[oid(6)] = Dict{{Key: KeyType, Value: TypeObjStm}}
	doc.Objects[oid(7)] = Dict{{Key: KeyType, Value: Name("Font")}}
	doc.Objects[oid(8)] = Dict{{Key: "Title", Value: String("x")}}
	doc.Objects[oid(9)] = Dict{{Key: KeyType, Value: String("Catalog")}}
	doc.Trailer = Dict{
		{Key: "Info", Value: Ref(8)},
		{Key: "ID", Value: Array{Ref(9)}},
		{Key: "Root", Value: Ref(99)},
	}

	nc := NonCompressible(doc)
	require.Equal(t, idSet(oid(1), oid(2), oid(4), oid(5), oid(6), oid(8)), nc)
}

func TestNonCompressible_Closure(t *testing.T) {
	doc := NewDocument()
	doc.Objects[oid(1)] = Dict{{Key: KeyType, Value: TypeCatalog}, {Key: "Pages", Value: Ref(2)}, {Key: "Missing", Value: Ref(50)}}
	doc.Objects[oid(2)] = Dict{{Key: KeyType, Value: TypePages}, {Key: "Kids", Value: Array{Ref(3), Ref(4)}}}
	doc.Objects[oid(3)] = Dict{{Key: KeyType, Value: TypePage}, {Key: "Parent", Value: Ref(2)}, {Key: "Annots", Value: Array{Ref(10)}}}
	doc.Objects[oid(4)] = Dict{{Key: KeyType, Value: TypePage}, {Key: "Parent", Value: Ref(2)}}
	doc.Objects[oid(10)] = Dict{{Key: "Dest", Value: Array{Ref(3), Name("Fit")}}, {Key: "AP", Value: Ref(11)}}
	doc.Objects[oid(11)] = Dict{}
	doc.Objects[oid(20)] = Dict{{Key: "Ref", Value: Ref(1)}}
	doc.Objects[oid(21)] = Dict{{Key: "Ref", Value: Ref(20)}}
	doc.Trailer = Dict{{Key: "Root", Value: Ref(1)}}

	nc := NonCompressible(doc)
	for marked := range nc {
		require.True(t, doc.Has(marked))
		obj, err := doc.Get(marked)
		require.NoError(t, err)
		for ref := range CollectReferences(obj) {
			if doc.Has(ref) {
				require.True(t, nc.Has(ref), "%v references unmarked %v", marked, ref)
			}
		}
	}
	require.False(t, nc.Has(oid(50)))
	require.False(t, nc.Has(oid(20)))
	require.False(t, nc.Has(oid(21)))
	require.True(t, nc.Has(oid(11)))

	before := len(doc.Objects)
	require.Equal(t, CanBeCompressed(doc, oid(20)), CanBeCompressed(doc, oid(20)))
	require.Equal(t, before, len(doc.Objects))
}

func TestDocumentGet(t *testing.T) {
	doc := NewDocument()
	doc.Objects[ObjectID{Number: 4, Generation: 2}] = Null{}
	_, err := doc.Get(oid(4))
	require.ErrorIs(t, err, ErrObjectNotFound)
	obj, err := doc.Get(ObjectID{Number: 4, Generation: 2})
	require.NoError(t, err)
	require.Equal(t, Null{}, obj)
	require.Equal(t, uint32(4), doc.MaxObjectNumber())
}
