package objstm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	doc := NewDocument()
	doc.Objects[oid(1)] = Dict{{Key: KeyType, Value: TypeCatalog}, {Key: "Pages", Value: Ref(2)}}
	doc.Objects[oid(2)] = Dict{{Key: KeyType, Value: TypePages}, {Key: "Kids", Value: Array{Ref(3)}}}
	doc.Objects[oid(3)] = Dict{{Key: KeyType, Value: TypePage}, {Key: "Parent", Value: Ref(2)}}
	doc.Objects[oid(4)] = Dict{{Key: "Author", Value: String("someone")}}
	doc.Objects[oid(5)] = Array{Ref(4), Ref(6)}
	doc.Objects[oid(6)] = Integer(600)
	doc.Objects[ObjectID{Number: 7, Generation: 1}] = Name("Old")
	doc.Objects[oid(8)] = NewStream(Dict{{Key: "Length", Value: Ref(9)}}, []byte("BT ET"))
	doc.Objects[oid(9)] = Integer(5)
	doc.Trailer = Dict{{Key: "Root", Value: Ref(1)}}
	return doc
}

func TestPack(t *testing.T) {
	doc := sampleDocument()
	layout, err := Pack(doc, WithMaxObjects(2))
	require.NoError(t, err)

	require.Equal(t, []ObjectID{oid(1), oid(2), oid(3), {Number: 7, Generation: 1}, oid(8), oid(9)}, layout.TopLevel)
	require.Len(t, layout.Containers, 2)
	require.Equal(t, oid(10), layout.Containers[0].ID)
	require.Equal(t, []ObjectID{oid(4), oid(5)}, layout.Containers[0].Members)
	require.Equal(t, oid(11), layout.Containers[1].ID)
	require.Equal(t, []ObjectID{oid(6)}, layout.Containers[1].Members)
	require.Equal(t, map[ObjectID]Location{
		oid(4): {Container: oid(10), Index: 0},
		oid(5): {Container: oid(10), Index: 1},
		oid(6): {Container: oid(11), Index: 0},
	}, layout.Locations)

	for _, p := range layout.Containers {
		c, err := Decode(p.Stream)
		require.NoError(t, err)
		require.Equal(t, p.Members, c.IDs())
		for _, member := range p.Members {
			got, ok := c.Get(member)
			require.True(t, ok)
			require.Equal(t, doc.Objects[member], got)
		}
	}
	require.Len(t, doc.Objects, 9)
}

func TestPack_NothingEligible(t *testing.T) {
	doc := NewDocument()
	doc.Objects[oid(1)] = Dict{{Key: KeyType, Value: TypeCatalog}}
	layout, err := Pack(doc)
	require.NoError(t, err)
	require.Empty(t, layout.Containers)
	require.Equal(t, []ObjectID{oid(1)}, layout.TopLevel)
}

func TestPack_SerializationError(t *testing.T) {
	doc := NewDocument()
	doc.Objects[oid(1)] = Array{nil}
	_, err := Pack(doc)
	require.ErrorIs(t, err, ErrUnsupportedObject)
}

func TestPack_InvalidConfig(t *testing.T) {
	_, err := Pack(NewDocument(), WithCompressionLevel(11))
	require.ErrorIs(t, err, ErrInvalidConfig)
}
