package objstm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndirectRoundTrip(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	require.NoError(t, b.Add(oid(1), Dict{{Key: "A", Value: Integer(1)}}))
	s, err := b.Finalize()
	require.NoError(t, err)

	data, err := AppendIndirect(nil, ObjectID{Number: 20}, s)
	require.NoError(t, err)
	data, err = AppendIndirect(data, ObjectID{Number: 21, Generation: 2}, Array{Ref(20)})
	require.NoError(t, err)

	gotID, obj, n, err := ParseIndirect(data)
	require.NoError(t, err)
	require.Equal(t, ObjectID{Number: 20}, gotID)
	require.Equal(t, s, obj)

	gotID, obj, _, err = ParseIndirect(data[n:])
	require.NoError(t, err)
	require.Equal(t, ObjectID{Number: 21, Generation: 2}, gotID)
	require.Equal(t, Array{Ref(20)}, obj)
}

func TestParseIndirect_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"1 obj null endobj",
		"1 0 null endobj",
		"1 0 obj null",
		"1 70000 obj null endobj",
		"1 0 obj <</Length 50>>\nstream\nabc\nendstream\nendobj",
		"1 0 obj <</Length 3>>stream abc\nendstream\nendobj",
		"1 0 obj <</Length 1 0 R>>\nstream\nabc\nendstream\nendobj",
		"1 0 obj <</Length 2>>\nstream\nabc\nendstream\nendobj",
	} {
		_, _, _, err := ParseIndirect([]byte(in))
		require.Error(t, err, in)
	}
}

func TestFormat(t *testing.T) {
	require.Equal(t, "<</A [1 2 0 R]>>", Format(Dict{{Key: "A", Value: Array{Integer(1), Ref(2)}}}))
	require.Contains(t, Format(NewStream(Dict{}, nil)), "stream")
	require.Equal(t, "<nil>", Format(nil))
}
