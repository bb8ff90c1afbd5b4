package cborstream

import (
	"testing"

	"github.com/danmuck/forgesync/internal/trackable"
	"github.com/stretchr/testify/require"
)

func reader(t *testing.T, w *Writer) *Reader {
	t.Helper()
	b, err := w.Bytes()
	require.NoError(t, err)
	return NewReader(b)
}

func TestPrimitiveRoundTrip(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteBool(true))
	require.NoError(t, w.WriteInt(-1))
	require.NoError(t, w.WriteInt(1<<40))
	require.NoError(t, w.WriteString("Shivan Dragon"))

	r := reader(t, w)
	b, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, b)
	n, err := r.ReadInt()
	require.NoError(t, err)
	require.Equal(t, -1, n)
	n, err = r.ReadInt()
	require.NoError(t, err)
	require.Equal(t, 1<<40, n)
	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "Shivan Dragon", s)
	require.NoError(t, r.Close())
}

func TestCollectionNilEmptyAndReuse(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteCollection(nil))
	require.NoError(t, w.WriteCollection(trackable.NewCollection(trackable.KindPlayer)))
	require.NoError(t, w.WriteCollection(trackable.NewCollection(trackable.KindPlayer, 2, 1)))

	r := reader(t, w)
	c, err := r.ReadCollection(trackable.KindPlayer, trackable.NewCollection(trackable.KindPlayer, 9))
	require.NoError(t, err)
	require.Nil(t, c)

	c, err = r.ReadCollection(trackable.KindPlayer, nil)
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, 0, c.Len())

	prev := trackable.NewCollection(trackable.KindPlayer, 5)
	c, err = r.ReadCollection(trackable.KindPlayer, prev)
	require.NoError(t, err)
	require.Same(t, prev, c)
	require.Equal(t, []int{2, 1}, c.IDs())
}

func TestTypeMismatchIsAnError(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteString("12"))
	_, err := reader(t, w).ReadInt()
	require.Error(t, err)
}

func TestExhaustedAndTrailing(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteInt(3))
	r := reader(t, w)
	require.ErrorIs(t, r.Close(), ErrTrailingData)
	_, err := r.ReadInt()
	require.NoError(t, err)
	require.NoError(t, r.Close())
	_, err = r.ReadInt()
	require.Error(t, err)
}

func TestDeterministicOutput(t *testing.T) {
	write := func() []byte {
		w := NewWriter()
		require.NoError(t, trackable.StringMapType.Serialize(w, map[string]string{"b": "2", "a": "1", "c": "3"}))
		require.NoError(t, trackable.CardViewRef.Serialize(w, trackable.CardRef(11)))
		b, err := w.Bytes()
		require.NoError(t, err)
		return b
	}
	require.Equal(t, write(), write())
}
