package trackable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectionKeepsInsertionOrderWithoutDuplicates(t *testing.T) {
	c := NewCollection(KindCard, 3, 1, 3, 2, -4)
	require.Equal(t, []int{3, 1, 2}, c.IDs())
	require.True(t, c.Contains(1))
	require.True(t, c.Remove(1))
	require.False(t, c.Remove(1))
	require.Equal(t, []int{3, 2}, c.IDs())
	require.Equal(t, []Ref{CardRef(3), CardRef(2)}, c.Refs())
}

func TestCollectionDefaultIsNilNotEmpty(t *testing.T) {
	require.Nil(t, CardViewCollectionType.Default())
	require.Nil(t, PlayerViewCollectionType.Default())
}

func TestCollectionRoundTripDistinguishesNilAndEmpty(t *testing.T) {
	got, err := roundTrip(CardViewCollectionType, nil, nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = roundTrip(CardViewCollectionType, NewCollection(KindCard), nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 0, got.Len())
}

func TestCollectionDecodeReusesPrevious(t *testing.T) {
	prev := NewCollection(KindPlayer, 1, 2)
	got, err := roundTrip(PlayerViewCollectionType, NewCollection(KindPlayer, 2, 4), prev)
	require.NoError(t, err)
	require.Same(t, prev, got)
	require.Equal(t, []int{2, 4}, prev.IDs())
}

func TestCollectionRejectsWrongKind(t *testing.T) {
	var m memStream
	err := CardViewCollectionType.Serialize(&m, NewCollection(KindPlayer, 1))
	require.ErrorIs(t, err, ErrKindMismatch)
}

func TestCollectionEqual(t *testing.T) {
	var none *Collection
	require.True(t, none.Equal(nil))
	require.False(t, none.Equal(NewCollection(KindCard)))
	require.True(t, NewCollection(KindCard, 1, 2).Equal(NewCollection(KindCard, 1, 2)))
	require.False(t, NewCollection(KindCard, 1, 2).Equal(NewCollection(KindCard, 2, 1)))
	require.False(t, NewCollection(KindCard, 1).Equal(NewCollection(KindPlayer, 1)))
}

func TestNilCollectionAccessorsAreSafe(t *testing.T) {
	var c *Collection
	require.Equal(t, KindNone, c.Kind())
	require.False(t, c.Remove(1))
	require.False(t, c.Contains(1))
	require.Zero(t, c.Len())
	require.Nil(t, c.IDs())
	require.Nil(t, c.Refs())
}
