package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardPlace(t *testing.T) {
	b := NewBoard(5)
	require.NoError(t, b.Place(0, 0, Black))
	assert.ErrorIs(t, b.Place(0, 0, White), ErrOccupied)
	assert.ErrorIs(t, b.Place(-1, 0, White), ErrOutOfRange)
	assert.ErrorIs(t, b.Place(0, 5, White), ErrOutOfRange)
	assert.Equal(t, Black, b.At(0, 0))
	assert.Equal(t, Empty, b.At(9, 9))
	assert.False(t, b.IsEmpty())
}

func TestBoardSerialize(t *testing.T) {
	b := NewBoard(3)
	require.NoError(t, b.Place(0, 1, Black))
	require.NoError(t, b.Place(2, 2, White))
	assert.Equal(t, ".B.\n...\n..W", b.Serialize())
	assert.Equal(t, Point{1, 1}, b.Center())
}

func TestBoardCloneIsIndependent(t *testing.T) {
	b := NewBoard(5)
	cp := b.Clone()
	require.NoError(t, cp.Place(2, 2, Black))
	assert.True(t, b.IsEmpty())
	assert.Equal(t, Black, cp.At(2, 2))
}

func TestDefaultSize(t *testing.T) {
	assert.Equal(t, DefaultSize, NewBoard(0).Size())
	assert.Equal(t, Point{6, 6}, NewBoard(0).Center())
}
