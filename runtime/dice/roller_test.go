package dice

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joy/core/domain/repository"
	"joy/core/infrastructure/memory"
)

func TestRollFacesInRange(t *testing.T) {
	ctx := context.Background()
	r := NewRoller(rand.New(rand.NewSource(1)), memory.NewDiceHistoryRepository(HistoryCap))
	for count := MinDice; count <= MaxDice; count++ {
		roll, err := r.Roll(ctx, "s", count)
		require.NoError(t, err)
		require.Len(t, roll.Faces, count)
		for _, f := range roll.Faces {
			assert.GreaterOrEqual(t, f, 1)
			assert.LessOrEqual(t, f, Faces)
		}
	}
	hist, err := r.History(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, hist, MaxDice)
}

func TestRollDeterministicWithSeed(t *testing.T) {
	ctx := context.Background()
	a := NewRoller(rand.New(rand.NewSource(42)), memory.NewDiceHistoryRepository(HistoryCap))
	b := NewRoller(rand.New(rand.NewSource(42)), memory.NewDiceHistoryRepository(HistoryCap))
	ra, err := a.Roll(ctx, "s", 3)
	require.NoError(t, err)
	rb, err := b.Roll(ctx, "s", 3)
	require.NoError(t, err)
	assert.Equal(t, ra.Faces, rb.Faces)
}

func TestRollRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	r := NewRoller(rand.New(rand.NewSource(1)), memory.NewDiceHistoryRepository(HistoryCap))

	_, err := r.Roll(ctx, "s", 7)
	assert.ErrorIs(t, err, ErrDiceCount)
	_, err = r.Roll(ctx, "s", -1)
	assert.ErrorIs(t, err, ErrDiceCount)
	_, err = r.Roll(ctx, "", 1)
	assert.ErrorIs(t, err, repository.ErrEmptySession)

	roll, err := r.Roll(ctx, "s", 0)
	require.NoError(t, err)
	assert.Len(t, roll.Faces, 1)
}

func TestHistoryCapped(t *testing.T) {
	ctx := context.Background()
	r := NewRoller(rand.New(rand.NewSource(1)), memory.NewDiceHistoryRepository(HistoryCap))
	for i := 0; i < HistoryCap+20; i++ {
		_, err := r.Roll(ctx, "s", 2)
		require.NoError(t, err)
	}
	hist, err := r.History(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, hist, HistoryCap)
}
