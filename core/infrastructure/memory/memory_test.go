package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joy/core/domain/entity"
	"joy/core/domain/repository"
)

func TestDiceHistoryKeepsMostRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewDiceHistoryRepository(3)
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Append(ctx, "s1", entity.DiceRoll{Faces: []int{i}}))
	}
	require.NoError(t, repo.Append(ctx, "s2", entity.DiceRoll{Faces: []int{6, 6}}))

	rolls, err := repo.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, rolls, 3)
	assert.Equal(t, []int{3}, rolls[0].Faces)
	assert.Equal(t, []int{5}, rolls[2].Faces)

	other, err := repo.List(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, other, 1)

	empty, err := repo.List(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.ErrorIs(t, repo.Append(ctx, "", entity.DiceRoll{}), repository.ErrEmptySession)
}

func TestRoomCodesExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1000, 0)
	repo := NewRoomCodeRepository()
	repo.now = func() time.Time { return now }

	ok, err := repo.Reserve(ctx, "123", "host-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Reserve(ctx, "123", "host-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	host, err := repo.Lookup(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "host-a", host)

	now = now.Add(time.Minute)
	_, err = repo.Lookup(ctx, "123")
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)

	ok, err = repo.Reserve(ctx, "123", "host-b", 0)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, repo.Release(ctx, "123"))
	_, err = repo.Lookup(ctx, "123")
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}
