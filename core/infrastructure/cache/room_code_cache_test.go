package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joy/core/domain/repository"
	"joy/core/infrastructure/memory"
)

type countingRooms struct {
	*memory.RoomCodeRepository
	lookups int
}

func (c *countingRooms) Lookup(ctx context.Context, code string) (string, error) {
	c.lookups++
	return c.RoomCodeRepository.Lookup(ctx, code)
}

func TestRoomCodeCache(t *testing.T) {
	ctx := context.Background()
	backing := &countingRooms{RoomCodeRepository: memory.NewRoomCodeRepository()}
	c, err := NewRoomCodeCache(backing, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	ok, err := c.Reserve(ctx, "456", "host", time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	host, err := c.Lookup(ctx, "456")
	require.NoError(t, err)
	assert.Equal(t, "host", host)
	c.cache.Wait()

	host, err = c.Lookup(ctx, "456")
	require.NoError(t, err)
	assert.Equal(t, "host", host)
	assert.Equal(t, 1, backing.lookups)

	require.NoError(t, c.Release(ctx, "456"))
	_, err = c.Lookup(ctx, "456")
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}
