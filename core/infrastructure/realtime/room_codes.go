package realtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"joy/common/database"
	"joy/core/domain/repository"

	"github.com/redis/go-redis/v9"
)

const roomCodeKey = "room:code" // String: room:code:{code} -> hostID

// RedisRoomCodeRepository SETNX 占用房间码，过期交给 Redis
type RedisRoomCodeRepository struct {
	redis *database.RedisManager
}

func NewRedisRoomCodeRepository(redis *database.RedisManager) repository.RoomCodeRepository {
	return &RedisRoomCodeRepository{redis: redis}
}

func (r *RedisRoomCodeRepository) key(code string) string {
	return fmt.Sprintf("%s:%s", roomCodeKey, code)
}

func (r *RedisRoomCodeRepository) Reserve(ctx context.Context, code, hostID string, ttl time.Duration) (bool, error) {
	ok, err := r.redis.SetNX(ctx, r.key(code), hostID, ttl)
	if err != nil {
		return false, fmt.Errorf("占用房间码失败: %w", err)
	}
	return ok, nil
}

func (r *RedisRoomCodeRepository) Lookup(ctx context.Context, code string) (string, error) {
	host, err := r.redis.Get(ctx, r.key(code))
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrRoomNotFound
	}
	if err != nil {
		return "", fmt.Errorf("查询房间码失败: %w", err)
	}
	return host, nil
}

func (r *RedisRoomCodeRepository) Release(ctx context.Context, code string) error {
	return r.redis.Del(ctx, r.key(code))
}
