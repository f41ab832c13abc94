package cache

import (
	"context"
	"fmt"
	"time"

	"joy/common/cache"
	"joy/core/domain/repository"
)

// RoomCodeCache 房间码查询的本地缓存，写操作直接透传给底层仓储
type RoomCodeCache struct {
	repository.RoomCodeRepository
	cache   *cache.GeneralCache
	codeKey string
}

func NewRoomCodeCache(next repository.RoomCodeRepository, ttl time.Duration) (*RoomCodeCache, error) {
	generalCache, err := cache.NewGeneralCache(1<<12, ttl)
	if err != nil {
		return nil, fmt.Errorf("创建房间码缓存失败: %w", err)
	}
	return &RoomCodeCache{RoomCodeRepository: next, cache: generalCache, codeKey: "room:code"}, nil
}

func (c *RoomCodeCache) key(code string) string {
	return fmt.Sprintf("%s:%s", c.codeKey, code)
}

func (c *RoomCodeCache) Lookup(ctx context.Context, code string) (string, error) {
	if host, ok := c.cache.GetString(c.key(code)); ok {
		return host, nil
	}
	host, err := c.RoomCodeRepository.Lookup(ctx, code)
	if err != nil {
		return "", err
	}
	c.cache.Set(c.key(code), host)
	return host, nil
}

func (c *RoomCodeCache) Release(ctx context.Context, code string) error {
	c.cache.Delete(c.key(code))
	return c.RoomCodeRepository.Release(ctx, code)
}

func (c *RoomCodeCache) Close() {
	c.cache.Close()
}
