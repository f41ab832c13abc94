package repository

import (
	"context"
	"time"
)

// RoomCodeRepository 三位房间码到房主的映射，带过期时间
type RoomCodeRepository interface {
	// Reserve 房间码未被占用时登记房主，返回是否登记成功
	Reserve(ctx context.Context, code, hostID string, ttl time.Duration) (bool, error)

	// Lookup 查询房主，不存在或已过期返回 ErrRoomNotFound
	Lookup(ctx context.Context, code string) (string, error)

	Release(ctx context.Context, code string) error
}
