package memory

import (
	"context"
	"sync"
	"time"

	"joy/core/domain/repository"
)

type roomEntry struct {
	hostID   string
	expireAt time.Time // 零值表示不过期
}

// RoomCodeRepository 进程内的房间码表，过期条目在访问时清理
type RoomCodeRepository struct {
	mu    sync.Mutex
	now   func() time.Time
	rooms map[string]roomEntry
}

func NewRoomCodeRepository() *RoomCodeRepository {
	return &RoomCodeRepository{
		now:   time.Now,
		rooms: make(map[string]roomEntry),
	}
}

// liveLocked 返回未过期的条目，顺便删除过期的
func (r *RoomCodeRepository) liveLocked(code string) (roomEntry, bool) {
	e, ok := r.rooms[code]
	if !ok {
		return roomEntry{}, false
	}
	if !e.expireAt.IsZero() && !r.now().Before(e.expireAt) {
		delete(r.rooms, code)
		return roomEntry{}, false
	}
	return e, true
}

func (r *RoomCodeRepository) Reserve(_ context.Context, code, hostID string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.liveLocked(code); taken {
		return false, nil
	}
	e := roomEntry{hostID: hostID}
	if ttl > 0 {
		e.expireAt = r.now().Add(ttl)
	}
	r.rooms[code] = e
	return true, nil
}

func (r *RoomCodeRepository) Lookup(_ context.Context, code string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.liveLocked(code)
	if !ok {
		return "", repository.ErrRoomNotFound
	}
	return e.hostID, nil
}

func (r *RoomCodeRepository) Release(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, code)
	return nil
}
