package game

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"joy/common/log"
	"joy/core/domain/repository"
	"joy/core/domain/vo"
)

const (
	minRoomCode     = 100
	maxRoomCode     = 999
	maxCodeAttempts = 64
)

// RoomManager 分配三位房间码并把加入者配对到房主
type RoomManager struct {
	mu   sync.Mutex
	rng  *rand.Rand
	repo repository.RoomCodeRepository
	ttl  time.Duration
}

func NewRoomManager(repo repository.RoomCodeRepository, rng *rand.Rand, ttl time.Duration) *RoomManager {
	return &RoomManager{repo: repo, rng: rng, ttl: ttl}
}

func (rm *RoomManager) nextCode() string {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return strconv.Itoa(minRoomCode + rm.rng.Intn(maxRoomCode-minRoomCode+1))
}

// CreateRoom 随机挑选未占用的房间码登记房主
func (rm *RoomManager) CreateRoom(ctx context.Context, hostID string) (vo.RoomTicket, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := rm.nextCode()
		ok, err := rm.repo.Reserve(ctx, code, hostID, rm.ttl)
		if err != nil {
			return vo.RoomTicket{}, err
		}
		if ok {
			log.Info("RoomManager 创建房间 %s, 房主 %s", code, hostID)
			return vo.RoomTicket{Code: code, IsHost: true, HostID: hostID}, nil
		}
	}
	log.Warn("RoomManager 连续 %d 次未找到空闲房间码", maxCodeAttempts)
	return vo.RoomTicket{}, ErrNoRoomCode
}

// ValidRoomCode 三位数字 100-999
func ValidRoomCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	n, err := strconv.Atoi(code)
	return err == nil && n >= minRoomCode && n <= maxRoomCode
}

func (rm *RoomManager) JoinRoom(ctx context.Context, code string) (vo.RoomTicket, error) {
	if !ValidRoomCode(code) {
		return vo.RoomTicket{}, fmt.Errorf("%w: %q", ErrBadRoomCode, code)
	}
	host, err := rm.repo.Lookup(ctx, code)
	if err != nil {
		return vo.RoomTicket{}, err
	}
	log.Info("RoomManager 加入房间 %s", code)
	return vo.RoomTicket{Code: code, IsHost: false, HostID: host}, nil
}

func (rm *RoomManager) CloseRoom(ctx context.Context, code string) error {
	if !ValidRoomCode(code) {
		return fmt.Errorf("%w: %q", ErrBadRoomCode, code)
	}
	return rm.repo.Release(ctx, code)
}
