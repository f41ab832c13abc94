package memory

import (
	"context"
	"sync"

	"joy/core/domain/entity"
	"joy/core/domain/repository"
)

// DiceHistoryRepository 进程内的掷骰历史，重启即丢失
type DiceHistoryRepository struct {
	mu       sync.RWMutex
	capacity int
	sessions map[string][]entity.DiceRoll
}

func NewDiceHistoryRepository(capacity int) repository.DiceHistoryRepository {
	return &DiceHistoryRepository{
		capacity: capacity,
		sessions: make(map[string][]entity.DiceRoll),
	}
}

func (r *DiceHistoryRepository) Append(_ context.Context, session string, roll entity.DiceRoll) error {
	if session == "" {
		return repository.ErrEmptySession
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rolls := append(r.sessions[session], roll)
	if r.capacity > 0 && len(rolls) > r.capacity {
		rolls = append([]entity.DiceRoll(nil), rolls[len(rolls)-r.capacity:]...)
	}
	r.sessions[session] = rolls
	return nil
}

func (r *DiceHistoryRepository) List(_ context.Context, session string) ([]entity.DiceRoll, error) {
	if session == "" {
		return nil, repository.ErrEmptySession
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.DiceRoll{}, r.sessions[session]...), nil
}
