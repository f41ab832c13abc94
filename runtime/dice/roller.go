package dice

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"joy/common/log"
	"joy/core/domain/entity"
	"joy/core/domain/repository"
)

const (
	MinDice     = 1
	MaxDice     = 6
	Faces       = 6
	HistoryCap  = 500
	defaultDice = 1
)

var ErrDiceCount = errors.New("dice count out of range")

// Roller 掷骰子，随机数由调用方注入；*rand.Rand 非并发安全，这里加锁
type Roller struct {
	mu      sync.Mutex
	rng     *rand.Rand
	history repository.DiceHistoryRepository
	now     func() time.Time
}

func NewRoller(rng *rand.Rand, history repository.DiceHistoryRepository) *Roller {
	return &Roller{rng: rng, history: history, now: time.Now}
}

// Roll 掷 count 个骰子并记入会话历史；count 为 0 时掷一个
func (r *Roller) Roll(ctx context.Context, session string, count int) (entity.DiceRoll, error) {
	if count == 0 {
		count = defaultDice
	}
	if count < MinDice || count > MaxDice {
		return entity.DiceRoll{}, fmt.Errorf("%w: %d", ErrDiceCount, count)
	}
	if session == "" {
		return entity.DiceRoll{}, repository.ErrEmptySession
	}

	faces := make([]int, count)
	r.mu.Lock()
	for i := range faces {
		faces[i] = r.rng.Intn(Faces) + 1
	}
	r.mu.Unlock()

	roll := entity.DiceRoll{Faces: faces, RolledAt: r.now()}
	if err := r.history.Append(ctx, session, roll); err != nil {
		return entity.DiceRoll{}, err
	}
	log.Debug("会话 %s 掷骰 %v", session, faces)
	return roll, nil
}

func (r *Roller) History(ctx context.Context, session string) ([]entity.DiceRoll, error) {
	return r.history.List(ctx, session)
}
