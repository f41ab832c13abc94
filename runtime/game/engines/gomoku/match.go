package gomoku

import (
	"context"
	"sync"
	"time"

	"joy/common/log"
	"joy/core/domain/vo"
	"joy/runtime/game/engines"
)

type Mode string

const (
	ModePVP Mode = "pvp"
	ModeAI  Mode = "ai"
)

const (
	DefaultMinThink       = 400 * time.Millisecond
	DefaultAdvisorTimeout = time.Second
)

// Snapshot 对外展示的对局状态
type Snapshot struct {
	ID         string            `json:"id"`
	Mode       Mode              `json:"mode"`
	Difficulty vo.Difficulty     `json:"difficulty"`
	Size       int               `json:"size"`
	Board      string            `json:"board"`
	Turn       string            `json:"turn"`
	Winner     string            `json:"winner"`
	WinLine    []Point           `json:"winLine,omitempty"`
	LastMove   *Point            `json:"lastMove,omitempty"`
	Thinking   bool              `json:"thinking"`
	Finished   bool              `json:"finished"`
	Comment    string            `json:"comment,omitempty"`
	State      engines.GameState `json:"state"`
}

// Match 一局五子棋。真人执黑先行；AI 模式下电脑执白。
// 每次 Reset 递增 generation，旧的电脑思考结果一律丢弃。
type Match struct {
	mu         sync.Mutex
	id         string
	mode       Mode
	difficulty vo.Difficulty
	size       int

	board    *Board
	turn     Stone
	winner   Stone
	winLine  []Point
	lastMove *Point
	finished bool
	thinking bool
	comment  string

	generation uint64
	cancel     context.CancelFunc
	ctx        context.Context
	pending    sync.WaitGroup

	advisor        MoveAdvisor
	minThink       time.Duration
	advisorTimeout time.Duration
}

type MatchOption func(*Match)

func WithAdvisor(a MoveAdvisor) MatchOption {
	return func(m *Match) { m.advisor = a }
}

func WithDifficulty(d vo.Difficulty) MatchOption {
	return func(m *Match) { m.difficulty = d }
}

func WithBoardSize(size int) MatchOption {
	return func(m *Match) {
		if size > 0 {
			m.size = size
		}
	}
}

// WithThinkTiming 电脑最短用时与等待建议的上限
func WithThinkTiming(minThink, advisorTimeout time.Duration) MatchOption {
	return func(m *Match) {
		m.minThink = minThink
		m.advisorTimeout = advisorTimeout
	}
}

func NewMatch(id string, mode Mode, opts ...MatchOption) *Match {
	m := &Match{
		id:             id,
		mode:           mode,
		difficulty:     vo.DifficultyHard,
		size:           DefaultSize,
		minThink:       DefaultMinThink,
		advisorTimeout: DefaultAdvisorTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.resetLocked()
	return m
}

func (m *Match) ID() string { return m.id }

func (m *Match) resetLocked() {
	if m.cancel != nil {
		m.cancel()
	}
	m.generation++
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.board = NewBoard(m.size)
	m.turn = Black
	m.winner = Empty
	m.winLine = nil
	m.lastMove = nil
	m.finished = false
	m.thinking = false
	m.comment = ""
}

// Reset 清盘，正在进行的电脑思考作废
func (m *Match) Reset() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	log.Info("五子棋对局 %s 重置, generation=%d", m.id, m.generation)
	return m.snapshotLocked()
}

// Play 真人落子。AI 模式下轮到电脑时拒绝，并在真人落子后异步触发电脑应对。
func (m *Match) Play(row, col int) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.finished {
		return m.snapshotLocked(), engines.Violation(ErrGameOver)
	}
	if m.thinking {
		return m.snapshotLocked(), ErrThinking
	}
	if m.mode == ModeAI && m.turn == White {
		return m.snapshotLocked(), ErrNotYourTurn
	}
	if err := m.applyLocked(Point{Row: row, Col: col}); err != nil {
		log.Warn("五子棋对局 %s 落子被拒绝: %v", m.id, err)
		return m.snapshotLocked(), err
	}

	if m.mode == ModeAI && !m.finished && m.turn == White {
		m.thinking = true
		m.pending.Add(1)
		go m.think(m.ctx, m.generation, m.board.Clone(), m.minThink, m.advisorTimeout)
	}
	return m.snapshotLocked(), nil
}

func (m *Match) applyLocked(p Point) error {
	if err := m.board.Place(p.Row, p.Col, m.turn); err != nil {
		return err
	}
	m.lastMove = &p
	if line, ok := DetectWin(m.board, p.Row, p.Col, m.turn); ok {
		m.winner = m.turn
		m.winLine = line
		m.finished = true
		log.Info("五子棋对局 %s 结束, 胜方 %s", m.id, m.winner)
		return nil
	}
	if m.board.IsFull() {
		m.finished = true
		log.Info("五子棋对局 %s 和棋", m.id)
		return nil
	}
	m.turn = m.turn.Opponent()
	return nil
}

// think 在棋盘副本上计算电脑落点，凑足最短用时后回到锁内落子
func (m *Match) think(ctx context.Context, gen uint64, board *Board, minThink, advisorTimeout time.Duration) {
	defer m.pending.Done()
	start := time.Now()

	actx, cancel := context.WithTimeout(ctx, advisorTimeout)
	decision, ok := ChooseMove(actx, board, White, m.difficulty, m.advisor)
	cancel()

	if wait := minThink - time.Since(start); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		log.Debug("五子棋对局 %s 丢弃过期的电脑落子 generation=%d", m.id, gen)
		return
	}
	m.thinking = false
	if !ok {
		return
	}
	if decision.Reason != "" {
		m.comment = decision.Reason
	}
	if err := m.applyLocked(decision.Move); err != nil {
		// 建议点已在副本上校验过，这里失败说明状态被并发修改
		log.Error("五子棋对局 %s 电脑落子失败: %v", m.id, err)
	}
}

// SetTiming 热更新思考用时，下一次电脑落子生效
func (m *Match) SetTiming(minThink, advisorTimeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.minThink = minThink
	m.advisorTimeout = advisorTimeout
}

// WaitIdle 等待所有进行中的电脑思考结束
func (m *Match) WaitIdle() {
	m.pending.Wait()
}

// Close 作废进行中的电脑思考
func (m *Match) Close() {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	m.generation++
	m.mu.Unlock()
}

func (m *Match) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Match) snapshotLocked() Snapshot {
	s := Snapshot{
		ID:         m.id,
		Mode:       m.mode,
		Difficulty: m.difficulty,
		Size:       m.board.Size(),
		Board:      m.board.Serialize(),
		Turn:       m.turn.String(),
		Winner:     m.winner.String(),
		WinLine:    append([]Point(nil), m.winLine...),
		Thinking:   m.thinking,
		Finished:   m.finished,
		Comment:    m.comment,
		State:      engines.GameInProgress,
	}
	if m.finished {
		s.State = engines.GameFinished
	} else if m.board.IsEmpty() {
		s.State = engines.GameWaiting
	}
	if m.lastMove != nil {
		p := *m.lastMove
		s.LastMove = &p
	}
	return s
}
