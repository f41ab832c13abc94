package game

import (
	"fmt"
	"sync"
	"time"

	"joy/common/config"
	"joy/common/log"
	"joy/core/domain/vo"
	"joy/runtime/game/engines/gomoku"
	"joy/runtime/game/engines/mahjong"

	"github.com/google/uuid"
)

// SessionManager 管理进程内所有五子棋对局和麻将牌桌
type SessionManager struct {
	mu      sync.RWMutex
	gomoku  map[string]*gomoku.Match
	mahjong map[string]*mahjong.Engine
	touched map[string]time.Time
	now     func() time.Time

	conf           config.GameConf
	moveAdvisor    gomoku.MoveAdvisor
	discardAdvisor mahjong.DiscardAdvisor
	searcher       *mahjong.Searcher
}

func NewSessionManager(conf config.GameConf, moveAdvisor gomoku.MoveAdvisor, discardAdvisor mahjong.DiscardAdvisor, searcher *mahjong.Searcher) *SessionManager {
	return &SessionManager{
		gomoku:         make(map[string]*gomoku.Match),
		mahjong:        make(map[string]*mahjong.Engine),
		touched:        make(map[string]time.Time),
		now:            time.Now,
		conf:           conf,
		moveAdvisor:    moveAdvisor,
		discardAdvisor: discardAdvisor,
		searcher:       searcher,
	}
}

func (sm *SessionManager) DiscardAdvisor() mahjong.DiscardAdvisor {
	return sm.discardAdvisor
}

// CreateGomoku 新建五子棋对局；difficulty 为空时用配置的默认档位
func (sm *SessionManager) CreateGomoku(mode, difficulty string) (*gomoku.Match, error) {
	m := gomoku.Mode(mode)
	if m == "" {
		m = gomoku.ModeAI
	}
	if m != gomoku.ModeAI && m != gomoku.ModePVP {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if difficulty == "" {
		difficulty = sm.conf.Difficulty
	}
	opts := []gomoku.MatchOption{
		gomoku.WithBoardSize(sm.conf.BoardSize),
		gomoku.WithDifficulty(vo.ParseDifficulty(difficulty)),
		gomoku.WithThinkTiming(sm.conf.MinThink(), sm.conf.AdvisorTimeout()),
	}
	if sm.moveAdvisor != nil {
		opts = append(opts, gomoku.WithAdvisor(sm.moveAdvisor))
	}
	match := gomoku.NewMatch(uuid.NewString(), m, opts...)
	sm.gomoku[match.ID()] = match
	sm.touched[match.ID()] = sm.now()
	log.Info("SessionManager 创建五子棋对局 %s, mode=%s", match.ID(), m)
	return match, nil
}

// Gomoku 查找对局并刷新活跃时间
func (sm *SessionManager) Gomoku(id string) (*gomoku.Match, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	m, ok := sm.gomoku[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sm.touched[id] = sm.now()
	return m, nil
}

// CreateMahjong 新建麻将牌桌，真人座位与计时来自配置
func (sm *SessionManager) CreateMahjong() (*mahjong.Engine, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	eg, err := mahjong.NewEngine(uuid.NewString(), mahjong.EngineConfig{
		HumanSeats:   sm.conf.HumanSeats,
		AISeatDelay:  sm.conf.AISeatDelay(),
		AISeatJitter: sm.conf.AISeatJitter(),
		ClaimWindow:  sm.conf.ClaimWindow(),
		Seed:         sm.conf.Seed,
	}, sm.searcher)
	if err != nil {
		return nil, err
	}
	sm.mahjong[eg.ID()] = eg
	sm.touched[eg.ID()] = sm.now()
	log.Info("SessionManager 创建麻将牌桌 %s, 真人座位 %v", eg.ID(), sm.conf.HumanSeats)
	return eg, nil
}

func (sm *SessionManager) Mahjong(id string) (*mahjong.Engine, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	eg, ok := sm.mahjong[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sm.touched[id] = sm.now()
	return eg, nil
}

// Remove 关闭并删除对局，id 可以是任意一种游戏
func (sm *SessionManager) Remove(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.removeLocked(id)
}

func (sm *SessionManager) removeLocked(id string) error {
	delete(sm.touched, id)
	if m, ok := sm.gomoku[id]; ok {
		m.Close()
		delete(sm.gomoku, id)
		log.Info("SessionManager 删除五子棋对局 %s", id)
		return nil
	}
	if eg, ok := sm.mahjong[id]; ok {
		eg.Close()
		delete(sm.mahjong, id)
		log.Info("SessionManager 删除麻将牌桌 %s", id)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
}

// ApplyGameConf 热更新：新对局使用新配置，已有对局只更新计时
func (sm *SessionManager) ApplyGameConf(conf config.GameConf) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.conf = conf
	for _, m := range sm.gomoku {
		m.SetTiming(conf.MinThink(), conf.AdvisorTimeout())
	}
	for _, eg := range sm.mahjong {
		eg.SetTiming(conf.AISeatDelay(), conf.AISeatJitter(), conf.ClaimWindow())
	}
	log.Info("SessionManager 应用新的 game 配置: %+v", conf)
}

// SweepIdle 回收超过 IdleMinutes 未被访问的对局，返回回收数量
func (sm *SessionManager) SweepIdle() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	idle := sm.conf.IdleTimeout()
	if idle <= 0 {
		return 0
	}
	deadline := sm.now().Add(-idle)
	swept := 0
	for id, at := range sm.touched {
		if at.Before(deadline) && sm.removeLocked(id) == nil {
			swept++
		}
	}
	if swept > 0 {
		log.Info("SessionManager 回收 %d 个空闲对局", swept)
	}
	return swept
}

// GetStats 对局数与真人玩家数，供 Monitor 使用
func (sm *SessionManager) GetStats() (gameCount int, playerCount int) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	gameCount = len(sm.gomoku) + len(sm.mahjong)
	for _, m := range sm.gomoku {
		if m.Snapshot().Mode == gomoku.ModePVP {
			playerCount += 2
		} else {
			playerCount++
		}
	}
	for _, eg := range sm.mahjong {
		playerCount += eg.HumanCount()
	}
	return gameCount, playerCount
}

// Close 关闭所有对局
func (sm *SessionManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, m := range sm.gomoku {
		m.Close()
		delete(sm.gomoku, id)
	}
	for id, eg := range sm.mahjong {
		eg.Close()
		delete(sm.mahjong, id)
	}
	clear(sm.touched)
}

// DefaultGameConf 未加载配置文件时使用，与配置默认值一致
func DefaultGameConf() config.GameConf {
	return config.GameConf{
		BoardSize:        gomoku.DefaultSize,
		MinThinkMs:       int(gomoku.DefaultMinThink / time.Millisecond),
		AdvisorTimeoutMs: int(gomoku.DefaultAdvisorTimeout / time.Millisecond),
		Difficulty:       string(vo.DifficultyHard),
		AISeatDelayMs:    int(mahjong.DefaultAISeatDelay / time.Millisecond),
		AISeatJitterMs:   int(mahjong.DefaultAISeatJitter / time.Millisecond),
		HumanSeats:       []int{0},
		IdleMinutes:      30,
	}
}
