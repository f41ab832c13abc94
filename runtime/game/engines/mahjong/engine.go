package mahjong

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"joy/common/log"
	"joy/runtime/game/share"
)

const (
	DefaultAISeatDelay  = 1500 * time.Millisecond
	DefaultAISeatJitter = 500 * time.Millisecond
	eventQueueSize      = 256
)

// EngineConfig ClaimWindow 为 0 时鸣牌窗口一直等到所有座位响应
type EngineConfig struct {
	HumanSeats   []int
	AISeatDelay  time.Duration
	AISeatJitter time.Duration // 在 AISeatDelay 之上随机追加 [0, AISeatJitter]
	ClaimWindow  time.Duration
	Seed         int64 // 0 按时间取种子
}

type result struct {
	err      error
	panicked any
}

type envelope struct {
	event share.GameEvent
	reply chan result
}

// Engine 一张麻将桌。所有事件经 gameEvents 串行交给 actorLoop，
// 计时器只负责把事件送回同一个队列。
type Engine struct {
	id string

	mu          sync.RWMutex
	table       *Table
	aiDelay     time.Duration
	aiJitter    time.Duration
	claimWindow time.Duration
	timer       *time.Timer
	timerTag    share.TimerTag
	timerKind   TimerKind

	gameEvents chan envelope
	gameDone   chan struct{}
	actorExit  chan struct{}
	closed     atomic.Bool
	closeOnce  sync.Once

	pusher *pusher
}

func NewEngine(id string, cfg EngineConfig, searcher *Searcher) (*Engine, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	table, err := NewTable(TableConfig{HumanSeats: cfg.HumanSeats}, rand.New(rand.NewSource(seed)), searcher)
	if err != nil {
		return nil, err
	}
	eg := &Engine{
		id:          id,
		table:       table,
		aiDelay:     cfg.AISeatDelay,
		aiJitter:    cfg.AISeatJitter,
		claimWindow: cfg.ClaimWindow,
		gameEvents:  make(chan envelope, eventQueueSize),
		gameDone:    make(chan struct{}),
		actorExit:   make(chan struct{}),
		pusher:      newPusher(),
	}

	eg.mu.Lock()
	eg.table.Reset()
	eg.armTimerLocked()
	eg.mu.Unlock()

	go eg.actorLoop()
	return eg, nil
}

func (eg *Engine) ID() string { return eg.id }

// actorLoop 游戏事件循环
func (eg *Engine) actorLoop() {
	defer close(eg.actorExit)
	for {
		select {
		case <-eg.gameDone:
			return
		case env := <-eg.gameEvents:
			eg.processEvent(env)
		}
	}
}

func (eg *Engine) processEvent(env envelope) {
	res := eg.apply(env.event)
	if env.reply != nil {
		env.reply <- res
		return
	}
	if res.panicked != nil {
		log.Error("牌桌 %s 处理 %s 时契约违例: %v", eg.id, env.event.GetEventType(), res.panicked)
	}
}

func (eg *Engine) apply(event share.GameEvent) (res result) {
	eg.mu.Lock()
	defer func() {
		if r := recover(); r != nil {
			res = result{panicked: r}
		}
		eg.armTimerLocked()
		eg.mu.Unlock()
		if res.err == nil && res.panicked == nil {
			eg.broadcast()
		}
	}()

	err := eg.table.Apply(event)
	switch {
	case errors.Is(err, ErrStaleEvent):
		log.Debug("牌桌 %s 忽略过期事件 %s", eg.id, event.GetEventType())
	case err != nil:
		log.Warn("牌桌 %s 拒绝事件 %s(seat=%d): %v", eg.id, event.GetEventType(), event.GetSeat(), err)
	default:
		log.Debug("牌桌 %s 处理事件 %s(seat=%d) -> %s", eg.id, event.GetEventType(), event.GetSeat(), eg.table.State())
	}
	return result{err: err}
}

// Submit 事件入队并等待处理结果。严格模式下的契约违例在调用方重新 panic。
func (eg *Engine) Submit(ctx context.Context, event share.GameEvent) error {
	if event == nil {
		return ErrUnknownEvent
	}
	if eg.closed.Load() {
		return ErrEngineClosed
	}
	reply := make(chan result, 1)
	select {
	case eg.gameEvents <- envelope{event: event, reply: reply}:
	case <-eg.gameDone:
		return ErrEngineClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case res := <-reply:
		if res.panicked != nil {
			panic(res.panicked)
		}
		return res.err
	case <-eg.gameDone:
		return ErrEngineClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NotifyEvent 不等待结果，计时器回调使用
func (eg *Engine) NotifyEvent(event share.GameEvent) {
	if event == nil || eg.closed.Load() {
		return
	}
	select {
	case <-eg.gameDone:
	case eg.gameEvents <- envelope{event: event}:
	}
}

// armTimerLocked 按牌桌当前阶段调度计时器；同一阶段不重复调度
func (eg *Engine) armTimerLocked() {
	req, ok := eg.table.PendingTimer()
	if ok && eg.timer != nil && req.Tag == eg.timerTag && req.Kind == eg.timerKind {
		return
	}
	if eg.timer != nil {
		eg.timer.Stop()
		eg.timer = nil
	}
	if !ok || eg.closed.Load() {
		return
	}

	var event share.GameEvent
	var delay time.Duration
	switch req.Kind {
	case TimerAutoDiscard:
		delay = eg.aiSeatDelayLocked()
		event = &share.AutoDiscardEvent{SeatEvent: share.SeatEvent{Seat: req.Seat}, TimerTag: req.Tag}
	case TimerClaimWindow:
		if eg.claimWindow <= 0 {
			return
		}
		delay = eg.claimWindow
		event = &share.ClaimWindowExpiredEvent{TimerTag: req.Tag}
	default:
		return
	}
	eg.timerTag, eg.timerKind = req.Tag, req.Kind
	eg.timer = time.AfterFunc(delay, func() { eg.NotifyEvent(event) })
}

// aiSeatDelayLocked 抖动取自牌桌的随机源，同一种子下序列可复现
func (eg *Engine) aiSeatDelayLocked() time.Duration {
	if eg.aiJitter <= 0 {
		return eg.aiDelay
	}
	return eg.aiDelay + time.Duration(eg.table.rng.Int63n(int64(eg.aiJitter)+1))
}

// SetTiming 热更新电脑出牌延迟与鸣牌窗口，下一次调度生效
func (eg *Engine) SetTiming(aiDelay, aiJitter, claimWindow time.Duration) {
	eg.mu.Lock()
	defer eg.mu.Unlock()
	eg.aiDelay = aiDelay
	eg.aiJitter = aiJitter
	eg.claimWindow = claimWindow
}

// Snapshot seat 座位视角的牌桌快照
func (eg *Engine) Snapshot(seat int) Snapshot {
	eg.mu.RLock()
	defer eg.mu.RUnlock()
	return eg.table.Snapshot(seat)
}

// Reset 重新开局
func (eg *Engine) Reset(ctx context.Context) error {
	return eg.Submit(ctx, &share.ResetEvent{})
}

func (eg *Engine) Discard(ctx context.Context, seat int, tile Tile) error {
	return eg.Submit(ctx, &share.DiscardEvent{
		SeatEvent: share.SeatEvent{Seat: seat},
		Tile:      share.Tile{Type: int(tile.Type), ID: tile.ID},
	})
}

func (eg *Engine) Claim(ctx context.Context, seat int, kind ClaimKind) error {
	return eg.Submit(ctx, &share.ClaimEvent{SeatEvent: share.SeatEvent{Seat: seat}, Kind: kind.String()})
}

// Close 停止事件循环与计时器，关闭所有订阅
func (eg *Engine) Close() {
	eg.closeOnce.Do(func() {
		eg.closed.Store(true)
		close(eg.gameDone)
		<-eg.actorExit
		eg.mu.Lock()
		if eg.timer != nil {
			eg.timer.Stop()
			eg.timer = nil
		}
		eg.mu.Unlock()
		eg.pusher.closeAll()
		log.Info("牌桌 %s 已关闭", eg.id)
	})
}

// HumanCount 真人座位数
func (eg *Engine) HumanCount() int {
	eg.mu.RLock()
	defer eg.mu.RUnlock()
	n := 0
	for _, p := range eg.table.players {
		if p.Human {
			n++
		}
	}
	return n
}

func (eg *Engine) String() string {
	return fmt.Sprintf("mahjong(%s)", eg.id)
}
