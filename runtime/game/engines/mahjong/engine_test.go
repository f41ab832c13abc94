package mahjong

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joy/runtime/game/engines"
	"joy/runtime/game/share"
)

func newTestEngine(t *testing.T, cfg EngineConfig) *Engine {
	t.Helper()
	if cfg.Seed == 0 {
		cfg.Seed = 7
	}
	eg, err := NewEngine("test", cfg, NewSearcher(nil, nil))
	require.NoError(t, err)
	t.Cleanup(eg.Close)
	return eg
}

// settled 轮到真人座位、鸣牌窗口打开或终局
func settled(s Snapshot) bool {
	return s.Outcome != nil || s.Phase == TurnStateWaitClaims.String() ||
		(s.Phase == TurnStateWaitDiscard.String() && s.Turn == 0)
}

func TestEngineDrivesAutonomousSeats(t *testing.T) {
	eg := newTestEngine(t, EngineConfig{HumanSeats: []int{0}})
	ctx := context.Background()

	snap := eg.Snapshot(0)
	require.Equal(t, TurnStateWaitDiscard.String(), snap.Phase)
	require.Equal(t, 0, snap.Turn)
	if snap.Options != nil {
		require.NoError(t, eg.Claim(ctx, 0, ClaimPass))
	}

	hand := eg.Snapshot(0).Seats[0].Hand
	require.NoError(t, eg.Discard(ctx, 0, hand[0]))
	require.Eventually(t, func() bool { return settled(eg.Snapshot(0)) }, 2*time.Second, 5*time.Millisecond)

	eg.mu.RLock()
	defer eg.mu.RUnlock()
	assert.Equal(t, TileLimit, eg.table.TileCount())
}

func TestEngineRejectsInvalidInput(t *testing.T) {
	eg := newTestEngine(t, EngineConfig{HumanSeats: []int{0}, AISeatDelay: time.Hour})
	ctx := context.Background()

	assert.ErrorIs(t, eg.Discard(ctx, 1, Tile{Type: Man1, ID: -1}), ErrNotYourTurn)
	assert.ErrorIs(t, eg.Submit(ctx, nil), ErrUnknownEvent)
	assert.ErrorIs(t, eg.Submit(ctx, &share.ClaimEvent{SeatEvent: share.SeatEvent{Seat: 0}, Kind: "chi"}), ErrClaimNotAllowed)
}

func TestEngineResetInvalidatesTimers(t *testing.T) {
	eg := newTestEngine(t, EngineConfig{HumanSeats: []int{0}, AISeatDelay: time.Hour})
	ctx := context.Background()

	if eg.Snapshot(0).Options != nil {
		require.NoError(t, eg.Claim(ctx, 0, ClaimPass))
	}
	require.NoError(t, eg.Discard(ctx, 0, eg.Snapshot(0).Seats[0].Hand[0]))

	eg.mu.RLock()
	req, pending := eg.table.PendingTimer()
	eg.mu.RUnlock()

	gen := eg.Snapshot(0).Generation
	require.NoError(t, eg.Reset(ctx))
	after := eg.Snapshot(0)
	assert.Equal(t, gen+1, after.Generation)
	assert.Equal(t, 0, after.Turn)

	if pending {
		// 旧一局的计时事件送达后被忽略
		eg.NotifyEvent(&share.AutoDiscardEvent{SeatEvent: share.SeatEvent{Seat: req.Seat}, TimerTag: req.Tag})
		assert.ErrorIs(t, eg.Submit(ctx, &share.AutoDiscardEvent{SeatEvent: share.SeatEvent{Seat: req.Seat}, TimerTag: req.Tag}), ErrStaleEvent)
		assert.Equal(t, after, eg.Snapshot(0))
	}

	eg.mu.RLock()
	defer eg.mu.RUnlock()
	_, stillPending := eg.table.PendingTimer()
	assert.False(t, stillPending)
	assert.Nil(t, eg.timer)
}

func TestEngineSubscribe(t *testing.T) {
	eg := newTestEngine(t, EngineConfig{HumanSeats: []int{0}, AISeatDelay: time.Hour})
	ch, cancel := eg.Subscribe(0)
	defer cancel()

	first := <-ch
	assert.Equal(t, 0, first.Viewer)
	assert.NotEmpty(t, first.Seats[0].Hand)

	require.NoError(t, eg.Reset(context.Background()))
	select {
	case snap := <-ch:
		assert.Equal(t, first.Generation+1, snap.Generation)
	case <-time.After(time.Second):
		t.Fatal("no snapshot pushed after reset")
	}

	cancel()
	_, open := <-ch
	assert.False(t, open)
}

func TestSlowSubscriberKeepsLatestSnapshot(t *testing.T) {
	eg := newTestEngine(t, EngineConfig{HumanSeats: []int{0}, AISeatDelay: time.Hour})
	ch, cancel := eg.Subscribe(0)
	defer cancel()

	ctx := context.Background()
	for i := 0; i < 40; i++ {
		require.NoError(t, eg.Reset(ctx))
	}
	want := eg.Snapshot(0).Generation

	assert.Equal(t, subscriberBuffer, len(ch))
	var last Snapshot
	for len(ch) > 0 {
		last = <-ch
	}
	assert.Equal(t, want, last.Generation)
}

func TestAISeatDelayJitterIsSeeded(t *testing.T) {
	cfg := EngineConfig{HumanSeats: []int{0}, AISeatDelay: time.Hour, AISeatJitter: time.Minute, Seed: 9}
	a := newTestEngine(t, cfg)
	b := newTestEngine(t, cfg)

	draw := func(eg *Engine) []time.Duration {
		eg.mu.Lock()
		defer eg.mu.Unlock()
		out := make([]time.Duration, 8)
		for i := range out {
			out[i] = eg.aiSeatDelayLocked()
		}
		return out
	}
	first, second := draw(a), draw(b)
	assert.Equal(t, first, second)
	distinct := map[time.Duration]bool{}
	for _, d := range first {
		assert.GreaterOrEqual(t, d, time.Hour)
		assert.LessOrEqual(t, d, time.Hour+time.Minute)
		distinct[d] = true
	}
	assert.Greater(t, len(distinct), 1)

	a.SetTiming(time.Hour, 0, 0)
	assert.Equal(t, []time.Duration{time.Hour, time.Hour}, draw(a)[:2])
}

func TestEngineStrictSubmitPanicsAfterTerminal(t *testing.T) {
	eg := newTestEngine(t, EngineConfig{HumanSeats: []int{0}, AISeatDelay: time.Hour})
	eg.mu.Lock()
	eg.table.deck.wallIndex = len(eg.table.deck.wall)
	eg.mu.Unlock()

	ctx := context.Background()
	if eg.Snapshot(0).Options != nil {
		require.NoError(t, eg.Claim(ctx, 0, ClaimPass))
	}
	hand := eg.Snapshot(0).Seats[0].Hand
	err := eg.Discard(ctx, 0, hand[0])
	require.NoError(t, err)
	require.NotNil(t, eg.Snapshot(0).Outcome)

	assert.ErrorIs(t, eg.Discard(ctx, 0, hand[1]), ErrGameOver)

	engines.StrictContracts.Store(true)
	defer engines.StrictContracts.Store(false)
	assert.Panics(t, func() { _ = eg.Discard(ctx, 0, hand[1]) })

	// 事件循环仍然可用
	require.NoError(t, eg.Reset(ctx))
	assert.Nil(t, eg.Snapshot(0).Outcome)
}

func TestEngineClosed(t *testing.T) {
	eg, err := NewEngine("closed", EngineConfig{HumanSeats: []int{0}, AISeatDelay: time.Hour, Seed: 3}, nil)
	require.NoError(t, err)
	eg.Close()
	eg.Close()
	assert.ErrorIs(t, eg.Reset(context.Background()), ErrEngineClosed)
	assert.Equal(t, "mahjong(closed)", eg.String())
}
