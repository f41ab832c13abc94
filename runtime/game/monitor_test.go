package game

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itoa(n int) string { return strconv.Itoa(n) }

type fixedStats struct{ games, players int }

func (f fixedStats) GetStats() (int, int) { return f.games, f.players }

type sweepingStats struct {
	fixedStats
	sweeps atomic.Int32
}

func (s *sweepingStats) SweepIdle() int {
	s.sweeps.Add(1)
	return 0
}

func TestCalculateLoad(t *testing.T) {
	li := LoadInfo{GameCount: 50, PlayerCount: 200, CPUUsage: 10, MemUsage: 50}
	assert.InDelta(t, 3+10+12.5+25, li.CalculateLoad(), 1e-9)
	assert.Zero(t, (&LoadInfo{}).CalculateLoad())
}

func TestMonitorCollectsAndStops(t *testing.T) {
	m := NewMonitor(fixedStats{games: 3, players: 5}, time.Hour)
	done := make(chan struct{})
	go func() {
		m.Start(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return m.Last().GameCount == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 5, m.Last().PlayerCount)

	m.Stop()
	m.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}

func TestMonitorSweepsOnEachReport(t *testing.T) {
	src := &sweepingStats{fixedStats: fixedStats{games: 1}}
	m := NewMonitor(src, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	require.Eventually(t, func() bool { return src.sweeps.Load() >= 2 }, time.Second, 5*time.Millisecond)
}
