package game

import (
	"context"
	"sync"
	"time"

	"joy/common/log"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// StatsSource 提供对局数与玩家数
type StatsSource interface {
	GetStats() (gameCount int, playerCount int)
}

// Sweeper 可选：每次采集时顺带回收空闲对局
type Sweeper interface {
	SweepIdle() int
}

// Monitor 定期采集负载并写日志
type Monitor struct {
	source         StatsSource
	updateInterval time.Duration
	stopCh         chan struct{}
	stopOnce       sync.Once

	mu   sync.RWMutex
	last LoadInfo
}

func NewMonitor(source StatsSource, updateInterval time.Duration) *Monitor {
	return &Monitor{
		source:         source,
		updateInterval: updateInterval,
		stopCh:         make(chan struct{}),
	}
}

// Start 阻塞运行，直到 ctx 取消或 Stop
func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.updateInterval)
	defer ticker.Stop()

	m.reportLoad()
	for {
		select {
		case <-ctx.Done():
			log.Info("Monitor 收到停止信号，退出监控")
			return
		case <-m.stopCh:
			log.Info("Monitor 收到停止信号，退出监控")
			return
		case <-ticker.C:
			m.reportLoad()
		}
	}
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// Last 最近一次采集结果
func (m *Monitor) Last() LoadInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

func (m *Monitor) reportLoad() {
	if s, ok := m.source.(Sweeper); ok {
		s.SweepIdle()
	}
	info := m.collectLoadInfo()
	m.mu.Lock()
	m.last = info
	m.mu.Unlock()
	log.Info("Monitor 负载: Load=%.2f, Games=%d, Players=%d, CPU=%.2f%%, Mem=%.2f%%",
		info.CalculateLoad(), info.GameCount, info.PlayerCount, info.CPUUsage, info.MemUsage)
}

func (m *Monitor) collectLoadInfo() LoadInfo {
	gameCount, playerCount := m.source.GetStats()
	return LoadInfo{
		GameCount:   gameCount,
		PlayerCount: playerCount,
		CPUUsage:    cpuUsage(),
		MemUsage:    memUsage(),
	}
}

// cpuUsage 距上次调用以来的整机 CPU 使用率，采集失败记 0
func cpuUsage() float64 {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		log.Debug("Monitor 采集 CPU 失败: %v", err)
		return 0
	}
	return percents[0]
}

func memUsage() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Debug("Monitor 采集内存失败: %v", err)
		return 0
	}
	return vm.UsedPercent
}
