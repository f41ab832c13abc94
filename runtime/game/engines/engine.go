package engines

import (
	"sync/atomic"

	"joy/common/log"
)

type EngineType int32

const (
	GomokuEngine    EngineType = iota // 五子棋
	Mahjong4PEngine                   // 四人麻将
)

func (e EngineType) String() string {
	switch e {
	case GomokuEngine:
		return "gomoku"
	case Mahjong4PEngine:
		return "mahjong"
	default:
		return "unknown"
	}
}

type GameState int

const (
	GameWaiting    GameState = iota // 等待开始
	GameInProgress                  // 进行中
	GameFinished                    // 结束
)

func (s GameState) String() string {
	switch s {
	case GameWaiting:
		return "waiting"
	case GameInProgress:
		return "in_progress"
	case GameFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// StrictContracts 打开后，终局后的修改等契约违例直接 panic（调试模式）
var StrictContracts atomic.Bool

// Violation 报告契约违例：严格模式 panic，否则记录日志并原样返回错误
func Violation(err error) error {
	if StrictContracts.Load() {
		panic(err)
	}
	log.Warn("契约违例: %v", err)
	return err
}
