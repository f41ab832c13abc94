package mahjong

type TurnState int

const (
	TurnStateIdle        TurnState = iota // 未开局
	TurnStateWaitDiscard                  // 等待出牌（可能附带自摸/杠的选择）
	TurnStateWaitClaims                   // 等待其他座位对弃牌的响应
	TurnStateTerminal                     // 和牌或荒牌
)

func (s TurnState) String() string {
	switch s {
	case TurnStateIdle:
		return "IDLE"
	case TurnStateWaitDiscard:
		return "AWAIT_DISCARD"
	case TurnStateWaitClaims:
		return "CLAIM_WINDOW"
	case TurnStateTerminal:
		return "TERMINAL"
	default:
		return "UNKNOWN"
	}
}

// TurnManager 回合指针与阶段。Step 在每次进入新阶段时递增，用于识别过期的计时事件。
type TurnManager struct {
	TurnPointer int
	State       TurnState
	Step        uint64
}

func NewTurnManager() *TurnManager {
	return &TurnManager{State: TurnStateIdle}
}

// NextSeat 逆时针下家
func NextSeat(seat int) int {
	return (seat + 1) % SeatCount
}

// SeatDistance 从 from 出发按座次到 to 的距离（1-3）
func SeatDistance(from, to int) int {
	return (to - from + SeatCount) % SeatCount
}

func (tm *TurnManager) GetCurrentPlayer() int {
	return tm.TurnPointer
}

func (tm *TurnManager) GetState() TurnState {
	return tm.State
}

func (tm *TurnManager) EnterDiscardPhase(seat int) {
	tm.TurnPointer = seat
	tm.State = TurnStateWaitDiscard
	tm.Step++
}

func (tm *TurnManager) EnterClaimPhase() {
	tm.State = TurnStateWaitClaims
	tm.Step++
}

func (tm *TurnManager) EnterTerminal() {
	tm.State = TurnStateTerminal
	tm.Step++
}

func (tm *TurnManager) Reset() {
	tm.TurnPointer = 0
	tm.State = TurnStateIdle
	tm.Step++
}
