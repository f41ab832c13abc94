package share

// Tile 牌的传输格式，Type 为 0-33 的牌种，ID 小于 0 表示任意一张
type Tile struct {
	Type int `json:"type"`
	ID   int `json:"id"`
}

// GameEvent 牌桌事件，统一进入引擎的事件队列串行处理
type GameEvent interface {
	GetSeat() int
	GetEventType() string
}

const (
	EventDiscard            = "Discard"
	EventClaimSubmitted     = "ClaimSubmitted"
	EventClaimWindowExpired = "ClaimWindowExpired"
	EventAutoDiscard        = "AutoDiscard"
	EventReset              = "Reset"
)

// 鸣牌/自摸选择
const (
	ClaimWin  = "win"
	ClaimPong = "pong"
	ClaimKong = "kong"
	ClaimPass = "pass"
)

type SeatEvent struct {
	Seat int `json:"seat"`
}

func (e *SeatEvent) GetSeat() int {
	return e.Seat
}

// TimerTag 计时器产生的事件携带的版本，与牌桌当前版本不一致即作废
type TimerTag struct {
	Generation uint64 `json:"generation"`
	Step       uint64 `json:"step"`
}

type DiscardEvent struct {
	SeatEvent
	Tile Tile `json:"tile"`
}

func (e *DiscardEvent) GetEventType() string {
	return EventDiscard
}

// ClaimEvent 对弃牌的响应，或对自己摸牌的自摸/杠选择；pass 表示放弃
type ClaimEvent struct {
	SeatEvent
	Kind string `json:"kind"`
}

func (e *ClaimEvent) GetEventType() string {
	return EventClaimSubmitted
}

// ClaimWindowExpiredEvent 鸣牌窗口超时，未响应的座位视为放弃
type ClaimWindowExpiredEvent struct {
	TimerTag
}

func (e *ClaimWindowExpiredEvent) GetSeat() int {
	return -1
}

func (e *ClaimWindowExpiredEvent) GetEventType() string {
	return EventClaimWindowExpired
}

// AutoDiscardEvent 电脑座位思考延迟结束
type AutoDiscardEvent struct {
	SeatEvent
	TimerTag
}

func (e *AutoDiscardEvent) GetEventType() string {
	return EventAutoDiscard
}

type ResetEvent struct{}

func (e *ResetEvent) GetSeat() int {
	return -1
}

func (e *ResetEvent) GetEventType() string {
	return EventReset
}
