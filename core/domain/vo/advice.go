package vo

// MoveRequest 五子棋落子建议请求，Board 为每行一串 B/W/. 的棋盘
type MoveRequest struct {
	GameKind   string `json:"gameKind"`
	Board      string `json:"board"`
	Difficulty string `json:"difficulty"`
}

// MoveAdvice 外部建议，Move 形如 "6,7"，只取前两个整数
type MoveAdvice struct {
	Move   string `json:"move"`
	Reason string `json:"reason"`
}

// DiscardRequest 麻将出牌建议请求，Tiles 为手牌名称列表，如 "5m"、"East"
type DiscardRequest struct {
	Tiles []string `json:"tiles"`
}

type DiscardAdvice struct {
	Discard     string `json:"discard"`
	Explanation string `json:"explanation"`
}

// AdvisorReply NATS 应答信封，Error 非空时 Data 无效
type AdvisorReply struct {
	Error   string         `json:"error,omitempty"`
	Move    *MoveAdvice    `json:"move,omitempty"`
	Discard *DiscardAdvice `json:"discard,omitempty"`
}

// Difficulty 难度档位
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty 未知档位按 hard 处理
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return Difficulty(s)
	default:
		return DifficultyHard
	}
}
