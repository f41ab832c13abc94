package gomoku

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"joy/common/log"
	"joy/core/domain/vo"
)

const GameKind = "Gomoku"

// MoveAdvisor 外部落子建议者（生成式模型等），结果只作参考
type MoveAdvisor interface {
	SuggestMove(ctx context.Context, req vo.MoveRequest) (*vo.MoveAdvice, error)
}

// Decision 最终落点；Advised 表示采纳了外部建议
type Decision struct {
	Move    Point
	Reason  string
	Advised bool
}

var digitsRe = regexp.MustCompile(`\d+`)

// ParseMove 取字符串中的前两个整数作为 (row,col)
func ParseMove(s string) (Point, error) {
	nums := digitsRe.FindAllString(s, 2)
	if len(nums) < 2 {
		return Point{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	row, err := strconv.Atoi(nums[0])
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	col, err := strconv.Atoi(nums[1])
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q", ErrBadMove, s)
	}
	return Point{Row: row, Col: col}, nil
}

// ChooseMove 先算本地最佳点，再询问 advisor。
// 建议点必须是棋盘内的空位，且本地最佳点分数低于 UrgentScore 才采纳；
// advisor 出错、超时、返回格式不对时静默使用本地结果。
func ChooseMove(ctx context.Context, b *Board, mover Stone, difficulty vo.Difficulty, advisor MoveAdvisor) (Decision, bool) {
	local, ok := SelectMove(b, mover)
	if !ok {
		return Decision{}, false
	}
	d := Decision{Move: local}
	if advisor == nil {
		return d, true
	}

	advice, err := advisor.SuggestMove(ctx, vo.MoveRequest{
		GameKind:   GameKind,
		Board:      b.Serialize(),
		Difficulty: string(difficulty),
	})
	if err != nil {
		log.Warn("五子棋建议获取失败，使用本地结果: %v", err)
		return d, true
	}
	if advice == nil {
		return d, true
	}
	d.Reason = advice.Reason

	p, err := ParseMove(advice.Move)
	if err != nil {
		log.Debug("忽略建议: %v", err)
		return d, true
	}
	if b.InBounds(p.Row, p.Col) && b.At(p.Row, p.Col) == Empty && Evaluate(b, local.Row, local.Col, mover) < UrgentScore {
		d.Move = p
		d.Advised = true
	}
	return d, true
}
