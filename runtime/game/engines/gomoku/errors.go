package gomoku

import "errors"

var (
	ErrOutOfRange  = errors.New("落子超出棋盘范围")
	ErrOccupied    = errors.New("该位置已有棋子")
	ErrGameOver    = errors.New("对局已结束")
	ErrNotYourTurn = errors.New("还没轮到你")
	ErrThinking    = errors.New("电脑思考中")
	ErrBadMove     = errors.New("无法解析建议坐标")
)
