package mahjong

import "errors"

var (
	ErrGameOver        = errors.New("本局已结束")
	ErrNotYourTurn     = errors.New("还没轮到该座位出牌")
	ErrTileNotInHand   = errors.New("手中没有这张牌")
	ErrClaimPending    = errors.New("等待鸣牌响应中")
	ErrClaimNotAllowed = errors.New("当前不能进行该操作")
	ErrUnknownTile     = errors.New("无法识别的牌")
	ErrUnknownEvent    = errors.New("不支持的事件")
	ErrStaleEvent      = errors.New("过期的计时事件")
	ErrInvalidSeat     = errors.New("无效的座位")
	ErrEngineClosed    = errors.New("牌桌已关闭")
	ErrEmptyHand       = errors.New("手牌为空")
	ErrDiscardMismatch = errors.New("弃牌堆与待决弃牌不一致")
)
