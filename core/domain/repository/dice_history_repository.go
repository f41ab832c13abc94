package repository

import (
	"context"

	"joy/core/domain/entity"
)

// DiceHistoryRepository 按会话记录掷骰历史，只保留最近 cap 条
type DiceHistoryRepository interface {
	// Append 追加一条记录并截断到最近 cap 条
	Append(ctx context.Context, session string, roll entity.DiceRoll) error

	// List 按时间顺序返回会话的全部记录，未知会话返回空列表
	List(ctx context.Context, session string) ([]entity.DiceRoll, error)
}
