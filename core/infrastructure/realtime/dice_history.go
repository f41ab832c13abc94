package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"joy/common/database"
	"joy/common/log"
	"joy/core/domain/entity"
	"joy/core/domain/repository"
)

const diceHistoryKey = "dice:history" // List: dice:history:{session}

// Lua 脚本：追加一条记录并截断到最近 cap 条
// KEYS[1]: 会话的 List key
// ARGV[1]: 记录 JSON
// ARGV[2]: cap
// 返回：截断后的长度
var appendRollScript = `
local key = KEYS[1]
local cap = tonumber(ARGV[2])
redis.call('RPUSH', key, ARGV[1])
if cap > 0 then
    redis.call('LTRIM', key, -cap, -1)
end
return redis.call('LLEN', key)
`

// RedisDiceHistoryRepository Redis List 实现的掷骰历史
type RedisDiceHistoryRepository struct {
	redis    *database.RedisManager
	capacity int
}

func NewRedisDiceHistoryRepository(redis *database.RedisManager, capacity int) repository.DiceHistoryRepository {
	return &RedisDiceHistoryRepository{redis: redis, capacity: capacity}
}

func (r *RedisDiceHistoryRepository) key(session string) string {
	return fmt.Sprintf("%s:%s", diceHistoryKey, session)
}

func (r *RedisDiceHistoryRepository) Append(ctx context.Context, session string, roll entity.DiceRoll) error {
	if session == "" {
		return repository.ErrEmptySession
	}
	data, err := json.Marshal(roll)
	if err != nil {
		return fmt.Errorf("序列化掷骰记录失败: %w", err)
	}
	n, err := r.redis.EvalScript(ctx, "dice_append", appendRollScript, []string{r.key(session)}, string(data), r.capacity)
	if err != nil {
		return fmt.Errorf("写入掷骰记录失败: %w", err)
	}
	log.Debug("会话 %s 追加掷骰记录，当前 %v 条", session, n)
	return nil
}

func (r *RedisDiceHistoryRepository) List(ctx context.Context, session string) ([]entity.DiceRoll, error) {
	if session == "" {
		return nil, repository.ErrEmptySession
	}
	items, err := r.redis.LRange(ctx, r.key(session), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("读取掷骰记录失败: %w", err)
	}
	rolls := make([]entity.DiceRoll, 0, len(items))
	for _, item := range items {
		var roll entity.DiceRoll
		if err := json.Unmarshal([]byte(item), &roll); err != nil {
			log.Warn("会话 %s 的掷骰记录无法解析，跳过: %v", session, err)
			continue
		}
		rolls = append(rolls, roll)
	}
	return rolls, nil
}
