package mahjong

import (
	"context"

	"joy/common/log"
	"joy/core/domain/vo"
)

const fallbackExplanation = "随缘出牌。"

// DiscardAdvisor 外部出牌建议者
type DiscardAdvisor interface {
	SuggestDiscard(ctx context.Context, req vo.DiscardRequest) (*vo.DiscardAdvice, error)
}

// DiscardRecommendation Advised 为 false 表示使用了兜底的第一张牌
type DiscardRecommendation struct {
	Tile        TileType `json:"tile"`
	Name        string   `json:"name"`
	Explanation string   `json:"explanation"`
	Advised     bool     `json:"advised"`
}

// AdviseDiscard 询问出牌建议；建议者失败或给出手里没有的牌时推荐第一张牌
func AdviseDiscard(ctx context.Context, hand []TileType, advisor DiscardAdvisor) (DiscardRecommendation, error) {
	if len(hand) == 0 {
		return DiscardRecommendation{}, ErrEmptyHand
	}
	fallback := DiscardRecommendation{Tile: hand[0], Name: hand[0].String(), Explanation: fallbackExplanation}
	if advisor == nil {
		return fallback, nil
	}

	names := make([]string, len(hand))
	for i, t := range hand {
		names[i] = t.String()
	}
	advice, err := advisor.SuggestDiscard(ctx, vo.DiscardRequest{Tiles: names})
	if err != nil {
		log.Warn("出牌建议获取失败，推荐第一张牌: %v", err)
		return fallback, nil
	}
	if advice == nil {
		return fallback, nil
	}
	tt, err := ParseTileType(advice.Discard)
	if err != nil || !containsType(hand, tt) {
		log.Debug("出牌建议 %q 不在手牌中，推荐第一张牌", advice.Discard)
		return fallback, nil
	}
	return DiscardRecommendation{Tile: tt, Name: tt.String(), Explanation: advice.Explanation, Advised: true}, nil
}

func containsType(hand []TileType, tt TileType) bool {
	for _, t := range hand {
		if t == tt {
			return true
		}
	}
	return false
}
