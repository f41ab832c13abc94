package mahjong

import (
	"joy/common/cache"
)

type Hand34 [NumTileTypes]uint8

func Hand34FromTiles(tiles []Tile) Hand34 {
	var h Hand34
	for _, t := range tiles {
		h[t.Type]++
	}
	return h
}

func Hand34FromTypes(types []TileType) Hand34 {
	var h Hand34
	for _, t := range types {
		h[t]++
	}
	return h
}

func (h Hand34) Size() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

func (h Hand34) key() string {
	b := make([]byte, NumTileTypes)
	for i, c := range h {
		b[i] = byte(c)
	}
	return string(b)
}

// IsWinningHand 张数为 3n+2，且能拆成一个雀头加若干刻子/顺子
func IsWinningHand(tiles []Tile) bool {
	return IsWinning34(Hand34FromTiles(tiles))
}

// IsWinning34 枚举雀头，其余按最小牌优先：先试刻子再试顺子，失败回溯
func IsWinning34(h Hand34) bool {
	if h.Size()%3 != 2 {
		return false
	}
	for j := 0; j < NumTileTypes; j++ {
		if h[j] < 2 {
			continue
		}
		work := h
		work[j] -= 2
		if canFormMelds(work) {
			return true
		}
	}
	return false
}

// canFormMelds h 按值传递，递归中各层互不影响
func canFormMelds(h Hand34) bool {
	i := firstNonZero(h)
	if i < 0 {
		return true
	}
	if h[i] >= 3 {
		work := h
		work[i] -= 3
		if canFormMelds(work) {
			return true
		}
	}
	if startsRun(h, i) {
		work := h
		work[i]--
		work[i+1]--
		work[i+2]--
		if canFormMelds(work) {
			return true
		}
	}
	return false
}

func firstNonZero(h Hand34) int {
	for k := 0; k < NumTileTypes; k++ {
		if h[k] > 0 {
			return k
		}
	}
	return -1
}

// startsRun i、i+1、i+2 同花色数牌且都有
func startsRun(h Hand34, i int) bool {
	t := TileType(i)
	if !t.IsNumbered() || t.Rank() > 7 {
		return false
	}
	return h[i+1] > 0 && h[i+2] > 0
}

type GroupKind string

const (
	GroupPair    GroupKind = "pair"
	GroupTriplet GroupKind = "triplet"
	GroupRun     GroupKind = "run"
)

// Group 拆解中的一组，Start 为组内最小的牌
type Group struct {
	Kind  GroupKind
	Start TileType
}

// Decompositions 列出全部合法拆法，每种拆法以雀头开头
func Decompositions(h Hand34) [][]Group {
	if h.Size()%3 != 2 {
		return nil
	}
	var out [][]Group
	for j := 0; j < NumTileTypes; j++ {
		if h[j] < 2 {
			continue
		}
		work := h
		work[j] -= 2
		prefix := []Group{{Kind: GroupPair, Start: TileType(j)}}
		collectMelds(work, prefix, &out)
	}
	return out
}

func collectMelds(h Hand34, acc []Group, out *[][]Group) {
	i := firstNonZero(h)
	if i < 0 {
		*out = append(*out, append([]Group(nil), acc...))
		return
	}
	if h[i] >= 3 {
		work := h
		work[i] -= 3
		collectMelds(work, append(acc, Group{Kind: GroupTriplet, Start: TileType(i)}), out)
	}
	if startsRun(h, i) {
		work := h
		work[i]--
		work[i+1]--
		work[i+2]--
		collectMelds(work, append(acc, Group{Kind: GroupRun, Start: TileType(i)}), out)
	}
}

// Searcher 和牌判定与听牌枚举的缓存前端，key 为完整的牌型计数
type Searcher struct {
	agari *cache.GeneralCache
	waits *cache.GeneralCache
}

// NewSearcher 传入 nil 时不缓存
func NewSearcher(agari, waits *cache.GeneralCache) *Searcher {
	return &Searcher{agari: agari, waits: waits}
}

func (s *Searcher) IsWinning(h Hand34) bool {
	if s == nil || s.agari == nil {
		return IsWinning34(h)
	}
	key := h.key()
	if v, ok := s.agari.GetBool(key); ok {
		return v
	}
	ok := IsWinning34(h)
	s.agari.Set(key, ok)
	return ok
}

// Waits 3n+1 张手牌还差哪些牌和牌；已经用满 4 张的牌不算
func (s *Searcher) Waits(h13 Hand34) []TileType {
	if h13.Size()%3 != 1 {
		return nil
	}
	var key string
	if s != nil && s.waits != nil {
		key = h13.key()
		if v, ok := s.waits.Get(key); ok {
			if waits, ok := v.([]TileType); ok {
				return append([]TileType(nil), waits...)
			}
		}
	}

	var waits []TileType
	for t := 0; t < NumTileTypes; t++ {
		if h13[t] >= CopiesPerType {
			continue
		}
		work := h13
		work[t]++
		if s.IsWinning(work) {
			waits = append(waits, TileType(t))
		}
	}

	if key != "" {
		s.waits.Set(key, append([]TileType(nil), waits...))
	}
	return waits
}
