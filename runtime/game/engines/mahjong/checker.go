package mahjong

import (
	"fmt"
	"strings"

	"joy/runtime/game/share"
)

// ClaimKind 数值越大优先级越高：和 > 碰 > 杠
type ClaimKind int

const (
	ClaimPass ClaimKind = iota
	ClaimKong
	ClaimPong
	ClaimWin
)

func (k ClaimKind) String() string {
	switch k {
	case ClaimPass:
		return share.ClaimPass
	case ClaimKong:
		return share.ClaimKong
	case ClaimPong:
		return share.ClaimPong
	case ClaimWin:
		return share.ClaimWin
	default:
		return "unknown"
	}
}

func ParseClaimKind(s string) (ClaimKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case share.ClaimPass:
		return ClaimPass, nil
	case share.ClaimKong:
		return ClaimKong, nil
	case share.ClaimPong:
		return ClaimPong, nil
	case share.ClaimWin:
		return ClaimWin, nil
	default:
		return ClaimPass, fmt.Errorf("%w: %q", ErrClaimNotAllowed, s)
	}
}

// ClaimOptions 某个座位当前可选的操作，放弃总是允许
type ClaimOptions struct {
	Win  bool `json:"win"`
	Pong bool `json:"pong"`
	Kong bool `json:"kong"`
}

func (o ClaimOptions) Any() bool {
	return o.Win || o.Pong || o.Kong
}

func (o ClaimOptions) Allows(k ClaimKind) bool {
	switch k {
	case ClaimPass:
		return true
	case ClaimWin:
		return o.Win
	case ClaimPong:
		return o.Pong
	case ClaimKong:
		return o.Kong
	default:
		return false
	}
}

// canWinOn 手牌加上 tile 是否和牌
func (t *Table) canWinOn(seat int, tile Tile) bool {
	h := t.players[seat].Hand34()
	h[tile.Type]++
	return t.searcher.IsWinning(h)
}

// discardOptions 对别家弃牌：能和、手里有两张可碰、正好三张可杠
func (t *Table) discardOptions(seat int, tile Tile) ClaimOptions {
	n := t.players[seat].CountType(tile.Type)
	return ClaimOptions{
		Win:  t.canWinOn(seat, tile),
		Pong: n >= 2,
		Kong: n == 3,
	}
}

// selfOptions 摸牌后：14 张和牌，或摸到的牌可以暗杠/加杠
func (t *Table) selfOptions(seat int) ClaimOptions {
	p := t.players[seat]
	return ClaimOptions{
		Win:  t.searcher.IsWinning(p.Hand34()),
		Kong: t.canSelfKong(seat),
	}
}

func (t *Table) canSelfKong(seat int) bool {
	p := t.players[seat]
	if p.NewestTile == nil {
		return false
	}
	drawn := p.NewestTile.Type
	return p.CountType(drawn) == CopiesPerType || p.PongIndex(drawn) >= 0
}
