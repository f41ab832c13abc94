package mahjong

// PlayerImage 一个座位的牌：手牌、亮出的牌组、弃牌堆
type PlayerImage struct {
	SeatIndex   int
	Human       bool
	Tiles       []Tile // 手中的牌
	DiscardPile []Tile // 弃牌堆，待决的最新弃牌也在末尾
	Melds       []Meld // 碰、杠
	NewestTile  *Tile  // 最新摸的牌
}

func NewPlayerImage(seatIndex int, human bool) *PlayerImage {
	return &PlayerImage{
		SeatIndex:   seatIndex,
		Human:       human,
		Tiles:       make([]Tile, 0, HandSize+1),
		DiscardPile: make([]Tile, 0, 24),
		Melds:       make([]Meld, 0, 4),
	}
}

func (p *PlayerImage) AddTile(tile Tile) {
	p.Tiles = append(p.Tiles, tile)
}

func (p *PlayerImage) DrawTile(tile Tile) {
	p.Tiles = append(p.Tiles, tile)
	newest := tile
	p.NewestTile = &newest
}

// findTile ID 小于 0 时匹配任意一张同种牌
func (p *PlayerImage) findTile(tile Tile) int {
	for i := range p.Tiles {
		if p.Tiles[i].Type != tile.Type {
			continue
		}
		if tile.ID < 0 || p.Tiles[i].ID == tile.ID {
			return i
		}
	}
	return -1
}

func (p *PlayerImage) RemoveTile(tile Tile) (Tile, bool) {
	i := p.findTile(tile)
	if i < 0 {
		return Tile{}, false
	}
	removed := p.Tiles[i]
	p.Tiles = append(p.Tiles[:i], p.Tiles[i+1:]...)
	return removed, true
}

// RemoveType 取出 n 张同种牌，不足时不修改手牌
func (p *PlayerImage) RemoveType(tt TileType, n int) ([]Tile, bool) {
	if p.CountType(tt) < n {
		return nil, false
	}
	out := make([]Tile, 0, n)
	for len(out) < n {
		t, _ := p.RemoveTile(Tile{Type: tt, ID: -1})
		out = append(out, t)
	}
	return out, true
}

func (p *PlayerImage) CountType(tt TileType) int {
	n := 0
	for _, t := range p.Tiles {
		if t.Type == tt {
			n++
		}
	}
	return n
}

func (p *PlayerImage) DiscardTile(tile Tile) (Tile, bool) {
	removed, ok := p.RemoveTile(tile)
	if !ok {
		return Tile{}, false
	}
	p.DiscardPile = append(p.DiscardPile, removed)
	p.NewestTile = nil
	return removed, true
}

// RetractDiscard 被鸣走的弃牌从牌河末尾移除
func (p *PlayerImage) RetractDiscard() (Tile, bool) {
	if len(p.DiscardPile) == 0 {
		return Tile{}, false
	}
	last := p.DiscardPile[len(p.DiscardPile)-1]
	p.DiscardPile = p.DiscardPile[:len(p.DiscardPile)-1]
	return last, true
}

// PongIndex 指定牌的碰在 Melds 中的下标，没有返回 -1
func (p *PlayerImage) PongIndex(tt TileType) int {
	for i, m := range p.Melds {
		if m.Kind == MeldPong && m.Type() == tt {
			return i
		}
	}
	return -1
}

func (p *PlayerImage) Hand34() Hand34 {
	return Hand34FromTiles(p.Tiles)
}

// TileCount 手牌、牌组、牌河合计
func (p *PlayerImage) TileCount() int {
	n := len(p.Tiles) + len(p.DiscardPile)
	for _, m := range p.Melds {
		n += len(m.Tiles)
	}
	return n
}

func (p *PlayerImage) SortedTiles() []Tile {
	out := append([]Tile(nil), p.Tiles...)
	SortTiles(out)
	return out
}
