package mahjong

// SeatView 座位的公开信息；只有观察者自己的手牌可见
type SeatView struct {
	Seat     int    `json:"seat"`
	Human    bool   `json:"human"`
	Hand     []Tile `json:"hand,omitempty"`
	HandSize int    `json:"handSize"`
	Melds    []Meld `json:"melds"`
	Discards []Tile `json:"discards"`
}

type DiscardView struct {
	Seat int  `json:"seat"`
	Tile Tile `json:"tile"`
}

// Snapshot 某个座位视角下的牌桌
type Snapshot struct {
	Generation  uint64              `json:"generation"`
	Phase       string              `json:"phase"`
	Turn        int                 `json:"turn"`
	Remaining   int                 `json:"remaining"`
	Viewer      int                 `json:"viewer"`
	Seats       [SeatCount]SeatView `json:"seats"`
	NewestTile  *Tile               `json:"newestTile,omitempty"`
	LastDiscard *DiscardView        `json:"lastDiscard,omitempty"`
	Options     *ClaimOptions       `json:"options,omitempty"`
	Waits       []TileType          `json:"waits,omitempty"`
	Outcome     *Outcome            `json:"outcome,omitempty"`
}

// Snapshot viewer 越界时不展示任何手牌
func (t *Table) Snapshot(viewer int) Snapshot {
	s := Snapshot{
		Generation: t.generation,
		Phase:      t.turn.GetState().String(),
		Turn:       t.turn.GetCurrentPlayer(),
		Remaining:  t.deck.Remaining(),
		Viewer:     viewer,
	}
	for seat, p := range t.players {
		v := SeatView{
			Seat:     seat,
			Human:    p.Human,
			HandSize: len(p.Tiles),
			Melds:    cloneMelds(p.Melds),
			Discards: append([]Tile{}, p.DiscardPile...),
		}
		// 终局后亮牌
		if seat == viewer || t.outcome != nil {
			v.Hand = p.SortedTiles()
		}
		s.Seats[seat] = v
	}
	if t.lastDiscard.Valid {
		s.LastDiscard = &DiscardView{Seat: t.lastDiscard.Seat, Tile: t.lastDiscard.Tile}
	}
	if t.outcome != nil {
		o := *t.outcome
		s.Outcome = &o
	}
	if !validSeat(viewer) {
		return s
	}

	p := t.players[viewer]
	if p.NewestTile != nil {
		tile := *p.NewestTile
		s.NewestTile = &tile
	}
	switch {
	case t.claims != nil:
		if opts, ok := t.claims.OptionsFor(viewer); ok {
			s.Options = &opts
		}
	case t.self != nil && t.self.Seat == viewer:
		opts := t.self.Options
		s.Options = &opts
	}
	s.Waits = t.searcher.Waits(p.Hand34())
	return s
}

func cloneMelds(melds []Meld) []Meld {
	out := make([]Meld, len(melds))
	for i, m := range melds {
		out[i] = Meld{Kind: m.Kind, Tiles: append([]Tile(nil), m.Tiles...), From: m.From}
	}
	return out
}
