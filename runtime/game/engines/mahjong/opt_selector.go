package mahjong

// ClaimWindow 一张弃牌的响应收集，只在出牌到结算之间存在
type ClaimWindow struct {
	Tile      Tile
	From      int
	Eligible  map[int]ClaimOptions
	Responses map[int]ClaimKind
}

// calculateClaimWindow 只有真人座位参与鸣牌，电脑座位不鸣牌
func (t *Table) calculateClaimWindow(from int, tile Tile) *ClaimWindow {
	w := &ClaimWindow{
		Tile:      tile,
		From:      from,
		Eligible:  make(map[int]ClaimOptions),
		Responses: make(map[int]ClaimKind),
	}
	for seat := 0; seat < SeatCount; seat++ {
		if seat == from || !t.players[seat].Human {
			continue
		}
		if opts := t.discardOptions(seat, tile); opts.Any() {
			w.Eligible[seat] = opts
		}
	}
	if len(w.Eligible) == 0 {
		return nil
	}
	return w
}

func (w *ClaimWindow) record(seat int, kind ClaimKind) error {
	opts, ok := w.Eligible[seat]
	if !ok {
		return ErrClaimNotAllowed
	}
	if _, done := w.Responses[seat]; done {
		return ErrClaimNotAllowed
	}
	if !opts.Allows(kind) {
		return ErrClaimNotAllowed
	}
	w.Responses[seat] = kind
	return nil
}

func (w *ClaimWindow) complete() bool {
	return len(w.Responses) == len(w.Eligible)
}

// expire 未响应的座位按放弃处理
func (w *ClaimWindow) expire() {
	for seat := range w.Eligible {
		if _, done := w.Responses[seat]; !done {
			w.Responses[seat] = ClaimPass
		}
	}
}

// selectBest 优先级高者胜；同种操作取出牌者之后按座次最近的座位，与提交顺序无关
func (w *ClaimWindow) selectBest() (int, ClaimKind, bool) {
	best, bestKind, bestDist := -1, ClaimPass, SeatCount
	for seat, kind := range w.Responses {
		if kind == ClaimPass {
			continue
		}
		d := SeatDistance(w.From, seat)
		if kind > bestKind || (kind == bestKind && d < bestDist) {
			best, bestKind, bestDist = seat, kind, d
		}
	}
	return best, bestKind, best >= 0
}

func (w *ClaimWindow) OptionsFor(seat int) (ClaimOptions, bool) {
	opts, ok := w.Eligible[seat]
	if !ok {
		return ClaimOptions{}, false
	}
	if _, done := w.Responses[seat]; done {
		return ClaimOptions{}, false
	}
	return opts, true
}
