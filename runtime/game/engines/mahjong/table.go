package mahjong

import (
	"fmt"
	"math/rand"

	"joy/common/log"
	"joy/runtime/game/engines"
	"joy/runtime/game/share"
)

// TableConfig 牌桌配置，HumanSeats 之外的座位由电脑托管
type TableConfig struct {
	HumanSeats []int
}

// Outcome 终局结果，Winner 为 -1 表示荒牌流局
type Outcome struct {
	Winner    int   `json:"winner"`
	DrawnOut  bool  `json:"drawnOut"`
	SelfDrawn bool  `json:"selfDrawn"`
	From      int   `json:"from"`
	WinTile   *Tile `json:"winTile,omitempty"`
}

type LastDiscard struct {
	Seat  int
	Tile  Tile
	Valid bool
}

// SelfWindow 真人摸牌后可以自摸或杠
type SelfWindow struct {
	Seat    int
	Options ClaimOptions
}

type TimerKind int

const (
	TimerAutoDiscard TimerKind = iota // 电脑座位出牌延迟
	TimerClaimWindow                  // 鸣牌窗口超时
)

// TimerRequest 牌桌当前需要的计时器，由引擎负责调度
type TimerRequest struct {
	Kind TimerKind
	Seat int
	Tag  share.TimerTag
}

// Table 四人麻将的回合/鸣牌状态机。本身不做并发控制，事件由引擎串行送入。
type Table struct {
	rng         *rand.Rand
	searcher    *Searcher
	deck        *DeckManager
	players     [SeatCount]*PlayerImage
	turn        *TurnManager
	claims      *ClaimWindow
	self        *SelfWindow
	lastDiscard LastDiscard
	outcome     *Outcome
	generation  uint64
}

func NewTable(cfg TableConfig, rng *rand.Rand, searcher *Searcher) (*Table, error) {
	var humans [SeatCount]bool
	for _, seat := range cfg.HumanSeats {
		if seat < 0 || seat >= SeatCount {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
		}
		humans[seat] = true
	}
	t := &Table{
		rng:      rng,
		searcher: searcher,
		deck:     NewDeckManager(rng),
		turn:     NewTurnManager(),
	}
	for seat := 0; seat < SeatCount; seat++ {
		t.players[seat] = NewPlayerImage(seat, humans[seat])
	}
	return t, nil
}

// Reset 重新洗牌发牌，旧的计时事件全部作废
func (t *Table) Reset() {
	t.deck.InitRound()
	t.start()
}

// start 按牌山顺序每家发 13 张，庄家（0 号位）再摸一张
func (t *Table) start() {
	t.generation++
	t.turn.Reset()
	t.claims = nil
	t.self = nil
	t.outcome = nil
	t.lastDiscard = LastDiscard{}
	for seat := 0; seat < SeatCount; seat++ {
		t.players[seat] = NewPlayerImage(seat, t.players[seat].Human)
	}
	for seat := 0; seat < SeatCount; seat++ {
		for i := 0; i < HandSize; i++ {
			tile, _ := t.deck.Draw()
			t.players[seat].AddTile(tile)
		}
	}
	log.Info("新的一局开始 generation=%d, 剩余 %d 张", t.generation, t.deck.Remaining())
	t.enterDraw(0)
}

func (t *Table) Generation() uint64 { return t.generation }

func (t *Table) State() TurnState { return t.turn.GetState() }

func (t *Table) Outcome() *Outcome { return t.outcome }

func (t *Table) tag() share.TimerTag {
	return share.TimerTag{Generation: t.generation, Step: t.turn.Step}
}

// PendingTimer 电脑座位等待出牌或鸣牌窗口打开时返回对应的计时需求
func (t *Table) PendingTimer() (TimerRequest, bool) {
	switch t.turn.GetState() {
	case TurnStateWaitDiscard:
		seat := t.turn.GetCurrentPlayer()
		if !t.players[seat].Human {
			return TimerRequest{Kind: TimerAutoDiscard, Seat: seat, Tag: t.tag()}, true
		}
	case TurnStateWaitClaims:
		return TimerRequest{Kind: TimerClaimWindow, Seat: -1, Tag: t.tag()}, true
	}
	return TimerRequest{}, false
}

func toMahjongTile(t share.Tile) Tile {
	return Tile{Type: TileType(t.Type), ID: t.ID}
}

// Apply 处理一个事件。非法输入返回错误且不修改任何状态。
func (t *Table) Apply(event share.GameEvent) error {
	if event == nil {
		return ErrUnknownEvent
	}

	// 计时事件先校验版本，终局前挂起的计时器可能在终局后才到达
	switch e := event.(type) {
	case *share.ResetEvent:
		t.Reset()
		return nil
	case *share.ClaimWindowExpiredEvent:
		if e.TimerTag != t.tag() {
			return ErrStaleEvent
		}
	case *share.AutoDiscardEvent:
		if e.TimerTag != t.tag() {
			return ErrStaleEvent
		}
	}

	if t.turn.GetState() == TurnStateTerminal {
		return engines.Violation(ErrGameOver)
	}

	switch e := event.(type) {
	case *share.DiscardEvent:
		return t.handleDiscard(e.Seat, toMahjongTile(e.Tile), true)
	case *share.ClaimEvent:
		kind, err := ParseClaimKind(e.Kind)
		if err != nil {
			return err
		}
		return t.handleClaim(e.Seat, kind)
	case *share.ClaimWindowExpiredEvent:
		return t.expireClaims()
	case *share.AutoDiscardEvent:
		return t.autoDiscard(e.Seat)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownEvent, event.GetEventType())
	}
}

func validSeat(seat int) bool {
	return seat >= 0 && seat < SeatCount
}

func (t *Table) handleDiscard(seat int, tile Tile, fromHuman bool) error {
	if !validSeat(seat) {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	if t.turn.GetState() == TurnStateWaitClaims {
		return ErrClaimPending
	}
	if t.turn.GetState() != TurnStateWaitDiscard || seat != t.turn.GetCurrentPlayer() {
		return ErrNotYourTurn
	}
	p := t.players[seat]
	if fromHuman && !p.Human {
		return ErrNotYourTurn
	}
	discarded, ok := p.DiscardTile(tile)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTileNotInHand, tile.Type)
	}

	t.self = nil
	t.lastDiscard = LastDiscard{Seat: seat, Tile: discarded, Valid: true}
	log.Debug("座位 %d 出牌 %s", seat, discarded.Type)

	if w := t.calculateClaimWindow(seat, discarded); w != nil {
		t.claims = w
		t.turn.EnterClaimPhase()
		log.Debug("座位 %d 的弃牌 %s 等待鸣牌: %v", seat, discarded.Type, w.Eligible)
		return nil
	}
	t.enterDraw(NextSeat(seat))
	return nil
}

func (t *Table) handleClaim(seat int, kind ClaimKind) error {
	if !validSeat(seat) {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	switch t.turn.GetState() {
	case TurnStateWaitClaims:
		if err := t.claims.record(seat, kind); err != nil {
			return err
		}
		if !t.claims.complete() {
			return nil
		}
		if err := t.resolveClaims(); err != nil {
			delete(t.claims.Responses, seat)
			return err
		}
		return nil
	case TurnStateWaitDiscard:
		if t.self == nil || t.self.Seat != seat || !t.self.Options.Allows(kind) {
			return ErrClaimNotAllowed
		}
		switch kind {
		case ClaimWin:
			t.declareSelfWin(seat)
		case ClaimKong:
			t.selfKong(seat)
		default:
			t.self = nil
		}
		return nil
	default:
		return ErrClaimNotAllowed
	}
}

func (t *Table) expireClaims() error {
	if t.turn.GetState() != TurnStateWaitClaims {
		return ErrStaleEvent
	}
	t.claims.expire()
	return t.resolveClaims()
}

// resolveClaims 结算鸣牌窗口；无人鸣牌时出牌者下家摸牌
func (t *Table) resolveClaims() error {
	w := t.claims
	seat, kind, ok := w.selectBest()
	if !ok {
		t.claims = nil
		t.enterDraw(NextSeat(w.From))
		return nil
	}

	discarder := t.players[w.From]
	called, ok := discarder.RetractDiscard()
	if !ok || called != w.Tile {
		// 窗口保持打开，牌河原样放回
		if ok {
			discarder.DiscardPile = append(discarder.DiscardPile, called)
		}
		return engines.Violation(fmt.Errorf("%w: seat=%d tile=%v", ErrDiscardMismatch, w.From, w.Tile))
	}
	t.claims = nil
	t.lastDiscard.Valid = false
	caller := t.players[seat]
	log.Info("座位 %d 对座位 %d 的 %s 执行 %s", seat, w.From, called.Type, kind)

	switch kind {
	case ClaimWin:
		caller.AddTile(called)
		tile := called
		t.outcome = &Outcome{Winner: seat, From: w.From, WinTile: &tile}
		t.turn.EnterTerminal()
	case ClaimPong:
		two, _ := caller.RemoveType(called.Type, 2)
		caller.Melds = append(caller.Melds, Meld{Kind: MeldPong, Tiles: append([]Tile{called}, two...), From: w.From})
		caller.NewestTile = nil
		t.self = nil
		t.turn.EnterDiscardPhase(seat)
	case ClaimKong:
		three, _ := caller.RemoveType(called.Type, 3)
		caller.Melds = append(caller.Melds, Meld{Kind: MeldKong, Tiles: append([]Tile{called}, three...), From: w.From})
		t.enterDraw(seat)
	}
	return nil
}

// enterDraw 摸牌进入出牌阶段；牌山摸空则荒牌流局
func (t *Table) enterDraw(seat int) {
	tile, ok := t.deck.Draw()
	if !ok {
		t.outcome = &Outcome{Winner: -1, DrawnOut: true, From: -1}
		t.turn.EnterTerminal()
		log.Info("牌山摸空，荒牌流局 generation=%d", t.generation)
		return
	}
	p := t.players[seat]
	p.DrawTile(tile)
	t.turn.EnterDiscardPhase(seat)
	t.self = nil

	if p.Human {
		if opts := t.selfOptions(seat); opts.Any() {
			t.self = &SelfWindow{Seat: seat, Options: opts}
		}
		return
	}
	t.autoTurn(seat)
}

// autoTurn 电脑座位：能和就和，能杠就杠，否则等出牌计时
func (t *Table) autoTurn(seat int) {
	if t.searcher.IsWinning(t.players[seat].Hand34()) {
		t.declareSelfWin(seat)
		return
	}
	if t.canSelfKong(seat) {
		t.selfKong(seat)
	}
}

func (t *Table) declareSelfWin(seat int) {
	p := t.players[seat]
	t.outcome = &Outcome{Winner: seat, SelfDrawn: true, From: -1}
	if p.NewestTile != nil {
		tile := *p.NewestTile
		t.outcome.WinTile = &tile
	}
	t.self = nil
	t.turn.EnterTerminal()
	log.Info("座位 %d 自摸和牌", seat)
}

// selfKong 摸到的牌暗杠或加杠，然后补摸一张
func (t *Table) selfKong(seat int) {
	p := t.players[seat]
	drawn := p.NewestTile.Type
	if four, ok := p.RemoveType(drawn, CopiesPerType); ok {
		p.Melds = append(p.Melds, Meld{Kind: MeldKong, Tiles: four, From: -1})
	} else if idx := p.PongIndex(drawn); idx >= 0 {
		one, _ := p.RemoveType(drawn, 1)
		p.Melds[idx].Kind = MeldKong
		p.Melds[idx].Tiles = append(p.Melds[idx].Tiles, one...)
	}
	p.NewestTile = nil
	t.self = nil
	log.Debug("座位 %d 杠 %s 后补牌", seat, drawn)
	t.enterDraw(seat)
}

func (t *Table) autoDiscard(seat int) error {
	if t.turn.GetState() != TurnStateWaitDiscard || seat != t.turn.GetCurrentPlayer() || t.players[seat].Human {
		return ErrStaleEvent
	}
	p := t.players[seat]
	tile := p.Tiles[t.rng.Intn(len(p.Tiles))]
	return t.handleDiscard(seat, tile, false)
}

// TileCount 手牌、牌组、牌河与牌山合计，恒为 136
func (t *Table) TileCount() int {
	n := t.deck.Remaining()
	for _, p := range t.players {
		n += p.TileCount()
	}
	return n
}
