package mahjong

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joy/runtime/game/engines"
	"joy/runtime/game/share"
)

// rigWall 牌山：四家各 13 张，随后是 draws 给出的摸牌顺序，剩余的牌按牌序补在后面
func rigWall(t *testing.T, hands [SeatCount]string, draws string) []Tile {
	t.Helper()
	var used [NumTileTypes]int
	take := func(tt TileType) Tile {
		require.Less(t, used[tt], CopiesPerType, "too many %s", tt)
		tile := Tile{Type: tt, ID: used[tt]}
		used[tt]++
		return tile
	}
	order := make([]Tile, 0, TileLimit)
	for seat, h := range hands {
		types, err := ParseHand(h)
		require.NoError(t, err)
		require.Len(t, types, HandSize, "seat %d", seat)
		for _, tt := range types {
			order = append(order, take(tt))
		}
	}
	types, err := ParseHand(draws)
	require.NoError(t, err)
	for _, tt := range types {
		order = append(order, take(tt))
	}
	for tt := Man1; tt <= Red; tt++ {
		for used[tt] < CopiesPerType {
			order = append(order, take(tt))
		}
	}
	return order
}

func newRiggedTable(t *testing.T, humans []int, hands [SeatCount]string, draws string) *Table {
	t.Helper()
	tb, err := NewTable(TableConfig{HumanSeats: humans}, rand.New(rand.NewSource(1)), NewSearcher(nil, nil))
	require.NoError(t, err)
	tb.deck.Load(rigWall(t, hands, draws))
	tb.start()
	require.Equal(t, TileLimit, tb.TileCount())
	return tb
}

func discard(seat int, tt TileType) *share.DiscardEvent {
	return &share.DiscardEvent{SeatEvent: share.SeatEvent{Seat: seat}, Tile: share.Tile{Type: int(tt), ID: -1}}
}

func claim(seat int, kind string) *share.ClaimEvent {
	return &share.ClaimEvent{SeatEvent: share.SeatEvent{Seat: seat}, Kind: kind}
}

// 0 号位打出 9s：2 号位可碰，3 号位可和
var priorityHands = [SeatCount]string{
	"147m 258p 369s ESHG",
	"999m 888m 111p 333p W",
	"11m 55m 22p 66p 347s 99s",
	"123m 456p 78s EEE RR",
}

func TestDealConservesTiles(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		tb, err := NewTable(TableConfig{HumanSeats: []int{0}}, rand.New(rand.NewSource(seed)), NewSearcher(nil, nil))
		require.NoError(t, err)
		tb.Reset()

		assert.Equal(t, TileLimit, tb.TileCount())
		assert.Equal(t, TileLimit-4*HandSize-1, tb.deck.Remaining())
		assert.Len(t, tb.players[0].Tiles, HandSize+1)

		seen := make(map[Tile]bool, TileLimit)
		for _, p := range tb.players {
			for _, tile := range p.Tiles {
				assert.False(t, seen[tile])
				seen[tile] = true
			}
		}
		for _, tile := range tb.deck.wall[tb.deck.wallIndex:] {
			assert.False(t, seen[tile])
			seen[tile] = true
		}
		assert.Len(t, seen, TileLimit)
	}
}

func TestNewTableRejectsBadSeat(t *testing.T) {
	_, err := NewTable(TableConfig{HumanSeats: []int{4}}, rand.New(rand.NewSource(1)), nil)
	assert.ErrorIs(t, err, ErrInvalidSeat)
}

func TestClaimPriorityWinBeatsPong(t *testing.T) {
	orders := map[string][]int{
		"pong first": {2, 3},
		"win first":  {3, 2},
	}
	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			tb := newRiggedTable(t, []int{0, 2, 3}, priorityHands, "N")
			require.NoError(t, tb.Apply(discard(0, So9)))
			require.Equal(t, TurnStateWaitClaims, tb.State())
			assert.Equal(t, map[int]ClaimOptions{2: {Pong: true}, 3: {Win: true}}, tb.claims.Eligible)

			kinds := map[int]string{2: share.ClaimPong, 3: share.ClaimWin}
			for _, seat := range order {
				require.NoError(t, tb.Apply(claim(seat, kinds[seat])))
			}

			require.Equal(t, TurnStateTerminal, tb.State())
			out := tb.Outcome()
			require.NotNil(t, out)
			assert.Equal(t, 3, out.Winner)
			assert.Equal(t, 0, out.From)
			assert.False(t, out.SelfDrawn)
			assert.Equal(t, So9, out.WinTile.Type)
			assert.Empty(t, tb.players[0].DiscardPile)
			assert.Len(t, tb.players[3].Tiles, HandSize+1)
			assert.Empty(t, tb.players[2].Melds)
			assert.Equal(t, TileLimit, tb.TileCount())
		})
	}
}

func TestClaimResolutionKeepsWindowOnDiscardMismatch(t *testing.T) {
	tb := newRiggedTable(t, []int{0, 2, 3}, priorityHands, "N")
	require.NoError(t, tb.Apply(discard(0, So9)))
	require.NoError(t, tb.Apply(claim(2, share.ClaimPong)))

	pile := tb.players[0].DiscardPile
	tb.players[0].DiscardPile = nil
	err := tb.Apply(claim(3, share.ClaimWin))
	require.ErrorIs(t, err, ErrDiscardMismatch)
	assert.Equal(t, TurnStateWaitClaims, tb.State())
	require.NotNil(t, tb.claims)
	assert.NotContains(t, tb.claims.Responses, 3)
	assert.Nil(t, tb.Outcome())

	tb.players[0].DiscardPile = pile
	require.NoError(t, tb.Apply(claim(3, share.ClaimWin)))
	require.Equal(t, TurnStateTerminal, tb.State())
	assert.Equal(t, 3, tb.Outcome().Winner)
}

func TestClaimTieGoesToNearestSeat(t *testing.T) {
	hands := [SeatCount]string{
		"147m 258p 369s ESHG",
		"123p 456m 78s WWW HH",
		"999m 888m 111p 333p N",
		"123m 456p 78s EEE RR",
	}
	tb := newRiggedTable(t, []int{0, 1, 3}, hands, "G")
	require.NoError(t, tb.Apply(discard(0, So9)))
	require.NoError(t, tb.Apply(claim(3, share.ClaimWin)))
	require.NoError(t, tb.Apply(claim(1, share.ClaimWin)))

	require.NotNil(t, tb.Outcome())
	assert.Equal(t, 1, tb.Outcome().Winner)
}

func TestPongClaimantDiscardsWithoutDrawing(t *testing.T) {
	tb := newRiggedTable(t, []int{0, 2, 3}, priorityHands, "N")
	require.NoError(t, tb.Apply(discard(0, So9)))
	require.NoError(t, tb.Apply(claim(3, share.ClaimPass)))
	require.NoError(t, tb.Apply(claim(2, share.ClaimPong)))

	remaining := TileLimit - 4*HandSize - 1
	assert.Equal(t, TurnStateWaitDiscard, tb.State())
	assert.Equal(t, 2, tb.turn.GetCurrentPlayer())
	assert.Equal(t, remaining, tb.deck.Remaining())
	assert.Empty(t, tb.players[0].DiscardPile)
	require.Len(t, tb.players[2].Melds, 1)
	assert.Equal(t, MeldPong, tb.players[2].Melds[0].Kind)
	assert.Equal(t, 0, tb.players[2].Melds[0].From)
	assert.Len(t, tb.players[2].Tiles, HandSize-2)
	assert.Equal(t, TileLimit, tb.TileCount())

	// 碰后出牌，无人可鸣，下家 3 号位摸牌
	require.NoError(t, tb.Apply(discard(2, So3)))
	assert.Equal(t, 3, tb.turn.GetCurrentPlayer())
	assert.Equal(t, remaining-1, tb.deck.Remaining())
	assert.Equal(t, TileLimit, tb.TileCount())
}

func TestKongClaimGetsSupplementaryDraw(t *testing.T) {
	hands := [SeatCount]string{
		"147m 258p 369s ESHG",
		"999m 888m 111p 333p W",
		"999s 11m 55m 22p 66p 47s",
		"123m 456p 78s EEE RR",
	}
	tb := newRiggedTable(t, []int{0, 2}, hands, "N S")
	require.NoError(t, tb.Apply(discard(0, So9)))
	assert.Equal(t, map[int]ClaimOptions{2: {Pong: true, Kong: true}}, tb.claims.Eligible)
	require.NoError(t, tb.Apply(claim(2, share.ClaimKong)))

	p := tb.players[2]
	assert.Equal(t, TurnStateWaitDiscard, tb.State())
	assert.Equal(t, 2, tb.turn.GetCurrentPlayer())
	require.Len(t, p.Melds, 1)
	assert.Equal(t, MeldKong, p.Melds[0].Kind)
	assert.Len(t, p.Melds[0].Tiles, 4)
	assert.Len(t, p.Tiles, HandSize-3+1)
	require.NotNil(t, p.NewestTile)
	assert.Equal(t, South, p.NewestTile.Type)
	assert.Equal(t, TileLimit, tb.TileCount())
}

func TestInvalidInputLeavesStateUntouched(t *testing.T) {
	tb := newRiggedTable(t, []int{0, 2, 3}, priorityHands, "N")
	before := tb.Snapshot(0)

	assert.ErrorIs(t, tb.Apply(discard(0, Red)), ErrTileNotInHand)
	assert.ErrorIs(t, tb.Apply(discard(1, Man9)), ErrNotYourTurn)
	assert.ErrorIs(t, tb.Apply(discard(7, Man9)), ErrInvalidSeat)
	assert.ErrorIs(t, tb.Apply(claim(0, share.ClaimWin)), ErrClaimNotAllowed)
	assert.ErrorIs(t, tb.Apply(claim(0, "chow")), ErrClaimNotAllowed)
	assert.Equal(t, before, tb.Snapshot(0))

	require.NoError(t, tb.Apply(discard(0, So9)))
	during := tb.Snapshot(2)
	assert.ErrorIs(t, tb.Apply(discard(2, Man1)), ErrClaimPending)
	assert.ErrorIs(t, tb.Apply(claim(2, share.ClaimWin)), ErrClaimNotAllowed)
	assert.ErrorIs(t, tb.Apply(claim(2, share.ClaimKong)), ErrClaimNotAllowed)
	assert.ErrorIs(t, tb.Apply(claim(1, share.ClaimPong)), ErrClaimNotAllowed)
	assert.Equal(t, during, tb.Snapshot(2))

	require.NoError(t, tb.Apply(claim(2, share.ClaimPass)))
	assert.ErrorIs(t, tb.Apply(claim(2, share.ClaimPong)), ErrClaimNotAllowed)
}

func TestSelfDrawnWin(t *testing.T) {
	hands := [SeatCount]string{
		"123m 456p 789s EEE R",
		"999m 888m 111p 333p W",
		"11m 55m 22p 66p 347s 99s",
		"234m 567p 234s SSS N",
	}
	tb := newRiggedTable(t, []int{0}, hands, "R")
	snap := tb.Snapshot(0)
	require.NotNil(t, snap.Options)
	assert.Equal(t, ClaimOptions{Win: true}, *snap.Options)

	assert.ErrorIs(t, tb.Apply(claim(0, share.ClaimKong)), ErrClaimNotAllowed)
	require.NoError(t, tb.Apply(claim(0, share.ClaimWin)))
	out := tb.Outcome()
	require.NotNil(t, out)
	assert.Equal(t, 0, out.Winner)
	assert.True(t, out.SelfDrawn)
	assert.Equal(t, Red, out.WinTile.Type)
}

var selfKongHands = [SeatCount]string{
	"EEE 147m 258p 369s H",
	"999m 888m 111p 333p W",
	"11m 55m 22p 66p 347s 99s",
	"234m 567p 234s SSS N",
}

func TestSelfKong(t *testing.T) {
	tb := newRiggedTable(t, []int{0}, selfKongHands, "E G")
	require.NotNil(t, tb.self)
	assert.Equal(t, ClaimOptions{Kong: true}, tb.self.Options)

	require.NoError(t, tb.Apply(claim(0, share.ClaimKong)))
	p := tb.players[0]
	require.Len(t, p.Melds, 1)
	assert.Equal(t, Meld{Kind: MeldKong, From: -1, Tiles: []Tile{{East, 0}, {East, 1}, {East, 2}, {East, 3}}}, p.Melds[0])
	assert.Len(t, p.Tiles, HandSize+1-4+1)
	assert.Equal(t, Green, p.NewestTile.Type)
	assert.Nil(t, tb.self)
	assert.Equal(t, 0, tb.turn.GetCurrentPlayer())
	assert.Equal(t, TileLimit, tb.TileCount())

	assert.ErrorIs(t, tb.Apply(claim(0, share.ClaimPass)), ErrClaimNotAllowed)
}

func TestPassDismissesSelfWindow(t *testing.T) {
	tb := newRiggedTable(t, []int{0}, selfKongHands, "E G")
	require.NoError(t, tb.Apply(claim(0, share.ClaimPass)))
	assert.Nil(t, tb.Snapshot(0).Options)
	assert.Equal(t, TurnStateWaitDiscard, tb.State())
	require.NoError(t, tb.Apply(discard(0, East)))
	assert.Equal(t, 1, tb.turn.GetCurrentPlayer())
}

func TestAutonomousSeatKongsThenWaitsToDiscard(t *testing.T) {
	tb := newRiggedTable(t, []int{0}, priorityHands, "N 9m N")
	require.NoError(t, tb.Apply(discard(0, North)))

	p := tb.players[1]
	require.Len(t, p.Melds, 1)
	assert.Equal(t, MeldKong, p.Melds[0].Kind)
	assert.Equal(t, Man9, p.Melds[0].Type())
	assert.Len(t, p.Tiles, HandSize+1-4+1)

	req, ok := tb.PendingTimer()
	require.True(t, ok)
	assert.Equal(t, TimerAutoDiscard, req.Kind)
	assert.Equal(t, 1, req.Seat)

	require.NoError(t, tb.Apply(&share.AutoDiscardEvent{SeatEvent: share.SeatEvent{Seat: 1}, TimerTag: req.Tag}))
	assert.Len(t, p.DiscardPile, 1)
	assert.Equal(t, TileLimit, tb.TileCount())
	// 同一个计时事件再次到达视为过期
	assert.ErrorIs(t, tb.Apply(&share.AutoDiscardEvent{SeatEvent: share.SeatEvent{Seat: 1}, TimerTag: req.Tag}), ErrStaleEvent)
}

func TestAutonomousSeatWinsOnDraw(t *testing.T) {
	tb := newRiggedTable(t, []int{0}, priorityHands, "N W")
	require.NoError(t, tb.Apply(discard(0, North)))
	out := tb.Outcome()
	require.NotNil(t, out)
	assert.Equal(t, 1, out.Winner)
	assert.True(t, out.SelfDrawn)
	_, ok := tb.PendingTimer()
	assert.False(t, ok)
}

func TestExhaustionAndTerminalContract(t *testing.T) {
	tb := newRiggedTable(t, []int{0}, priorityHands, "N")
	tb.deck.wallIndex = len(tb.deck.wall)
	req, _ := tb.PendingTimer()

	require.NoError(t, tb.Apply(discard(0, North)))
	require.Equal(t, TurnStateTerminal, tb.State())
	assert.Equal(t, &Outcome{Winner: -1, DrawnOut: true, From: -1}, tb.Outcome())

	assert.ErrorIs(t, tb.Apply(discard(0, Man1)), ErrGameOver)
	assert.ErrorIs(t, tb.Apply(claim(0, share.ClaimPass)), ErrGameOver)
	// 终局前挂起的计时器到达时只是过期，不算契约违例
	assert.ErrorIs(t, tb.Apply(&share.ClaimWindowExpiredEvent{TimerTag: req.Tag}), ErrStaleEvent)

	engines.StrictContracts.Store(true)
	defer engines.StrictContracts.Store(false)
	assert.Panics(t, func() { _ = tb.Apply(discard(0, Man1)) })

	gen := tb.Generation()
	require.NoError(t, tb.Apply(&share.ResetEvent{}))
	assert.Equal(t, gen+1, tb.Generation())
	assert.Equal(t, TurnStateWaitDiscard, tb.State())
	assert.Nil(t, tb.Outcome())
	assert.Equal(t, TileLimit, tb.TileCount())
}

func TestClaimWindowExpiryCountsAsPass(t *testing.T) {
	tb := newRiggedTable(t, []int{0, 2, 3}, priorityHands, "N")
	require.NoError(t, tb.Apply(discard(0, So9)))
	req, ok := tb.PendingTimer()
	require.True(t, ok)
	assert.Equal(t, TimerClaimWindow, req.Kind)

	require.NoError(t, tb.Apply(claim(2, share.ClaimPong)))
	require.NoError(t, tb.Apply(&share.ClaimWindowExpiredEvent{TimerTag: req.Tag}))
	assert.Equal(t, 2, tb.turn.GetCurrentPlayer())
	assert.Len(t, tb.players[2].Melds, 1)
}

func TestAllAutonomousGameTerminates(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		tb, err := NewTable(TableConfig{}, rand.New(rand.NewSource(seed)), NewSearcher(nil, nil))
		require.NoError(t, err)
		tb.Reset()
		for steps := 0; tb.State() != TurnStateTerminal; steps++ {
			require.Less(t, steps, TileLimit)
			req, ok := tb.PendingTimer()
			require.True(t, ok)
			require.NoError(t, tb.Apply(&share.AutoDiscardEvent{SeatEvent: share.SeatEvent{Seat: req.Seat}, TimerTag: req.Tag}))
			require.Equal(t, TileLimit, tb.TileCount())
		}
		require.NotNil(t, tb.Outcome())
	}
}

func TestSnapshotVisibility(t *testing.T) {
	tb := newRiggedTable(t, []int{0, 2, 3}, priorityHands, "N")
	snap := tb.Snapshot(0)
	assert.Equal(t, "AWAIT_DISCARD", snap.Phase)
	assert.Len(t, snap.Seats[0].Hand, HandSize+1)
	assert.Nil(t, snap.Seats[1].Hand)
	assert.Equal(t, HandSize, snap.Seats[1].HandSize)
	require.NotNil(t, snap.NewestTile)
	assert.Equal(t, North, snap.NewestTile.Type)
	assert.Nil(t, snap.Options)
	assert.Nil(t, snap.Waits)

	require.NoError(t, tb.Apply(discard(0, So9)))
	s3 := tb.Snapshot(3)
	require.NotNil(t, s3.Options)
	assert.Equal(t, ClaimOptions{Win: true}, *s3.Options)
	assert.Equal(t, []TileType{So6, So9}, s3.Waits)
	require.NotNil(t, s3.LastDiscard)
	assert.Equal(t, 0, s3.LastDiscard.Seat)
	assert.Equal(t, So9, s3.LastDiscard.Tile.Type)
	assert.Equal(t, ClaimOptions{Pong: true}, *tb.Snapshot(2).Options)
	assert.Nil(t, tb.Snapshot(1).Options)
	assert.Nil(t, tb.Snapshot(-1).Seats[0].Hand)
}
