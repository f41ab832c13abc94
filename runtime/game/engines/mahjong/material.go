package mahjong

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red
)

const (
	NumTileTypes  = 34
	CopiesPerType = 4
	TileLimit     = NumTileTypes * CopiesPerType
	SeatCount     = 4
	HandSize      = 13
)

var honorNames = [...]string{"East", "South", "West", "North", "White", "Green", "Red"}

// 紧凑写法里的字牌字母：东南西北 E S W N，白发中 H G R
var honorLetters = map[byte]TileType{
	'E': East, 'S': South, 'W': West, 'N': North,
	'H': White, 'G': Green, 'R': Red,
}

var suitLetters = [...]byte{'m', 'p', 's'}

type Tile struct {
	Type TileType `json:"type"`
	ID   int      `json:"id"` // 同种牌的第几张（0-3）
}

func (t Tile) String() string {
	return fmt.Sprintf("%s#%d", t.Type, t.ID)
}

// MarshalJSON 附带牌名，前端与建议者直接使用
func (t Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type TileType `json:"type"`
		ID   int      `json:"id"`
		Name string   `json:"name"`
	}{t.Type, t.ID, t.Type.String()})
}

func (t TileType) Valid() bool {
	return t >= Man1 && t <= Red
}

func (t TileType) IsNumbered() bool {
	return t >= Man1 && t <= So9
}

func (t TileType) IsHonor() bool {
	return t >= East && t <= Red
}

// Suit 数牌返回 0/1/2（万筒索），字牌返回 -1
func (t TileType) Suit() int {
	if !t.IsNumbered() {
		return -1
	}
	return int(t) / 9
}

// Rank 数牌点数 1-9
func (t TileType) Rank() int {
	if !t.IsNumbered() {
		return 0
	}
	return int(t)%9 + 1
}

func (t TileType) String() string {
	switch {
	case t.IsNumbered():
		return fmt.Sprintf("%d%c", t.Rank(), suitLetters[t.Suit()])
	case t.IsHonor():
		return honorNames[t-East]
	default:
		return "Unknown"
	}
}

// ParseTileType 解析 "5m"、"East" 或单个字牌字母
func ParseTileType(s string) (TileType, error) {
	s = strings.TrimSpace(s)
	for i, name := range honorNames {
		if strings.EqualFold(s, name) {
			return East + TileType(i), nil
		}
	}
	if len(s) == 1 {
		if t, ok := honorLetters[s[0]]; ok {
			return t, nil
		}
	}
	if len(s) == 2 && s[0] >= '1' && s[0] <= '9' {
		rank := int(s[0] - '1')
		for suit, letter := range suitLetters {
			if s[1] == letter {
				return TileType(suit*9 + rank), nil
			}
		}
		if s[1] == 'z' && rank < len(honorNames) {
			return East + TileType(rank), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTile, s)
}

// ParseHand 解析紧凑写法，如 "123m 44m EEE 789p RR"
func ParseHand(s string) ([]TileType, error) {
	var out []TileType
	var ranks []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == ',':
			continue
		case c >= '1' && c <= '9':
			ranks = append(ranks, c)
		case c == 'm' || c == 'p' || c == 's' || c == 'z':
			if len(ranks) == 0 {
				return nil, fmt.Errorf("%w: %q 花色前缺少数字", ErrUnknownTile, s)
			}
			for _, r := range ranks {
				t, err := ParseTileType(string([]byte{r, c}))
				if err != nil {
					return nil, err
				}
				out = append(out, t)
			}
			ranks = ranks[:0]
		default:
			t, ok := honorLetters[c]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownTile, string(c))
			}
			out = append(out, t)
		}
	}
	if len(ranks) > 0 {
		return nil, fmt.Errorf("%w: %q 数字后缺少花色", ErrUnknownTile, s)
	}
	return out, nil
}

type MeldKind string

const (
	MeldPong MeldKind = "pong"
	MeldKong MeldKind = "kong"
)

// Meld 亮出的刻子或杠子，From 为被鸣牌的座位，自己摸的为 -1
type Meld struct {
	Kind  MeldKind `json:"kind"`
	Tiles []Tile   `json:"tiles"`
	From  int      `json:"from"`
}

func (m Meld) Type() TileType {
	return m.Tiles[0].Type
}

// NewTileSet 按牌序生成全部 136 张
func NewTileSet() []Tile {
	tiles := make([]Tile, 0, TileLimit)
	for tt := Man1; tt <= Red; tt++ {
		for i := 0; i < CopiesPerType; i++ {
			tiles = append(tiles, Tile{Type: tt, ID: i})
		}
	}
	return tiles
}

// DeckManager 牌山，从头部摸牌
type DeckManager struct {
	wall      []Tile
	wallIndex int
	rng       *rand.Rand
}

func NewDeckManager(rng *rand.Rand) *DeckManager {
	return &DeckManager{
		wall: make([]Tile, 0, TileLimit),
		rng:  rng,
	}
}

// InitRound 洗一副新牌
func (dm *DeckManager) InitRound() {
	tiles := NewTileSet()
	dm.rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	dm.Load(tiles)
}

// Load 按给定顺序装入牌山
func (dm *DeckManager) Load(tiles []Tile) {
	dm.wall = append(dm.wall[:0], tiles...)
	dm.wallIndex = 0
}

func (dm *DeckManager) Draw() (Tile, bool) {
	if dm.wallIndex >= len(dm.wall) {
		return Tile{}, false
	}
	t := dm.wall[dm.wallIndex]
	dm.wallIndex++
	return t, true
}

func (dm *DeckManager) Remaining() int {
	return len(dm.wall) - dm.wallIndex
}

// SortTiles 按牌序排序，同种牌按 ID
func SortTiles(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Type != tiles[j].Type {
			return tiles[i].Type < tiles[j].Type
		}
		return tiles[i].ID < tiles[j].ID
	})
}

func TileNames(tiles []Tile) []string {
	names := make([]string, len(tiles))
	for i, t := range tiles {
		names[i] = t.Type.String()
	}
	return names
}
