package gomoku

import (
	"fmt"
	"strings"
)

const DefaultSize = 13

type Stone int8

const (
	Empty Stone = iota
	Black       // 先手，真人
	White       // 后手，AI 对局时为电脑
)

// Opponent 返回对手颜色，Empty 的对手仍为 Empty
func (s Stone) Opponent() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (s Stone) String() string {
	switch s {
	case Black:
		return "BLACK"
	case White:
		return "WHITE"
	default:
		return "NONE"
	}
}

func (s Stone) symbol() byte {
	switch s {
	case Black:
		return 'B'
	case White:
		return 'W'
	default:
		return '.'
	}
}

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Board N×N 棋盘，只能逐格落子
type Board struct {
	size  int
	cells []Stone
	count int
}

func NewBoard(size int) *Board {
	if size <= 0 {
		size = DefaultSize
	}
	return &Board{
		size:  size,
		cells: make([]Stone, size*size),
	}
}

func (b *Board) Size() int { return b.size }

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// At 越界返回 Empty
func (b *Board) At(row, col int) Stone {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[row*b.size+col]
}

func (b *Board) Place(row, col int, s Stone) error {
	if !b.InBounds(row, col) {
		return fmt.Errorf("%w: %s", ErrOutOfRange, Point{row, col})
	}
	idx := row*b.size + col
	if b.cells[idx] != Empty {
		return fmt.Errorf("%w: %s", ErrOccupied, Point{row, col})
	}
	b.cells[idx] = s
	b.count++
	return nil
}

func (b *Board) IsEmpty() bool { return b.count == 0 }

func (b *Board) IsFull() bool { return b.count == b.size*b.size }

func (b *Board) Center() Point {
	return Point{Row: b.size / 2, Col: b.size / 2}
}

func (b *Board) Clone() *Board {
	cp := &Board{size: b.size, count: b.count, cells: make([]Stone, len(b.cells))}
	copy(cp.cells, b.cells)
	return cp
}

// Rows 按行导出，供快照序列化
func (b *Board) Rows() [][]Stone {
	rows := make([][]Stone, b.size)
	for r := 0; r < b.size; r++ {
		rows[r] = append([]Stone(nil), b.cells[r*b.size:(r+1)*b.size]...)
	}
	return rows
}

// Serialize 每行一串 B/W/.，行间换行，作为建议者的输入
func (b *Board) Serialize() string {
	var sb strings.Builder
	sb.Grow(b.size * (b.size + 1))
	for r := 0; r < b.size; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.size; c++ {
			sb.WriteByte(b.cells[r*b.size+c].symbol())
		}
	}
	return sb.String()
}
