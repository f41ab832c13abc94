package gomoku

const WinLength = 5

// 横、竖、主对角、副对角
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// DetectWin 判断 side 刚落在 (row,col) 的一手是否成五。
// 返回的连线沿方向首尾有序排列，长度可能超过 5。
func DetectWin(b *Board, row, col int, side Stone) ([]Point, bool) {
	if side == Empty || b.At(row, col) != side {
		return nil, false
	}
	for _, d := range directions {
		// 先退到这一方向的起点，再顺着方向收集
		r, c := row, col
		for b.InBounds(r-d[0], c-d[1]) && b.At(r-d[0], c-d[1]) == side {
			r -= d[0]
			c -= d[1]
		}
		var line []Point
		for b.InBounds(r, c) && b.At(r, c) == side {
			line = append(line, Point{Row: r, Col: c})
			r += d[0]
			c += d[1]
		}
		if len(line) >= WinLength {
			return line, true
		}
	}
	return nil, false
}
