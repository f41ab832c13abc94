package gomoku

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func manhattan(a, b Point) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

// SelectMove 行优先遍历空位取评估最大值；同分取离中心曼哈顿距离更近的，再同取先遇到的。
// 空棋盘直接下天元，满盘返回 false。
func SelectMove(b *Board, mover Stone) (Point, bool) {
	center := b.Center()
	if b.IsEmpty() {
		return center, true
	}
	if b.IsFull() {
		return Point{}, false
	}

	best, bestScore := Point{}, -1
	for r := 0; r < b.Size(); r++ {
		for c := 0; c < b.Size(); c++ {
			if b.At(r, c) != Empty {
				continue
			}
			p := Point{Row: r, Col: c}
			score := Evaluate(b, r, c, mover)
			if score > bestScore || (score == bestScore && manhattan(p, center) < manhattan(best, center)) {
				best, bestScore = p, score
			}
		}
	}
	return best, true
}
