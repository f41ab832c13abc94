package gomoku

// 落子阈值：本地最佳点分数达到该值时视为必须应对，不采纳外部建议
const UrgentScore = 8000

// runAt 假设 side 落在 (row,col)，沿 d 两侧统计连子数和空端数
func runAt(b *Board, row, col int, d [2]int, side Stone) (count, open int) {
	count = 1
	for _, sign := range [2]int{1, -1} {
		r, c := row+sign*d[0], col+sign*d[1]
		for b.InBounds(r, c) && b.At(r, c) == side {
			count++
			r += sign * d[0]
			c += sign * d[1]
		}
		if b.InBounds(r, c) && b.At(r, c) == Empty {
			open++
		}
	}
	return count, open
}

func offenseScore(count, open int) int {
	switch {
	case count >= 5:
		return 100000
	case count == 4 && open >= 1:
		return 10000
	case count == 3 && open == 2:
		return 1000
	case count == 3 && open == 1:
		return 500
	case count == 2 && open == 2:
		return 100
	}
	return count * 10
}

// defenseScore 堵对方：活三的权重远高于己方活三
func defenseScore(count, open int) int {
	switch {
	case count >= 5:
		return 100000
	case count == 4 && open >= 1:
		return 9000
	case count == 3 && open == 2:
		return 8000
	case count == 3 && open == 1:
		return 400
	case count == 2 && open == 2:
		return 50
	}
	return count * 10
}

// Evaluate 单层评估空位 (row,col) 对 mover 的价值：四个方向的进攻分加防守分
func Evaluate(b *Board, row, col int, mover Stone) int {
	opponent := mover.Opponent()
	total := 0
	for _, d := range directions {
		cnt, open := runAt(b, row, col, d, mover)
		total += offenseScore(cnt, open)
		cnt, open = runAt(b, row, col, d, opponent)
		total += defenseScore(cnt, open)
	}
	return total
}
