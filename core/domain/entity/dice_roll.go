package entity

import "time"

// DiceRoll 一次掷骰结果，Faces 按骰子顺序记录点数
type DiceRoll struct {
	Faces    []int     `json:"faces" bson:"faces"`
	RolledAt time.Time `json:"rolledAt" bson:"rolled_at"`
}

func (r DiceRoll) Total() int {
	sum := 0
	for _, f := range r.Faces {
		sum += f
	}
	return sum
}
