package game

// LoadInfo 负载信息
type LoadInfo struct {
	GameCount   int     // 当前对局数
	PlayerCount int     // 当前真人玩家数
	CPUUsage    float64 // CPU 使用率（0-100）
	MemUsage    float64 // 内存使用率（0-100）
}

// CalculateLoad 综合负载评分
// 权重：CPU 30%、内存 20%、对局数 25%、玩家数 25%，对局数与玩家数按 100 归一化
func (li *LoadInfo) CalculateLoad() float64 {
	normalizedGameCount := min(float64(li.GameCount)/100.0, 1.0)
	normalizedPlayerCount := min(float64(li.PlayerCount)/100.0, 1.0)
	return li.CPUUsage*0.3 + li.MemUsage*0.2 + normalizedGameCount*100*0.25 + normalizedPlayerCount*100*0.25
}
