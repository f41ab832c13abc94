package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"joy/core/domain/vo"
)

var difficultyInstructions = map[vo.Difficulty]string{
	vo.DifficultyEasy:   "你是一个初级玩家。请快速给出一个移动。",
	vo.DifficultyNormal: "你是一个资深棋手。棋路务必稳健。对于五子棋，必须严防对方的三连和四连，同时寻找自己的连五机会。",
	vo.DifficultyHard:   "你是一个顶级大师。五子棋：绝对不允许漏掉对方的活三和冲四，必须在1秒内通过精简逻辑给出最佳拦截或制胜点。优先形成自己的五子连珠。",
}

func movePrompt(req vo.MoveRequest) string {
	instruction, ok := difficultyInstructions[vo.Difficulty(req.Difficulty)]
	if !ok {
		instruction = difficultyInstructions[vo.DifficultyNormal]
	}
	return fmt.Sprintf(`你是一个专业的%s大师级AI。
当前棋盘状态（B黑W白，.为空，行列从0开始）：
%s

目标：%s
注意：五子棋中，拦截对方的活三和活四是最高优先级。如果有成五的机会，必须立即成五。
请决定下一步移动（r,c坐标）。JSON: {"move": "r,c", "reason": "分析原因"}`, req.GameKind, req.Board, instruction)
}

func discardPrompt(req vo.DiscardRequest) string {
	return fmt.Sprintf(`麻将高手分析。手牌：%s。JSON: {"discard": "牌名", "explanation": "理由"}`, strings.Join(req.Tiles, ", "))
}

// decodeMove 模型输出可能夹带 markdown 代码块
func decodeMove(text string) (*vo.MoveAdvice, error) {
	var advice vo.MoveAdvice
	if err := json.Unmarshal([]byte(stripFence(text)), &advice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoAdvice, err)
	}
	if advice.Move == "" {
		return nil, ErrNoAdvice
	}
	return &advice, nil
}

func decodeDiscard(text string) (*vo.DiscardAdvice, error) {
	var advice vo.DiscardAdvice
	if err := json.Unmarshal([]byte(stripFence(text)), &advice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoAdvice, err)
	}
	if advice.Discard == "" {
		return nil, ErrNoAdvice
	}
	return &advice, nil
}

func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
