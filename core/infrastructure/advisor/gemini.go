package advisor

import (
	"context"
	"fmt"

	"joy/common/log"
	"joy/core/domain/vo"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-3-flash-preview"

// GeminiAdvisor 通过 Gemini 生成落子与出牌建议，输出约束为 JSON
type GeminiAdvisor struct {
	client *genai.Client
	model  string
}

func NewGeminiAdvisor(ctx context.Context, apiKey, model string) (*GeminiAdvisor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 gemini 客户端失败: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiAdvisor{client: client, model: model}, nil
}

func objectSchema(fields ...string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: fields}
}

func (g *GeminiAdvisor) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		ThinkingConfig:   &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdvisorFailed, err)
	}
	return resp.Text(), nil
}

func (g *GeminiAdvisor) SuggestMove(ctx context.Context, req vo.MoveRequest) (*vo.MoveAdvice, error) {
	text, err := g.generate(ctx, movePrompt(req), objectSchema("move", "reason"))
	if err != nil {
		return nil, err
	}
	log.Debug("gemini 落子建议: %s", text)
	return decodeMove(text)
}

func (g *GeminiAdvisor) SuggestDiscard(ctx context.Context, req vo.DiscardRequest) (*vo.DiscardAdvice, error) {
	text, err := g.generate(ctx, discardPrompt(req), objectSchema("discard", "explanation"))
	if err != nil {
		return nil, err
	}
	log.Debug("gemini 出牌建议: %s", text)
	return decodeDiscard(text)
}
