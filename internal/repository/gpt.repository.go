package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"foliotrack/internal/domain"

	"github.com/ayush6624/go-chatgpt"
)

type GptRepository interface {
	DescribePortfolio(ctx context.Context, analytics domain.PortfolioAnalytics) (string, error)
}

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

const prompt = `
You are reviewing a personal stock portfolio. You will receive a JSON summary containing totals, per-sector breakdowns, concentration, volatility and rule-based flags that were already computed.

Write a short plain-English commentary (at most three paragraphs) for the owner. Ground every statement in the numbers you were given - do not invent data, do not give individualized financial advice, and do not repeat the raw JSON back. If the summary contains no positions, say there is nothing to review yet.
`

func (h gptRepositoryHandler) DescribePortfolio(ctx context.Context, analytics domain.PortfolioAnalytics) (string, error) {
	summary, err := json.Marshal(analytics)
	if err != nil {
		return "", fmt.Errorf("failed to marshal analytics summary: %w", err)
	}

	res, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT35Turbo,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleSystem,
				Content: prompt,
			},
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: string(summary),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get portfolio commentary: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("gpt returned no choices")
	}

	return res.Choices[0].Message.Content, nil
}
