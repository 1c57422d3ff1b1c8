// Package insights generates short agent-facing briefs summarizing a
// customer's requirement and its top matches. The output goes to the human
// agent's tooling only; nothing here ever answers the customer.
package insights

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

const systemPrompt = `You are an assistant for real-estate sales agents in the Egyptian market.
Given a customer's extracted requirements and their top matching properties,
write a short brief (3-5 sentences) for the agent: what the customer wants,
which properties to lead with, and what is still unknown. Plain text only.`

type Service struct {
	client *openai.Client
}

func NewService(apiKey string) *Service {
	if apiKey == "" {
		return nil
	}
	return &Service{client: openai.NewClient(apiKey)}
}

// MatchBrief summarizes a requirement and its matches for the agent.
func (s *Service) MatchBrief(ctx context.Context, req *models.Requirement, matches []models.MatchResult) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"requirement": req,
		"topMatches":  trim(matches, 3),
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize brief input: %w", err)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: "gpt-4o-mini",
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
		Temperature: 0.4,
		MaxTokens:   300,
	})
	if err != nil {
		return "", fmt.Errorf("openai error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func trim(matches []models.MatchResult, n int) []models.MatchResult {
	if len(matches) <= n {
		return matches
	}
	return matches[:n]
}
