package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/goldwen/matching-backend/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// GenerateMatchInsight writes a short celebratory blurb for a fresh mutual
// match. Callers treat any error as "no insight"; the match itself never
// depends on this call.
func (c *GeminiClient) GenerateMatchInsight(ctx context.Context, user1, user2 *domain.User) (string, error) {
	prompt := fmt.Sprintf(`
		Two people on a dating app just matched after each chose the other.
		Person 1: %s, %d, %s
		Person 2: %s, %d, %s

		Task: Write one warm, encouraging sentence (max 25 words) they could
		both see on the match screen. No emojis, no names repeated twice.
		Output: Just the sentence.
	`, user1.FirstName, user1.Age, user1.LocationCity,
		user2.FirstName, user2.Age, user2.LocationCity)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
