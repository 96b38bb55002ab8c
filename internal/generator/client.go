package generator

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"github.com/araquiz/backend/internal/models"
)

// LLMClient is the interface every generation backend satisfies.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   1024,
		Temperature: param.NewOpt(0.9),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

// MockClient serves canned questions shaped exactly like the provider
// contract, cycling topics so the session's no-repeat check stays happy.
type MockClient struct {
	seq atomic.Int64
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	n := m.seq.Add(1)
	return &LLMResponse{
		Content:      buildMockJSON(n),
		PromptTokens: 150,
		OutputTokens: 80,
	}, nil
}

var mockTopics = []string{
	"rivers", "planets", "ancient empires", "famous novels", "sacred texts",
	"mountain ranges", "chemical elements", "world capitals", "poets", "wars",
}

func buildMockJSON(n int64) string {
	topic := mockTopics[int(n)%len(mockTopics)]
	correct := rand.Intn(models.NumOptions)

	options := ""
	for i := 0; i < models.NumOptions; i++ {
		if i > 0 {
			options += ","
		}
		label := "wrong"
		if i == correct {
			label = "right"
		}
		options += fmt.Sprintf(`"[Mock %d] %s option %d about %s"`, n, label, i+1, topic)
	}

	return fmt.Sprintf(
		`{"question":"[Mock %d] Which statement about %s is true?","options":[%s],"answer":%d,"explanation":"[Mock %d] The marked option is the factual one about %s."}`,
		n, topic, options, correct, n, topic,
	)
}
