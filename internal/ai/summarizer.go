package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"legalscan/internal/config"
)

const systemPrompt = `You are a legal document analysis assistant. Summarize the
provided legal text in at most four sentences. Mention the parties, the nature of
the agreement and any notable obligations. Use neutral, factual language and do
not give legal advice.`

// ErrNotConfigured is returned when no API key is available.
var ErrNotConfigured = errors.New("ai summarizer is not configured")

// Summarizer produces a natural-language summary of a legal text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type openAISummarizer struct {
	client openai.Client
	model  string
}

// NewOpenAISummarizer creates an OpenAI-backed summarizer with an extended
// request timeout. Callers should treat failures as non-fatal and fall back to
// the heuristic summary.
func NewOpenAISummarizer(cfg config.AnalyzerConfig) (Summarizer, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, ErrNotConfigured
	}

	httpClient := &http.Client{Timeout: 2 * time.Minute}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithHTTPClient(httpClient),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}

	return &openAISummarizer{
		client: openai.NewClient(opts...),
		model:  cfg.OpenAIModel,
	}, nil
}

func (s *openAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
