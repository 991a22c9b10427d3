package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"stocksnip/internal/domain"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultMaxTokens int64 = 1024

	gatewayAuthHeader = "Helicone-Auth"
)

// Config carries everything the OpenAI-compatible client needs. It is passed
// explicitly so tests can point the client at a local server.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxTokens  int64
	MaxRetries int
	// GatewayAPIKey is sent as a bearer Helicone-Auth header when set.
	GatewayAPIKey string
	HTTPClient    *http.Client
}

// OpenAISummarizer talks to any chat-completion endpoint that speaks the
// OpenAI wire format.
type OpenAISummarizer struct {
	client    openai.Client
	model     string
	maxTokens int64
}

func NewOpenAISummarizer(cfg Config) (*OpenAISummarizer, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("model is empty")
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(max(cfg.MaxRetries, 0)),
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if gatewayKey := strings.TrimSpace(cfg.GatewayAPIKey); gatewayKey != "" {
		opts = append(opts, option.WithHeader(gatewayAuthHeader, "Bearer "+gatewayKey))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &OpenAISummarizer{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Stream opens a streaming chat completion for a single article. The
// request is sent immediately; upstream failures surface through the first
// call to Next.
func (s *OpenAISummarizer) Stream(ctx context.Context, text string) (ChunkStream, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is empty", domain.ErrValidation)
	}

	stream := s.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(ArticlePrompt(text, s.maxTokens)),
		},
		MaxTokens: openai.Int(s.maxTokens),
	})

	return newChunkStream(stream), nil
}

// Summarize produces one collective summary for several headlines.
func (s *OpenAISummarizer) Summarize(ctx context.Context, input CollectiveInput) (string, error) {
	if len(input.Headlines) == 0 && strings.TrimSpace(input.Raw) == "" {
		return "", fmt.Errorf("%w: input is empty", domain.ErrValidation)
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(CollectivePrompt(input, s.maxTokens)),
			openai.UserMessage(collectiveUserPrompt),
		},
		MaxTokens: openai.Int(s.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("%w: do request: %w", domain.ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", domain.ErrUpstream)
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("%w: output text is missing (finishReason = %s)",
			domain.ErrUpstream, resp.Choices[0].FinishReason)
	}

	return summary, nil
}
