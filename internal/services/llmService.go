package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"recommender/internal/config"
	"recommender/internal/metrics"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

var (
	ErrMissingAPIKey   = errors.New("missing api key")
	ErrEmptyCompletion = errors.New("completion returned no choices")
)

type ChatMessage struct {
	Role    string
	Content string
}

type CompletionRequest struct {
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
}

// CompletionClient sends a single chat completion and returns the text of
// the first choice.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// RequestError marks a failure to reach the completion API or a non-2xx
// answer from it.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewCompletionClient picks the client implementation for cfg.LLMProvider.
func NewCompletionClient(cfg *config.Config) (CompletionClient, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case config.ProviderLangchain:
		return NewLangchainClient(cfg.APIKey, cfg.LLMBaseURL, cfg.ModelName)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.LLMBaseURL, cfg.ModelName), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}

type langchainClient struct {
	llm   llms.Model
	model string
}

// NewLangchainClient talks to an OpenAI-compatible endpoint through
// langchaingo. Without an API key every call fails with ErrMissingAPIKey.
func NewLangchainClient(apiKey, baseURL, model string) (CompletionClient, error) {
	if apiKey == "" {
		log.Warn().Str("provider", config.ProviderLangchain).Msg("No API key configured, completion calls will fail")
		return &langchainClient{model: model}, nil
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create langchain LLM: %w", err)
	}
	return &langchainClient{llm: llm, model: model}, nil
}

func (c *langchainClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.llm == nil {
		return "", &RequestError{Err: ErrMissingAPIKey}
	}

	content := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		content = append(content, llms.TextParts(langchainRole(m.Role), m.Content))
	}

	start := time.Now()
	resp, err := c.llm.GenerateContent(ctx, content,
		llms.WithModel(c.model),
		llms.WithMaxTokens(req.MaxTokens),
		llms.WithTemperature(req.Temperature),
		// OpenAI-compatible hosts such as Together only read max_tokens.
		openai.WithLegacyMaxTokensField(),
	)
	observeLLMCall(config.ProviderLangchain, start, err)
	if err != nil {
		if isLangchainEmptyResponse(err) {
			return "", ErrEmptyCompletion
		}
		return "", &RequestError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Content, nil
}

// The chat client returns a sentinel from an internal package when the API
// answers with no choices, so it can only be matched by its text.
const langchainEmptyResponseText = "empty response"

func isLangchainEmptyResponse(err error) bool {
	return errors.Is(err, openai.ErrEmptyResponse) || err.Error() == langchainEmptyResponseText
}

func langchainRole(role string) llms.ChatMessageType {
	switch role {
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	case "assistant":
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

func observeLLMCall(provider string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	elapsed := time.Since(start)
	metrics.LLMRequestDurationSeconds.WithLabelValues(provider, status).Observe(elapsed.Seconds())
	log.Debug().Str("provider", provider).Str("status", status).Dur("elapsed", elapsed).Msg("Completion API call finished")
}
