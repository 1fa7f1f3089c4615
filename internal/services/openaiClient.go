package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"recommender/internal/config"
)

type openAIClient struct {
	client *openai.Client
	model  string
	hasKey bool
}

// NewOpenAIClient talks to an OpenAI-compatible endpoint through go-openai.
func NewOpenAIClient(apiKey, baseURL, model string) CompletionClient {
	if apiKey == "" {
		log.Warn().Str("provider", config.ProviderOpenAI).Msg("No API key configured, completion calls will fail")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		hasKey: apiKey != "",
	}
}

func (c *openAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if !c.hasKey {
		return "", &RequestError{Err: ErrMissingAPIKey}
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	})
	observeLLMCall(config.ProviderOpenAI, start, err)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}
