package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms/openai"
)

var ErrMissingAPIKey = errors.New("missing llm api key")

type ChatConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// NewChatModel returns a langchaingo chat model for an OpenAI compatible
// chat completions endpoint. Gemini serves one under /v1beta/openai.
func NewChatModel(cfg ChatConfig) (*openai.LLM, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(cfg.Model),
	}
	if baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return model, nil
}
