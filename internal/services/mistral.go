package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
)

const (
	defaultMistralModel   = "mistral-large-latest"
	defaultMistralBaseURL = "https://api.mistral.ai/v1"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// mistralProvider is the chat-completion style adapter. Mistral exposes an
// OpenAI compatible endpoint, so the OpenAI client is pointed at its base URL.
type mistralProvider struct {
	client    chatCompleter
	modelName string
	timeout   time.Duration
	logger    *zap.Logger
}

func NewMistralProvider(opts ProviderOptions, log *zap.Logger) ModelProvider {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = defaultMistralBaseURL
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = baseURL

	return newMistralProvider(openai.NewClientWithConfig(cfg), opts, log)
}

func newMistralProvider(client chatCompleter, opts ProviderOptions, log *zap.Logger) *mistralProvider {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultMistralModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &mistralProvider{
		client:    client,
		modelName: model,
		timeout:   timeout,
		logger:    logger.WithCommonFields(log, "mistral", model),
	}
}

func (m *mistralProvider) Name() string  { return "mistral" }
func (m *mistralProvider) Model() string { return m.modelName }

// Complete implements ModelProvider.
func (m *mistralProvider) Complete(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	model := modelOr(params, m.modelName)
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: params.Temperature,
		MaxTokens:   int(params.MaxOutputTokens),
	})
	if err != nil {
		m.logger.Warn("mistral chat completion failed", zap.Error(err))
		return "", fmt.Errorf("%w: mistral: %v", ErrTransport, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: mistral returned no choices", ErrTransport)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: mistral returned empty response", ErrTransport)
	}

	m.logger.Debug("mistral response received",
		zap.String("model", model),
		zap.Int("response_length", utf8.RuneCountInString(text)),
	)

	return text, nil
}
