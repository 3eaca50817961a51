package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/resume-matcher/internal/logger"
)

const defaultGeminiModel = "gemini-2.5-pro"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// geminiProvider is the generate-content style adapter.
type geminiProvider struct {
	models    contentGenerator
	modelName string
	timeout   time.Duration
	logger    *zap.Logger
}

func NewGeminiProvider(ctx context.Context, opts ProviderOptions, log *zap.Logger) (ModelProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiProvider(client.Models, opts, log), nil
}

func newGeminiProvider(models contentGenerator, opts ProviderOptions, log *zap.Logger) *geminiProvider {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultGeminiModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &geminiProvider{
		models:    models,
		modelName: model,
		timeout:   timeout,
		logger:    logger.WithCommonFields(log, "gemini", model),
	}
}

func (g *geminiProvider) Name() string  { return "gemini" }
func (g *geminiProvider) Model() string { return g.modelName }

// Complete implements ModelProvider.
func (g *geminiProvider) Complete(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temperature := params.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: params.MaxOutputTokens,
	}

	model := modelOr(params, g.modelName)
	resp, err := g.models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		g.logger.Warn("gemini generate content failed", zap.Error(err))
		return "", fmt.Errorf("%w: gemini: %v", ErrTransport, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: gemini returned nil response", ErrTransport)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned empty response", ErrTransport)
	}

	g.logger.Debug("gemini response received",
		zap.String("model", model),
		zap.Int("response_length", utf8.RuneCountInString(text)),
	)

	return text, nil
}
