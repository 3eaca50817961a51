package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// GenerationParams are the per-call generation settings. An empty Model selects
// the provider's configured model.
type GenerationParams struct {
	Temperature     float32
	MaxOutputTokens int32
	Model           string
}

// ModelProvider is a text-completion service. Implementations hide the
// provider-specific request and response shapes.
type ModelProvider interface {
	Complete(ctx context.Context, prompt string, params GenerationParams) (string, error)
	Name() string
	Model() string
}

// ProviderOptions carries what is needed to build one provider.
type ProviderOptions struct {
	Name    string
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

const defaultCallTimeout = 30 * time.Second

// NewModelProvider builds the provider selected by opts.Name. A missing API key
// or unknown provider is reported as ErrConfiguration.
func NewModelProvider(ctx context.Context, opts ProviderOptions, logger *zap.Logger) (ModelProvider, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%w: api key for provider %q is not set", ErrConfiguration, opts.Name)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultCallTimeout
	}

	switch strings.ToLower(opts.Name) {
	case "gemini":
		return NewGeminiProvider(ctx, opts, logger)
	case "mistral":
		return NewMistralProvider(opts, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown model provider %q", ErrConfiguration, opts.Name)
	}
}

func modelOr(params GenerationParams, fallback string) string {
	if m := strings.TrimSpace(params.Model); m != "" {
		return m
	}
	return fallback
}
