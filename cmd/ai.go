package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tfournier/aides-scout/internal/ai/gemini"
	"github.com/tfournier/aides-scout/internal/secrets"
)

const defaultAITimeout = 30 * time.Second

// newGenerator builds the Gemini content generator from configuration. It
// returns an error instead of exiting so callers can treat a broken AI
// setup as "run without AI".
func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (*gemini.Generator, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("ai step is disabled")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when the ai step is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
	)

	return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
}

func aiTimeout(cfg *AIConfig) time.Duration {
	if cfg != nil && cfg.Gemini != nil && cfg.Gemini.TimeoutSeconds > 0 {
		return time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second
	}
	return defaultAITimeout
}

func maxLogLength(cfg *AIConfig) int {
	if cfg != nil && cfg.Gemini != nil {
		return cfg.Gemini.MaxLogLength
	}
	return 0
}
