package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

// GenerationConfig holds the sampling parameters passed to the
// generative model for a single request.
type GenerationConfig struct {
	Temperature     float32
	TopK            int32
	TopP            float32
	MaxOutputTokens int32
}

// AIService is the generative model behind the answer pipeline.
// Concrete adapters exist for Gemini and OpenAI-compatible endpoints.
type AIService interface {
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
	GenerateStream(ctx context.Context, prompt string, cfg GenerationConfig, handler types.StreamHandler) error
}

// GenerationConfigFor resolves sampling parameters from the accuracy
// mode and the output token cap from the context window.
func GenerationConfigFor(mode types.AccuracyMode, window types.ContextWindow) GenerationConfig {
	var cfg GenerationConfig
	switch mode {
	case types.AccuracyStrict:
		cfg = GenerationConfig{Temperature: 0.2, TopK: 20, TopP: 0.8}
	case types.AccuracyFlexible:
		cfg = GenerationConfig{Temperature: 1.0, TopK: 60, TopP: 0.95}
	default:
		cfg = GenerationConfig{Temperature: 0.6, TopK: 40, TopP: 0.9}
	}

	switch window {
	case types.ContextWindowShort:
		cfg.MaxOutputTokens = 1024
	case types.ContextWindowHigh:
		cfg.MaxOutputTokens = 4096
	default:
		cfg.MaxOutputTokens = 2048
	}
	return cfg
}

// classifyModelError maps a provider error onto the error taxonomy:
// credential problems become ErrModelAuth with remediation guidance,
// everything else becomes a generic ErrModelFailure.
func classifyModelError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, marker := range []string{"API key", "api key", "401", "403", "PERMISSION_DENIED", "UNAUTHENTICATED", "credential"} {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: update the API key in your .env file: %v", types.ErrModelAuth, err)
		}
	}
	return fmt.Errorf("%w: %v", types.ErrModelFailure, err)
}
