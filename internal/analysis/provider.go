package analysis

import (
	"context"
	"time"

	"lockin/internal/config"
)

// Result captures structured document insights returned by a provider.
type Result struct {
	KeyTopics       []string       `json:"key_topics"`
	Weightage       []int          `json:"weightage"`
	Summary         string         `json:"summary"`
	QuestionFormats map[string]int `json:"question_formats"`
}

// Provider analyzes document text and answers chat messages.
type Provider interface {
	// Name identifies the provider variant for logs and status output.
	Name() string
	// Analyze extracts structured insights from document text.
	Analyze(ctx context.Context, text string) (Result, error)
	// Chat sends a free-form message and returns the model's reply.
	Chat(ctx context.Context, message string) (string, error)
}

// FromConfig selects the provider variant named by the configuration.
// Unknown values fall back to the disabled variant.
func FromConfig(cfg *config.Config) Provider {
	if cfg == nil {
		return Disabled{}
	}
	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	switch cfg.AI.Provider {
	case config.ProviderDeepSeek:
		return NewDeepSeek(cfg.AI.DeepSeekAPIKey,
			WithDeepSeekBaseURL(cfg.AI.DeepSeekBaseURL),
			WithDeepSeekModel(cfg.AI.DeepSeekModel),
			WithDeepSeekTimeout(timeout),
		)
	case config.ProviderOllama:
		return NewOllama(cfg.AI.OllamaEndpoint,
			WithOllamaModel(cfg.AI.OllamaModel),
			WithOllamaTimeout(timeout),
		)
	default:
		return Disabled{}
	}
}
