package review

import (
	"fmt"

	"github.com/juparave/commitguard/internal/config"
	"github.com/juparave/commitguard/internal/triage"
	"go.uber.org/zap"
)

// Provider names accepted in review.provider
const (
	ProviderOpenAI       = "openai"
	ProviderCompatOpenAI = "compat_openai"
	ProviderGoogleAI     = "googleai"
	ProviderNone         = "none"
)

// New creates the classifier configured by cfg. ProviderNone returns a nil
// classifier and no error.
func New(cfg config.ReviewConfig, logger *zap.SugaredLogger) (triage.Classifier, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("api key is required for provider %s (set OPENAI_API_KEY)", ProviderOpenAI)
		}
		return NewOpenAIClassifier(cfg.APIKey, cfg.BaseURL, cfg.Model, logger), nil
	case ProviderCompatOpenAI:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("base_url is required for provider %s", ProviderCompatOpenAI)
		}
		return NewCompatOpenAIClassifier(cfg.APIKey, cfg.BaseURL, cfg.Model, logger), nil
	case ProviderGoogleAI:
		return NewGoogleAIClassifier(cfg.APIKey, cfg.Model, logger), nil
	case ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// warnUnknownIDs logs verdicts that answer an id that was never sent. They
// are harmless: the merge simply finds no finding for them.
func warnUnknownIDs(logger *zap.SugaredLogger, items []triage.ReviewItem, verdicts []triage.Verdict) {
	sent := make(map[string]bool, len(items))
	for _, it := range items {
		sent[it.ID] = true
	}
	for _, v := range verdicts {
		if !sent[v.ID] {
			logger.Warnw("classifier answered unknown id", "id", v.ID)
		}
	}
	if len(verdicts) < len(items) {
		logger.Warnw("classifier skipped findings", "sent", len(items), "answered", len(verdicts))
	}
}
