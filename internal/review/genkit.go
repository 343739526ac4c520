package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	oai "github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/juparave/commitguard/internal/triage"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// GenkitClassifier asks any Genkit model for verdicts. The answer is free
// text, so it is schema checked before use.
type GenkitClassifier struct {
	genkit  *genkit.Genkit
	modelID string
	logger  *zap.SugaredLogger
}

// NewGoogleAIClassifier creates a classifier backed by Gemini.
func NewGoogleAIClassifier(apiKey, model string, logger *zap.SugaredLogger) *GenkitClassifier {
	ctx := context.Background()

	modelID := model
	if modelID == "" {
		modelID = "gemini-2.0-flash"
	}
	// Prefix with googleai/ for Genkit
	if !strings.Contains(modelID, "/") {
		modelID = "googleai/" + modelID
	}

	g := genkit.Init(ctx,
		genkit.WithDefaultModel(modelID),
		genkit.WithPlugins(&googlegenai.GoogleAI{
			APIKey: apiKey,
		}),
	)
	return &GenkitClassifier{genkit: g, modelID: modelID, logger: logger}
}

// NewCompatOpenAIClassifier creates a classifier for an OpenAI-compatible
// endpoint (Zhipu AI, vLLM, ...) that may not support structured outputs.
func NewCompatOpenAIClassifier(apiKey, baseURL, model string, logger *zap.SugaredLogger) *GenkitClassifier {
	ctx := context.Background()

	var opts []option.RequestOption
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	plugin := &oai.OpenAI{
		APIKey: apiKey,
		Opts:   opts,
	}

	modelID := model
	// Prefix with openai/ for Genkit
	if !strings.Contains(modelID, "/") {
		modelID = "openai/" + modelID
	}

	g := genkit.Init(ctx,
		genkit.WithDefaultModel(modelID),
		genkit.WithPlugins(plugin),
	)
	return &GenkitClassifier{genkit: g, modelID: modelID, logger: logger}
}

// Classify sends all items in one generate call.
func (c *GenkitClassifier) Classify(ctx context.Context, items []triage.ReviewItem) ([]triage.Verdict, error) {
	prompt, err := buildPrompt(items)
	if err != nil {
		return nil, err
	}

	c.logger.Debugw("requesting classification", "model", c.modelID, "items", len(items))

	answer, err := genkit.GenerateText(ctx, c.genkit,
		ai.WithModelName(c.modelID),
		ai.WithPrompt(prompt),
	)
	if err != nil {
		return nil, fmt.Errorf("generating verdicts: %w", err)
	}

	resp, err := decodeResponse(answer)
	if err != nil {
		return nil, err
	}
	warnUnknownIDs(c.logger, items, resp.Results)
	return resp.Results, nil
}
