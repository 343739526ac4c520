package review

import (
	"context"
	"fmt"

	"github.com/juparave/commitguard/internal/triage"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// OpenAIClassifier asks an OpenAI chat model for verdicts using structured
// outputs, so the model is constrained to the Response schema.
type OpenAIClassifier struct {
	client openai.Client
	model  string
	logger *zap.SugaredLogger
}

// NewOpenAIClassifier creates a classifier for the given model. An empty
// baseURL uses the public OpenAI endpoint.
func NewOpenAIClassifier(apiKey, baseURL, model string, logger *zap.SugaredLogger) *OpenAIClassifier {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// A failed round trip fails the run; no silent retries.
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClassifier{
		client: openai.NewClient(opts...),
		model:  model,
		logger: logger,
	}
}

// Classify sends all items in a single chat completion request.
func (c *OpenAIClassifier) Classify(ctx context.Context, items []triage.ReviewItem) ([]triage.Verdict, error) {
	user, err := buildUserPrompt(items)
	if err != nil {
		return nil, err
	}

	c.logger.Debugw("requesting classification", "model", c.model, "items", len(items))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(user),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "secret_verdicts",
					Description: openai.String("Verdicts for secret scanner findings"),
					Schema:      ResponseSchema(),
					Strict:      openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	resp, err := decodeResponse(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	warnUnknownIDs(c.logger, items, resp.Results)
	return resp.Results, nil
}
