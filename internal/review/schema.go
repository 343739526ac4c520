package review

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/juparave/commitguard/internal/triage"
	"github.com/xeipuuv/gojsonschema"
)

// Response is the envelope the classifier must return
type Response struct {
	Results []triage.Verdict `json:"results"`
}

// SchemaError reports a classifier answer that does not match Response
type SchemaError struct {
	Problems []string
	Raw      string
}

func (e *SchemaError) Error() string {
	if len(e.Problems) == 0 {
		return "classifier response does not match schema"
	}
	return "classifier response does not match schema: " + strings.Join(e.Problems, "; ")
}

// ResponseSchema returns the JSON schema of Response. It is strict: every
// field is required and no extra keys are allowed.
func ResponseSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	s := r.Reflect(&Response{})
	s.Version = "http://json-schema.org/draft-07/schema#"
	return s
}

var responseSchema = gojsonschema.NewGoLoader(ResponseSchema())

// decodeResponse validates text against the response schema and decodes it.
func decodeResponse(text string) (*Response, error) {
	text = stripCodeFence(text)

	result, err := gojsonschema.Validate(responseSchema, gojsonschema.NewStringLoader(text))
	if err != nil {
		// Not JSON at all.
		return nil, &SchemaError{Problems: []string{err.Error()}, Raw: text}
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			problems = append(problems, re.String())
		}
		return nil, &SchemaError{Problems: problems, Raw: text}
	}

	var out Response
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decoding classifier response: %w", err)
	}
	return &out, nil
}

// stripCodeFence removes a surrounding markdown code block, which some
// models add even when asked for bare JSON.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
	}

	return strings.TrimSpace(text)
}
