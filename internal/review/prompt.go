package review

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/juparave/commitguard/internal/triage"
)

// buildUserPrompt renders the batch as JSON for the classifier.
func buildUserPrompt(items []triage.ReviewItem) (string, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshaling findings: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Classify these findings.\n")
	sb.WriteString("Findings JSON:\n")
	sb.Write(payload)
	return sb.String(), nil
}

// buildPrompt joins the system and user prompts for backends that take a
// single prompt string.
func buildPrompt(items []triage.ReviewItem) (string, error) {
	user, err := buildUserPrompt(items)
	if err != nil {
		return "", err
	}
	return systemPrompt + "\n\n" + user, nil
}

const systemPrompt = `You are a security assistant.
You will receive JSON findings from a Git secret scanner.
For each finding, decide if it is a real secret or a false positive.

## What Counts as a Secret

- Real passwords, API tokens, private keys or signing secrets
- Values that would grant access if someone copied them

## What Is Not a Secret

- Placeholders such as "changeme", "xxxx", "<your-token>" or "example"
- Test fixtures and obviously fake values
- References to environment variables or secret managers

Return ONLY a valid JSON object with this shape:

{
  "results": [
    {
      "id": string,
      "is_secret": boolean,
      "llm_type": one of ["hardcoded_password", "hardcoded_token", "hardcoded_secret", "not_a_secret"],
      "llm_confidence": one of ["low", "medium", "high"],
      "llm_comment": string
    }
  ]
}

Use the id of each finding exactly as given. No extra keys. No extra text.`
