package review

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/juparave/commitguard/internal/domain"
	"github.com/juparave/commitguard/internal/triage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []triage.ReviewItem {
	return []triage.ReviewItem{
		{ID: "f1", CommitHash: "abc", FilePath: "app.py", Line: 2, Snippet: `password = "Sup3rSecret!"`, Confidence: domain.ConfidenceMedium},
		{ID: "f2", CommitHash: "abc", FilePath: "COMMIT_MESSAGE", Line: 3, Snippet: `token = "<your-token>"`, Confidence: domain.ConfidenceLow},
	}
}

func TestBuildUserPrompt_CarriesPayload(t *testing.T) {
	prompt, err := buildUserPrompt(sampleItems())
	require.NoError(t, err)

	idx := strings.Index(prompt, "[")
	require.GreaterOrEqual(t, idx, 0)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(prompt[idx:]), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "f1", items[0]["id"])
	assert.Equal(t, "abc", items[0]["commit_hash"])
	assert.Equal(t, float64(2), items[0]["line"])
	assert.NotContains(t, items[0], "type")
	assert.NotContains(t, items[0], "rationale")
}

func TestBuildPrompt_IncludesInstructions(t *testing.T) {
	prompt, err := buildPrompt(sampleItems())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, systemPrompt))
	assert.Contains(t, prompt, `"results"`)
	assert.Contains(t, prompt, "Findings JSON:")
}
