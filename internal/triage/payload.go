package triage

import (
	"fmt"

	"github.com/juparave/commitguard/internal/domain"
)

// ReviewItem is the compact form of a finding sent to the classifier. Kind
// and rationale are left out so the heuristic label does not bias the answer.
type ReviewItem struct {
	ID         string            `json:"id"`
	CommitHash string            `json:"commit_hash"`
	FilePath   string            `json:"file_path"`
	Line       int               `json:"line"`
	Snippet    string            `json:"snippet"`
	Confidence domain.Confidence `json:"confidence"`
}

// ReviewID returns the identifier for the n-th (1-based) reviewed finding
func ReviewID(n int) string {
	return fmt.Sprintf("f%d", n)
}

// BuildPayload assigns review ids f1, f2, ... to the selected findings in
// order and projects them into request items. It returns a new findings
// slice carrying the ids; the input is left untouched.
func BuildPayload(findings []domain.Finding, selected []int) ([]domain.Finding, []ReviewItem) {
	out := make([]domain.Finding, len(findings))
	copy(out, findings)

	items := make([]ReviewItem, 0, len(selected))
	for n, idx := range selected {
		id := ReviewID(n + 1)
		out[idx].ReviewID = id

		f := out[idx]
		items = append(items, ReviewItem{
			ID:         id,
			CommitHash: f.CommitHash,
			FilePath:   f.FilePath,
			Line:       f.Line,
			Snippet:    f.Snippet,
			Confidence: f.Confidence,
		})
	}
	return out, items
}
