package triage

import "github.com/juparave/commitguard/internal/domain"

// DefaultMinConfidence is the threshold used when none or an invalid one is given
const DefaultMinConfidence = domain.ConfidenceMedium

// SelectCandidates returns the indices of findings that should be reviewed:
// every finding whose confidence is at or below threshold. Findings with an
// unrecognised confidence are never selected.
func SelectCandidates(findings []domain.Finding, threshold domain.Confidence) []int {
	limit, ok := threshold.Rank()
	if !ok {
		limit, _ = DefaultMinConfidence.Rank()
	}

	var selected []int
	for i, f := range findings {
		rank, ok := f.Confidence.Rank()
		if !ok {
			continue
		}
		if rank <= limit {
			selected = append(selected, i)
		}
	}
	return selected
}
