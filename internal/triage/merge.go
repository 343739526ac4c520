package triage

import "github.com/juparave/commitguard/internal/domain"

// Verdict is one entry of the classifier response
type Verdict struct {
	ID         string            `json:"id"`
	IsSecret   bool              `json:"is_secret"`
	Kind       domain.Kind       `json:"llm_type" jsonschema:"enum=hardcoded_password,enum=hardcoded_token,enum=hardcoded_secret,enum=not_a_secret"`
	Confidence domain.Confidence `json:"llm_confidence" jsonschema:"enum=low,enum=medium,enum=high"`
	Comment    string            `json:"llm_comment"`
}

// MergeVerdicts attaches each verdict to the finding carrying the same review
// id. When several verdicts share an id the last one wins. Findings without
// a review id, or without a matching verdict, are copied unchanged.
func MergeVerdicts(findings []domain.Finding, verdicts []Verdict) []domain.Finding {
	byID := make(map[string]Verdict, len(verdicts))
	for _, v := range verdicts {
		if v.ID == "" {
			continue
		}
		byID[v.ID] = v
	}

	out := make([]domain.Finding, len(findings))
	copy(out, findings)
	for i := range out {
		if out[i].ReviewID == "" {
			continue
		}
		v, ok := byID[out[i].ReviewID]
		if !ok {
			continue
		}
		out[i].Verdict = &domain.Verdict{
			IsSecret:   v.IsSecret,
			Kind:       v.Kind,
			Confidence: v.Confidence,
			Comment:    v.Comment,
		}
	}
	return out
}
