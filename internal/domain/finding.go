package domain

import "encoding/json"

// Kind is the category of secret a finding represents
type Kind string

const (
	KindPassword  Kind = "hardcoded_password"
	KindToken     Kind = "hardcoded_token"
	KindSecret    Kind = "hardcoded_secret"
	KindNotSecret Kind = "not_a_secret" // only ever reported by the classifier
)

// Finding is a single line that matched one of the secret rules
type Finding struct {
	CommitHash string     `json:"commit_hash"`
	FilePath   string     `json:"file_path"`
	Line       int        `json:"line"`
	Snippet    string     `json:"snippet"`
	Kind       Kind       `json:"type"`
	Confidence Confidence `json:"confidence"`
	Rationale  string     `json:"rationale"`

	// ReviewID is set only when the finding was sent to the classifier.
	ReviewID string `json:"id,omitempty"`
	// Verdict is set only when the classifier answered for ReviewID.
	Verdict *Verdict `json:"-"`
}

// Verdict is the classifier's opinion about a reviewed finding
type Verdict struct {
	IsSecret   bool       `json:"llm_is_secret"`
	Kind       Kind       `json:"llm_type"`
	Confidence Confidence `json:"llm_confidence"`
	Comment    string     `json:"llm_comment"`
}

// IsReviewed returns true if the finding was included in a classifier request
func (f *Finding) IsReviewed() bool {
	return f.ReviewID != ""
}

// IsConfirmed returns true if the classifier agreed this is a secret
func (f *Finding) IsConfirmed() bool {
	return f.Verdict != nil && f.Verdict.IsSecret
}

// MarshalJSON flattens the verdict into llm_* keys next to the finding fields.
func (f Finding) MarshalJSON() ([]byte, error) {
	type plain Finding
	if f.Verdict == nil {
		return json.Marshal(plain(f))
	}
	return json.Marshal(struct {
		plain
		*Verdict
	}{plain(f), f.Verdict})
}

// UnmarshalJSON reads the flattened form written by MarshalJSON.
func (f *Finding) UnmarshalJSON(data []byte) error {
	type plain Finding
	var aux struct {
		plain
		IsSecret   *bool      `json:"llm_is_secret"`
		Kind       Kind       `json:"llm_type"`
		Confidence Confidence `json:"llm_confidence"`
		Comment    string     `json:"llm_comment"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*f = Finding(aux.plain)
	if aux.IsSecret != nil {
		f.Verdict = &Verdict{
			IsSecret:   *aux.IsSecret,
			Kind:       aux.Kind,
			Confidence: aux.Confidence,
			Comment:    aux.Comment,
		}
	}
	return nil
}
