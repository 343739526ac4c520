package detect

import (
	"fmt"
	"os"
	"path"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/juparave/commitguard/internal/diff"
	"github.com/juparave/commitguard/internal/domain"
)

// Scanner turns candidate lines into findings
type Scanner struct {
	matcher *Matcher
	exclude []string
}

// Option configures a Scanner
type Option func(*Scanner)

// WithMatcher replaces the default rule set
func WithMatcher(m *Matcher) Option {
	return func(s *Scanner) { s.matcher = m }
}

// WithExclude skips diff lines whose file matches any of the doublestar
// patterns, tried against both the full path and the base name.
func WithExclude(patterns ...string) Option {
	return func(s *Scanner) { s.exclude = append(s.exclude, patterns...) }
}

// NewScanner creates a Scanner using the default rules unless overridden
func NewScanner(opts ...Option) (*Scanner, error) {
	s := &Scanner{matcher: NewMatcher()}
	for _, opt := range opts {
		opt(s)
	}
	for _, p := range s.exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return s, nil
}

// ScanDiff scans the added lines of a single commit's diff.
func (s *Scanner) ScanDiff(patch, commitHash string) []domain.Finding {
	var findings []domain.Finding
	for _, added := range diff.ParseAddedLines(patch) {
		if s.excluded(added.File) {
			continue
		}
		rule, ok := s.matcher.Match(added.Text)
		if !ok {
			continue
		}
		findings = append(findings, assemble(commitHash, added.File, added.Position, added.Text, rule,
			"Added line in diff"))
	}
	return findings
}

// ScanText scans every line of plain text such as a commit message. label is
// recorded as the finding's file path.
func (s *Scanner) ScanText(text, label, commitHash string) []domain.Finding {
	return s.scanText(text, label, commitHash, "Commit message line")
}

func (s *Scanner) scanText(text, label, commitHash, origin string) []domain.Finding {
	if commitHash == "" {
		commitHash = domain.UnknownSource
	}
	var findings []domain.Finding
	for i, line := range diff.SplitLines(text) {
		rule, ok := s.matcher.Match(line)
		if !ok {
			continue
		}
		findings = append(findings, assemble(commitHash, label, i+1, line, rule, origin))
	}
	return findings
}

// ScanFile scans a file on disk with the plain text rules.
func (s *Scanner) ScanFile(name string) ([]domain.Finding, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return s.scanText(string(data), name, "", "File line"), nil
}

func (s *Scanner) excluded(file string) bool {
	for _, p := range s.exclude {
		if ok, _ := doublestar.Match(p, file); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, path.Base(file)); ok {
			return true
		}
	}
	return false
}

func assemble(source, file string, line int, snippet string, rule Rule, origin string) domain.Finding {
	entropy := Entropy(snippet)
	return domain.Finding{
		CommitHash: source,
		FilePath:   file,
		Line:       line,
		Snippet:    snippet,
		Kind:       rule.Kind,
		Confidence: ConfidenceFor(entropy),
		Rationale:  fmt.Sprintf("%s matches regex '%s' (entropy: %.2f)", origin, rule.Label, entropy),
	}
}
