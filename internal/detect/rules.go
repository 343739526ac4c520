package detect

import (
	"regexp"

	"github.com/juparave/commitguard/internal/domain"
)

// Rule is a labeled pattern for one kind of hardcoded secret
type Rule struct {
	Pattern *regexp.Regexp
	Label   string
	Kind    domain.Kind
}

// defaultRules is evaluated top to bottom. The order is part of the output:
// a line matching several rules is reported as the first one.
var defaultRules = []Rule{
	{
		Pattern: regexp.MustCompile(`(?i)\b(password|pwd|pass|user_password)\b\s*=\s*["'][^"']{4,}["']`),
		Label:   "password assignment",
		Kind:    domain.KindPassword,
	},
	{
		Pattern: regexp.MustCompile(`(?i)\b(token|api_token|auth_token)\b\s*=\s*["'][A-Za-z0-9_\-=/+]{4,}["']`),
		Label:   "token assignment",
		Kind:    domain.KindToken,
	},
	{
		Pattern: regexp.MustCompile(`(?i)\b(secret|secret_key|private_key)\b\s*=\s*["'][^"']{4,}["']`),
		Label:   "secret assignment",
		Kind:    domain.KindSecret,
	},
}

// DefaultRules returns a copy of the built-in rules in priority order.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// Matcher applies an ordered rule list to single lines
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a Matcher. With no rules it uses DefaultRules.
func NewMatcher(rules ...Rule) *Matcher {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Matcher{rules: rules}
}

// Match returns the first rule that matches line.
func (m *Matcher) Match(line string) (Rule, bool) {
	for _, r := range m.rules {
		if r.Pattern.MatchString(line) {
			return r, true
		}
	}
	return Rule{}, false
}
