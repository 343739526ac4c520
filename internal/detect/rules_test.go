package detect

import (
	"testing"

	"github.com/juparave/commitguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_MatchesEachFamily(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		line string
		kind domain.Kind
	}{
		{`password = "Sup3rSecret!"`, domain.KindPassword},
		{`PWD='letmein'`, domain.KindPassword},
		{`user_password = "hunter22"`, domain.KindPassword},
		{`api_token = "ZZZZ1111YYYY2222"`, domain.KindToken},
		{`auth_token="abc/def+ghi="`, domain.KindToken},
		{`secret_key = 'super secret value'`, domain.KindSecret},
		{`Private_Key = "-----BEGIN"`, domain.KindSecret},
	}
	for _, tt := range tests {
		rule, ok := m.Match(tt.line)
		require.True(t, ok, tt.line)
		assert.Equal(t, tt.kind, rule.Kind, tt.line)
	}
}

func TestMatcher_NoMatch(t *testing.T) {
	m := NewMatcher()

	lines := []string{
		``,
		`password = "abc"`,           // value too short
		`password = os.Getenv("PW")`, // not a quoted literal
		`passwords = "hunter22"`,     // keyword must be a whole word
		`token = "has spaces in it"`, // token charset excludes spaces
		`secret: "yaml style value"`, // no assignment operator
	}
	for _, line := range lines {
		_, ok := m.Match(line)
		assert.False(t, ok, line)
	}
}

func TestMatcher_FirstRuleWins(t *testing.T) {
	m := NewMatcher()

	rule, ok := m.Match(`password = "abcd1234"; token = "abcd1234"; secret = "abcd1234"`)
	require.True(t, ok)
	assert.Equal(t, domain.KindPassword, rule.Kind)

	rule, ok = m.Match(`token = "abcd1234"; secret = "abcd1234"`)
	require.True(t, ok)
	assert.Equal(t, domain.KindToken, rule.Kind)
}

func TestDefaultRules_PriorityOrder(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 3)
	assert.Equal(t, domain.KindPassword, rules[0].Kind)
	assert.Equal(t, domain.KindToken, rules[1].Kind)
	assert.Equal(t, domain.KindSecret, rules[2].Kind)

	rules[0] = Rule{}
	assert.Equal(t, domain.KindPassword, DefaultRules()[0].Kind, "DefaultRules must return a copy")
}

func TestNewMatcher_CustomRules(t *testing.T) {
	custom := DefaultRules()[2:]
	m := NewMatcher(custom...)

	_, ok := m.Match(`password = "Sup3rSecret!"`)
	assert.False(t, ok)

	rule, ok := m.Match(`secret = "abcdef"`)
	require.True(t, ok)
	assert.Equal(t, domain.KindSecret, rule.Kind)
}
