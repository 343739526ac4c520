package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/juparave/commitguard/internal/config"
	"github.com/juparave/commitguard/internal/domain"
	"github.com/juparave/commitguard/internal/git"
	"github.com/juparave/commitguard/internal/triage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCommit struct {
	diff    string
	message string
}

// fakeHistory serves canned commits from a real (empty) git directory.
type fakeHistory struct {
	dir     string
	order   []string
	commits map[string]fakeCommit
	diffErr error
}

func newFakeHistory(t *testing.T) *fakeHistory {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return &fakeHistory{dir: dir, commits: map[string]fakeCommit{}}
}

func (h *fakeHistory) add(hash, diff, message string) {
	h.order = append(h.order, hash)
	h.commits[hash] = fakeCommit{diff: diff, message: message}
}

func (h *fakeHistory) Prepare(ctx context.Context, repo string) (string, func(), error) {
	return h.dir, func() {}, nil
}

func (h *fakeHistory) GetCommits(ctx context.Context, repoPath string, n int) ([]domain.Commit, error) {
	if n > len(h.order) {
		n = len(h.order)
	}
	commits := make([]domain.Commit, 0, n)
	for _, hash := range h.order[:n] {
		commits = append(commits, domain.Commit{Hash: hash, Message: h.commits[hash].message, RepoPath: repoPath})
	}
	return commits, nil
}

func (h *fakeHistory) GetDiff(ctx context.Context, repoPath, hash string) (string, error) {
	if h.diffErr != nil {
		return "", h.diffErr
	}
	return h.commits[hash].diff, nil
}

type recordingClassifier struct {
	calls   int
	batches [][]triage.ReviewItem
	err     error
}

func (c *recordingClassifier) Classify(ctx context.Context, items []triage.ReviewItem) ([]triage.Verdict, error) {
	c.calls++
	c.batches = append(c.batches, items)
	if c.err != nil {
		return nil, c.err
	}
	out := make([]triage.Verdict, 0, len(items))
	for _, it := range items {
		out = append(out, triage.Verdict{
			ID: it.ID, IsSecret: true, Kind: domain.KindPassword,
			Confidence: domain.ConfidenceHigh, Comment: "checked " + it.ID,
		})
	}
	return out, nil
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Repo = "fake"
	cfg.Output = filepath.Join(t.TempDir(), "report.json")
	cfg.Review.Provider = "none"
	return cfg
}

func newTestRunner(t *testing.T, cfg *config.Config, opts ...Option) *Runner {
	t.Helper()
	r, err := NewRunner(cfg, zap.NewNop().Sugar(), opts...)
	require.NoError(t, err)
	return r
}

func readReport(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestRun_EscalatesInOneBatchAcrossCommits(t *testing.T) {
	h := newFakeHistory(t)
	h.add("c1", "+++ b/app.py\n+password = \"Sup3rSecret!\"\n", "first")
	h.add("c2", "+++ b/keys.env\n+secret = \"Xk9#mQ2$vL7@pR4!wZ\"\n", "rotate\n\napi_token = \"ZZZZ1111YYYY2222\"")
	cls := &recordingClassifier{}
	cfg := testConfig(t)
	cfg.Workers = 4

	rpt, err := newTestRunner(t, cfg, WithHistory(h), WithClassifier(cls)).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, cls.calls)
	require.Len(t, rpt.Findings, 3)

	// Commit order is kept, diff findings before message findings.
	assert.Equal(t, "c1", rpt.Findings[0].CommitHash)
	assert.Equal(t, "app.py", rpt.Findings[0].FilePath)
	assert.Equal(t, "keys.env", rpt.Findings[1].FilePath)
	assert.Equal(t, domain.CommitMessageLabel, rpt.Findings[2].FilePath)

	// The high-entropy secret bypasses review.
	require.Len(t, cls.batches[0], 2)
	assert.Equal(t, "f1", rpt.Findings[0].ReviewID)
	assert.Empty(t, rpt.Findings[1].ReviewID)
	assert.Nil(t, rpt.Findings[1].Verdict)
	assert.Equal(t, "f2", rpt.Findings[2].ReviewID)
	require.NotNil(t, rpt.Findings[2].Verdict)
	assert.Equal(t, "checked f2", rpt.Findings[2].Verdict.Comment)

	doc := readReport(t, cfg.Output)
	assert.Equal(t, "fake", doc["repository"])
	assert.Equal(t, float64(3), doc["scanned_commits"])
	assert.Len(t, doc["findings"], 3)
}

func TestRun_NoFindingsSkipsClassifier(t *testing.T) {
	h := newFakeHistory(t)
	h.add("c1", "+++ b/main.go\n+fmt.Println(\"hello\")\n", "tidy up")
	cls := &recordingClassifier{}
	cfg := testConfig(t)

	rpt, err := newTestRunner(t, cfg, WithHistory(h), WithClassifier(cls)).Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, cls.calls)
	assert.Empty(t, rpt.Findings)
	assert.Equal(t, []any{}, readReport(t, cfg.Output)["findings"])
}

func TestRun_ClassifierFailureIsFatal(t *testing.T) {
	h := newFakeHistory(t)
	h.add("c1", "+++ b/app.py\n+password = \"Sup3rSecret!\"\n", "x")
	cls := &recordingClassifier{err: errors.New("bad schema")}
	cfg := testConfig(t)

	_, err := newTestRunner(t, cfg, WithHistory(h), WithClassifier(cls)).Run(context.Background())

	require.Error(t, err)
	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr), "no report on classifier failure")
}

func TestRun_GitFailureAborts(t *testing.T) {
	h := newFakeHistory(t)
	h.add("c1", "", "")
	h.diffErr = &git.CommandError{Args: []string{"show"}, Err: fmt.Errorf("exit status 128")}
	cfg := testConfig(t)

	_, err := newTestRunner(t, cfg, WithHistory(h)).Run(context.Background())

	var cmdErr *git.CommandError
	assert.ErrorAs(t, err, &cmdErr)
}

func TestRun_DisabledProviderKeepsFindings(t *testing.T) {
	h := newFakeHistory(t)
	h.add("c1", "+++ b/app.py\n+password = \"Sup3rSecret!\"\n", "x")
	cfg := testConfig(t)

	rpt, err := newTestRunner(t, cfg, WithHistory(h)).Run(context.Background())

	require.NoError(t, err)
	require.Len(t, rpt.Findings, 1)
	assert.Empty(t, rpt.Findings[0].ReviewID)
}

func TestRun_HighConfidenceOnlyNeedsNoClassifier(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	h := newFakeHistory(t)
	h.add("c1", "+++ b/keys.env\n+secret = \"Xk9#mQ2$vL7@pR4!wZ\"\n", "rotate keys")
	cfg := testConfig(t)
	cfg.Review.Provider = "openai"

	rpt, err := newTestRunner(t, cfg, WithHistory(h)).Run(context.Background())

	require.NoError(t, err)
	require.Len(t, rpt.Findings, 1)
	assert.Equal(t, domain.ConfidenceHigh, rpt.Findings[0].Confidence)
	for _, f := range rpt.Findings {
		assert.Empty(t, f.ReviewID)
		assert.Nil(t, f.Verdict)
	}
	assert.Len(t, readReport(t, cfg.Output)["findings"], 1)
}

func TestRun_NotARepository(t *testing.T) {
	cfg := testConfig(t)
	cfg.Repo = t.TempDir()

	_, err := newTestRunner(t, cfg).Run(context.Background())

	assert.ErrorIs(t, err, git.ErrNotRepository)
}

func TestNewRunner_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Commits = 0

	_, err := NewRunner(cfg, zap.NewNop().Sugar())
	assert.Error(t, err)
}

func TestRun_RealRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	run("init", ".")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "tester")
	run("config", "commit.gpgsign", "false")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.py"), []byte("password = \"Sup3rSecret!\"\n"), 0o644))
	run("add", "app.py")
	run("commit", "-m", "initial")

	cls := &recordingClassifier{}
	cfg := testConfig(t)
	cfg.Repo = dir

	rpt, err := newTestRunner(t, cfg, WithClassifier(cls)).Run(context.Background())

	require.NoError(t, err)
	require.Len(t, rpt.Findings, 1)
	f := rpt.Findings[0]
	assert.Equal(t, "app.py", f.FilePath)
	assert.Equal(t, domain.KindPassword, f.Kind)
	assert.Equal(t, `password = "Sup3rSecret!"`, f.Snippet)
	assert.Equal(t, 1, cls.calls)
}
