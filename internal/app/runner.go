package app

import (
	"context"
	"fmt"
	"time"

	"github.com/juparave/commitguard/internal/config"
	"github.com/juparave/commitguard/internal/detect"
	"github.com/juparave/commitguard/internal/domain"
	"github.com/juparave/commitguard/internal/git"
	"github.com/juparave/commitguard/internal/report"
	"github.com/juparave/commitguard/internal/review"
	"github.com/juparave/commitguard/internal/triage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// History is the subset of git access the runner needs
type History interface {
	Prepare(ctx context.Context, repo string) (string, func(), error)
	GetCommits(ctx context.Context, repoPath string, n int) ([]domain.Commit, error)
	GetDiff(ctx context.Context, repoPath, commitHash string) (string, error)
}

// Runner orchestrates the full scan flow
type Runner struct {
	config     *config.Config
	logger     *zap.SugaredLogger
	git        History
	scanner    *detect.Scanner
	classifier triage.Classifier
	report     *report.Writer
}

// Option customises a Runner
type Option func(*Runner)

// WithHistory replaces the git client
func WithHistory(h History) Option {
	return func(r *Runner) { r.git = h }
}

// WithClassifier replaces the classifier built from config
func WithClassifier(c triage.Classifier) Option {
	return func(r *Runner) { r.classifier = c }
}

// NewRunner creates a new Runner instance
func NewRunner(cfg *config.Config, logger *zap.SugaredLogger, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	scanner, err := detect.NewScanner(detect.WithExclude(cfg.Exclude...))
	if err != nil {
		return nil, err
	}

	r := &Runner{
		config:  cfg,
		logger:  logger,
		git:     git.NewClient(logger),
		scanner: scanner,
		report:  report.NewWriter(cfg.Output, cfg.Format),
		// classifier initialized in Run() unless injected
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes the full pipeline and returns the written report
func (r *Runner) Run(ctx context.Context) (*domain.Report, error) {
	startTime := time.Now()

	// Step 1: Resolve the repository
	repoPath, cleanup, err := r.git.Prepare(ctx, r.config.Repo)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := git.EnsureRepo(repoPath); err != nil {
		return nil, err
	}
	r.logger.Infow("starting scan", "repo", r.config.Repo, "commits", r.config.Commits)

	// Step 2: Heuristic pass over diffs and messages
	findings, err := r.scanHistory(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	r.logger.Infow("heuristic scan complete", "findings", len(findings))

	rpt := &domain.Report{
		Repository:     r.config.Repo,
		ScannedCommits: r.config.Commits,
		Findings:       findings,
	}

	// Step 3: Escalate uncertain findings
	if len(findings) == 0 {
		r.logger.Infow("no findings, classifier not called")
	} else if err := r.escalate(ctx, rpt); err != nil {
		return nil, err
	}

	// Step 4: Write report
	reportPath, err := r.report.Write(rpt)
	if err != nil {
		return nil, err
	}
	r.logger.Infow("report saved",
		"path", reportPath,
		"findings", rpt.TotalFindings(),
		"reviewed", rpt.ReviewedCount(),
		"confirmed", rpt.ConfirmedCount(),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	return rpt, nil
}

func (r *Runner) escalate(ctx context.Context, rpt *domain.Report) error {
	// The classifier is only built once something needs review.
	if len(triage.SelectCandidates(rpt.Findings, r.config.Threshold())) == 0 {
		r.logger.Infow("no findings below threshold, classifier not called")
		return nil
	}

	if r.classifier == nil {
		c, err := review.New(r.config.Review, r.logger)
		if err != nil {
			return fmt.Errorf("initializing classifier: %w", err)
		}
		if c == nil {
			r.logger.Infow("classifier disabled, keeping heuristic findings")
			return nil
		}
		r.classifier = c
	}

	res, err := triage.Escalate(ctx, rpt.Findings, r.config.Threshold(), r.classifier)
	if err != nil {
		return err
	}
	r.logger.Infow("classifier review complete", "sent", res.Reviewed, "answered", res.Answered)
	rpt.Findings = res.Findings
	return nil
}

// scanHistory scans the diff and the message of each of the last N commits.
// Commits are scanned concurrently up to config.Workers but results keep
// commit order, diff findings before message findings.
func (r *Runner) scanHistory(ctx context.Context, repoPath string) ([]domain.Finding, error) {
	commits, err := r.git.GetCommits(ctx, repoPath, r.config.Commits)
	if err != nil {
		return nil, err
	}
	r.logger.Debugw("commits to scan", "count", len(commits))

	perCommit := make([][]domain.Finding, len(commits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)
	for i, commit := range commits {
		g.Go(func() error {
			found, err := r.scanCommit(gctx, commit)
			if err != nil {
				return err
			}
			perCommit[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var findings []domain.Finding
	for _, found := range perCommit {
		findings = append(findings, found...)
	}
	return findings, nil
}

func (r *Runner) scanCommit(ctx context.Context, commit domain.Commit) ([]domain.Finding, error) {
	patch, err := r.git.GetDiff(ctx, commit.RepoPath, commit.Hash)
	if err != nil {
		return nil, err
	}
	found := r.scanner.ScanDiff(patch, commit.Hash)
	found = append(found, r.scanner.ScanText(commit.Message, domain.CommitMessageLabel, commit.Hash)...)

	r.logger.Debugw("scanned commit", "commit", commit.ShortHash(), "findings", len(found))
	return found, nil
}
