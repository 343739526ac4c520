package triage

import (
	"context"
	"fmt"

	"github.com/juparave/commitguard/internal/domain"
)

// Classifier gives a second opinion on a batch of findings. Implementations
// make a single round trip per call.
type Classifier interface {
	Classify(ctx context.Context, items []ReviewItem) ([]Verdict, error)
}

// ClassifierFunc adapts a function to the Classifier interface
type ClassifierFunc func(ctx context.Context, items []ReviewItem) ([]Verdict, error)

// Classify calls f
func (f ClassifierFunc) Classify(ctx context.Context, items []ReviewItem) ([]Verdict, error) {
	return f(ctx, items)
}

// Result summarises one escalation
type Result struct {
	Findings []domain.Finding
	Reviewed int // items sent to the classifier
	Answered int // verdicts received
}

// Escalate selects candidates at or below threshold, sends them to c in one batch
// and merges the verdicts. The classifier is not called when nothing is
// selected. A classifier error aborts without returning partial results.
func Escalate(ctx context.Context, findings []domain.Finding, threshold domain.Confidence, c Classifier) (Result, error) {
	selected := SelectCandidates(findings, threshold)
	if len(selected) == 0 {
		return Result{Findings: findings}, nil
	}

	withIDs, items := BuildPayload(findings, selected)
	verdicts, err := c.Classify(ctx, items)
	if err != nil {
		return Result{}, fmt.Errorf("classifying %d findings: %w", len(items), err)
	}

	return Result{
		Findings: MergeVerdicts(withIDs, verdicts),
		Reviewed: len(items),
		Answered: len(verdicts),
	}, nil
}
