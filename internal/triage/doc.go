// Package triage decides which findings need a second opinion, builds the
// batched classifier request and merges the classifier's verdicts back into
// the findings by review id.
package triage
