package domain

import (
	"fmt"
	"strings"
)

// Confidence is a coarse tier of how likely a finding is a real secret
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

var confidenceRank = map[Confidence]int{
	ConfidenceLow:    0,
	ConfidenceMedium: 1,
	ConfidenceHigh:   2,
}

// Rank returns the ordinal of c (low=0, medium=1, high=2). The second value
// is false for anything that is not one of the three known tiers.
func (c Confidence) Rank() (int, bool) {
	r, ok := confidenceRank[Confidence(strings.ToLower(string(c)))]
	return r, ok
}

// IsValid returns true if c is low, medium or high
func (c Confidence) IsValid() bool {
	_, ok := c.Rank()
	return ok
}

// ParseConfidence converts a user supplied tier name, ignoring case
func ParseConfidence(s string) (Confidence, error) {
	c := Confidence(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid confidence %q (want low, medium or high)", s)
	}
	return c, nil
}
