package detect

import "github.com/juparave/commitguard/internal/domain"

// Entropy thresholds separating the confidence tiers.
const (
	MediumEntropy = 3.0
	HighEntropy   = 4.0
)

// ConfidenceFor maps an entropy value to a confidence tier.
func ConfidenceFor(entropy float64) domain.Confidence {
	switch {
	case entropy < MediumEntropy:
		return domain.ConfidenceLow
	case entropy < HighEntropy:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceHigh
	}
}
