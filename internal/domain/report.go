package domain

// Report is the result of one scan run
type Report struct {
	Repository     string    `json:"repository"`
	ScannedCommits int       `json:"scanned_commits"`
	Findings       []Finding `json:"findings"`
}

// HighCount returns the number of high confidence findings
func (r *Report) HighCount() int {
	count := 0
	for _, f := range r.Findings {
		if f.Confidence == ConfidenceHigh {
			count++
		}
	}
	return count
}

// ReviewedCount returns the number of findings sent to the classifier
func (r *Report) ReviewedCount() int {
	count := 0
	for i := range r.Findings {
		if r.Findings[i].IsReviewed() {
			count++
		}
	}
	return count
}

// ConfirmedCount returns the number of findings the classifier confirmed
func (r *Report) ConfirmedCount() int {
	count := 0
	for i := range r.Findings {
		if r.Findings[i].IsConfirmed() {
			count++
		}
	}
	return count
}

// TotalFindings returns the total number of findings
func (r *Report) TotalFindings() int {
	return len(r.Findings)
}

// HasFindings returns true if there are any findings
func (r *Report) HasFindings() bool {
	return len(r.Findings) > 0
}
