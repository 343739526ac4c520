package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/juparave/commitguard/internal/domain"
)

type sarif struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name  string      `json:"name"`
	Rules []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID string `json:"id"`
}

type sarifResult struct {
	RuleID     string            `json:"ruleId"`
	Level      string            `json:"level"`
	Message    sarifMessage      `json:"message"`
	Locations  []sarifLoc        `json:"locations"`
	Properties map[string]string `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func confidenceToLevel(f domain.Finding) string {
	if f.Verdict != nil && !f.Verdict.IsSecret {
		return "note"
	}
	switch f.Confidence {
	case domain.ConfidenceHigh:
		return "error"
	case domain.ConfidenceMedium:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes findings as SARIF 2.1.0 to the provided writer.
func WriteSARIF(w io.Writer, rpt *domain.Report) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name: "commitguard",
			Rules: []sarifRule{
				{ID: string(domain.KindPassword)},
				{ID: string(domain.KindToken)},
				{ID: string(domain.KindSecret)},
			},
		}},
		Results: []sarifResult{},
	}
	for _, f := range rpt.Findings {
		props := map[string]string{
			"commit":     f.CommitHash,
			"confidence": string(f.Confidence),
		}
		if f.Verdict != nil {
			props["llm_is_secret"] = fmt.Sprintf("%t", f.Verdict.IsSecret)
			props["llm_comment"] = f.Verdict.Comment
		}
		run.Results = append(run.Results, sarifResult{
			RuleID:  string(f.Kind),
			Level:   confidenceToLevel(f),
			Message: sarifMessage{Text: f.Rationale},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: f.FilePath},
					Region:           sarifRegion{StartLine: f.Line},
				},
			}},
			Properties: props,
		})
	}
	doc := sarif{
		Version: "2.1.0",
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
