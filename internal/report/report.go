package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/juparave/commitguard/internal/config"
	"github.com/juparave/commitguard/internal/domain"
	"github.com/juparave/commitguard/internal/util"
)

// Writer writes reports to disk in the configured format
type Writer struct {
	path   string
	format string
}

// NewWriter creates a report writer for path. format is config.FormatJSON or
// config.FormatSARIF.
func NewWriter(path, format string) *Writer {
	return &Writer{path: path, format: format}
}

// Write serialises rpt to the writer's path and returns that path
func (w *Writer) Write(rpt *domain.Report) (string, error) {
	if err := util.EnsureParentDir(w.path); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return "", fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()

	switch w.format {
	case config.FormatSARIF:
		err = WriteSARIF(f, rpt)
	default:
		err = WriteJSON(f, rpt)
	}
	if err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return w.path, f.Close()
}

// WriteJSON writes the report as indented JSON. A nil findings list is
// written as an empty array.
func WriteJSON(w io.Writer, rpt *domain.Report) error {
	out := *rpt
	if out.Findings == nil {
		out.Findings = []domain.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
