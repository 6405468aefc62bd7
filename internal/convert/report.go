// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docshift/internal/format"
)

// Report is the machine-readable record of a batch run.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	Direction   format.Direction `json:"direction" yaml:"direction"`
	OutDir      string           `json:"out_dir" yaml:"out_dir"`
	Total       int              `json:"total" yaml:"total"`
	BatchResult `yaml:",inline"`
}

// NewReport wraps a batch result for export.
func NewReport(r BatchResult, opts Options) Report {
	return Report{
		GeneratedAt: time.Now().UTC(),
		Direction:   opts.Direction,
		OutDir:      opts.OutDir,
		Total:       r.Total(),
		BatchResult: r,
	}
}

// WriteReport writes the report to path as JSON when the extension is
// .json and as YAML otherwise.
func WriteReport(path string, r Report) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
