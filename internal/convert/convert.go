// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs document conversions. The Orchestrator owns the
// lifecycle of a single conversion; ConvertFile and ConvertPaths drive it
// over files on disk, writing outputs next to each other in one directory
// and reporting progress line by line.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/docshift/internal/format"
	"github.com/pdiddy/docshift/pkg/types"
)

// Recorder receives every finished conversion attempt.
type Recorder interface {
	Record(ctx context.Context, r *types.ConversionResult) error
}

// Options controls a batch run.
type Options struct {
	Direction format.Direction
	// OutDir receives the converted files. It is created if missing.
	OutDir string
	// Force overwrites existing outputs instead of skipping them.
	Force bool
	// Recorder, if set, is given each attempt's result.
	Recorder Recorder
}

// FileOutcome is the batch view of one input file.
type FileOutcome struct {
	Source   string                 `json:"source" yaml:"source"`
	Output   string                 `json:"output,omitempty" yaml:"output,omitempty"`
	Status   types.ConversionStatus `json:"status" yaml:"status"`
	Bytes    int                    `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	Duration time.Duration          `json:"duration,omitempty" yaml:"duration,omitempty"`
	Failure  *types.Failure         `json:"failure,omitempty" yaml:"failure,omitempty"`
	ResultID string                 `json:"result_id,omitempty" yaml:"result_id,omitempty"`
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int           `json:"converted" yaml:"converted"`
	Skipped   int           `json:"skipped" yaml:"skipped"`
	Failed    int           `json:"failed" yaml:"failed"`
	Files     []FileOutcome `json:"files" yaml:"files"`
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertNone marks a file skipped because its output already exists.
const ConvertNone = types.ConversionNone

// ConvertFile converts the file at path with o and writes the output under
// opts.OutDir. Existing outputs are skipped unless opts.Force is set.
func ConvertFile(ctx context.Context, o *Orchestrator, path string, opts Options, w io.Writer) FileOutcome {
	name := filepath.Base(path)
	outPath := filepath.Join(opts.OutDir, format.OutputName(name, opts.Direction))
	outcome := FileOutcome{Source: path, Output: outPath}

	fail := func(kind types.FailureKind, err error) FileOutcome {
		outcome.Status = types.ConversionFailed
		outcome.Failure = &types.Failure{Kind: kind, Message: err.Error()}
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return outcome
	}

	if !opts.Force {
		if _, err := os.Stat(outPath); err == nil {
			outcome.Status = ConvertNone
			fmt.Fprintf(w, "skipped: %s (%s already exists)\n", name, outPath)
			return outcome
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(types.FailureInternal, fmt.Errorf("reading %s: %w", path, err))
	}

	if err := o.SelectDirection(opts.Direction); err != nil {
		return fail(failureKind(err), err)
	}
	doc := types.SourceDocument{Name: name, Format: format.Detect(name), Data: data}
	if err := o.SelectFile(doc); err != nil {
		return fail(failureKind(err), err)
	}
	res, err := o.Start(ctx)
	if err != nil {
		return fail(failureKind(err), err)
	}
	defer o.Reset()

	if opts.Recorder != nil {
		if err := opts.Recorder.Record(ctx, res); err != nil {
			fmt.Fprintf(w, "warning: recording %s in history: %v\n", name, err)
		}
	}

	outcome.ResultID = res.ID
	outcome.Duration = res.Duration
	if !res.Succeeded() {
		outcome.Status = types.ConversionFailed
		outcome.Failure = res.Failure
		fmt.Fprintf(w, "failed:  %s (%s)\n", name, res.Failure.Message)
		return outcome
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fail(types.FailureInternal, fmt.Errorf("creating output directory: %w", err))
	}
	if err := os.WriteFile(outPath, res.Output, 0o644); err != nil {
		return fail(types.FailureInternal, fmt.Errorf("writing %s: %w", outPath, err))
	}

	outcome.Status = types.ConversionSucceeded
	outcome.Bytes = len(res.Output)
	fmt.Fprintf(w, "converted: %s -> %s (%s in %s)\n",
		name, outPath, humanize.Bytes(uint64(len(res.Output))), res.Duration.Round(time.Millisecond))
	return outcome
}

// ConvertPaths processes each path in order, printing per-file status to w
// and returning a summary.
func ConvertPaths(ctx context.Context, o *Orchestrator, paths []string, opts Options, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		outcome := ConvertFile(ctx, o, p, opts, w)
		result.Files = append(result.Files, outcome)
		switch outcome.Status {
		case types.ConversionSucceeded:
			result.Converted++
		case ConvertNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
