// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared records and configuration for docshift:
// the source document handed to a conversion, the immutable result of one
// conversion attempt, and the typed configuration loaded by the CLI.
package types

import (
	"time"

	"github.com/pdiddy/docshift/internal/format"
)

// SourceDocument is the file supplied for one conversion. It is not modified
// after it is handed to the orchestrator.
type SourceDocument struct {
	// Name is the caller's file name, used to derive the output name.
	Name string `json:"name" yaml:"name"`

	// Format is the detected container format of Data.
	Format format.Format `json:"-" yaml:"-"`

	// Data is the raw document bytes.
	Data []byte `json:"-" yaml:"-"`
}

// ConversionStatus is the outcome recorded for a conversion attempt.
type ConversionStatus string

const (
	ConversionNone      ConversionStatus = "none"
	ConversionSucceeded ConversionStatus = "succeeded"
	ConversionFailed    ConversionStatus = "failed"
)

// FailureKind classifies why a conversion failed.
type FailureKind string

const (
	FailureUnsupportedFormat FailureKind = "unsupported_format"
	FailurePageRead          FailureKind = "page_read_failure"
	FailureInvalidGeometry   FailureKind = "invalid_geometry"
	FailureEncoding          FailureKind = "encoding_failure"
	FailureNoFileSelected    FailureKind = "no_file_selected"
	FailureInternal          FailureKind = "internal"
)

// Failure describes a failed attempt. Message is shown to the user verbatim.
type Failure struct {
	Kind    FailureKind `json:"kind" yaml:"kind"`
	Message string      `json:"message" yaml:"message"`
}

// ConversionResult is produced once per conversion attempt and never
// modified afterwards. A nil Failure means the attempt succeeded and Output
// holds the converted bytes.
type ConversionResult struct {
	// ID uniquely identifies the attempt.
	ID string `json:"id" yaml:"id"`

	Direction  format.Direction `json:"direction" yaml:"direction"`
	SourceName string           `json:"source" yaml:"source"`

	// FileName is the suggested output file name.
	FileName string `json:"file_name,omitempty" yaml:"file_name,omitempty"`

	Output  []byte   `json:"-" yaml:"-"`
	Failure *Failure `json:"failure,omitempty" yaml:"failure,omitempty"`

	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Succeeded reports whether the attempt produced output.
func (r *ConversionResult) Succeeded() bool {
	return r != nil && r.Failure == nil
}

// Status maps the result onto a ConversionStatus.
func (r *ConversionResult) Status() ConversionStatus {
	switch {
	case r == nil:
		return ConversionNone
	case r.Failure != nil:
		return ConversionFailed
	default:
		return ConversionSucceeded
	}
}
