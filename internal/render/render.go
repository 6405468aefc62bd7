// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns reflowed pages into output container bytes. Writers
// never touch storage; callers decide where the bytes go.
package render

import (
	"fmt"

	"github.com/pdiddy/docshift/internal/format"
	"github.com/pdiddy/docshift/internal/reflow"
)

// Writer produces one output format.
type Writer interface {
	Format() format.Format
	Write(pages []reflow.Page) ([]byte, error)
}

// PaginatedWriter is a Writer whose format has fixed page geometry. Text
// must be reflowed with Geometry and Measure before it is written.
type PaginatedWriter interface {
	Writer
	Geometry() reflow.Geometry
	Measure(s string) float64
}

// Kind classifies a write failure.
type Kind int

const (
	// InvalidGeometry means the page geometry has non-positive or
	// inconsistent values.
	InvalidGeometry Kind = iota + 1
	// EncodingFailure means the underlying writer could not build or
	// serialise the document.
	EncodingFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidGeometry:
		return "invalid geometry"
	case EncodingFailure:
		return "encoding failure"
	default:
		return "unknown"
	}
}

// Error is returned by writers.
type Error struct {
	Kind   Kind
	Format format.Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("writing %s: %s: %v", e.Format, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
