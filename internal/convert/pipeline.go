// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"github.com/pdiddy/docshift/internal/extract"
	"github.com/pdiddy/docshift/internal/format"
	"github.com/pdiddy/docshift/internal/pdfparse"
	"github.com/pdiddy/docshift/internal/render"
	"github.com/pdiddy/docshift/internal/wordparse"
	"github.com/pdiddy/docshift/pkg/types"
)

// NewExtractor registers the built-in source parsers.
func NewExtractor() *extract.Extractor {
	return extract.New(map[format.Format]extract.SourceParser{
		format.PDF:       pdfparse.New(),
		format.DOCX:      wordparse.NewDOCX(),
		format.HTMLDoc:   wordparse.NewHTML(),
		format.LegacyDoc: wordparse.NewLegacy(),
	})
}

// NewDefault returns an orchestrator wired with the built-in parsers, the
// .doc writer and an fpdf-backed PDF writer configured by cfg.
func NewDefault(cfg types.PDFConfig) *Orchestrator {
	return NewOrchestrator(NewExtractor(), render.NewDocWriter(), render.NewFPDFWriter(cfg))
}
