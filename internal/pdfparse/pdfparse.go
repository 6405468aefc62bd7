// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfparse reads the text layer of PDF documents page by page.
// Parsing is done by github.com/ledongthuc/pdf (pure Go, no CGO); this
// package adapts it to extract.SourceParser. Image-only pages yield no
// fragments; OCR is not attempted.
package pdfparse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/docshift/internal/extract"
)

// gapFactor is the fraction of the font size a horizontal gap between two
// glyphs on one baseline must exceed before a space is inserted.
const gapFactor = 0.15

// Parser opens PDF documents. The zero value is ready to use.
type Parser struct{}

// New returns a Parser.
func New() *Parser { return &Parser{} }

// Open parses the document structure held in data.
func (p *Parser) Open(data []byte) (doc extract.Document, err error) {
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, errors.New("missing %PDF header")
	}
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("parsing PDF structure: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	return &document{reader: r}, nil
}

type document struct {
	reader *pdf.Reader
}

func (d *document) NumPages() int { return d.reader.NumPage() }

// PageFragments returns the page's text in content stream order. Glyphs
// are grouped into one fragment per baseline run; a fragment ends where the
// next glyph moves to another baseline or back to the left. Fragments are
// not reordered by position.
func (d *document) PageFragments(_ context.Context, page int) (fragments []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			fragments, err = nil, fmt.Errorf("decoding page content: %v", r)
		}
	}()

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d object missing", page)
	}
	return runs(p.Content().Text), nil
}

// runs splits glyphs into baseline runs and joins each run's glyphs,
// inserting a space where glyphs are visibly apart and neither side
// already has one. Runs holding only whitespace are dropped.
func runs(glyphs []pdf.Text) []string {
	var (
		out []string
		b   strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
		b.Reset()
	}
	for i, t := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			switch {
			case t.Y != prev.Y || t.X < prev.X:
				flush()
			case needsSpace(prev, t):
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	flush()
	return out
}

func needsSpace(prev, next pdf.Text) bool {
	if prev.W <= 0 || prev.S == "" || next.S == "" {
		return false
	}
	if strings.HasSuffix(prev.S, " ") || strings.HasPrefix(next.S, " ") {
		return false
	}
	size := prev.FontSize
	if size <= 0 {
		size = 1
	}
	return next.X-(prev.X+prev.W) > gapFactor*size
}
