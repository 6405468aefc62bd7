// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/pdiddy/docshift/internal/format"
	"github.com/pdiddy/docshift/internal/reflow"
	"github.com/pdiddy/docshift/pkg/types"
)

// Canvas is the drawing surface of a paginated target document.
type Canvas interface {
	// Measure returns the width of s in the current font, in page units.
	Measure(s string) float64
	// AddPage starts a new page; text is placed on the newest page.
	AddPage()
	// PlaceText draws s with its baseline at (x, y) from the top-left corner.
	PlaceText(s string, x, y float64)
	// Serialize writes the finished document.
	Serialize(w io.Writer) error
}

// CanvasFactory creates an empty document for the geometry.
type CanvasFactory func(g reflow.Geometry) (Canvas, error)

// PDFWriter writes one native PDF page per reflowed page.
type PDFWriter struct {
	geometry reflow.Geometry
	factory  CanvasFactory

	measureOnce sync.Once
	measurer    Canvas
}

// NewPDFWriter returns a writer for geometry g drawing on canvases made by
// factory. The geometry is checked on every Write, not here, so that a
// misconfigured writer still reports InvalidGeometry per attempt.
func NewPDFWriter(g reflow.Geometry, factory CanvasFactory) *PDFWriter {
	return &PDFWriter{geometry: g, factory: factory}
}

// NewFPDFWriter returns a PDFWriter using fpdf with the configured page
// size, margins and core font.
func NewFPDFWriter(cfg types.PDFConfig) *PDFWriter {
	size := cfg.Size()
	g := reflow.Geometry{
		Width:      size.Width,
		Height:     size.Height,
		Margin:     cfg.Margin,
		LineHeight: cfg.LineHeight,
	}
	return NewPDFWriter(g, FPDFCanvasFactory(cfg.FontFamily, cfg.FontSize))
}

func (w *PDFWriter) Format() format.Format { return format.PDF }

func (w *PDFWriter) Geometry() reflow.Geometry { return w.geometry }

// Measure returns the rendered width of s. Width 0 is reported when the
// canvas cannot be created; Write surfaces that failure.
func (w *PDFWriter) Measure(s string) float64 {
	w.measureOnce.Do(func() {
		if c, err := w.factory(w.geometry); err == nil {
			w.measurer = c
		}
	})
	if w.measurer == nil {
		return 0
	}
	return w.measurer.Measure(s)
}

// Write draws every line at its offset below the top margin.
func (w *PDFWriter) Write(pages []reflow.Page) ([]byte, error) {
	g := w.geometry
	if err := g.Validate(); err != nil {
		return nil, &Error{Kind: InvalidGeometry, Format: format.PDF, Err: err}
	}

	canvas, err := w.factory(g)
	if err != nil {
		return nil, &Error{Kind: EncodingFailure, Format: format.PDF, Err: err}
	}

	for _, p := range pages {
		canvas.AddPage()
		for _, l := range p.Lines {
			if l.Text == "" {
				continue
			}
			canvas.PlaceText(l.Text, g.Margin, g.Margin+l.Offset)
		}
	}

	var buf bytes.Buffer
	if err := canvas.Serialize(&buf); err != nil {
		return nil, &Error{Kind: EncodingFailure, Format: format.PDF, Err: err}
	}
	return buf.Bytes(), nil
}

var coreFonts = map[string]bool{"helvetica": true, "arial": true, "times": true, "courier": true}

// FPDFCanvasFactory returns a factory for fpdf canvases in millimetres
// using one of the PDF core fonts.
func FPDFCanvasFactory(family string, size float64) CanvasFactory {
	return func(g reflow.Geometry) (Canvas, error) {
		family := strings.ToLower(family)
		if !coreFonts[family] {
			return nil, fmt.Errorf("font %q is not a PDF core font", family)
		}
		if size <= 0 {
			return nil, fmt.Errorf("font size must be positive, got %.1f", size)
		}
		if g.Width <= 0 || g.Height <= 0 {
			return nil, fmt.Errorf("page size %.1fx%.1f must be positive", g.Width, g.Height)
		}

		pdf := fpdf.NewCustom(&fpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "mm",
			Size:           fpdf.SizeType{Wd: g.Width, Ht: g.Height},
		})
		pdf.SetAutoPageBreak(false, 0)
		pdf.SetMargins(g.Margin, g.Margin, g.Margin)
		pdf.SetCreator("docshift", true)
		pdf.SetTitle(docTitle, true)
		pdf.SetFont(family, "", size)
		if err := pdf.Error(); err != nil {
			return nil, err
		}
		return &fpdfCanvas{pdf: pdf}, nil
	}
}

// fpdfCanvas draws with fpdf core fonts, which take Windows-1252 bytes.
type fpdfCanvas struct {
	pdf *fpdf.Fpdf
}

func (c *fpdfCanvas) Measure(s string) float64 {
	return c.pdf.GetStringWidth(toWinAnsi(s))
}

func (c *fpdfCanvas) AddPage() { c.pdf.AddPage() }

func (c *fpdfCanvas) PlaceText(s string, x, y float64) {
	c.pdf.Text(x, y, toWinAnsi(s))
}

func (c *fpdfCanvas) Serialize(w io.Writer) error {
	if err := c.pdf.Error(); err != nil {
		return err
	}
	if c.pdf.PageCount() == 0 {
		return errors.New("document has no pages")
	}
	return c.pdf.Output(w)
}

// toWinAnsi transcodes UTF-8 to Windows-1252. Runes the code page lacks
// become '?'.
func toWinAnsi(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteByte(byte(r))
			continue
		}
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}
