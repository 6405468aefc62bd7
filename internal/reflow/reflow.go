// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reflow lays a plain text stream onto pages of a fixed geometry.
// Lines are broken greedily at whitespace using a measurement function
// supplied by the destination format, then stacked top to bottom and split
// across pages by height. The engine knows nothing about fonts.
package reflow

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidGeometry is returned for geometries no line can be placed in.
var ErrInvalidGeometry = errors.New("invalid page geometry")

// MeasureFunc returns the rendered width of s in geometry units.
type MeasureFunc func(s string) float64

// Geometry describes an output page. All values share one unit.
type Geometry struct {
	Width      float64 `json:"width" yaml:"width"`
	Height     float64 `json:"height" yaml:"height"`
	Margin     float64 `json:"margin" yaml:"margin"`
	LineHeight float64 `json:"line_height" yaml:"line_height"`
}

// UsableWidth is the width between the left and right margins.
func (g Geometry) UsableWidth() float64 { return g.Width - 2*g.Margin }

// UsableHeight is the height between the top and bottom margins.
func (g Geometry) UsableHeight() float64 { return g.Height - 2*g.Margin }

// Validate checks that every dimension is positive and finite, the margins
// leave room on both axes, and at least one line fits vertically.
func (g Geometry) Validate() error {
	switch {
	case !positive(g.Width), !positive(g.Height), !positive(g.Margin), !positive(g.LineHeight):
		return fmt.Errorf("%w: width, height, margin and line height must be positive finite numbers (got %+v)", ErrInvalidGeometry, g)
	case g.UsableWidth() <= 0:
		return fmt.Errorf("%w: margins %.2f leave no usable width on a %.2f wide page", ErrInvalidGeometry, g.Margin, g.Width)
	case g.UsableHeight() <= 0:
		return fmt.Errorf("%w: margins %.2f leave no usable height on a %.2f high page", ErrInvalidGeometry, g.Margin, g.Height)
	case g.LineHeight > g.UsableHeight():
		return fmt.Errorf("%w: line height %.2f exceeds usable height %.2f", ErrInvalidGeometry, g.LineHeight, g.UsableHeight())
	}
	return nil
}

// positive is false for NaN, which compares false against everything.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Line is one wrapped line. Offset is its distance below the top margin;
// the line's baseline sits at Margin+Offset.
type Line struct {
	Text   string  `json:"text" yaml:"text"`
	Offset float64 `json:"offset" yaml:"offset"`
}

// Page is an ordered run of lines that fits one output page.
type Page struct {
	Lines []Line `json:"lines" yaml:"lines"`
}

// Text returns the page's lines joined by newlines.
func (p Page) Text() string {
	texts := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}

// Reflow wraps text to the geometry's usable width and paginates the
// result. Empty text yields a single page without lines. The output depends
// only on the arguments.
func Reflow(text string, g Geometry, measure MeasureFunc) ([]Page, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if text == "" {
		return []Page{{}}, nil
	}
	return Paginate(Wrap(text, g.UsableWidth(), measure), g), nil
}

// Unwrapped returns text as a single page holding its source lines
// unchanged, for destinations without page geometry.
func Unwrapped(text string) []Page {
	if text == "" {
		return []Page{{}}
	}
	src := splitLines(text)
	lines := make([]Line, len(src))
	for i, s := range src {
		lines[i] = Line{Text: s}
	}
	return []Page{{Lines: lines}}
}

// Wrap breaks text into lines no wider than width. Source line breaks are
// kept; each source line is filled greedily with whitespace-delimited
// tokens separated by single spaces. A token wider than width is placed on
// a line of its own. Blank source lines become empty lines.
func Wrap(text string, width float64, measure MeasureFunc) []string {
	var out []string
	for _, src := range splitLines(text) {
		out = append(out, wrapLine(src, width, measure)...)
	}
	return out
}

func wrapLine(src string, width float64, measure MeasureFunc) []string {
	tokens := strings.Fields(src)
	if len(tokens) == 0 {
		return []string{""}
	}

	var lines []string
	current := tokens[0]
	for _, tok := range tokens[1:] {
		candidate := current + " " + tok
		if measure(candidate) <= width {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = tok
	}
	return append(lines, current)
}

// Paginate stacks lines at LineHeight intervals, opening a new page when
// the next line would cross the bottom margin. It always returns at least
// one page. g must be valid.
func Paginate(lines []string, g Geometry) []Page {
	pages := []Page{{}}
	n := 0
	for _, text := range lines {
		off := float64(n) * g.LineHeight
		if off+g.LineHeight > g.UsableHeight() {
			pages = append(pages, Page{})
			n, off = 0, 0
		}
		cur := &pages[len(pages)-1]
		cur.Lines = append(cur.Lines, Line{Text: text, Offset: off})
		n++
	}
	return pages
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
