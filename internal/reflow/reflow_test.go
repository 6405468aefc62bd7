// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reflow

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// charWidth measures every rune as one unit.
func charWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

// proportional gives narrow and wide glyphs different widths.
func proportional(s string) float64 {
	w := 0.0
	for _, r := range s {
		switch {
		case strings.ContainsRune("il.,' ", r):
			w += 0.4
		case strings.ContainsRune("mwMW", r):
			w += 1.5
		default:
			w += 1
		}
	}
	return w
}

// fiveWide leaves a usable width of exactly five units.
var fiveWide = Geometry{Width: 7, Height: 100, Margin: 1, LineHeight: 1}

func TestReflow_ExactFit(t *testing.T) {
	pages, err := Reflow("abcde fgh", fiveWide, charWidth)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, []Line{{Text: "abcde", Offset: 0}, {Text: "fgh", Offset: 1}}, pages[0].Lines)
}

func TestReflow_EmptyText(t *testing.T) {
	pages, err := Reflow("", fiveWide, charWidth)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Empty(t, pages[0].Lines)
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"fits on one line", "ab cd", []string{"ab cd"}},
		{"greedy packing", "a b c d e f g", []string{"a b c", "d e f", "g"}},
		{"collapses inner whitespace", "ab   \t cd", []string{"ab cd"}},
		{"oversized token alone", "xy abcdefghij z", []string{"xy", "abcdefghij", "z"}},
		{"keeps source breaks", "ab\ncd", []string{"ab", "cd"}},
		{"blank line preserved", "ab\n\ncd", []string{"ab", "", "cd"}},
		{"whitespace-only line preserved", "ab\n   \ncd", []string{"ab", "", "cd"}},
		{"crlf normalised", "ab\r\ncd", []string{"ab", "cd"}},
		{"trailing page separator", "ab\n\n", []string{"ab", "", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, 5, charWidth))
		})
	}
}

func TestPaginate(t *testing.T) {
	g := Geometry{Width: 10, Height: 10, Margin: 1, LineHeight: 3} // usable height 8: two lines per page
	pages := Paginate([]string{"a", "b", "c", "d", "e"}, g)

	require.Len(t, pages, 3)
	assert.Equal(t, []Line{{"a", 0}, {"b", 3}}, pages[0].Lines)
	assert.Equal(t, []Line{{"c", 0}, {"d", 3}}, pages[1].Lines)
	assert.Equal(t, []Line{{"e", 0}}, pages[2].Lines)
}

func TestPaginate_A4LinesPerPage(t *testing.T) {
	g := Geometry{Width: 210, Height: 297, Margin: 20, LineHeight: 7}
	lines := make([]string, 100)
	pages := Paginate(lines, g)

	require.Len(t, pages, 3)
	assert.Len(t, pages[0].Lines, 36)
	assert.Len(t, pages[1].Lines, 36)
	assert.Len(t, pages[2].Lines, 28)
}

func TestPaginate_ExactHeightFits(t *testing.T) {
	g := Geometry{Width: 10, Height: 16, Margin: 1, LineHeight: 7} // usable height 14
	pages := Paginate([]string{"a", "b", "c"}, g)
	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Lines, 2)
}

func TestPaginate_InexactLineHeight(t *testing.T) {
	// 0.1 has no exact binary form; offsets must still keep every line
	// above the bottom margin.
	g := Geometry{Width: 100, Height: 3.5, Margin: 1, LineHeight: 0.1}
	for _, n := range []int{15, 25, 30, 100} {
		pages := Paginate(make([]string, n), g)
		total := 0
		for _, p := range pages {
			require.NotEmpty(t, p.Lines)
			last := p.Lines[len(p.Lines)-1]
			assert.LessOrEqual(t, last.Offset+g.LineHeight, g.UsableHeight(), "%d lines", n)
			total += len(p.Lines)
		}
		assert.Equal(t, n, total)
	}
}

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name string
		g    Geometry
		ok   bool
	}{
		{"a4", Geometry{210, 297, 20, 7}, true},
		{"zero width", Geometry{0, 297, 20, 7}, false},
		{"negative margin", Geometry{210, 297, -1, 7}, false},
		{"zero line height", Geometry{210, 297, 20, 0}, false},
		{"margins eat width", Geometry{40, 297, 20, 7}, false},
		{"margins eat height", Geometry{210, 30, 20, 7}, false},
		{"line taller than page", Geometry{210, 50, 20, 11}, false},
		{"NaN margin", Geometry{210, 297, math.NaN(), 7}, false},
		{"NaN width", Geometry{math.NaN(), 297, 20, 7}, false},
		{"NaN line height", Geometry{210, 297, 20, math.NaN()}, false},
		{"infinite height", Geometry{210, math.Inf(1), 20, 7}, false},
		{"infinite line height", Geometry{210, 297, 20, math.Inf(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidGeometry)
			_, rerr := Reflow("text", tt.g, charWidth)
			assert.ErrorIs(t, rerr, ErrInvalidGeometry)
		})
	}
}

func TestUnwrapped(t *testing.T) {
	pages := Unwrapped("Hello world\n\nSecond page\n\n")
	require.Len(t, pages, 1)
	assert.Equal(t, "Hello world\n\nSecond page\n\n", pages[0].Text())

	empty := Unwrapped("")
	require.Len(t, empty, 1)
	assert.Empty(t, empty[0].Lines)
}

// randomText builds paragraphs of random words, some longer than any line.
func randomText(rng *rand.Rand) string {
	var b strings.Builder
	paragraphs := 1 + rng.Intn(6)
	for p := 0; p < paragraphs; p++ {
		words := rng.Intn(40)
		for w := 0; w < words; w++ {
			n := 1 + rng.Intn(12)
			if rng.Intn(25) == 0 {
				n = 40
			}
			b.WriteString(strings.Repeat(string(rune('a'+rng.Intn(26))), n))
			if rng.Intn(5) == 0 {
				b.WriteString("  ")
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString("\n")
		if rng.Intn(2) == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func TestReflow_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	geometries := []Geometry{
		{Width: 30, Height: 20, Margin: 2, LineHeight: 1.5},
		{Width: 210, Height: 297, Margin: 20, LineHeight: 7},
		{Width: 12, Height: 9, Margin: 1, LineHeight: 2},
		{Width: 40, Height: 3.5, Margin: 1, LineHeight: 0.1},
	}
	measures := map[string]MeasureFunc{"monospace": charWidth, "proportional": proportional}

	for i := 0; i < 200; i++ {
		text := randomText(rng)
		g := geometries[i%len(geometries)]
		for name, measure := range measures {
			pages, err := Reflow(text, g, measure)
			require.NoError(t, err)
			require.NotEmpty(t, pages)

			var all []string
			for _, p := range pages {
				for _, l := range p.Lines {
					if measure(l.Text) > g.UsableWidth() {
						assert.NotContains(t, l.Text, " ", "%s: only a lone token may overflow: %q", name, l.Text)
					}
					all = append(all, l.Text)
				}
				if n := len(p.Lines); n > 0 {
					last := p.Lines[n-1]
					assert.LessOrEqual(t, last.Offset+g.LineHeight, g.UsableHeight())
				}
			}

			// Content survives modulo whitespace collapsing.
			assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(all, " ")))

			again, err := Reflow(text, g, measure)
			require.NoError(t, err)
			assert.Equal(t, pages, again, "reflow must be deterministic")
		}
	}
}
