// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls ordered plain text out of page-structured source
// documents. Format-specific parsing is delegated to a SourceParser
// registered for each format; this package only drives the page loop and
// assembles the text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/docshift/internal/format"
)

const (
	// fragmentSep joins the fragments of one page.
	fragmentSep = " "
	// pageSep follows every page's text, including the last.
	pageSep = "\n\n"
)

// SourceParser opens raw document bytes of one format.
type SourceParser interface {
	// Open parses data and returns a handle for page access. A malformed or
	// foreign buffer is reported as an error.
	Open(data []byte) (Document, error)
}

// Document is an opened source document.
type Document interface {
	// NumPages returns the document-level page count.
	NumPages() int

	// PageFragments returns the text fragments of page (1-based) in the
	// order the parser produces them.
	PageFragments(ctx context.Context, page int) ([]string, error)
}

// Kind classifies an extraction failure.
type Kind int

const (
	// UnsupportedFormat means the bytes could not be opened as the hinted format.
	UnsupportedFormat Kind = iota + 1
	// PageReadFailure means a page's text could not be retrieved.
	PageReadFailure
)

func (k Kind) String() string {
	switch k {
	case UnsupportedFormat:
		return "unsupported format"
	case PageReadFailure:
		return "page read failure"
	default:
		return "unknown"
	}
}

// Error is returned by Extract. Page is set for PageReadFailure.
type Error struct {
	Kind   Kind
	Format format.Format
	Page   int
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case PageReadFailure:
		return fmt.Sprintf("reading page %d: %v", e.Page, e.Err)
	default:
		return fmt.Sprintf("unsupported %s document: %v", e.Format, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNoParser is wrapped when no parser is registered for the hinted format.
var ErrNoParser = errors.New("no parser registered for format")

// Extractor assembles document text through registered parsers. The zero
// value has no parsers; use New and Register. An Extractor is configured
// once at start-up and is safe for concurrent use afterwards.
type Extractor struct {
	parsers map[format.Format]SourceParser
}

// New returns an Extractor with the given parsers registered.
func New(parsers map[format.Format]SourceParser) *Extractor {
	e := &Extractor{parsers: make(map[format.Format]SourceParser, len(parsers))}
	for f, p := range parsers {
		e.Register(f, p)
	}
	return e
}

// Register sets the parser used for format f, replacing any previous one.
func (e *Extractor) Register(f format.Format, p SourceParser) {
	if e.parsers == nil {
		e.parsers = make(map[format.Format]SourceParser)
	}
	e.parsers[f] = p
}

// Extract returns the document text: each page's fragments joined by a
// single space, every page followed by a blank line, pages in ascending
// order. Any page failure fails the whole extraction; no partial text is
// returned.
func (e *Extractor) Extract(ctx context.Context, data []byte, hint format.Format) (string, error) {
	parser, ok := e.parsers[hint]
	if !ok {
		return "", &Error{Kind: UnsupportedFormat, Format: hint, Err: ErrNoParser}
	}
	if len(data) == 0 {
		return "", &Error{Kind: UnsupportedFormat, Format: hint, Err: errors.New("empty document")}
	}

	doc, err := parser.Open(data)
	if err != nil {
		return "", &Error{Kind: UnsupportedFormat, Format: hint, Err: err}
	}

	var b strings.Builder
	for page := 1; page <= doc.NumPages(); page++ {
		if err := ctx.Err(); err != nil {
			return "", &Error{Kind: PageReadFailure, Format: hint, Page: page, Err: err}
		}
		fragments, err := doc.PageFragments(ctx, page)
		if err != nil {
			return "", &Error{Kind: PageReadFailure, Format: hint, Page: page, Err: err}
		}
		b.WriteString(JoinFragments(fragments))
		b.WriteString(pageSep)
	}
	return b.String(), nil
}

// JoinFragments builds one page's text from its fragments.
func JoinFragments(fragments []string) string {
	return norm.NFC.String(strings.Join(fragments, fragmentSep))
}
