// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wordparse extracts raw text from Word documents: Office Open XML
// (.docx) archives and the HTML flavoured .doc files docshift itself writes.
// Word documents carry no fixed pages, so each opens as a single page with
// a single fragment holding the whole raw text. Paragraphs are separated by
// a blank line.
package wordparse

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/docshift/internal/extract"
)

const (
	documentPart = "word/document.xml"
	// maxPartSize bounds the decompressed size of document.xml.
	maxPartSize = 256 << 20
)

const nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// DOCXParser opens .docx archives.
type DOCXParser struct{}

// NewDOCX returns a DOCXParser.
func NewDOCX() *DOCXParser { return &DOCXParser{} }

// Open reads word/document.xml and collects the paragraph text.
func (p *DOCXParser) Open(data []byte) (extract.Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("missing required part %s", documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", documentPart, err)
	}
	defer rc.Close()

	paragraphs, err := readParagraphs(io.LimitReader(rc, maxPartSize))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", documentPart, err)
	}
	return singlePage(strings.Join(paragraphs, "\n\n")), nil
}

// readParagraphs walks the body in document order. Text inside w:t is kept,
// w:tab becomes a tab, w:br and w:cr become line breaks. Deleted revisions
// (w:del) and field instructions (w:instrText) are skipped.
func readParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inPara     int
		inText     bool
		skipDepth  int
		sawBody    bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != nsW {
				continue
			}
			if skipDepth > 0 {
				skipDepth++
				continue
			}
			switch t.Name.Local {
			case "body":
				sawBody = true
			case "del", "instrText", "delText":
				skipDepth = 1
			case "p":
				inPara++
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}

		case xml.EndElement:
			if t.Name.Space != nsW {
				continue
			}
			if skipDepth > 0 {
				skipDepth--
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				inPara--
				if inPara == 0 {
					paragraphs = append(paragraphs, current.String())
					current.Reset()
				}
			}

		case xml.CharData:
			if inText && skipDepth == 0 {
				current.Write(t)
			}
		}
	}

	if !sawBody {
		return nil, errors.New("document has no body")
	}
	return paragraphs, nil
}

// page is a Word document seen as one page.
type page struct {
	text string
}

func singlePage(text string) *page { return &page{text: text} }

func (p *page) NumPages() int { return 1 }

func (p *page) PageFragments(_ context.Context, n int) ([]string, error) {
	if n != 1 {
		return nil, fmt.Errorf("page %d out of range: document has 1 page", n)
	}
	return []string{p.text}, nil
}
