// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format identifies document container formats and conversion
// directions, and derives output file names.
package format

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a document container format docshift can read or write.
type Format int

const (
	// Unknown is an unrecognised container.
	Unknown Format = iota
	// PDF is a Portable Document Format file.
	PDF
	// DOCX is an Office Open XML word-processing document.
	DOCX
	// HTMLDoc is an HTML document carrying a Word .doc extension. Word opens
	// these as documents; docshift writes them for PDF to Word conversion.
	HTMLDoc
	// LegacyDoc is a binary Word 97-2003 document (OLE2 compound file).
	LegacyDoc
)

func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case DOCX:
		return "DOCX"
	case HTMLDoc:
		return "DOC (HTML)"
	case LegacyDoc:
		return "DOC (Word 97)"
	default:
		return "Unknown"
	}
}

// Extension returns the file extension written for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case DOCX:
		return ".docx"
	case HTMLDoc, LegacyDoc:
		return ".doc"
	default:
		return ""
	}
}

// Detect determines a format from the file name extension. A .doc name is
// reported as HTMLDoc; only the content can tell it apart from LegacyDoc.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".docx":
		return DOCX
	case ".doc":
		return HTMLDoc
	default:
		return Unknown
	}
}

var (
	magicPDF  = []byte("%PDF")
	magicZIP  = []byte{0x50, 0x4B, 0x03, 0x04}
	magicOLE2 = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFromMagic inspects leading bytes (and, for ZIP archives, the entry
// names) to determine the format. It returns Unknown when the content
// matches none of the supported containers.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return PDF
	case bytes.HasPrefix(data, magicOLE2):
		return LegacyDoc
	case bytes.HasPrefix(data, magicZIP):
		if isWordArchive(data) {
			return DOCX
		}
		return Unknown
	case looksLikeHTML(data):
		return HTMLDoc
	}
	return Unknown
}

func isWordArchive(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return true
		}
	}
	return false
}

func looksLikeHTML(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	head = bytes.TrimLeft(head, " \t\r\n")
	upper := strings.ToUpper(string(head))
	switch {
	case strings.HasPrefix(upper, "<!DOCTYPE HTML"), strings.HasPrefix(upper, "<HTML"):
		return true
	case strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML"):
		return true
	}
	return false
}

// Direction is the conversion mode.
type Direction string

const (
	PDFToWord Direction = "pdf-to-word"
	WordToPDF Direction = "word-to-pdf"
)

// ParseDirection validates a mode name.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case PDFToWord, WordToPDF:
		return d, nil
	}
	return "", fmt.Errorf("unknown conversion mode %q: use %s or %s", s, PDFToWord, WordToPDF)
}

// Target returns the format produced by the direction.
func (d Direction) Target() Format {
	if d == WordToPDF {
		return PDF
	}
	return HTMLDoc
}

// Accepts reports whether a source of format f belongs to the direction.
func (d Direction) Accepts(f Format) bool {
	switch d {
	case PDFToWord:
		return f == PDF
	case WordToPDF:
		return f == DOCX || f == HTMLDoc || f == LegacyDoc
	}
	return false
}

// Label is the source-type description used in failure messages.
func (d Direction) Label() string {
	if d == WordToPDF {
		return "Word document"
	}
	return "PDF"
}

// OutputName derives the suggested output file name by replacing the
// extension of name with the direction's target extension. Names without a
// recognised source extension get the target extension appended.
func OutputName(name string, d Direction) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	stem := base
	switch strings.ToLower(ext) {
	case ".pdf":
		if d == PDFToWord {
			stem = strings.TrimSuffix(base, ext)
		}
	case ".doc", ".docx":
		if d == WordToPDF {
			stem = strings.TrimSuffix(base, ext)
		}
	}
	return stem + d.Target().Extension()
}
