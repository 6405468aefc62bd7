// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zipWith(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("<x/>"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"report.pdf", PDF},
		{"REPORT.PDF", PDF},
		{"letter.docx", DOCX},
		{"letter.DOC", HTMLDoc},
		{"notes.txt", Unknown},
		{"noext", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.name))
		})
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf header", []byte("%PDF-1.7\n..."), PDF},
		{"docx archive", zipWith(t, "[Content_Types].xml", "word/document.xml"), DOCX},
		{"other zip", zipWith(t, "xl/workbook.xml"), Unknown},
		{"html doctype", []byte("\n  <!DOCTYPE html><html></html>"), HTMLDoc},
		{"html with bom", []byte("\xef\xbb\xbf<html><body>x</body></html>"), HTMLDoc},
		{"ole2", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0, 0}, LegacyDoc},
		{"too short", []byte("%P"), Unknown},
		{"plain text", []byte("hello"), Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFromMagic(tt.data))
		})
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" Word-To-PDF ")
	require.NoError(t, err)
	assert.Equal(t, WordToPDF, d)

	_, err = ParseDirection("pdf-to-odt")
	assert.Error(t, err)
}

func TestDirectionAccepts(t *testing.T) {
	assert.True(t, PDFToWord.Accepts(PDF))
	assert.False(t, PDFToWord.Accepts(DOCX))
	assert.True(t, WordToPDF.Accepts(DOCX))
	assert.True(t, WordToPDF.Accepts(HTMLDoc))
	assert.False(t, WordToPDF.Accepts(PDF))
	assert.Equal(t, HTMLDoc, PDFToWord.Target())
	assert.Equal(t, PDF, WordToPDF.Target())
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		in   string
		dir  Direction
		want string
	}{
		{"report.pdf", PDFToWord, "report.doc"},
		{"my.pdf.notes.pdf", PDFToWord, "my.pdf.notes.doc"},
		{"/tmp/in/Report.PDF", PDFToWord, "Report.doc"},
		{"letter.docx", WordToPDF, "letter.pdf"},
		{"letter.DOC", WordToPDF, "letter.pdf"},
		{"letter", WordToPDF, "letter.pdf"},
		{"scan.pdf", WordToPDF, "scan.pdf.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.in, tt.dir))
		})
	}
}
