// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docshift/internal/format"
)

// fakeParser opens every buffer into a scripted document unless openErr is set.
type fakeParser struct {
	doc     *fakeDocument
	openErr error
}

func (f *fakeParser) Open(data []byte) (Document, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.doc, nil
}

// fakeDocument returns scripted fragments per page and records every read.
type fakeDocument struct {
	pages   [][]string
	failOn  map[int]error
	visited []int
}

func (d *fakeDocument) NumPages() int { return len(d.pages) }

func (d *fakeDocument) PageFragments(_ context.Context, page int) ([]string, error) {
	d.visited = append(d.visited, page)
	if err, ok := d.failOn[page]; ok {
		return nil, err
	}
	return d.pages[page-1], nil
}

func newExtractor(p SourceParser) *Extractor {
	return New(map[format.Format]SourceParser{format.PDF: p})
}

func TestExtract_TwoPages(t *testing.T) {
	doc := &fakeDocument{pages: [][]string{
		{"Hello", "world"},
		{"Second page"},
	}}
	e := newExtractor(&fakeParser{doc: doc})

	text, err := e.Extract(context.Background(), []byte("%PDF"), format.PDF)
	require.NoError(t, err)
	assert.Equal(t, "Hello world\n\nSecond page\n\n", text)
	assert.Equal(t, []int{1, 2}, doc.visited)
}

func TestExtract_PageReadFailure(t *testing.T) {
	doc := &fakeDocument{
		pages:  [][]string{{"one"}, {"two"}, {"three"}},
		failOn: map[int]error{2: errors.New("corrupt content stream")},
	}
	e := newExtractor(&fakeParser{doc: doc})

	text, err := e.Extract(context.Background(), []byte("%PDF"), format.PDF)
	require.Error(t, err)
	assert.Empty(t, text, "no partial text on failure")

	var xerr *Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, PageReadFailure, xerr.Kind)
	assert.Equal(t, 2, xerr.Page)
	assert.Contains(t, err.Error(), "corrupt content stream")
	assert.Equal(t, []int{1, 2}, doc.visited, "page 3 must not be read")
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	tests := []struct {
		name   string
		parser SourceParser
		hint   format.Format
		data   []byte
	}{
		{"open fails", &fakeParser{openErr: errors.New("not a PDF")}, format.PDF, []byte("junk")},
		{"empty buffer", &fakeParser{doc: &fakeDocument{}}, format.PDF, nil},
		{"no parser for hint", &fakeParser{doc: &fakeDocument{}}, format.DOCX, []byte("PK")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newExtractor(tt.parser)
			_, err := e.Extract(context.Background(), tt.data, tt.hint)

			var xerr *Error
			require.ErrorAs(t, err, &xerr)
			assert.Equal(t, UnsupportedFormat, xerr.Kind)
		})
	}
}

func TestExtract_NoParserIsDetectable(t *testing.T) {
	e := New(nil)
	_, err := e.Extract(context.Background(), []byte("x"), format.PDF)
	assert.ErrorIs(t, err, ErrNoParser)
}

func TestExtract_ZeroPages(t *testing.T) {
	e := newExtractor(&fakeParser{doc: &fakeDocument{}})
	text, err := e.Extract(context.Background(), []byte("%PDF"), format.PDF)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestExtract_EmptyPageKeepsSeparator(t *testing.T) {
	doc := &fakeDocument{pages: [][]string{{}, {"b"}}}
	e := newExtractor(&fakeParser{doc: doc})
	text, err := e.Extract(context.Background(), []byte("%PDF"), format.PDF)
	require.NoError(t, err)
	assert.Equal(t, "\n\nb\n\n", text)
}

func TestExtract_CancelledContext(t *testing.T) {
	doc := &fakeDocument{pages: [][]string{{"a"}, {"b"}}}
	e := newExtractor(&fakeParser{doc: doc})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Extract(ctx, []byte("%PDF"), format.PDF)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, doc.visited)
}

func TestJoinFragments_NormalisesToNFC(t *testing.T) {
	// "e" + combining acute accent composes to U+00E9.
	assert.Equal(t, "caf\u00e9 au lait", JoinFragments([]string{"cafe\u0301", "au", "lait"}))
}
