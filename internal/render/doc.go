// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/docshift/internal/format"
	"github.com/pdiddy/docshift/internal/reflow"
)

const (
	docTitle = "Converted Document"
	preStyle = "font-family: Arial, sans-serif; white-space: pre-wrap; word-wrap: break-word;"
)

// DocWriter writes a Word-compatible .doc file: a minimal HTML document
// whose body is a single preformatted block. HTML has no page primitive, so
// page boundaries become line breaks.
type DocWriter struct{}

// NewDocWriter returns a DocWriter.
func NewDocWriter() *DocWriter { return &DocWriter{} }

func (w *DocWriter) Format() format.Format { return format.HTMLDoc }

// Write renders pages into the HTML container.
func (w *DocWriter) Write(pages []reflow.Page) ([]byte, error) {
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text()
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, buildDocTree(strings.Join(texts, "\n"))); err != nil {
		return nil, &Error{Kind: EncodingFailure, Format: format.HTMLDoc, Err: err}
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func buildDocTree(text string) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	root.AppendChild(head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "UTF-8"}))
	title := element(atom.Title)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: docTitle})
	head.AppendChild(title)

	body := element(atom.Body)
	root.AppendChild(body)
	pre := element(atom.Pre, html.Attribute{Key: "style", Val: preStyle})
	pre.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	body.AppendChild(pre)

	return doc
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}
