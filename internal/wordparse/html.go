// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordparse

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/docshift/internal/extract"
	"github.com/pdiddy/docshift/internal/format"
)

// HTMLParser opens HTML documents saved with a .doc extension.
type HTMLParser struct{}

// NewHTML returns an HTMLParser.
func NewHTML() *HTMLParser { return &HTMLParser{} }

// Open parses the markup and collects the body text. Preformatted blocks
// are kept verbatim; other blocks have their whitespace collapsed.
func (p *HTMLParser) Open(data []byte) (extract.Document, error) {
	if format.DetectFromMagic(data) != format.HTMLDoc {
		return nil, errors.New("not an HTML document")
	}
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	body := findElement(root, "body")
	if body == nil {
		body = root
	}

	var c collector
	c.walk(body, false)
	c.flush(false)
	return singlePage(strings.Join(c.blocks, "\n\n")), nil
}

// collector accumulates text blocks in document order.
type collector struct {
	blocks []string
	cur    strings.Builder
}

func (c *collector) walk(n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			c.cur.WriteString(n.Data)
		} else {
			c.cur.WriteString(collapseSpace(n.Data))
		}
		return
	case html.ElementNode:
		if shouldSkipElement(n.Data) {
			return
		}
		switch {
		case n.Data == "br":
			c.cur.WriteByte('\n')
			return
		case n.Data == "pre":
			c.flush(pre)
			for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
				c.walk(ch, true)
			}
			c.flush(true)
			return
		case isBlock(n.Data):
			c.flush(pre)
			for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
				c.walk(ch, pre)
			}
			c.flush(pre)
			return
		}
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.walk(ch, pre)
	}
}

// flush closes the current block. Verbatim blocks only lose trailing line
// breaks; others are trimmed line by line.
func (c *collector) flush(verbatim bool) {
	s := c.cur.String()
	c.cur.Reset()
	if strings.TrimSpace(s) == "" {
		return
	}
	if verbatim {
		c.blocks = append(c.blocks, strings.TrimRight(s, "\r\n"))
		return
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	c.blocks = append(c.blocks, strings.TrimSpace(strings.Join(lines, "\n")))
}

func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func shouldSkipElement(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head":
		return true
	}
	return false
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol",
		"table", "tr", "blockquote", "article", "section", "header", "footer",
		"main", "nav", "aside", "hr", "dl", "dt", "dd", "figure", "figcaption":
		return true
	}
	return false
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// LegacyParser rejects binary Word 97-2003 documents with an explanation.
type LegacyParser struct{}

// NewLegacy returns a LegacyParser.
func NewLegacy() *LegacyParser { return &LegacyParser{} }

func (p *LegacyParser) Open([]byte) (extract.Document, error) {
	return nil, errors.New("binary Word 97-2003 documents are not supported; save the file as .docx")
}
