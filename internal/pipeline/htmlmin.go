package pipeline

import (
	"errors"
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

// ErrHTMLMinify indicates the minifier rejected its input.
var ErrHTMLMinify = errors.New("HTML minification failed")

const htmlMediaType = "text/html"

// HTMLMinifier collapses whitespace in rendered pages.
type HTMLMinifier struct {
	m *minify.M
}

// NewHTMLMinifier returns a conservative minifier: runs of whitespace collapse
// to one space but are never removed, and document structure, end tags,
// quotes, and default attribute values are kept.
func NewHTMLMinifier() *HTMLMinifier {
	m := minify.New()
	m.Add(htmlMediaType, &html.Minifier{
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
		KeepWhitespace:      true,
	})
	return &HTMLMinifier{m: m}
}

// Minify returns the minified page.
func (h *HTMLMinifier) Minify(page []byte) ([]byte, error) {
	out, err := h.m.Bytes(htmlMediaType, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLMinify, err)
	}
	return out, nil
}
