package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HeadingIDPrefix is prepended to every generated heading ID.
const HeadingIDPrefix = "sec-"

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
// The configuration is fixed; it is safe for concurrent use.
type GoldmarkConverter struct {
	md  goldmark.Markdown
	pre MarkdownPreprocessor
}

// NewGoldmarkConverter creates a GoldmarkConverter with tables, strikethrough,
// bare-URL linking, and prefixed heading IDs.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Linkify, // bare URLs and www. links
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // IDs come from the per-document prefixedIDs
		),
		goldmark.WithRendererOptions(
			// Tutorial authors own the input; inline HTML and the <img>
			// produced for the =WxH syntax must survive.
			html.WithUnsafe(),
		),
	)
	return &GoldmarkConverter{md: md, pre: &TutorialPreprocessor{}}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		src := c.pre.PreprocessMarkdown(ctx, content)
		pctx := parser.NewContext(parser.WithIDs(newPrefixedIDs(HeadingIDPrefix)))

		var buf bytes.Buffer
		if err := c.md.Convert([]byte(src), &buf, parser.WithContext(pctx)); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: TrimCodeBlockNewlines(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)
