package pipeline

import (
	"context"
	"html"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// ![alt](src =WxH "title"); either dimension may be * (unset).
	imageDimensions = regexp.MustCompile(`!\[([^\]]*)\]\(\s*<?([^\s>)]+)>?\s+=(\*|\d+[a-z%]*)x(\*|\d+[a-z%]*)(?:\s+["']([^"']*)["'])?\s*\)`)

	// Fence opener/closer: up to 3 spaces then ``` or ~~~
	codeFence = regexp.MustCompile("^ {0,3}(```|~~~)")

	// Single-backtick code span on one line
	inlineCode = regexp.MustCompile("`[^`]*`")
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// TutorialPreprocessor rewrites the syntax goldmark does not understand.
type TutorialPreprocessor struct{}

// PreprocessMarkdown normalizes line endings and expands sized images.
func (p *TutorialPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = expandImageDimensions(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// expandImageDimensions turns ![alt](src =WxH) into an <img> element.
// Lines inside fenced code blocks are left untouched.
func expandImageDimensions(content string) string {
	if !strings.Contains(content, "=") {
		return content
	}

	lines := strings.Split(content, "\n")
	var fence string
	for i, line := range lines {
		if m := codeFence.FindStringSubmatch(line); m != nil {
			switch fence {
			case "":
				fence = m[1]
			case m[1]:
				fence = ""
			}
			continue
		}
		if fence != "" {
			continue
		}
		lines[i] = expandOutsideCodeSpans(line)
	}
	return strings.Join(lines, "\n")
}

// expandOutsideCodeSpans applies sizedImage to the parts of a line that are
// not inside `code spans`.
func expandOutsideCodeSpans(line string) string {
	spans := inlineCode.FindAllStringIndex(line, -1)
	if len(spans) == 0 {
		return imageDimensions.ReplaceAllStringFunc(line, sizedImage)
	}

	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(imageDimensions.ReplaceAllStringFunc(line[last:s[0]], sizedImage))
		b.WriteString(line[s[0]:s[1]])
		last = s[1]
	}
	b.WriteString(imageDimensions.ReplaceAllStringFunc(line[last:], sizedImage))
	return b.String()
}

// sizedImage renders one imageDimensions match.
func sizedImage(match string) string {
	m := imageDimensions.FindStringSubmatch(match)
	alt, src, width, height, title := m[1], m[2], m[3], m[4], m[5]

	var b strings.Builder
	b.WriteString(`<img src="`)
	b.WriteString(html.EscapeString(src))
	b.WriteString(`" alt="`)
	b.WriteString(html.EscapeString(alt))
	b.WriteString(`"`)
	if width != "*" {
		b.WriteString(` width="` + width + `"`)
	}
	if height != "*" {
		b.WriteString(` height="` + height + `"`)
	}
	if title != "" {
		b.WriteString(` title="` + html.EscapeString(title) + `"`)
	}
	b.WriteString(` />`)
	return b.String()
}

// TrimCodeBlockNewlines drops the newline goldmark leaves before </code></pre>,
// so code blocks carry no trailing blank line.
func TrimCodeBlockNewlines(htmlContent string) string {
	return strings.ReplaceAll(htmlContent, "\n</code></pre>", "</code></pre>")
}
