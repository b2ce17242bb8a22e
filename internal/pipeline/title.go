package pipeline

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractTitle returns the text of the first <h1> with non-empty content.
//
// Text nodes between <h1> and </h1> are concatenated with entities decoded;
// nested inline tags are skipped over. Surrounding whitespace is trimmed.
// An empty <h1> does not count and scanning continues. An <h1> left open at
// the end of the document is treated as closed there.
func ExtractTitle(content []byte) (string, bool) {
	z := html.NewTokenizer(bytes.NewReader(content))

	var title strings.Builder
	inH1 := false

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF: bytes.Reader cannot fail otherwise
			if inH1 {
				if t := strings.TrimSpace(title.String()); t != "" {
					return t, true
				}
			}
			return "", false

		case html.StartTagToken:
			if !inH1 && isH1(z) {
				inH1 = true
				title.Reset()
			}

		case html.EndTagToken:
			if inH1 && isH1(z) {
				if t := strings.TrimSpace(title.String()); t != "" {
					return t, true
				}
				inH1 = false
			}

		case html.TextToken:
			if inH1 {
				title.Write(z.Text())
			}
		}
	}
}

// isH1 reports whether the current tag token is h1 (case-insensitive).
func isH1(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	return atom.Lookup(name) == atom.H1
}
