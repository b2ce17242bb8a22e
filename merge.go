package tutorialsite

import (
	"fmt"
	"html/template"
	"path"

	"github.com/alnah/go-tutorialsite/internal/pipeline"
)

// Merger wraps page fragments in the page template.
type Merger struct {
	templates *Templates
}

// NewMerger creates a Merger rendering with templates.
func NewMerger(templates *Templates) *Merger {
	return &Merger{templates: templates}
}

// Merge extracts the title, derives the tutorial URL, and renders the page.
// The fragment is inserted as trusted HTML.
func (m *Merger) Merge(doc Document) (Page, error) {
	title, ok := pipeline.ExtractTitle(doc.Contents)
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", ErrMissingTitle, doc.Path)
	}

	html, err := m.templates.RenderPage(PageData{
		Title:   title,
		Content: template.HTML(doc.Contents), // #nosec G203 -- fragments are authored site content
	})
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", doc.Path, err)
	}

	return Page{
		Tutorial: Tutorial{Title: title, URL: Slug(doc.Rel)},
		HTML:     html,
	}, nil
}

// Slug returns the URL of the tutorial containing rel: the name of its
// immediate parent directory followed by "/". rel is slash-separated.
func Slug(rel string) string {
	return path.Base(path.Dir(rel)) + "/"
}
