package tutorialsite

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alnah/go-tutorialsite/internal/assets"
)

// Templates holds the parsed page and index templates.
// Read-only after parsing; safe for concurrent rendering.
type Templates struct {
	page  *template.Template
	index *template.Template
}

// LoadTemplates reads and parses the page and index templates from loader.
func LoadTemplates(loader assets.TemplateLoader, page, index string) (*Templates, error) {
	set, err := loader.LoadTemplateSet(page, index)
	if err != nil {
		return nil, err
	}
	return ParseTemplates(set)
}

// ParseTemplates parses a raw template set.
func ParseTemplates(set *assets.TemplateSet) (*Templates, error) {
	page, err := template.New("page").Option("missingkey=error").Parse(set.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: page: %v", ErrTemplateParse, err)
	}
	index, err := template.New("index").Option("missingkey=error").Parse(set.Index)
	if err != nil {
		return nil, fmt.Errorf("%w: index: %v", ErrTemplateParse, err)
	}
	return &Templates{page: page, index: index}, nil
}

// RenderPage renders the page template.
func (t *Templates) RenderPage(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: page: %v", ErrTemplateRender, err)
	}
	return buf.Bytes(), nil
}

// RenderIndex renders the index template.
func (t *Templates) RenderIndex(data IndexData) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.index.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: index: %v", ErrTemplateRender, err)
	}
	return buf.Bytes(), nil
}
