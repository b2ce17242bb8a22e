package tutorialsite

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-tutorialsite/internal/assets"
)

const (
	testPageTemplate  = `<html><head><title>{{.Title}}</title></head><body>{{.Content}}</body></html>`
	testIndexTemplate = `<ul>{{range .Tutorials}}<li><a href="{{.URL}}">{{.Title}}</a></li>{{end}}</ul>`
)

func mustTemplates(t *testing.T) *Templates {
	t.Helper()
	tmpl, err := ParseTemplates(&assets.TemplateSet{Page: testPageTemplate, Index: testIndexTemplate})
	if err != nil {
		t.Fatalf("ParseTemplates: %v", err)
	}
	return tmpl
}

// ----------------------------------------------------------------------------
// Templates
// ----------------------------------------------------------------------------

func TestParseTemplates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		set     assets.TemplateSet
		wantErr error
	}{
		{
			name: "valid",
			set:  assets.TemplateSet{Page: testPageTemplate, Index: testIndexTemplate},
		},
		{
			name:    "broken page",
			set:     assets.TemplateSet{Page: "{{.Title", Index: testIndexTemplate},
			wantErr: ErrTemplateParse,
		},
		{
			name:    "broken index",
			set:     assets.TemplateSet{Page: testPageTemplate, Index: "{{range .Tutorials}}"},
			wantErr: ErrTemplateParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseTemplates(&tt.set)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseTemplates error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTemplates_RenderPageUnknownField(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplates(&assets.TemplateSet{Page: "{{.Author}}", Index: testIndexTemplate})
	if err != nil {
		t.Fatalf("ParseTemplates: %v", err)
	}

	_, err = tmpl.RenderPage(PageData{Title: "x"})
	if !errors.Is(err, ErrTemplateRender) {
		t.Errorf("RenderPage error = %v, want ErrTemplateRender", err)
	}
}

// ----------------------------------------------------------------------------
// Merger
// ----------------------------------------------------------------------------

func TestMerger_Merge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		doc       Document
		wantTitle string
		wantURL   string
		wantHTML  string
	}{
		{
			name:      "html fragment",
			doc:       Document{Path: "src/advanced/advanced.html", Rel: "advanced/advanced.html", Contents: []byte("<h1>Advanced</h1><p>more</p>")},
			wantTitle: "Advanced",
			wantURL:   "advanced/",
			wantHTML:  "<html><head><title>Advanced</title></head><body><h1>Advanced</h1><p>more</p></body></html>",
		},
		{
			name:      "title is escaped, content is not",
			doc:       Document{Path: "p", Rel: "tips/tips.html", Contents: []byte("<h1>Tips &amp; Tricks</h1><script>x()</script>")},
			wantTitle: "Tips & Tricks",
			wantURL:   "tips/",
			wantHTML:  "<html><head><title>Tips &amp; Tricks</title></head><body><h1>Tips &amp; Tricks</h1><script>x()</script></body></html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, err := NewMerger(mustTemplates(t)).Merge(tt.doc)
			if err != nil {
				t.Fatalf("Merge: %v", err)
			}
			if page.Tutorial.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", page.Tutorial.Title, tt.wantTitle)
			}
			if page.Tutorial.URL != tt.wantURL {
				t.Errorf("url = %q, want %q", page.Tutorial.URL, tt.wantURL)
			}
			if string(page.HTML) != tt.wantHTML {
				t.Errorf("html = %q, want %q", page.HTML, tt.wantHTML)
			}
		})
	}
}

func TestMerger_MissingTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
	}{
		{name: "no heading", contents: "<p>just text</p>"},
		{name: "only h2", contents: "<h2>Sub</h2>"},
		{name: "empty h1", contents: "<h1>  </h1><p>x</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			const path = "src/broken/broken.html"
			_, err := NewMerger(mustTemplates(t)).Merge(Document{Path: path, Rel: "broken/broken.html", Contents: []byte(tt.contents)})
			if !errors.Is(err, ErrMissingTitle) {
				t.Fatalf("Merge error = %v, want ErrMissingTitle", err)
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error %q does not name %s", err, path)
			}
		})
	}
}

func TestMerger_Deterministic(t *testing.T) {
	t.Parallel()

	merger := NewMerger(mustTemplates(t))
	doc := Document{Path: "p", Rel: "intro/intro.html", Contents: []byte("<h1>Intro</h1><p>text</p>")}

	first, err := merger.Merge(doc)
	if err != nil {
		t.Fatal(err)
	}
	second, err := merger.Merge(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.HTML, second.HTML) {
		t.Errorf("renders differ:\n%s\n%s", first.HTML, second.HTML)
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel  string
		want string
	}{
		{"intro/intro.md", "intro/"},
		{"advanced/page.html", "advanced/"},
		{"a/b/c.html", "b/"},
		{"top.html", "./"},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			t.Parallel()

			if got := Slug(tt.rel); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Index
// ----------------------------------------------------------------------------

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tutorials []Tutorial
		want      string
	}{
		{
			name:      "keeps order",
			tutorials: []Tutorial{{Title: "A", URL: "a/"}, {Title: "B", URL: "b/"}},
			want:      `<ul><li><a href="a/">A</a></li><li><a href="b/">B</a></li></ul>`,
		},
		{
			name:      "empty",
			tutorials: nil,
			want:      `<ul></ul>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := BuildIndex(mustTemplates(t), tt.tutorials)
			if err != nil {
				t.Fatalf("BuildIndex: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("BuildIndex = %q, want %q", got, tt.want)
			}
		})
	}
}
