package tutorialsite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tutorialsite "github.com/alnah/go-tutorialsite"
)

// Example builds a one-page site into a temporary directory.
func Example() {
	root, err := os.MkdirTemp("", "tutorialsite-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(root)

	src := filepath.Join(root, "src")
	files := map[string]string{
		"template.html":  "<title>{{.Title}}</title>{{.Content}}",
		"index.html":     "{{range .Tutorials}}{{.Title}} -> {{.URL}}\n{{end}}",
		"intro/intro.md": "# Intro\n\nHello.",
	}
	for rel, content := range files {
		path := filepath.Join(src, filepath.FromSlash(rel))
		_ = os.MkdirAll(filepath.Dir(path), 0o750)
		_ = os.WriteFile(path, []byte(content), 0o600)
	}

	opts := tutorialsite.DefaultOptions()
	opts.SourceDir = src
	opts.OutputDir = filepath.Join(root, "dist")

	site, err := tutorialsite.NewSite(opts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if _, err := site.Build(context.Background()); err != nil {
		fmt.Println("error:", err)
		return
	}

	index, _ := os.ReadFile(filepath.Join(opts.OutputDir, "index.html"))
	fmt.Print(string(index))
	// Output: Intro -> intro/
}

// ExampleSlug shows how tutorial URLs are derived.
func ExampleSlug() {
	fmt.Println(tutorialsite.Slug("getting-started/part1.md"))
	// Output: getting-started/
}
