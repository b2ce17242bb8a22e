package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig - Defaults pass validation
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Source.Dir != "src" || cfg.Output.Dir != "dist" {
		t.Errorf("dirs = %q/%q, want src/dist", cfg.Source.Dir, cfg.Output.Dir)
	}
	if !cfg.HTML.Minify {
		t.Error("HTML.Minify = false, want true")
	}
	if !cfg.Images.Cache.Enabled {
		t.Error("Images.Cache.Enabled = false, want true")
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Field validation
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *Config)
		wantIn string
	}{
		{"empty source dir", func(c *Config) { c.Source.Dir = " " }, "source.dir"},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, "output.dir"},
		{"output equals source", func(c *Config) { c.Output.Dir = "./src" }, "must differ"},
		{"output contains source", func(c *Config) { c.Source.Dir = "site/src"; c.Output.Dir = "site" }, "contains source.dir"},
		{"output is parent dir", func(c *Config) { c.Output.Dir = ".." }, "contains source.dir"},
		{"source contains output", func(c *Config) { c.Output.Dir = "src/dist" }, "contains output.dir"},
		{"template with separator", func(c *Config) { c.Source.PageTemplate = "layouts/page.html" }, "source.pageTemplate"},
		{"template without html ext", func(c *Config) { c.Source.IndexTemplate = "index.tmpl" }, ".html"},
		{"same template twice", func(c *Config) { c.Source.IndexTemplate = c.Source.PageTemplate }, "both"},
		{"negative workers", func(c *Config) { c.Build.Workers = -1 }, "build.workers"},
		{"too many workers", func(c *Config) { c.Build.Workers = MaxWorkers + 1 }, "build.workers"},
		{"jpeg quality above 100", func(c *Config) { c.Images.JPEGQuality = 101 }, "jpegQuality"},
		{"negative max width", func(c *Config) { c.Images.MaxWidth = -5 }, "maxWidth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("Validate() error = %v, want ErrInvalidValue", err)
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantIn)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("loads explicit path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "site.yaml")
		content := `source:
  dir: content
  pageTemplate: page.html
  indexTemplate: home.html
output:
  dir: public
build:
  workers: 4
html:
  minify: false
images:
  jpegQuality: 80
  maxWidth: 1200
  cache:
    enabled: false
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Source.Dir != "content" || cfg.Output.Dir != "public" {
			t.Errorf("dirs = %q/%q, want content/public", cfg.Source.Dir, cfg.Output.Dir)
		}
		if cfg.Source.PageTemplate != "page.html" || cfg.Source.IndexTemplate != "home.html" {
			t.Errorf("templates = %q/%q", cfg.Source.PageTemplate, cfg.Source.IndexTemplate)
		}
		if cfg.Build.Workers != 4 {
			t.Errorf("Workers = %d, want 4", cfg.Build.Workers)
		}
		if cfg.HTML.Minify {
			t.Error("HTML.Minify = true, want false")
		}
		if cfg.Images.JPEGQuality != 80 || cfg.Images.MaxWidth != 1200 {
			t.Errorf("images = %+v", cfg.Images)
		}
		if cfg.Images.Cache.Enabled {
			t.Error("Images.Cache.Enabled = true, want false")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("no-such-config-name-9f3a")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown key is a parse error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "typo.yaml")
		if err := os.WriteFile(path, []byte("sourc:\n  dir: src\n"), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value is rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("build:\n  workers: -3\n"), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidValue", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveCachePath - Explicit path wins over user cache dir
// ---------------------------------------------------------------------------

func TestResolveCachePath(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Images.Cache.Path = "/tmp/custom.db"

	got, err := cfg.ResolveCachePath()
	if err != nil {
		t.Fatalf("ResolveCachePath() error = %v", err)
	}
	if got != "/tmp/custom.db" {
		t.Errorf("ResolveCachePath() = %q, want /tmp/custom.db", got)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("site")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() returned %d paths, want at least 2", len(paths))
	}
	if paths[0] != "site.yaml" || paths[1] != "site.yml" {
		t.Errorf("SearchPaths()[:2] = %v, want [site.yaml site.yml]", paths[:2])
	}
}
