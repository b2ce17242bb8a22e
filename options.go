package tutorialsite

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-tutorialsite/internal/assets"
	"github.com/alnah/go-tutorialsite/internal/fileutil"
)

// Default locations, relative to the working directory.
const (
	DefaultSourceDir     = "src"
	DefaultOutputDir     = "dist"
	DefaultPageTemplate  = "template.html"
	DefaultIndexTemplate = "index.html"
)

// Options configures a Site.
type Options struct {
	SourceDir     string
	OutputDir     string
	PageTemplate  string // file name inside SourceDir
	IndexTemplate string // file name inside SourceDir

	// Workers bounds per-task file concurrency. 0 = auto (see ResolveWorkers).
	Workers int

	// MinifyHTML collapses whitespace in pages built from HTML fragments.
	MinifyHTML bool

	JPEGQuality   int // 0 keeps JPEG bytes; 1-100 re-encodes
	MaxImageWidth int // 0 never downscales

	// ImageCachePath is the SQLite image cache file. "" disables caching.
	ImageCachePath string
}

// DefaultOptions returns the options for a conventional src/dist layout,
// without an image cache.
func DefaultOptions() Options {
	return Options{
		SourceDir:     DefaultSourceDir,
		OutputDir:     DefaultOutputDir,
		PageTemplate:  DefaultPageTemplate,
		IndexTemplate: DefaultIndexTemplate,
		MinifyHTML:    true,
	}
}

// Validate checks that the options describe a buildable site.
func (o Options) Validate() error {
	if strings.TrimSpace(o.SourceDir) == "" {
		return fmt.Errorf("%w: source directory is empty", ErrInvalidOptions)
	}
	if strings.TrimSpace(o.OutputDir) == "" {
		return fmt.Errorf("%w: output directory is empty", ErrInvalidOptions)
	}
	if filepath.Clean(o.SourceDir) == filepath.Clean(o.OutputDir) {
		return fmt.Errorf("%w: output directory must differ from source directory (%s)", ErrInvalidOptions, o.SourceDir)
	}
	// clean removes the output tree, and fragments are discovered under the source tree.
	if fileutil.IsWithin(o.OutputDir, o.SourceDir) {
		return fmt.Errorf("%w: output directory %s contains source directory %s", ErrInvalidOptions, o.OutputDir, o.SourceDir)
	}
	if fileutil.IsWithin(o.SourceDir, o.OutputDir) {
		return fmt.Errorf("%w: source directory %s contains output directory %s", ErrInvalidOptions, o.SourceDir, o.OutputDir)
	}
	for _, name := range []string{o.PageTemplate, o.IndexTemplate} {
		if err := assets.ValidateTemplateName(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
	}
	if o.PageTemplate == o.IndexTemplate {
		return fmt.Errorf("%w: page and index templates are both %q", ErrInvalidOptions, o.PageTemplate)
	}
	if o.Workers < 0 || o.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidOptions, MaxWorkers, o.Workers)
	}
	if o.JPEGQuality < 0 || o.JPEGQuality > 100 {
		return fmt.Errorf("%w: JPEG quality must be between 0 and 100, got %d", ErrInvalidOptions, o.JPEGQuality)
	}
	if o.MaxImageWidth < 0 {
		return fmt.Errorf("%w: max image width must be >= 0, got %d", ErrInvalidOptions, o.MaxImageWidth)
	}
	return nil
}

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger for task and file events.
// Panics if logger is nil (programmer error); use zap.NewNop to silence.
func WithLogger(logger *zap.Logger) Option {
	if logger == nil {
		panic("tutorialsite: WithLogger logger must not be nil")
	}
	return func(s *Site) {
		s.logger = logger
	}
}
