package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-tutorialsite/internal/fileutil"
	"github.com/alnah/go-tutorialsite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Defaults for a freshly scaffolded tree.
const (
	DefaultSourceDir     = "src"
	DefaultOutputDir     = "dist"
	DefaultPageTemplate  = "template.html"
	DefaultIndexTemplate = "index.html"

	// MaxWorkers mirrors tutorialsite.MaxWorkers; config cannot import the root package.
	MaxWorkers = 32

	// appDirName is the directory under the user config and cache dirs.
	appDirName = "go-tutorialsite"
)

// Config holds all build configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Output OutputConfig `yaml:"output"`
	Build  BuildConfig  `yaml:"build"`
	HTML   HTMLConfig   `yaml:"html"`
	Images ImagesConfig `yaml:"images"`
}

// SourceConfig locates the source tree and its two templates.
type SourceConfig struct {
	Dir           string `yaml:"dir"`
	PageTemplate  string `yaml:"pageTemplate"`  // file name inside Dir
	IndexTemplate string `yaml:"indexTemplate"` // file name inside Dir
}

// OutputConfig locates the distribution root.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// BuildConfig tunes task execution.
type BuildConfig struct {
	Workers int `yaml:"workers"` // 0 = auto
}

// HTMLConfig controls post-processing of HTML-sourced pages.
type HTMLConfig struct {
	Minify bool `yaml:"minify"`
}

// ImagesConfig controls image optimisation.
type ImagesConfig struct {
	JPEGQuality int         `yaml:"jpegQuality"` // 0 = keep JPEG bytes
	MaxWidth    int         `yaml:"maxWidth"`    // 0 = never downscale
	Cache       CacheConfig `yaml:"cache"`
}

// CacheConfig controls the persistent image cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // "" = user cache dir
}

// Validate reports the first invalid field.
// Called by LoadConfig, and again by the CLI after flags are merged.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source.Dir) == "" {
		return fmt.Errorf("%w: source.dir is empty", ErrInvalidValue)
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("%w: output.dir is empty", ErrInvalidValue)
	}
	if filepath.Clean(c.Source.Dir) == filepath.Clean(c.Output.Dir) {
		return fmt.Errorf("%w: output.dir must differ from source.dir (%s)", ErrInvalidValue, c.Source.Dir)
	}
	if fileutil.IsWithin(c.Output.Dir, c.Source.Dir) {
		return fmt.Errorf("%w: output.dir %s contains source.dir %s", ErrInvalidValue, c.Output.Dir, c.Source.Dir)
	}
	if fileutil.IsWithin(c.Source.Dir, c.Output.Dir) {
		return fmt.Errorf("%w: source.dir %s contains output.dir %s", ErrInvalidValue, c.Source.Dir, c.Output.Dir)
	}
	if err := validateTemplateName("source.pageTemplate", c.Source.PageTemplate); err != nil {
		return err
	}
	if err := validateTemplateName("source.indexTemplate", c.Source.IndexTemplate); err != nil {
		return err
	}
	if c.Source.PageTemplate == c.Source.IndexTemplate {
		return fmt.Errorf("%w: source.pageTemplate and source.indexTemplate are both %q", ErrInvalidValue, c.Source.PageTemplate)
	}
	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}
	if c.Images.JPEGQuality < 0 || c.Images.JPEGQuality > 100 {
		return fmt.Errorf("%w: images.jpegQuality must be between 0 and 100, got %d", ErrInvalidValue, c.Images.JPEGQuality)
	}
	if c.Images.MaxWidth < 0 {
		return fmt.Errorf("%w: images.maxWidth must be >= 0, got %d", ErrInvalidValue, c.Images.MaxWidth)
	}
	return nil
}

// validateTemplateName requires a bare .html file name: templates live at the source root.
func validateTemplateName(field, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidValue, field)
	}
	if fileutil.IsFilePath(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: %s must be a file name, got %q", ErrInvalidValue, field, name)
	}
	if filepath.Ext(name) != ".html" {
		return fmt.Errorf("%w: %s must end in .html, got %q", ErrInvalidValue, field, name)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Dir:           DefaultSourceDir,
			PageTemplate:  DefaultPageTemplate,
			IndexTemplate: DefaultIndexTemplate,
		},
		Output: OutputConfig{Dir: DefaultOutputDir},
		HTML:   HTMLConfig{Minify: true},
		Images: ImagesConfig{Cache: CacheConfig{Enabled: true}},
	}
}

// ResolveCachePath returns the image cache location.
// An explicit path wins; otherwise the file lives in the user cache directory.
func (c *Config) ResolveCachePath() (string, error) {
	if c.Images.Cache.Path != "" {
		return c.Images.Cache.Path, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating user cache dir: %w", err)
	}
	return filepath.Join(dir, appDirName, "images.db"), nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files tried for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, appDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
