// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-tutorialsite/internal/fileutil"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-tutorialsite/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-tutorialsite/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForSourceNotFound returns hints when the source tree or its templates are missing.
func ForSourceNotFound(sourceDir string) string {
	if !fileutil.DirExists(sourceDir) {
		return format("run 'tutorialsite init " + sourceDir + "' to create a starter site, or pass --src")
	}
	return format("the page and index templates must sit directly in " + sourceDir + "; 'tutorialsite init' shows the layout")
}

// ForMissingTitle returns a hint for pages without a usable <h1>.
func ForMissingTitle() string {
	return format("start Markdown pages with '# Title' or HTML pages with <h1>Title</h1>")
}

// ForTemplateRender returns a hint for template parse or execution errors.
func ForTemplateRender() string {
	return formatHints([]string{
		"page templates receive .Title and .Content",
		"the index template receives .Tutorials (each with .Title and .URL)",
	})
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnknownTask returns a hint listing the valid task names.
func ForUnknownTask(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForImageCache returns a hint for unusable image cache databases.
func ForImageCache() string {
	return format("use --no-cache, or set images.cache.path to a writable location")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
