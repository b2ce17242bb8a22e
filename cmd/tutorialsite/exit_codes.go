package main

import (
	"errors"
	"os"

	tutorialsite "github.com/alnah/go-tutorialsite"
	"github.com/alnah/go-tutorialsite/internal/assets"
	"github.com/alnah/go-tutorialsite/internal/config"
	"github.com/alnah/go-tutorialsite/internal/fileutil"
	"github.com/alnah/go-tutorialsite/internal/taskgraph"
)

// Exit codes for the tutorialsite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Build succeeded
	ExitGeneral = 1 // General/unexpected error, including asset transform failures
	ExitUsage   = 2 // Invalid flags, config, or task names
	ExitIO      = 3 // Unreadable source, unwritable output
	ExitContent = 4 // Missing title or broken template
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// Content errors win over I/O errors when a build reports both.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Content errors (exit 4)
	if errors.Is(err, tutorialsite.ErrMissingTitle) ||
		errors.Is(err, tutorialsite.ErrTemplateParse) ||
		errors.Is(err, tutorialsite.ErrTemplateRender) {
		return ExitContent
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, tutorialsite.ErrInvalidOptions) ||
		errors.Is(err, taskgraph.ErrUnknownTask) ||
		errors.Is(err, assets.ErrStarterExists) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, tutorialsite.ErrReadSource) ||
		errors.Is(err, tutorialsite.ErrWriteOutput) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrIncompleteTemplateSet) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, fileutil.ErrUnsafeRemove) {
		return ExitIO
	}

	return ExitGeneral
}
