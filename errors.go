package tutorialsite

import "errors"

// Sentinel errors for library operations.
var (
	// Page errors: fail the build.
	ErrMissingTitle   = errors.New("page has no <h1> title")
	ErrTemplateParse  = errors.New("template parse failed")
	ErrTemplateRender = errors.New("template rendering failed")
	ErrReadSource     = errors.New("failed to read source file")
	ErrWriteOutput    = errors.New("failed to write output file")

	// Registry errors.
	ErrDuplicateCommit    = errors.New("stage already committed")
	ErrIncompleteRegistry = errors.New("required stage has not committed")

	// Options validation errors.
	ErrInvalidOptions = errors.New("invalid build options")
)
