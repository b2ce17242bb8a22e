package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads templates from a source directory on disk.
// Implements TemplateLoader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	// Clean and resolve to absolute path
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path so containment checks compare real paths
	realPath, err := filepath.EvalSymlinks(absPath)
	if err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadTemplate loads {basePath}/{name}.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateTemplateName(name); err != nil {
		return "", err
	}

	filePath := filepath.Join(f.basePath, name)

	// Path containment check: ensure resolved path is within basePath
	if err := f.verifyPathContainment(filePath); err != nil {
		return "", err
	}

	content, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, filePath)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	return string(content), nil
}

// LoadTemplateSet loads the page and index templates from the base path.
func (f *FilesystemLoader) LoadTemplateSet(page, index string) (*TemplateSet, error) {
	pageSrc, pageErr := f.LoadTemplate(page)
	indexSrc, indexErr := f.LoadTemplate(index)

	pageMissing := isNotFound(pageErr)
	indexMissing := isNotFound(indexErr)

	// Neither template present: this is not a site source tree
	if pageMissing && indexMissing {
		return nil, fmt.Errorf("%w: %s and %s in %s", ErrTemplateNotFound, page, index, f.basePath)
	}

	// Validation, containment, and read errors take precedence
	if pageErr != nil && !pageMissing {
		return nil, pageErr
	}
	if indexErr != nil && !indexMissing {
		return nil, indexErr
	}

	if pageMissing {
		return nil, fmt.Errorf("%w: %s missing %s", ErrIncompleteTemplateSet, f.basePath, page)
	}
	if indexMissing {
		return nil, fmt.Errorf("%w: %s missing %s", ErrIncompleteTemplateSet, f.basePath, index)
	}

	return &TemplateSet{Page: pageSrc, Index: indexSrc}, nil
}

// verifyPathContainment ensures the resolved file path is within basePath.
// Resolves symlinks to prevent escape via symlink pointing outside basePath.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	realPath, err := filepath.EvalSymlinks(absFilePath)
	if err == nil {
		absFilePath = realPath
	}
	// If EvalSymlinks fails (e.g., file doesn't exist), the read fails next

	// Separator suffix prevents /base/path matching /base/pathevil
	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}

func isNotFound(err error) bool {
	return err != nil && errors.Is(err, ErrTemplateNotFound)
}

// Compile-time interface check.
var _ TemplateLoader = (*FilesystemLoader)(nil)
