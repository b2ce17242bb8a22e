package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrIncompleteTemplateSet indicates one of the page or index templates is missing.
	ErrIncompleteTemplateSet = errors.New("template set missing required template")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrStarterExists indicates init would overwrite existing files.
	ErrStarterExists = errors.New("starter files already exist")

	// ErrCSSTransform indicates a stylesheet could not be parsed or prefixed.
	ErrCSSTransform = errors.New("CSS transform failed")

	// ErrImageDecode indicates an image file is corrupt or not in its extension's format.
	ErrImageDecode = errors.New("image decode failed")

	// ErrImageEncode indicates re-encoding an image failed.
	ErrImageEncode = errors.New("image encode failed")

	// ErrImageCache indicates the image cache database could not be used.
	ErrImageCache = errors.New("image cache error")
)
