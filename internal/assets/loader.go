package assets

// TemplateLoader defines the contract for loading the site templates.
type TemplateLoader interface {
	// LoadTemplate loads one HTML template by file name (e.g. "template.html").
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)

	// LoadTemplateSet loads the page and index templates together.
	// Returns ErrTemplateNotFound if neither exists and
	// ErrIncompleteTemplateSet if only one does.
	LoadTemplateSet(page, index string) (*TemplateSet, error)
}
