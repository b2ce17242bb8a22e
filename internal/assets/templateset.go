package assets

// TemplateSet holds the raw HTML templates for a build.
// Page wraps each tutorial; Index lists them.
type TemplateSet struct {
	Page  string // page template source
	Index string // index template source
}
