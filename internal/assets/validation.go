package assets

import (
	"fmt"
	"strings"
)

const templateExt = ".html"

// ValidateTemplateName checks that a template name is a bare .html file name.
// Returns ErrInvalidAssetName if the name is empty, contains path separators,
// has a hidden or dotted stem, or uses another extension.
func ValidateTemplateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	stem, ok := strings.CutSuffix(name, templateExt)
	if !ok || stem == "" || strings.ContainsAny(stem, "/\\.:") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
