package assets

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// cssEngines is the browser set stylesheets are prefixed for: the older of
// the two latest releases of each engine, as of November 2024. The versions
// are a pinned snapshot and go stale; update them and the date together.
var cssEngines = []api.Engine{
	{Name: api.EngineChrome, Version: "130"},
	{Name: api.EngineEdge, Version: "130"},
	{Name: api.EngineFirefox, Version: "132"},
	{Name: api.EngineSafari, Version: "17.6"},
	{Name: api.EngineIOS, Version: "17.6"},
	{Name: api.EngineOpera, Version: "114"},
}

// CSSProcessor adds vendor prefixes to stylesheets and minifies them.
// It holds no state and is safe for concurrent use.
type CSSProcessor struct {
	engines []api.Engine
}

// NewCSSProcessor creates a CSSProcessor targeting the fixed engine set.
func NewCSSProcessor() *CSSProcessor {
	return &CSSProcessor{engines: cssEngines}
}

// Process prefixes and minifies one stylesheet. The name is used in error
// messages only.
func (c *CSSProcessor) Process(name string, src []byte) ([]byte, error) {
	result := api.Transform(string(src), api.TransformOptions{
		Loader:            api.LoaderCSS,
		Engines:           c.engines,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: false,
		Sourcefile:        name,
		LogLevel:          api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s: %s", ErrCSSTransform, name, formatMessages(result.Errors))
	}

	return result.Code, nil
}

// formatMessages joins esbuild messages as "line:col: text".
func formatMessages(msgs []api.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Location != nil {
			parts = append(parts, fmt.Sprintf("%d:%d: %s", m.Location.Line, m.Location.Column, m.Text))
			continue
		}
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, "; ")
}
