// Package assets loads site templates and optimizes static assets.
//
// # Templates
//
// The page and index templates live at the top of the source tree:
//
//	{source}/
//	├── template.html    # wraps every tutorial page
//	├── index.html       # lists every tutorial
//	├── css/             # stylesheets, prefixed and minified
//	├── img/             # site-wide images
//	├── lib/             # vendored libraries, copied verbatim
//	└── {tutorial}/
//	    ├── {tutorial}.md or .html
//	    └── img/
//
// FilesystemLoader reads both templates from the source root with path
// traversal protection and symlink resolution. The starter tree compiled
// into the binary (WriteStarter) gives `init` a working copy of the layout.
//
// # Static assets
//
// CSSProcessor prefixes and minifies stylesheets with esbuild.
// ImageOptimizer re-encodes PNG and GIF losslessly, minifies SVG, and only
// touches JPEG when a quality or maximum width is configured; the smaller
// of the original and optimized bytes wins. CachingOptimizer stores results
// in a SQLite file keyed by content hash so unchanged images are not
// re-encoded on later builds.
package assets
