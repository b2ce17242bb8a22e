// Package pipeline implements the per-page content stages of the build.
//
// This package handles the transforms a tutorial fragment goes through
// before it is wrapped in the page template:
//   - Markdown preprocessing (line normalization, image dimension syntax)
//   - Markdown to HTML conversion via Goldmark with prefixed heading IDs
//   - Code block whitespace normalization
//   - Title extraction from the first <h1>
//   - Conservative HTML minification for HTML-sourced pages
//
// Template rendering and the tutorial registry live in the root
// tutorialsite package; this package stays free of build state so every
// stage is a pure function of its input.
package pipeline
