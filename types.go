package tutorialsite

import (
	"html/template"
	"time"
)

// Tutorial is one entry of the index page.
type Tutorial struct {
	Title string // text of the page's first <h1>
	URL   string // tutorial directory name plus "/"
}

// Document is a page fragment in flight.
type Document struct {
	Path     string // source path, used in errors
	Rel      string // slash-separated path relative to the source root
	Contents []byte // HTML fragment
}

// Page is a merged document ready to be written.
type Page struct {
	Tutorial Tutorial
	HTML     []byte
}

// PageData is the page template context.
type PageData struct {
	Title   string
	Content template.HTML
}

// IndexData is the index template context.
type IndexData struct {
	Tutorials []Tutorial
}

// FileResult holds the outcome of processing one source file.
type FileResult struct {
	Task     string
	Source   string
	Output   string // empty on failure
	Err      error
	Duration time.Duration
}
