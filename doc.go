// Package tutorialsite builds a static tutorial site from Markdown and HTML
// fragments.
//
// # Quick Start
//
// Create a site over a source tree and build every task:
//
//	site, err := tutorialsite.NewSite(tutorialsite.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := site.Build(ctx, tutorialsite.TaskDefault)
//	for _, f := range report.Files {
//	    fmt.Println(f.Output)
//	}
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Source Layout
//
// Each tutorial is a directory directly under the source root holding one
// or more .md or .html fragments. Every fragment must contain an <h1> (a
// "# Title" line in Markdown); its text becomes the tutorial title.
//
//	src/
//	├── template.html       # page template: {{.Title}}, {{.Content}}
//	├── index.html          # index template: {{range .Tutorials}}{{.URL}} {{.Title}}{{end}}
//	├── css/  img/  lib/    # site-wide assets
//	└── intro/
//	    ├── intro.md
//	    └── img/
//
// The directories css, img, and lib are reserved for site assets and are
// never treated as tutorials.
//
// # Tasks
//
// A build is a graph of named tasks:
//
//	merge-html   wrap */*.html in the page template, minify
//	merge-md     convert */*.md to HTML, wrap in the page template
//	index        render index.html from both merge stages
//	images       optimize */img/**
//	global-css   prefix and minify css/**
//	global-img   optimize img/**
//	global-lib   copy lib/** verbatim
//	default      all of the above
//	clean        remove the output directory
//
// Independent tasks run concurrently. Page errors (a missing title, a
// template failure, an unreadable source) stop the build; asset transform
// errors are reported while everything else keeps running. Every failure
// is returned.
//
// Image optimization re-encodes PNGs, minifies SVGs, and downscales past
// MaxImageWidth. JPEGs are copied unchanged unless JPEGQuality
// (images.jpegQuality) is set, which re-encodes them lossily.
//
// # Markdown
//
// Markdown is converted with a fixed configuration: tables, strikethrough,
// bare-URL links, sized images (![alt](src =WxH)), and heading IDs of the
// form sec-<slug>. Raw HTML passes through.
package tutorialsite
