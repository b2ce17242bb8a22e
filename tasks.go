package tutorialsite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-tutorialsite/internal/fileutil"
	"github.com/alnah/go-tutorialsite/internal/taskgraph"
)

// Task names.
const (
	TaskMergeHTML = "merge-html"
	TaskMergeMD   = "merge-md"
	TaskIndex     = "index"
	TaskImages    = "images"
	TaskGlobalCSS = "global-css"
	TaskGlobalImg = "global-img"
	TaskGlobalLib = "global-lib"
	TaskDefault   = "default"
	TaskClean     = "clean"
)

// Site-wide asset directories under the source root. They are never
// tutorials.
const (
	cssDir = "css"
	imgDir = "img"
	libDir = "lib"
)

const indexPage = "index.html"

type taskDef struct {
	name string
	desc string
	deps []string
	run  func(*buildRun, context.Context) error
}

// taskDefs is the build graph. The index collects merge batches in the
// order of its deps.
var taskDefs = []taskDef{
	{name: TaskMergeHTML, desc: "wrap HTML fragments in the page template", run: (*buildRun).mergeHTML},
	{name: TaskMergeMD, desc: "convert Markdown fragments and wrap them in the page template", run: (*buildRun).mergeMarkdown},
	{name: TaskIndex, desc: "render the index of all tutorials", deps: []string{TaskMergeMD, TaskMergeHTML}, run: (*buildRun).index},
	{name: TaskImages, desc: "optimize tutorial images", run: (*buildRun).tutorialImages},
	{name: TaskGlobalCSS, desc: "prefix and minify site stylesheets", run: (*buildRun).globalCSS},
	{name: TaskGlobalImg, desc: "optimize site images", run: (*buildRun).globalImages},
	{name: TaskGlobalLib, desc: "copy vendored libraries", run: (*buildRun).globalLib},
	{
		name: TaskDefault,
		desc: "build the whole site",
		deps: []string{TaskMergeHTML, TaskMergeMD, TaskIndex, TaskImages, TaskGlobalCSS, TaskGlobalImg, TaskGlobalLib},
	},
	{name: TaskClean, desc: "remove the output directory", run: (*buildRun).clean},
}

// ----------------------------------------------------------------------------
// Pages
// ----------------------------------------------------------------------------

func (r *buildRun) mergeHTML(ctx context.Context) error {
	return r.mergeStage(ctx, TaskMergeHTML, ".html")
}

func (r *buildRun) mergeMarkdown(ctx context.Context) error {
	return r.mergeStage(ctx, TaskMergeMD, ".md")
}

type mergeResult struct {
	file     FileResult
	tutorial Tutorial
}

// mergeStage builds every */*ext fragment and commits the stage's tutorials
// once all of them succeeded.
func (r *buildRun) mergeStage(ctx context.Context, stage, ext string) error {
	rels, err := r.fragments(ext)
	if err != nil {
		return err
	}
	if len(rels) == 0 {
		return r.registry.Commit(stage, nil)
	}

	templates, err := r.templates()
	if err != nil {
		return err
	}
	merger := NewMerger(templates)

	results := runBatch(ctx, r.site.workers, rels, func(ctx context.Context, rel string) mergeResult {
		res := r.mergeFile(ctx, stage, merger, rel)
		if !isCanceled(ctx, res.file.Err) {
			r.notify(res.file)
		}
		return res
	})

	var (
		files     []FileResult
		tutorials []Tutorial
		errs      []error
	)
	for _, res := range results {
		if isCanceled(ctx, res.file.Err) {
			continue
		}
		files = append(files, res.file)
		if res.file.Err != nil {
			errs = append(errs, res.file.Err)
			continue
		}
		tutorials = append(tutorials, res.tutorial)
	}
	r.record(stage, files)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.registry.Commit(stage, tutorials)
}

func (r *buildRun) mergeFile(ctx context.Context, stage string, merger *Merger, rel string) mergeResult {
	start := time.Now()
	src := r.srcPath(rel)
	res := mergeResult{file: FileResult{Task: stage, Source: src}}
	fail := func(err error) mergeResult {
		res.file.Err = err
		res.file.Duration = time.Since(start)
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	data, err := os.ReadFile(src) // #nosec G304 -- discovered under the source root
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadSource, err))
	}

	outRel := rel
	if stage == TaskMergeMD {
		out, err := r.site.converter.ToHTML(ctx, string(data))
		if err != nil {
			return fail(fmt.Errorf("%s: %w", src, err))
		}
		data = []byte(out)
		outRel = strings.TrimSuffix(rel, path.Ext(rel)) + ".html"
	}

	page, err := merger.Merge(Document{Path: src, Rel: rel, Contents: data})
	if err != nil {
		return fail(err)
	}

	html := page.HTML
	if stage == TaskMergeHTML && r.site.opts.MinifyHTML {
		html, err = r.site.minifier.Minify(html)
		if err != nil {
			return fail(fmt.Errorf("%s: %w", src, err))
		}
	}

	dst := r.distPath(outRel)
	if err := fileutil.WriteFile(dst, html); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	res.file.Output = dst
	res.file.Duration = time.Since(start)
	res.tutorial = page.Tutorial
	return res
}

func (r *buildRun) index(ctx context.Context) error {
	start := time.Now()
	tutorials, err := r.registry.Collect(TaskMergeMD, TaskMergeHTML)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	templates, err := r.templates()
	if err != nil {
		return err
	}

	res := FileResult{Task: TaskIndex, Source: r.srcPath(r.site.opts.IndexTemplate)}
	page, err := BuildIndex(templates, tutorials)
	if err == nil {
		dst := r.distPath(indexPage)
		if werr := fileutil.WriteFile(dst, page); werr != nil {
			err = fmt.Errorf("%w: %v", ErrWriteOutput, werr)
		} else {
			res.Output = dst
		}
	}
	res.Err = err
	res.Duration = time.Since(start)

	r.notify(res)
	r.record(TaskIndex, []FileResult{res})
	return err
}

// ----------------------------------------------------------------------------
// Assets
// ----------------------------------------------------------------------------

// transformFunc rewrites one asset. A nil transformFunc copies verbatim.
type transformFunc func(rel string, data []byte) ([]byte, error)

type assetResult struct {
	file FileResult
	soft bool // transform failed; nothing was written
}

func (r *buildRun) tutorialImages(ctx context.Context) error {
	dirs, err := r.tutorialDirs()
	if err != nil {
		return err
	}
	var rels []string
	for _, dir := range dirs {
		files, err := fileutil.ListFiles(r.srcPath(path.Join(dir, imgDir)))
		if err != nil {
			return err
		}
		for _, f := range files {
			rels = append(rels, path.Join(dir, imgDir, f))
		}
	}
	return r.assetStage(ctx, TaskImages, rels, r.optimizeImage)
}

func (r *buildRun) globalImages(ctx context.Context) error {
	rels, err := r.assetFiles(imgDir)
	if err != nil {
		return err
	}
	return r.assetStage(ctx, TaskGlobalImg, rels, r.optimizeImage)
}

func (r *buildRun) globalCSS(ctx context.Context) error {
	rels, err := r.assetFiles(cssDir)
	if err != nil {
		return err
	}
	return r.assetStage(ctx, TaskGlobalCSS, rels, func(rel string, data []byte) ([]byte, error) {
		if !strings.EqualFold(path.Ext(rel), ".css") {
			return data, nil
		}
		return r.site.css.Process(rel, data)
	})
}

func (r *buildRun) globalLib(ctx context.Context) error {
	rels, err := r.assetFiles(libDir)
	if err != nil {
		return err
	}
	return r.assetStage(ctx, TaskGlobalLib, rels, nil)
}

func (r *buildRun) optimizeImage(rel string, data []byte) ([]byte, error) {
	return r.optimizer().Optimize(path.Ext(rel), data)
}

// assetStage processes every file, collecting failures. Transform failures
// are soft; read and write failures are hard.
func (r *buildRun) assetStage(ctx context.Context, task string, rels []string, transform transformFunc) error {
	results := runBatch(ctx, r.site.workers, rels, func(ctx context.Context, rel string) assetResult {
		res := r.assetFile(ctx, task, rel, transform)
		if !isCanceled(ctx, res.file.Err) {
			r.notify(res.file)
		}
		return res
	})

	var (
		files      []FileResult
		hard, soft []error
	)
	for _, res := range results {
		if isCanceled(ctx, res.file.Err) {
			continue
		}
		files = append(files, res.file)
		switch {
		case res.file.Err == nil:
		case res.soft:
			soft = append(soft, res.file.Err)
		default:
			hard = append(hard, res.file.Err)
		}
	}
	r.record(task, files)

	if len(hard) > 0 {
		return errors.Join(append(hard, soft...)...)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return taskgraph.Soft(errors.Join(soft...))
}

func (r *buildRun) assetFile(ctx context.Context, task, rel string, transform transformFunc) assetResult {
	start := time.Now()
	src := r.srcPath(rel)
	dst := r.distPath(rel)
	res := assetResult{file: FileResult{Task: task, Source: src}}
	finish := func(err error) assetResult {
		res.file.Err = err
		if err == nil {
			res.file.Output = dst
		}
		res.file.Duration = time.Since(start)
		return res
	}

	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	if transform == nil {
		if err := fileutil.CopyFile(src, dst); err != nil {
			return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		return finish(nil)
	}

	data, err := os.ReadFile(src) // #nosec G304 -- discovered under the source root
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadSource, err))
	}
	out, err := transform(rel, data)
	if err != nil {
		res.soft = true
		return finish(fmt.Errorf("%s: %w", src, err))
	}
	if err := fileutil.WriteFile(dst, out); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}
	return finish(nil)
}

func (r *buildRun) clean(_ context.Context) error {
	return fileutil.RemoveAll(r.site.opts.OutputDir)
}

// ----------------------------------------------------------------------------
// Discovery
// ----------------------------------------------------------------------------

// tutorialDirs lists the tutorial directories directly under the source
// root in name order. Hidden and reserved directories are skipped; a
// missing source root yields none.
func (r *buildRun) tutorialDirs() ([]string, error) {
	entries, err := os.ReadDir(r.site.opts.SourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	var dirs []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		switch name {
		case cssDir, imgDir, libDir:
			continue
		}
		dirs = append(dirs, name)
	}
	return dirs, nil
}

// fragments returns the slash-separated paths of */*ext files, sorted.
func (r *buildRun) fragments(ext string) ([]string, error) {
	dirs, err := r.tutorialDirs()
	if err != nil {
		return nil, err
	}

	var rels []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(r.srcPath(dir))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
		}
		for _, e := range entries {
			if e.Type().IsRegular() && filepath.Ext(e.Name()) == ext {
				rels = append(rels, path.Join(dir, e.Name()))
			}
		}
	}
	sort.Strings(rels)
	return rels, nil
}

// assetFiles returns every file under the site-wide asset directory dir,
// prefixed with dir.
func (r *buildRun) assetFiles(dir string) ([]string, error) {
	files, err := fileutil.ListFiles(r.srcPath(dir))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	rels := make([]string, len(files))
	for i, f := range files {
		rels[i] = path.Join(dir, f)
	}
	return rels, nil
}

// isCanceled reports whether err only reflects the cancellation of ctx.
func isCanceled(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err())
}
