package tutorialsite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-tutorialsite/internal/assets"
	"github.com/alnah/go-tutorialsite/internal/pipeline"
	"github.com/alnah/go-tutorialsite/internal/taskgraph"
)

// TaskResult is the outcome of one task in a build.
type TaskResult = taskgraph.Result

// TaskInfo describes a task for listings.
type TaskInfo struct {
	Name        string
	Description string
	Deps        []string
}

// BuildReport summarizes a build.
type BuildReport struct {
	Tasks []TaskResult // in execution plan order
	Files []FileResult // grouped by task in plan order, discovery order within a task
}

// FailedFiles returns how many files failed.
func (r *BuildReport) FailedFiles() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Site builds a tutorial site from a source tree.
// A Site holds no per-build state; concurrent Builds must not share an
// output directory.
type Site struct {
	opts      Options
	workers   int
	logger    *zap.Logger
	converter pipeline.HTMLConverter
	minifier  *pipeline.HTMLMinifier
	css       *assets.CSSProcessor
}

// NewSite creates a Site. Returns ErrInvalidOptions if opts do not validate.
func NewSite(opts Options, options ...Option) (*Site, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s := &Site{
		opts:      opts,
		workers:   ResolveWorkers(opts.Workers),
		logger:    zap.NewNop(),
		converter: pipeline.NewGoldmarkConverter(),
		minifier:  pipeline.NewHTMLMinifier(),
		css:       assets.NewCSSProcessor(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Options returns the options the Site was created with.
func (s *Site) Options() Options {
	return s.opts
}

// Tasks lists the available tasks in declaration order.
func (s *Site) Tasks() []TaskInfo {
	out := make([]TaskInfo, 0, len(taskDefs))
	for _, d := range taskDefs {
		out = append(out, TaskInfo{Name: d.name, Description: d.desc, Deps: slices.Clone(d.deps)})
	}
	return out
}

// Build runs the named tasks and their dependencies; no names means
// TaskDefault. When clean is requested alongside other tasks it runs
// first, on its own.
//
// The report is non-nil unless a task name could not be resolved. The
// error joins every task failure.
func (s *Site) Build(ctx context.Context, names ...string) (*BuildReport, error) {
	if len(names) == 0 {
		names = []string{TaskDefault}
	}

	var rest []string
	cleanFirst := false
	for _, name := range names {
		if name == TaskClean {
			cleanFirst = true
			continue
		}
		if !slices.Contains(rest, name) {
			rest = append(rest, name)
		}
	}

	// Resolve everything up front so an unknown name fails before clean runs.
	probe := s.newRun().graph()
	if _, err := probe.Resolve(names...); err != nil {
		return nil, err
	}

	report := &BuildReport{}
	var errs []error

	if cleanFirst {
		part, err := s.run(ctx, TaskClean)
		report.merge(part)
		if err != nil {
			return report, err
		}
	}
	if len(rest) > 0 {
		part, err := s.run(ctx, rest...)
		report.merge(part)
		errs = append(errs, err)
	}
	return report, errors.Join(errs...)
}

// run executes one task graph run with fresh per-build state.
func (s *Site) run(ctx context.Context, names ...string) (*BuildReport, error) {
	r := s.newRun()
	defer r.close()

	tr, err := r.graph().Run(ctx, names...)
	report := &BuildReport{}
	if tr != nil {
		report.Tasks = tr.Results
		for _, res := range tr.Results {
			report.Files = append(report.Files, r.filesFor(res.Name)...)
		}
	}
	return report, err
}

func (r *BuildReport) merge(other *BuildReport) {
	if other == nil {
		return
	}
	r.Tasks = append(r.Tasks, other.Tasks...)
	r.Files = append(r.Files, other.Files...)
}

// buildRun is the state of a single graph run.
type buildRun struct {
	site      *Site
	registry  *Registry
	templates func() (*Templates, error)
	optimizer func() assets.Optimizer

	mu    sync.Mutex
	files map[string][]FileResult
	cache *assets.ImageCache
}

func (s *Site) newRun() *buildRun {
	r := &buildRun{
		site:     s,
		registry: NewRegistry(),
		files:    make(map[string][]FileResult),
	}
	r.templates = sync.OnceValues(r.loadTemplates)
	r.optimizer = sync.OnceValue(r.openOptimizer)
	return r
}

func (r *buildRun) graph() *taskgraph.Graph {
	g := taskgraph.New(r.site.logger)
	for _, d := range taskDefs {
		t := taskgraph.Task{Name: d.name, Description: d.desc, Deps: d.deps}
		if d.run != nil {
			run := d.run
			t.Run = func(ctx context.Context) error { return run(r, ctx) }
		}
		if err := g.Add(t); err != nil {
			panic(fmt.Sprintf("tutorialsite: task table: %v", err))
		}
	}
	return g
}

func (r *buildRun) loadTemplates() (*Templates, error) {
	opts := r.site.opts
	loader, err := assets.NewFilesystemLoader(opts.SourceDir)
	if err != nil {
		return nil, err
	}
	return LoadTemplates(loader, opts.PageTemplate, opts.IndexTemplate)
}

// openOptimizer builds the image optimizer, cached when a cache path is
// set. A cache that cannot be opened is logged and skipped.
func (r *buildRun) openOptimizer() assets.Optimizer {
	opts := r.site.opts
	base := assets.NewImageOptimizer(assets.ImageOptions{
		JPEGQuality: opts.JPEGQuality,
		MaxWidth:    opts.MaxImageWidth,
	})
	if opts.ImageCachePath == "" {
		return base
	}

	cache, err := assets.OpenImageCache(opts.ImageCachePath)
	if err != nil {
		r.site.logger.Warn("image cache unavailable, continuing without it",
			zap.String("path", opts.ImageCachePath), zap.Error(err))
		return base
	}
	r.mu.Lock()
	r.cache = cache
	r.mu.Unlock()
	return assets.NewCachingOptimizer(base, cache, r.site.logger)
}

func (r *buildRun) close() {
	r.mu.Lock()
	cache := r.cache
	r.mu.Unlock()
	if cache == nil {
		return
	}
	if err := cache.Close(); err != nil {
		r.site.logger.Warn("closing image cache", zap.Error(err))
	}
}

// record stores a task's file results in discovery order.
func (r *buildRun) record(task string, results []FileResult) {
	r.mu.Lock()
	r.files[task] = append(r.files[task], results...)
	r.mu.Unlock()
}

func (r *buildRun) filesFor(task string) []FileResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.files[task]
}

// notify logs a finished file.
func (r *buildRun) notify(res FileResult) {
	if res.Err != nil {
		r.site.logger.Debug("file failed", zap.String("task", res.Task),
			zap.String("source", res.Source), zap.Error(res.Err))
	} else {
		r.site.logger.Debug("file written", zap.String("task", res.Task),
			zap.String("source", res.Source), zap.String("output", res.Output),
			zap.Duration("duration", res.Duration))
	}
}

func (r *buildRun) srcPath(rel string) string {
	return filepath.Join(r.site.opts.SourceDir, filepath.FromSlash(rel))
}

func (r *buildRun) distPath(rel string) string {
	return filepath.Join(r.site.opts.OutputDir, filepath.FromSlash(rel))
}
