package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	tutorialsite "github.com/alnah/go-tutorialsite"
	"github.com/alnah/go-tutorialsite/internal/assets"
	"github.com/alnah/go-tutorialsite/internal/config"
	"github.com/alnah/go-tutorialsite/internal/hints"
	"github.com/alnah/go-tutorialsite/internal/taskgraph"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidFlags = errors.New("invalid flags")
	ErrBuildFailed  = errors.New("build failed")
)

// runBuild loads configuration, runs the requested tasks, and prints the
// per-file results.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, tasks, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	cfg, err := loadBuildConfig(flags, env)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common)
	defer func() { _ = logger.Sync() }()

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env,
	// in which case the runtime default applies.
	undo, _ := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf))
	defer undo()

	opts := optionsFromConfig(cfg, logger)
	site, err := tutorialsite.NewSite(opts, tutorialsite.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("build configured",
		zap.String("src", opts.SourceDir),
		zap.String("dist", opts.OutputDir),
		zap.Int("workers", tutorialsite.ResolveWorkers(opts.Workers)),
		zap.Bool("imageCache", opts.ImageCachePath != ""))

	start := env.Now()
	report, err := site.Build(ctx, tasks...)
	if report != nil {
		printResults(report, flags.common, env)
		if flags.common.verbose {
			printTaskTimings(report, env.Stderr)
		}
		if !flags.common.quiet && err == nil {
			fmt.Fprintf(env.Stdout, "Built %s in %v\n", opts.OutputDir, env.Now().Sub(start).Round(time.Millisecond))
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w%s", ErrBuildFailed, err, hintFor(err, site))
	}
	return nil
}

// loadBuildConfig returns defaults or the --config file, overlaid with flags.
func loadBuildConfig(flags *buildFlags, env *Environment) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		var err error
		cfg, err = env.LoadConfig(flags.common.config)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(flags.common.config)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies explicitly set flags over config values (CLI wins).
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.src != "" {
		cfg.Source.Dir = flags.src
	}
	if flags.dist != "" {
		cfg.Output.Dir = flags.dist
	}
	if flags.workersSet {
		cfg.Build.Workers = flags.workers
	}
	if flags.noCache {
		cfg.Images.Cache.Enabled = false
	}
	if flags.noMinify {
		cfg.HTML.Minify = false
	}
}

// optionsFromConfig maps configuration onto build options. An unresolvable
// cache location disables the cache with a warning.
func optionsFromConfig(cfg *config.Config, logger *zap.Logger) tutorialsite.Options {
	opts := tutorialsite.Options{
		SourceDir:     cfg.Source.Dir,
		OutputDir:     cfg.Output.Dir,
		PageTemplate:  cfg.Source.PageTemplate,
		IndexTemplate: cfg.Source.IndexTemplate,
		Workers:       cfg.Build.Workers,
		MinifyHTML:    cfg.HTML.Minify,
		JPEGQuality:   cfg.Images.JPEGQuality,
		MaxImageWidth: cfg.Images.MaxWidth,
	}
	if cfg.Images.Cache.Enabled {
		path, err := cfg.ResolveCachePath()
		if err != nil {
			logger.Warn("image cache disabled"+hints.ForImageCache(), zap.Error(err))
		} else {
			opts.ImageCachePath = path
		}
	}
	return opts
}

// printResults prints one line per file and a summary. Failures always
// print; successes are silenced by --quiet.
func printResults(report *tutorialsite.BuildReport, flags commonFlags, env *Environment) {
	var succeeded, failed int
	for _, r := range report.Files {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Source, r.Err)
			continue
		}

		succeeded++
		if flags.quiet {
			continue
		}
		if flags.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Source, r.Output, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Output)
		}
	}

	if !flags.quiet && len(report.Files) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}
}

// printTaskTimings prints each task's outcome in plan order.
func printTaskTimings(report *tutorialsite.BuildReport, w io.Writer) {
	for _, t := range report.Tasks {
		fmt.Fprintf(w, "task %-10s %s (%v)\n", t.Name, t.Status, t.Duration.Round(time.Millisecond))
	}
}

// hintFor returns an actionable hint for the first recognized failure.
func hintFor(err error, site *tutorialsite.Site) string {
	switch {
	case errors.Is(err, taskgraph.ErrUnknownTask):
		var names []string
		for _, t := range site.Tasks() {
			names = append(names, t.Name)
		}
		return hints.ForUnknownTask(names)
	case errors.Is(err, assets.ErrTemplateNotFound),
		errors.Is(err, assets.ErrIncompleteTemplateSet),
		errors.Is(err, assets.ErrInvalidBasePath):
		return hints.ForSourceNotFound(site.Options().SourceDir)
	case errors.Is(err, tutorialsite.ErrMissingTitle):
		return hints.ForMissingTitle()
	case errors.Is(err, tutorialsite.ErrTemplateParse),
		errors.Is(err, tutorialsite.ErrTemplateRender):
		return hints.ForTemplateRender()
	case errors.Is(err, tutorialsite.ErrWriteOutput):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
