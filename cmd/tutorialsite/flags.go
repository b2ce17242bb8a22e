package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common   commonFlags
	src      string
	dist     string
	workers  int
	noCache  bool
	noMinify bool

	workersSet bool // --workers given, even as 0
}

// initFlags holds flags for the init command.
type initFlags struct {
	force bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show task timing and debug logs")
}

// addBuildFlags registers build flags on fs. Shared by parsing and completion.
func addBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.StringVarP(&f.src, "src", "s", "", "source directory (default \"src\")")
	fs.StringVarP(&f.dist, "dist", "d", "", "output directory (default \"dist\")")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers per task (0 = auto)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the image cache")
	fs.BoolVar(&f.noMinify, "no-minify", false, "keep HTML pages unminified")
	addCommonFlags(fs, &f.common)
}

// parseBuildFlags parses build command flags and returns the task names.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &buildFlags{}
	addBuildFlags(fs, f)
	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.workersSet = fs.Changed("workers")
	return f, fs.Args(), nil
}

// addInitFlags registers init flags on fs.
func addInitFlags(fs *flag.FlagSet, f *initFlags) {
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite existing files")
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string, usage io.Writer) (*initFlags, []string, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &initFlags{}
	addInitFlags(fs, f)
	fs.Usage = func() { printInitUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
