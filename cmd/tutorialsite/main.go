package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]

	var err error
	switch cmd {
	case "build":
		err = runWithSignals(func(ctx context.Context) error { return runBuild(ctx, rest, env) })
	case "clean":
		err = runWithSignals(func(ctx context.Context) error {
			return runBuild(ctx, append([]string{"clean"}, rest...), env)
		})
	case "tasks":
		runTasks(env)
	case "config":
		err = runConfig(rest, env)
	case "init":
		err = runInit(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "tutorialsite %s\n", Version)
	case "help", "-h", "--help":
		runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	return exitCodeFor(err)
}

// runWithSignals runs fn with a context canceled by SIGINT/SIGTERM.
func runWithSignals(fn func(context.Context) error) error {
	ctx, stop := notifyContext(context.Background())
	defer stop()
	return fn(ctx)
}
