package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tutorialsite <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build        Run build tasks (default: all)")
	fmt.Fprintln(w, "  clean        Remove the output directory")
	fmt.Fprintln(w, "  tasks        List tasks and dependencies")
	fmt.Fprintln(w, "  config       Print the effective configuration as YAML")
	fmt.Fprintln(w, "  init         Scaffold a starter source tree")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'tutorialsite help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tutorialsite build [task...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the site. Without tasks, runs \"default\".")
	fmt.Fprintln(w, "Run 'tutorialsite tasks' to list task names.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -s, --src <dir>           Source directory (default \"src\")")
	fmt.Fprintln(w, "  -d, --dist <dir>          Output directory (default \"dist\")")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers per task (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Processing:")
	fmt.Fprintln(w, "      --no-cache            Disable the image cache")
	fmt.Fprintln(w, "      --no-minify           Keep HTML pages unminified")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show task timing and debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 general, 2 usage, 3 I/O, 4 content (missing title, template)")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tutorialsite init [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a starter source tree into dir (default \"src\").")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -f, --force               Overwrite existing files")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "clean":
		fmt.Fprintln(env.Stdout, "Usage: tutorialsite clean [flags]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Remove the output directory. Same as 'tutorialsite build clean'.")
		fmt.Fprintln(env.Stdout, "Accepts the build flags.")
	case "tasks":
		fmt.Fprintln(env.Stdout, "Usage: tutorialsite tasks")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List tasks and their dependencies.")
	case "config":
		fmt.Fprintln(env.Stdout, "Usage: tutorialsite config [flags]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the configuration a build would use, after --config and flags")
		fmt.Fprintln(env.Stdout, "are applied. Accepts the build flags. Redirect to a file to start one.")
	case "init":
		printInitUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: tutorialsite version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: tutorialsite help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
