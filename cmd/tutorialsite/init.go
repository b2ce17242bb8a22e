package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-tutorialsite/internal/assets"
	"github.com/alnah/go-tutorialsite/internal/config"
)

// runInit writes the starter source tree into the target directory.
func runInit(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: init takes at most one directory, got %d", ErrInvalidFlags, len(positional))
	}

	dir := config.DefaultSourceDir
	if len(positional) == 1 {
		dir = positional[0]
	}

	written, err := assets.WriteStarter(dir, flags.force)
	if err != nil {
		if errors.Is(err, assets.ErrStarterExists) {
			return fmt.Errorf("%w\n  hint: use --force to overwrite", err)
		}
		return err
	}

	for _, p := range written {
		fmt.Fprintf(env.Stdout, "Created %s\n", p)
	}
	fmt.Fprintf(env.Stdout, "\nNext: tutorialsite build --src %s\n", dir)
	return nil
}
