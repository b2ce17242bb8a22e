package main

import (
	"fmt"
	"strings"

	tutorialsite "github.com/alnah/go-tutorialsite"
)

// listTasks returns the task table. The source layout does not matter for
// listing, so default options are used.
func listTasks() []tutorialsite.TaskInfo {
	site, err := tutorialsite.NewSite(tutorialsite.DefaultOptions())
	if err != nil {
		panic(fmt.Sprintf("default options invalid: %v", err))
	}
	return site.Tasks()
}

// runTasks prints each task with its description and dependencies.
func runTasks(env *Environment) {
	for _, t := range listTasks() {
		fmt.Fprintf(env.Stdout, "%-11s %s\n", t.Name, t.Description)
		if len(t.Deps) > 0 {
			fmt.Fprintf(env.Stdout, "%-11s depends on: %s\n", "", strings.Join(t.Deps, ", "))
		}
	}
}
