package taskgraph

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Func is a task body.
type Func func(ctx context.Context) error

// Task is one named unit of work.
type Task struct {
	Name        string
	Description string
	Deps        []string // run order among deps is not guaranteed
	Run         Func     // nil for aggregate tasks
}

// Graph holds task definitions. Add is not safe for concurrent use; Run is.
type Graph struct {
	tasks  map[string]Task
	order  []string
	logger *zap.Logger
}

// New creates an empty Graph. A nil logger disables logging.
func New(logger *zap.Logger) *Graph {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Graph{tasks: make(map[string]Task), logger: logger}
}

// Add registers a task. Dependencies may name tasks added later.
func (g *Graph) Add(t Task) error {
	if t.Name == "" {
		return ErrEmptyTaskName
	}
	if _, ok := g.tasks[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, t.Name)
	}
	t.Deps = append([]string(nil), t.Deps...)
	g.tasks[t.Name] = t
	g.order = append(g.order, t.Name)
	return nil
}

// Tasks returns all tasks in registration order.
func (g *Graph) Tasks() []Task {
	out := make([]Task, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.tasks[name])
	}
	return out
}

// Task returns the named task.
func (g *Graph) Task(name string) (Task, bool) {
	t, ok := g.tasks[name]
	return t, ok
}

// Resolve returns the requested tasks and their transitive dependencies in
// topological order. The order is deterministic: roots in the order given,
// dependencies in declaration order.
func (g *Graph) Resolve(names ...string) ([]string, error) {
	if len(names) == 0 {
		return nil, ErrNoTasks
	}

	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[string]int, len(g.tasks))
	var plan []string
	var stack []string

	var visit func(name, requiredBy string) error
	visit = func(name, requiredBy string) error {
		t, ok := g.tasks[name]
		if !ok {
			if requiredBy != "" {
				return fmt.Errorf("%w: %q (required by %q)", ErrUnknownTask, name, requiredBy)
			}
			return fmt.Errorf("%w: %q", ErrUnknownTask, name)
		}

		switch state[name] {
		case visited:
			return nil
		case visiting:
			return fmt.Errorf("%w: %s", ErrCycle, cyclePath(stack, name))
		}

		state[name] = visiting
		stack = append(stack, name)
		for _, dep := range t.Deps {
			if err := visit(dep, name); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = visited
		plan = append(plan, name)
		return nil
	}

	for _, name := range names {
		if err := visit(name, ""); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// cyclePath renders the cycle closing at name, e.g. "a -> b -> a".
func cyclePath(stack []string, name string) string {
	start := 0
	for i, s := range stack {
		if s == name {
			start = i
			break
		}
	}
	return strings.Join(append(append([]string(nil), stack[start:]...), name), " -> ")
}
