package taskgraph

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGraph_Add - Registration
// ---------------------------------------------------------------------------

func TestGraph_Add(t *testing.T) {
	t.Parallel()

	g := New(nil)
	if err := g.Add(Task{Name: "a"}); err != nil {
		t.Fatalf("Add(a) error = %v", err)
	}
	if err := g.Add(Task{Name: "a"}); !errors.Is(err, ErrDuplicateTask) {
		t.Errorf("Add(a) twice error = %v, want ErrDuplicateTask", err)
	}
	if err := g.Add(Task{}); !errors.Is(err, ErrEmptyTaskName) {
		t.Errorf("Add(empty) error = %v, want ErrEmptyTaskName", err)
	}
	if err := g.Add(Task{Name: "b", Deps: []string{"later"}}); err != nil {
		t.Errorf("Add() with forward dep error = %v", err)
	}

	var names []string
	for _, task := range g.Tasks() {
		names = append(names, task.Name)
	}
	if !slices.Equal(names, []string{"a", "b"}) {
		t.Errorf("Tasks() = %v, want registration order [a b]", names)
	}
}

func TestGraph_AddCopiesDeps(t *testing.T) {
	t.Parallel()

	deps := []string{"x"}
	g := New(nil)
	_ = g.Add(Task{Name: "a", Deps: deps})
	deps[0] = "mutated"

	task, _ := g.Task("a")
	if task.Deps[0] != "x" {
		t.Errorf("Deps aliased caller slice: %v", task.Deps)
	}
}

// ---------------------------------------------------------------------------
// TestGraph_Resolve - Topological Order and Errors
// ---------------------------------------------------------------------------

func TestGraph_Resolve(t *testing.T) {
	t.Parallel()

	newSiteGraph := func() *Graph {
		g := New(nil)
		for _, task := range []Task{
			{Name: "merge-html"},
			{Name: "merge-md"},
			{Name: "images"},
			{Name: "index", Deps: []string{"merge-md", "merge-html"}},
			{Name: "default", Deps: []string{"merge-html", "merge-md", "images", "index"}},
		} {
			_ = g.Add(task)
		}
		return g
	}

	tests := []struct {
		name    string
		roots   []string
		want    []string
		wantErr error
	}{
		{
			name:  "leaf",
			roots: []string{"images"},
			want:  []string{"images"},
		},
		{
			name:  "deps before dependent in declared order",
			roots: []string{"index"},
			want:  []string{"merge-md", "merge-html", "index"},
		},
		{
			name:  "shared deps listed once",
			roots: []string{"default"},
			want:  []string{"merge-html", "merge-md", "images", "index", "default"},
		},
		{
			name:  "multiple roots",
			roots: []string{"images", "index"},
			want:  []string{"images", "merge-md", "merge-html", "index"},
		},
		{
			name:    "unknown root",
			roots:   []string{"nope"},
			wantErr: ErrUnknownTask,
		},
		{
			name:    "no roots",
			wantErr: ErrNoTasks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := newSiteGraph().Resolve(tt.roots...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Resolve(%v) error = %v, want %v", tt.roots, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%v) error = %v", tt.roots, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Resolve(%v) = %v, want %v", tt.roots, got, tt.want)
			}
		})
	}
}

func TestGraph_ResolveUnknownDependency(t *testing.T) {
	t.Parallel()

	g := New(nil)
	_ = g.Add(Task{Name: "index", Deps: []string{"merge-md"}})

	_, err := g.Resolve("index")
	if !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("error = %v, want ErrUnknownTask", err)
	}
	if !strings.Contains(err.Error(), `required by "index"`) {
		t.Errorf("error should name the dependent: %v", err)
	}
}

func TestGraph_ResolveCycle(t *testing.T) {
	t.Parallel()

	g := New(nil)
	_ = g.Add(Task{Name: "a", Deps: []string{"b"}})
	_ = g.Add(Task{Name: "b", Deps: []string{"c"}})
	_ = g.Add(Task{Name: "c", Deps: []string{"a"}})

	_, err := g.Resolve("a")
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("error = %v, want ErrCycle", err)
	}
	if !strings.Contains(err.Error(), "a -> b -> c -> a") {
		t.Errorf("error should show the cycle: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestSoft
// ---------------------------------------------------------------------------

func TestSoft(t *testing.T) {
	t.Parallel()

	base := errors.New("bad image")

	if Soft(nil) != nil {
		t.Error("Soft(nil) should be nil")
	}
	if IsSoft(base) {
		t.Error("plain error reported as soft")
	}

	soft := Soft(base)
	if !IsSoft(soft) {
		t.Error("Soft() error not detected")
	}
	if !errors.Is(soft, base) {
		t.Error("Soft() should unwrap to the original error")
	}
	if soft.Error() != base.Error() {
		t.Errorf("Soft() message = %q, want %q", soft.Error(), base.Error())
	}
}
