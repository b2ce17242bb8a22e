package tutorialsite

import (
	"fmt"
	"sync"
)

// Registry accumulates tutorials across merge stages.
//
// Each stage commits its whole ordered batch once, after every file of the
// stage succeeded. The index stage collects the batches it depends on in the
// order it names them, so the listing never depends on goroutine timing.
// Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	batches map[string][]Tutorial
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{batches: make(map[string][]Tutorial)}
}

// Commit records stage's tutorials. A stage commits at most once.
func (r *Registry) Commit(stage string, entries []Tutorial) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.batches[stage]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommit, stage)
	}
	batch := make([]Tutorial, len(entries))
	copy(batch, entries)
	r.batches[stage] = batch
	return nil
}

// Collect concatenates the batches of the given stages in argument order.
// Fails if any stage has not committed.
func (r *Registry) Collect(stages ...string) ([]Tutorial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Tutorial
	for _, stage := range stages {
		batch, ok := r.batches[stage]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrIncompleteRegistry, stage)
		}
		out = append(out, batch...)
	}
	return out, nil
}
