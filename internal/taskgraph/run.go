package taskgraph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Status is the outcome of one task in a run.
type Status int

// Task outcomes.
const (
	StatusOK         Status = iota // body returned nil, or aggregate task
	StatusSoftFailed               // body returned a Soft error
	StatusFailed                   // body returned a hard error
	StatusSkipped                  // a dependency failed or the run was cancelled first
	StatusCanceled                 // body stopped because another task failed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSoftFailed:
		return "failed (continued)"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result records one task's outcome.
type Result struct {
	Name     string
	Status   Status
	Err      error
	Duration time.Duration
}

// Report lists results in plan order.
type Report struct {
	Results []Result
}

// Count returns how many tasks ended with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Result returns the outcome of the named task.
func (r *Report) Result(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}

// Run executes the named tasks and their dependencies. It returns a report
// of every planned task, and the joined task errors (each prefixed with its
// task name). Resolution errors return a nil report.
func (g *Graph) Run(ctx context.Context, names ...string) (*Report, error) {
	plan, err := g.Resolve(names...)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("task plan resolved", zap.Strings("plan", plan))

	index := make(map[string]int, len(plan))
	done := make([]chan struct{}, len(plan))
	for i, name := range plan {
		index[name] = i
		done[i] = make(chan struct{})
	}
	results := make([]Result, len(plan))

	group, groupctx := errgroup.WithContext(ctx)
	for i, name := range plan {
		group.Go(func() error {
			// Dependents read results[i] only after done[i] is closed.
			defer close(done[i])
			results[i] = g.runTask(groupctx, g.tasks[name], index, done, results)
			if results[i].Status == StatusFailed {
				return results[i].Err
			}
			return nil
		})
	}
	_ = group.Wait() // per-task errors are collected from results below

	var errs []error
	for _, res := range results {
		if res.Status == StatusFailed || res.Status == StatusSoftFailed {
			errs = append(errs, fmt.Errorf("task %s: %w", res.Name, res.Err))
		}
	}
	report := &Report{Results: results}
	if len(errs) == 0 && ctx.Err() != nil {
		return report, ctx.Err()
	}
	return report, errors.Join(errs...)
}

// runTask waits for t's dependencies, then runs its body.
func (g *Graph) runTask(ctx context.Context, t Task, index map[string]int, done []chan struct{}, results []Result) Result {
	res := Result{Name: t.Name}
	log := g.logger.With(zap.String("task", t.Name))

	for _, dep := range t.Deps {
		j := index[dep]
		select {
		case <-done[j]:
		case <-ctx.Done():
			res.Status = StatusSkipped
			log.Debug("task skipped", zap.String("reason", "build cancelled"))
			return res
		}
		switch results[j].Status {
		case StatusFailed, StatusSkipped, StatusCanceled:
			res.Status = StatusSkipped
			log.Debug("task skipped", zap.String("reason", "dependency "+dep+" "+results[j].Status.String()))
			return res
		}
	}

	if ctx.Err() != nil {
		res.Status = StatusSkipped
		log.Debug("task skipped", zap.String("reason", "build cancelled"))
		return res
	}
	if t.Run == nil {
		res.Status = StatusOK
		return res
	}

	log.Info("task started")
	start := time.Now()
	err := safeRun(ctx, t.Run)
	res.Duration = time.Since(start)
	res.Err = err

	switch {
	case err == nil:
		res.Status = StatusOK
		log.Info("task finished", zap.Duration("duration", res.Duration))
	case IsSoft(err):
		res.Status = StatusSoftFailed
		log.Warn("task failed, continuing", zap.Duration("duration", res.Duration), zap.Error(err))
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		res.Status = StatusCanceled
		log.Debug("task canceled", zap.Duration("duration", res.Duration))
	default:
		res.Status = StatusFailed
		log.Error("task failed", zap.Duration("duration", res.Duration), zap.Error(err))
	}
	return res
}

// safeRun turns a panicking task body into an error.
func safeRun(ctx context.Context, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanic, r)
		}
	}()
	return fn(ctx)
}
