package taskgraph

import "errors"

// Sentinel errors for graph construction and resolution.
var (
	ErrEmptyTaskName = errors.New("task name cannot be empty")
	ErrDuplicateTask = errors.New("task already defined")
	ErrUnknownTask   = errors.New("unknown task")
	ErrCycle         = errors.New("dependency cycle")
	ErrNoTasks       = errors.New("no tasks requested")
	ErrTaskPanic     = errors.New("task panicked")
)

// softError marks an error that must not stop sibling or dependent tasks.
type softError struct {
	err error
}

func (e *softError) Error() string { return e.err.Error() }
func (e *softError) Unwrap() error { return e.err }

// Soft wraps err so the graph keeps running other tasks. Soft(nil) is nil.
func Soft(err error) error {
	if err == nil {
		return nil
	}
	return &softError{err: err}
}

// IsSoft reports whether err was wrapped with Soft.
func IsSoft(err error) bool {
	var s *softError
	return errors.As(err, &s)
}
