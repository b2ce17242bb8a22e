package tutorialsite

import "runtime"

// Worker pool sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps per-task file concurrency.
	MaxWorkers = 32
)

// ResolveWorkers determines the per-task worker count.
// Priority: explicit workers > GOMAXPROCS. The result is clamped to
// [MinWorkers, MaxWorkers]. Exported for use by CLIs.
func ResolveWorkers(workers int) int {
	n := workers
	if n <= 0 {
		// GOMAXPROCS is adjusted by automaxprocs for containers
		n = runtime.GOMAXPROCS(0)
	}

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
