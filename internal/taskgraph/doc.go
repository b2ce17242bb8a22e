// Package taskgraph runs named build tasks in dependency order.
//
// A Graph holds immutable task definitions; each Run builds fresh execution
// state, so one Graph can run many times. Run resolves the transitive closure
// of the requested names, then starts every task in its own goroutine. A task
// waits for its dependencies to finish and runs only if none of them failed
// hard.
//
// Failure policy:
//   - A hard error cancels the shared context. Tasks that have not started
//     are skipped; running tasks observe ctx.Done().
//   - An error wrapped with Soft is reported but does not cancel siblings,
//     and dependents still run.
//
// Every failure is returned, joined in plan order.
package taskgraph
