// Package executor is the agent's core: the event loop that folds the
// message dispatcher over the inbound manager event stream, and the
// per-task lifecycle that reports state transitions back.
//
// # Execution model
//
// A single goroutine processes inbound events strictly in arrival order.
// Administrative handlers run synchronously and complete before the next
// event is dispatched. Launching a task is the only asynchronous path:
// each launch runs on its own goroutine, gated by a bounded slot
// semaphore, and the dispatcher returns to the loop immediately. Tasks
// run fully concurrently with each other and with the loop.
//
// The State value threaded through the dispatcher is owned by the loop
// and mutated only between folds. Task goroutines never touch it; they
// communicate outcomes solely through status updates sent over the
// shared transport driver, which must tolerate concurrent sends.
//
// # Failure policy
//
// A fault inside a task's work — error return or panic — is contained by
// LaunchTask and converted into a FAILED status update; every launched
// task yields exactly one RUNNING update followed by exactly one
// terminal update. Faults inside administrative handlers are not caught:
// they terminate the loop and the process. Transport faults propagate to
// whichever context made the call.
//
// Kill requests are acknowledged in the log only; no cancellation signal
// reaches a running task. A killed-but-running task still runs to
// completion and reports its own terminal status.
package executor
