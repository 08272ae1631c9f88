package executor

import (
	"context"

	"github.com/vk/gridagentgo/internal/ctxlog"
	"github.com/vk/gridagentgo/internal/model"
)

// Dispatch routes one inbound manager event to its handler and returns
// the (possibly updated) state. The routing table is closed: every known
// event kind has an arm, and anything else lands on the default arm,
// which warns and returns state unchanged.
//
// Administrative events are handled synchronously. launch-task hands the
// task to its own goroutine and returns immediately. Malformed payloads
// on administrative arms are not tolerated; a nil dereference here
// terminates the loop, in line with the package failure policy.
func (e *Executor) Dispatch(ctx context.Context, state State, ev model.Event) State {
	logger := ctxlog.FromContext(ctx)

	switch ev.Type {
	case model.EventRegistered:
		logger.Info("Executor registered with manager.", "executorID", ev.ExecutorInfo.ExecutorID.Value)

	case model.EventReregistered:
		logger.Info("Executor re-registered with manager.", "executorID", ev.ExecutorInfo.ExecutorID.Value)

	case model.EventDisconnected:
		logger.Info("Executor disconnected from manager.")

	case model.EventLaunchTask:
		task := *ev.Task
		if task.ExecutorID.Empty() {
			if ev.ExecutorInfo != nil {
				task.ExecutorID = ev.ExecutorInfo.ExecutorID
			} else {
				task.ExecutorID = e.info.ExecutorID
			}
		}
		logger.Info("Launching task.", "taskID", task.TaskID.Value, "executorID", task.ExecutorID.Value)

		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.LaunchTask(ctx, task, state)
		}()

	case model.EventKillTask:
		// No cancellation reaches the task; it runs to completion.
		logger.Info("Kill requested; task cancellation is not supported.", "taskID", ev.TaskID.Value)

	case model.EventFrameworkMessage:
		logger.Info("Framework message received.", "bytes", len(ev.Data))

	case model.EventShutdown:
		// Actual termination is driven by the transport closing the stream.
		logger.Info("Shutdown requested by manager.")

	case model.EventError:
		logger.Error("Manager reported an error.", "message", ev.Message)

	default:
		logger.Warn("Ignoring unrecognized event.", "type", string(ev.Type))
	}

	return state
}
