// Package framework implements the framework-side role: it submits a
// batch of tasks through the manager connection and waits until every
// task has reported a terminal status. Offer accounting and placement
// policy belong to the manager and are out of scope here.
package framework

import (
	"context"
	"fmt"

	"github.com/vk/gridagentgo/internal/ctxlog"
	"github.com/vk/gridagentgo/internal/identity"
	"github.com/vk/gridagentgo/internal/model"
)

// ManagerConn is the framework-side view of the manager connection.
// Satisfied by transport.SocketIOFrameworkConn and transport.Pipe.
type ManagerConn interface {
	SubmitTask(task model.TaskInfo) error
	StatusUpdates() <-chan model.StatusUpdate
	Messages() <-chan []byte
}

// Scheduler submits tasks and tracks their lifecycle until completion.
type Scheduler struct {
	frameworkID model.ID
	taskCount   int
	command     model.CommandInfo
}

// New creates a scheduler that will submit taskCount tasks, each running
// the given command.
func New(taskCount int, command model.CommandInfo) *Scheduler {
	return &Scheduler{
		frameworkID: identity.NewID(),
		taskCount:   taskCount,
		command:     command,
	}
}

// FrameworkID returns the framework's generated identity.
func (s *Scheduler) FrameworkID() model.ID {
	return s.frameworkID
}

// Run submits the tasks addressed to executorID and consumes status
// updates and forwarded executor messages until every task is terminal.
// Returns an error if the connection or context ends first, or if any
// task failed.
func (s *Scheduler) Run(ctx context.Context, conn ManagerConn, executorID model.ID) error {
	logger := ctxlog.FromContext(ctx).With("frameworkID", s.frameworkID.Value)

	pending := make(map[string]struct{}, s.taskCount)
	for i := 0; i < s.taskCount; i++ {
		task := model.TaskInfo{
			TaskID:     identity.NewID(),
			ExecutorID: executorID,
			Command:    s.command,
		}
		if err := conn.SubmitTask(task); err != nil {
			return fmt.Errorf("failed to submit task %s: %w", task.TaskID, err)
		}
		pending[task.TaskID.Value] = struct{}{}
		logger.Info("Task submitted.", "taskID", task.TaskID.Value)
	}

	statusCh := conn.StatusUpdates()
	messageCh := conn.Messages()

	failed := 0
	for len(pending) > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("gave up waiting for %d task(s): %w", len(pending), ctx.Err())

		case update, ok := <-statusCh:
			if !ok {
				return fmt.Errorf("manager connection closed with %d task(s) outstanding", len(pending))
			}
			logger.Info("Status update received.", "taskID", update.TaskID.Value, "state", string(update.State))
			if !update.State.Terminal() {
				continue
			}
			delete(pending, update.TaskID.Value)
			if update.State == model.TaskFailed {
				failed++
			}

		case data, ok := <-messageCh:
			if !ok {
				messageCh = nil
				continue
			}
			logger.Info("Executor message received.", "message", string(data))
		}
	}

	logger.Info("All tasks terminal.", "total", s.taskCount, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d task(s) failed", failed, s.taskCount)
	}
	return nil
}
