package executor

import (
	"context"
	"fmt"

	"github.com/vk/gridagentgo/internal/ctxlog"
	"github.com/vk/gridagentgo/internal/logbridge"
	"github.com/vk/gridagentgo/internal/model"
)

// LaunchTask runs one task to completion. It acquires a task slot,
// reports RUNNING, performs the work, and reports FINISHED on success.
// Any fault during those steps — error return or panic — is redirected
// to the failure path, so every launch yields exactly one terminal
// status and a task fault never propagates past this boundary.
func (e *Executor) LaunchTask(ctx context.Context, task model.TaskInfo, state State) {
	if e.slots != nil {
		e.slots <- struct{}{}
		defer func() { <-e.slots }()
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task panicked: %v", r)
			}
		}()
		return e.runTask(ctx, task, state)
	}()

	if err != nil {
		e.onFailure(ctx, task, err, state)
		return
	}
	e.onSuccess(ctx, task, state)
}

// runTask reports RUNNING immediately — declared before the work starts —
// then performs the task's work via its resolved runner.
func (e *Executor) runTask(ctx context.Context, task model.TaskInfo, state State) error {
	update := model.StatusUpdate{
		ExecutorID: task.ExecutorID,
		TaskID:     task.TaskID,
		State:      model.TaskRunning,
	}
	if err := state.Driver.SendStatusUpdate(update); err != nil {
		return fmt.Errorf("failed to report RUNNING for task %s: %w", task.TaskID, err)
	}

	run, err := e.registry.Resolve(task.Command)
	if err != nil {
		return fmt.Errorf("failed to resolve runner for task %s: %w", task.TaskID, err)
	}
	return run(ctx, &task)
}

// onSuccess reports FINISHED and forwards a completion log line to the
// manager. Send failures here are logged locally and not re-raised; the
// terminal report has already been attempted.
func (e *Executor) onSuccess(ctx context.Context, task model.TaskInfo, state State) {
	logger := ctxlog.FromContext(ctx).With("taskID", task.TaskID.Value)

	update := model.StatusUpdate{
		ExecutorID: task.ExecutorID,
		TaskID:     task.TaskID,
		State:      model.TaskFinished,
	}
	if err := state.Driver.SendStatusUpdate(update); err != nil {
		logger.Error("Failed to report FINISHED status.", "error", err)
		return
	}

	if err := logbridge.Send(ctx, state.Driver, logbridge.LevelInfo,
		fmt.Sprintf("task %s finished", task.TaskID)); err != nil {
		logger.Warn("Failed to forward completion log line.", "error", err)
	}
	logger.Debug("Task finished.")
}

// onFailure forwards the fault detail to the manager, reports FAILED,
// and logs the failure locally.
func (e *Executor) onFailure(ctx context.Context, task model.TaskInfo, taskErr error, state State) {
	logger := ctxlog.FromContext(ctx).With("taskID", task.TaskID.Value)

	if err := logbridge.Send(ctx, state.Driver, logbridge.LevelError,
		fmt.Sprintf("task %s failed: %v", task.TaskID, taskErr)); err != nil {
		logger.Warn("Failed to forward failure log line.", "error", err)
	}

	update := model.StatusUpdate{
		ExecutorID: task.ExecutorID,
		TaskID:     task.TaskID,
		State:      model.TaskFailed,
	}
	if err := state.Driver.SendStatusUpdate(update); err != nil {
		logger.Error("Failed to report FAILED status.", "error", err)
	}

	logger.Error("Task failed.", "error", taskErr)
}
