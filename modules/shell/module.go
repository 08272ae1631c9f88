// Package shell provides the runner for tasks whose command descriptor
// is a full shell command line.
package shell

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/vk/gridagentgo/internal/ctxlog"
	"github.com/vk/gridagentgo/internal/model"
	"github.com/vk/gridagentgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunShell is the handler for the 'shell' runner. It runs the task's
// command line through the system shell and treats a non-zero exit as a
// task failure.
func OnRunShell(ctx context.Context, task *model.TaskInfo) error {
	logger := ctxlog.FromContext(ctx).With("taskID", task.TaskID.Value)
	logger.Debug("Shell runner starting.", "command", task.Command.Value)

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", task.Command.Value)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("shell command failed: %w (output: %s)", err, out)
	}

	logger.Debug("Shell runner finished.", "outputBytes", len(out))
	return nil
}

// Register registers the handler with the agent.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner(registry.ShellRunner, OnRunShell)
}
