// Package registry maps runner names to the Go handlers that perform a
// task's work. Modules register their handlers at startup; the executor
// resolves a handler from each task's command descriptor.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vk/gridagentgo/internal/model"
)

// DefaultRunner handles tasks whose command carries no value.
const DefaultRunner = "sleeper"

// ShellRunner handles tasks whose command is a shell command line.
const ShellRunner = "shell"

// Runner performs the work of a single task. It must honor ctx and
// return an error rather than panic for expected failures.
type Runner func(ctx context.Context, task *model.TaskInfo) error

// Module is the interface all runner modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered runners for a single application instance.
type Registry struct {
	runners map[string]Runner
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		runners: make(map[string]Runner),
	}
}

// RegisterRunner registers a handler under a name. Registering the same
// name twice is a programmer error and panics.
func (r *Registry) RegisterRunner(name string, fn Runner) {
	if _, exists := r.runners[name]; exists {
		panic(fmt.Sprintf("runner with name '%s' already registered", name))
	}
	slog.Debug("Registering runner.", "name", name)
	r.runners[name] = fn
}

// Resolve selects the runner for a task command. Shell commands go to
// the shell runner; otherwise the first token of the command value names
// the runner, and an empty value falls back to the default runner.
func (r *Registry) Resolve(cmd model.CommandInfo) (Runner, error) {
	name := DefaultRunner
	switch {
	case cmd.Shell:
		name = ShellRunner
	case strings.TrimSpace(cmd.Value) != "":
		name = strings.Fields(cmd.Value)[0]
	}

	fn, ok := r.runners[name]
	if !ok {
		return nil, fmt.Errorf("no runner registered for '%s'", name)
	}
	return fn, nil
}
