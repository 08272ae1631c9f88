// Package identity builds the agent's self-identifying records: fresh
// unique identifiers, the ExecutorInfo presented at registration, and
// the command descriptor the manager uses to (re)spawn this executor.
package identity

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vk/gridagentgo/internal/model"
)

// DefaultExecutorName labels this agent when no name is configured.
const DefaultExecutorName = "gridagent executor"

// Fixed resource request for the executor process itself.
const (
	executorCPUs  = 0.1
	executorMemMB = 128
)

// NewID returns a fresh random identifier in the manager's canonical
// wire shape. Generated values are unique with overwhelming probability.
func NewID() model.ID {
	return model.ID{Value: uuid.NewString()}
}

// ExecutorInfo returns the agent's self-description with a freshly
// generated executor id. An empty name falls back to DefaultExecutorName.
func ExecutorInfo(name string) model.ExecutorInfo {
	if name == "" {
		name = DefaultExecutorName
	}
	return model.ExecutorInfo{
		ExecutorID: NewID(),
		Name:       name,
	}
}

// CommandDescriptor merges the executor's resource request with the
// shell command line that re-invokes this binary in executor mode
// against masterAddr, run from workdir. Used by the registration path.
func CommandDescriptor(masterAddr string, frameworkID model.ID, workdir string) model.CommandDescriptor {
	return model.CommandDescriptor{
		FrameworkID: frameworkID,
		Resources: []model.Resource{
			{Name: "cpus", Type: model.ResourceTypeScalar, Scalar: executorCPUs},
			{Name: "mem", Type: model.ResourceTypeScalar, Scalar: executorMemMB},
		},
		Command: model.CommandInfo{
			Value: fmt.Sprintf("cd %s && ./gridagent executor --master %s", workdir, masterAddr),
			Shell: true,
		},
	}
}
