package model

// ExecutorInfo is the agent's self-identifying record, produced once at
// registration time.
type ExecutorInfo struct {
	ExecutorID ID     `json:"executor_id"`
	Name       string `json:"name"`
}

// Resource is a scalar resource request entry.
type Resource struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Scalar float64 `json:"scalar"`
}

// ResourceTypeScalar is the only resource type this agent requests.
const ResourceTypeScalar = "SCALAR"

// CommandDescriptor tells the manager how to (re)spawn this executor:
// the owning framework, the resources the executor process needs, and
// the shell command line that launches it.
type CommandDescriptor struct {
	FrameworkID ID          `json:"framework_id"`
	Resources   []Resource  `json:"resources"`
	Command     CommandInfo `json:"command"`
}
