// Package config loads the optional HCL agent file that tunes this
// executor: its advertised name, resource request, and task-slot bound.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Defaults applied when a field (or the whole file) is absent.
const (
	DefaultMaxTasks = 32
	DefaultCPUs     = 0.1
	DefaultMemMB    = 128
)

// Resources is the scalar resource request advertised for this executor.
type Resources struct {
	CPUs  float64 `hcl:"cpus,optional"`
	MemMB float64 `hcl:"mem,optional"`
}

// Agent is the root configuration block.
type Agent struct {
	Name      string     `hcl:"name,optional"`
	MaxTasks  *int       `hcl:"max_tasks,optional"`
	Resources *Resources `hcl:"resources,block"`
}

// Model is the decoded agent configuration.
type Model struct {
	Agent *Agent `hcl:"agent,block"`
}

// Default returns the configuration used when no file is given.
func Default() *Model {
	maxTasks := DefaultMaxTasks
	return &Model{
		Agent: &Agent{
			MaxTasks:  &maxTasks,
			Resources: &Resources{CPUs: DefaultCPUs, MemMB: DefaultMemMB},
		},
	}
}

// Load parses and decodes one HCL agent file, then fills in defaults for
// anything the file leaves out. The expression scope exposes `hostname`
// so names like "agent-${hostname}" resolve at load time.
func Load(path string) (*Model, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse agent config %s: %w", path, diags)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"hostname": cty.StringVal(hostname),
		},
	}

	var model Model
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &model); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode agent config %s: %w", path, diags)
	}

	applyDefaults(&model)
	return &model, nil
}

func applyDefaults(model *Model) {
	if model.Agent == nil {
		model.Agent = Default().Agent
		return
	}
	if model.Agent.MaxTasks == nil {
		maxTasks := DefaultMaxTasks
		model.Agent.MaxTasks = &maxTasks
	}
	if model.Agent.Resources == nil {
		model.Agent.Resources = &Resources{}
	}
	if model.Agent.Resources.CPUs == 0 {
		model.Agent.Resources.CPUs = DefaultCPUs
	}
	if model.Agent.Resources.MemMB == 0 {
		model.Agent.Resources.MemMB = DefaultMemMB
	}
}
