package executor

import (
	"sync"

	"github.com/vk/gridagentgo/internal/model"
	"github.com/vk/gridagentgo/internal/registry"
	"github.com/vk/gridagentgo/internal/transport"
)

// State is the value threaded through every dispatcher call. It is
// owned by the event loop, returned by every handler, and never mutated
// from a task goroutine.
type State struct {
	Driver transport.Driver
}

// Executor runs tasks on behalf of the cluster manager and reports
// their lifecycle transitions.
type Executor struct {
	info     model.ExecutorInfo
	registry *registry.Registry

	// slots bounds concurrently running tasks; nil disables the bound.
	slots chan struct{}
	wg    sync.WaitGroup
}

// New creates an Executor identified by info that resolves task work
// from reg. maxTasks bounds concurrently running tasks; 0 or negative
// leaves task concurrency unbounded.
func New(info model.ExecutorInfo, reg *registry.Registry, maxTasks int) *Executor {
	e := &Executor{
		info:     info,
		registry: reg,
	}
	if maxTasks > 0 {
		e.slots = make(chan struct{}, maxTasks)
	}
	return e
}

// Wait blocks until every launched task has reported its terminal status.
func (e *Executor) Wait() {
	e.wg.Wait()
}
