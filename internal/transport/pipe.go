package transport

import (
	"context"
	"sync"

	"github.com/vk/gridagentgo/internal/model"
)

// Pipe is an in-memory transport pair: the manager side injects events
// and observes status updates and framework messages, while Driver()
// exposes the executor side. It backs the local role and the tests.
type Pipe struct {
	mu       sync.Mutex
	closed   bool
	events   chan model.Event
	statuses chan model.StatusUpdate
	messages chan []byte
	done     chan struct{}
}

// NewPipe creates a pipe whose channels buffer up to buffer entries.
// Sends block once the buffer is full.
func NewPipe(buffer int) *Pipe {
	return &Pipe{
		events:   make(chan model.Event, buffer),
		statuses: make(chan model.StatusUpdate, buffer),
		messages: make(chan []byte, buffer),
		done:     make(chan struct{}),
	}
}

// SendEvent delivers one event to the executor side.
func (p *Pipe) SendEvent(ev model.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.events <- ev
	return nil
}

// SubmitTask is the manager-side shorthand for delivering a launch-task event.
func (p *Pipe) SubmitTask(task model.TaskInfo) error {
	return p.SendEvent(model.Event{
		Type: model.EventLaunchTask,
		Task: &task,
	})
}

// StatusUpdates exposes the status updates sent by the executor side.
func (p *Pipe) StatusUpdates() <-chan model.StatusUpdate {
	return p.statuses
}

// Messages exposes the framework messages sent by the executor side.
func (p *Pipe) Messages() <-chan []byte {
	return p.messages
}

// Close ends the transport: the executor's event channel is closed and
// Join unblocks. Further sends from either side return ErrClosed.
func (p *Pipe) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.done)
	close(p.events)
}

// Driver returns the executor-side view of the pipe.
func (p *Pipe) Driver() Driver {
	return &pipeDriver{pipe: p}
}

type pipeDriver struct {
	pipe *Pipe
}

func (d *pipeDriver) Start(ctx context.Context) error {
	return nil
}

func (d *pipeDriver) Join() error {
	<-d.pipe.done
	return nil
}

func (d *pipeDriver) SendStatusUpdate(update model.StatusUpdate) error {
	// statuses is never closed, so a select against done is race-free here.
	select {
	case <-d.pipe.done:
		return ErrClosed
	case d.pipe.statuses <- update:
		return nil
	}
}

func (d *pipeDriver) SendFrameworkMessage(data []byte) error {
	select {
	case <-d.pipe.done:
		return ErrClosed
	case d.pipe.messages <- data:
		return nil
	}
}

func (d *pipeDriver) Events() <-chan model.Event {
	return d.pipe.events
}
