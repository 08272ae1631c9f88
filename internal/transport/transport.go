// Package transport connects the agent to its cluster manager. It
// defines the Driver consumed by the executor's event loop and ships two
// implementations: a socket.io client for a real manager and an
// in-memory pipe for tests and the local role.
package transport

import (
	"context"
	"errors"

	"github.com/vk/gridagentgo/internal/model"
)

// ErrClosed is returned by send operations after the transport has shut down.
var ErrClosed = errors.New("transport closed")

// Wire event names shared by both sides of the manager connection.
const (
	EventNameAgentEvent        = "agent-event"
	EventNameStatusUpdate      = "status-update"
	EventNameFrameworkMessage  = "framework-message"
	EventNameRegisterExecutor  = "register-executor"
	EventNameRegisterFramework = "register-framework"
	EventNameSubmitTask        = "submit-task"
)

// Driver is the executor-side connection to the cluster manager.
//
// A Driver is shared between the event loop and every task goroutine, so
// SendStatusUpdate and SendFrameworkMessage must tolerate concurrent
// calls. Events delivers decoded manager events until the manager closes
// the connection, at which point the channel is closed.
type Driver interface {
	// Start establishes the connection and registers the executor.
	Start(ctx context.Context) error

	// Join blocks until the transport has fully shut down.
	Join() error

	// SendStatusUpdate reports a task-state transition to the manager.
	SendStatusUpdate(update model.StatusUpdate) error

	// SendFrameworkMessage forwards an out-of-band message to the
	// manager. Fire-and-forget: at-most-once, no acknowledgment.
	SendFrameworkMessage(data []byte) error

	// Events is the inbound event stream. Closed on transport shutdown.
	Events() <-chan model.Event
}
