package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/gridagentgo/internal/ctxlog"
	"github.com/vk/gridagentgo/internal/model"
)

// FrameworkRegistration is the payload a framework presents to the
// manager: its identity plus the descriptor the manager uses to spawn
// executors for it.
type FrameworkRegistration struct {
	FrameworkID model.ID                `json:"framework_id"`
	Executor    model.CommandDescriptor `json:"executor"`
}

// SocketIOFrameworkConn is the framework-side manager connection used by
// the framework role: it registers the framework, submits tasks, and
// receives status updates and forwarded framework messages.
type SocketIOFrameworkConn struct {
	url          string
	namespace    string
	registration FrameworkRegistration

	mu       sync.Mutex
	closed   bool
	io       *socket.Socket
	statuses chan model.StatusUpdate
	messages chan []byte
}

// NewSocketIOFrameworkConn creates a framework connection to the manager
// at masterURL.
func NewSocketIOFrameworkConn(masterURL string, registration FrameworkRegistration) *SocketIOFrameworkConn {
	return &SocketIOFrameworkConn{
		url:          masterURL,
		registration: registration,
		statuses:     make(chan model.StatusUpdate, 16),
		messages:     make(chan []byte, 16),
	}
}

// Start connects and registers the framework. Blocks until the handshake
// completes or fails.
func (c *SocketIOFrameworkConn) Start(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("conn", "socketio-framework", "url", c.url)

	parsedURL, err := url.Parse(c.url)
	if err != nil {
		return fmt.Errorf("failed to parse manager URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(c.namespace, opts)

	connectChan := make(chan error, 1)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Framework connected to manager.", "sid", io.Id())
		io.Emit(EventNameRegisterFramework, c.registration)
		connectChan <- nil
	})

	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, _ := errs[0].(error)
		connectChan <- err
	})

	io.On(types.EventName(EventNameStatusUpdate), func(args ...any) {
		update, err := decodeStatusUpdate(args...)
		if err != nil {
			logger.Warn("Discarding undecodable status update.", "error", err)
			return
		}
		c.push(func() { c.statuses <- update })
	})

	io.On(types.EventName(EventNameFrameworkMessage), func(args ...any) {
		if len(args) == 0 {
			return
		}
		text, _ := args[0].(string)
		c.push(func() { c.messages <- []byte(text) })
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return fmt.Errorf("context cancelled while connecting to manager")
	case <-time.After(DefaultConnectTimeout):
		io.Disconnect()
		return fmt.Errorf("timed out connecting to manager at %s", c.url)
	}

	c.mu.Lock()
	c.io = io
	c.mu.Unlock()
	return nil
}

// SubmitTask hands one task descriptor to the manager for launch.
func (c *SocketIOFrameworkConn) SubmitTask(task model.TaskInfo) error {
	c.mu.Lock()
	io := c.io
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return ErrClosed
	}
	if io == nil {
		return fmt.Errorf("framework connection not started")
	}
	if err := io.Emit(EventNameSubmitTask, task); err != nil {
		return fmt.Errorf("failed to submit task %s: %w", task.TaskID, err)
	}
	return nil
}

// StatusUpdates exposes the status updates the manager forwards.
func (c *SocketIOFrameworkConn) StatusUpdates() <-chan model.StatusUpdate {
	return c.statuses
}

// Messages exposes framework messages forwarded from executors.
func (c *SocketIOFrameworkConn) Messages() <-chan []byte {
	return c.messages
}

// Close disconnects from the manager.
func (c *SocketIOFrameworkConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.io != nil {
		c.io.Disconnect()
	}
}

func (c *SocketIOFrameworkConn) push(send func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	send()
}

func decodeStatusUpdate(args ...any) (model.StatusUpdate, error) {
	var update model.StatusUpdate
	if len(args) == 0 {
		return update, fmt.Errorf("status payload missing")
	}

	raw, err := json.Marshal(args[0])
	if err != nil {
		return update, fmt.Errorf("failed to re-encode status payload: %w", err)
	}
	if err := json.Unmarshal(raw, &update); err != nil {
		return update, fmt.Errorf("failed to decode status payload: %w", err)
	}
	return update, nil
}
