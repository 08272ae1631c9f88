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

// DefaultConnectTimeout bounds the initial connection handshake.
const DefaultConnectTimeout = 15 * time.Second

// SocketIODriver is the production Driver: a socket.io client connected
// to the cluster manager. On connect it registers the executor; inbound
// "agent-event" payloads are decoded into model.Event values.
type SocketIODriver struct {
	url       string
	namespace string
	info      model.ExecutorInfo

	mu     sync.Mutex
	closed bool
	io     *socket.Socket
	events chan model.Event
	done   chan struct{}
}

// NewSocketIODriver creates a driver for the manager at masterURL that
// will register with the given executor record.
func NewSocketIODriver(masterURL string, info model.ExecutorInfo) *SocketIODriver {
	return &SocketIODriver{
		url:    masterURL,
		info:   info,
		events: make(chan model.Event, 16),
		done:   make(chan struct{}),
	}
}

// Start connects to the manager, registers the executor, and begins
// delivering decoded events. It blocks until the handshake completes or
// fails.
func (d *SocketIODriver) Start(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("driver", "socketio", "url", d.url)

	parsedURL, err := url.Parse(d.url)
	if err != nil {
		return fmt.Errorf("failed to parse manager URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(d.namespace, opts)

	connectChan := make(chan error, 1)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to manager.", "sid", io.Id())
		io.Emit(EventNameRegisterExecutor, d.info)
		connectChan <- nil
	})

	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, _ := errs[0].(error)
		connectChan <- err
	})

	io.On(types.EventName(EventNameAgentEvent), func(args ...any) {
		ev, err := decodeEvent(args...)
		if err != nil {
			logger.Warn("Discarding undecodable manager event.", "error", err)
			return
		}
		d.deliver(ev)
	})

	io.On(types.EventName("disconnect"), func(...any) {
		logger.Info("Manager connection closed.")
		d.shutdown()
	})

	logger.Debug("Initiating connection...")
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
		return fmt.Errorf("timed out connecting to manager at %s", d.url)
	}

	d.mu.Lock()
	d.io = io
	d.mu.Unlock()
	return nil
}

// Join blocks until the manager connection has fully shut down.
func (d *SocketIODriver) Join() error {
	<-d.done
	return nil
}

// SendStatusUpdate reports a task-state transition to the manager.
func (d *SocketIODriver) SendStatusUpdate(update model.StatusUpdate) error {
	io, err := d.socket()
	if err != nil {
		return err
	}
	if err := io.Emit(EventNameStatusUpdate, update); err != nil {
		return fmt.Errorf("failed to emit status update: %w", err)
	}
	return nil
}

// SendFrameworkMessage forwards raw bytes to the manager, at most once.
func (d *SocketIODriver) SendFrameworkMessage(data []byte) error {
	io, err := d.socket()
	if err != nil {
		return err
	}
	if err := io.Emit(EventNameFrameworkMessage, string(data)); err != nil {
		return fmt.Errorf("failed to emit framework message: %w", err)
	}
	return nil
}

// Events is the inbound event stream. Closed when the manager disconnects.
func (d *SocketIODriver) Events() <-chan model.Event {
	return d.events
}

func (d *SocketIODriver) socket() (*socket.Socket, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	if d.io == nil {
		return nil, fmt.Errorf("driver not started")
	}
	return d.io, nil
}

func (d *SocketIODriver) deliver(ev model.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.events <- ev
}

func (d *SocketIODriver) shutdown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	close(d.events)
	close(d.done)
}

// decodeEvent converts a socket.io payload into a model.Event by
// round-tripping through JSON. The payloads arrive as generic maps.
func decodeEvent(args ...any) (model.Event, error) {
	var ev model.Event
	if len(args) == 0 {
		return ev, fmt.Errorf("event payload missing")
	}

	raw, err := json.Marshal(args[0])
	if err != nil {
		return ev, fmt.Errorf("failed to re-encode event payload: %w", err)
	}
	if err := json.Unmarshal(raw, &ev); err != nil {
		return ev, fmt.Errorf("failed to decode event payload: %w", err)
	}
	if ev.Type == "" {
		return ev, fmt.Errorf("event payload has no type")
	}
	return ev, nil
}
