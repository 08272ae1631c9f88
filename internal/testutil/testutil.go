// Package testutil provides shared helpers for the agent's tests: a
// thread-safe log buffer, logger construction, and a recording transport
// driver.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/vk/gridagentgo/internal/ctxlog"
	"github.com/vk/gridagentgo/internal/model"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// ContextWithLogger returns a context carrying a debug-level text logger
// that writes into the returned buffer.
func ContextWithLogger() (context.Context, *SafeBuffer) {
	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), buf
}

// RecorderDriver is a transport.Driver test double that records every
// outbound call and lets the test feed the inbound event stream.
type RecorderDriver struct {
	mu       sync.Mutex
	statuses []model.StatusUpdate
	messages [][]byte
	started  bool
	joined   bool

	events chan model.Event

	// StatusErr, when set, is returned by SendStatusUpdate.
	StatusErr error
}

// NewRecorderDriver creates a recorder with a buffered inbound channel.
func NewRecorderDriver() *RecorderDriver {
	return &RecorderDriver{
		events: make(chan model.Event, 16),
	}
}

func (d *RecorderDriver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = true
	return nil
}

func (d *RecorderDriver) Join() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.joined = true
	return nil
}

func (d *RecorderDriver) SendStatusUpdate(update model.StatusUpdate) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.StatusErr != nil {
		return d.StatusErr
	}
	d.statuses = append(d.statuses, update)
	return nil
}

func (d *RecorderDriver) SendFrameworkMessage(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, append([]byte(nil), data...))
	return nil
}

func (d *RecorderDriver) Events() <-chan model.Event {
	return d.events
}

// Push feeds one inbound event to the loop under test.
func (d *RecorderDriver) Push(ev model.Event) {
	d.events <- ev
}

// CloseEvents ends the inbound stream.
func (d *RecorderDriver) CloseEvents() {
	close(d.events)
}

// Statuses returns a snapshot of the recorded status updates.
func (d *RecorderDriver) Statuses() []model.StatusUpdate {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.StatusUpdate(nil), d.statuses...)
}

// Messages returns a snapshot of the recorded framework messages.
func (d *RecorderDriver) Messages() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.messages))
	for _, m := range d.messages {
		out = append(out, string(m))
	}
	return out
}

// Started reports whether Start was called.
func (d *RecorderDriver) Started() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started
}

// Joined reports whether Join was called.
func (d *RecorderDriver) Joined() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.joined
}
