package executor

import (
	"context"
	"fmt"

	"github.com/vk/gridagentgo/internal/ctxlog"
	"github.com/vk/gridagentgo/internal/transport"
)

// Run owns the transport connection: it starts the driver, sequentially
// folds Dispatch over the inbound event stream carrying an explicit
// State value, and blocks on transport shutdown once the stream ends.
//
// There is deliberately no recover around the fold: a fault in an
// administrative handler terminates the loop and the process.
func (e *Executor) Run(ctx context.Context, driver transport.Driver) error {
	logger := ctxlog.FromContext(ctx)

	if err := driver.Start(ctx); err != nil {
		return fmt.Errorf("failed to start transport driver: %w", err)
	}
	logger.Info("Executor event loop started.", "executorID", e.info.ExecutorID.Value, "name", e.info.Name)

	state := State{Driver: driver}
	for ev := range driver.Events() {
		state = e.Dispatch(ctx, state, ev)
	}

	logger.Debug("Event stream ended, waiting for transport shutdown.")
	if err := driver.Join(); err != nil {
		return fmt.Errorf("failed to join transport driver: %w", err)
	}

	logger.Info("Executor event loop finished.")
	return nil
}
