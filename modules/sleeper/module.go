// Package sleeper provides the placeholder work runner: it stands in
// for real task work with a bounded random delay.
package sleeper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/vk/gridagentgo/internal/ctxlog"
	"github.com/vk/gridagentgo/internal/model"
	"github.com/vk/gridagentgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// maxRandomDelay bounds the delay when no explicit duration is given.
const maxRandomDelay = 2 * time.Second

// OnRunSleeper is the handler for the 'sleeper' runner. An optional
// second token of the command value fixes the delay (e.g. "sleeper 50ms");
// otherwise the delay is random within maxRandomDelay.
func OnRunSleeper(ctx context.Context, task *model.TaskInfo) error {
	d := time.Duration(rand.Int64N(int64(maxRandomDelay)))
	if fields := strings.Fields(task.Command.Value); len(fields) > 1 {
		parsed, err := time.ParseDuration(fields[1])
		if err != nil {
			return fmt.Errorf("invalid sleeper duration '%s': %w", fields[1], err)
		}
		d = parsed
	}

	ctxlog.FromContext(ctx).Debug("Sleeper runner working.", "taskID", task.TaskID.Value, "delay", d)
	time.Sleep(d)
	return nil
}

// Register registers the handler with the agent.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("sleeper", OnRunSleeper)
}
