// Package logbridge forwards leveled log lines to the cluster manager as
// out-of-band framework messages.
package logbridge

import (
	"context"
	"fmt"

	"github.com/vk/gridagentgo/internal/ctxlog"
	"github.com/vk/gridagentgo/internal/transport"
)

// Level labels a forwarded log line.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Send formats "<LEVEL> - <message>" and forwards it via the driver's
// framework-message primitive. Fire-and-forget: at most once, no retry.
// Debug-level lines are additionally mirrored to the local logger.
// Transport faults are returned to the caller unhandled.
func Send(ctx context.Context, driver transport.Driver, level Level, message string) error {
	line := fmt.Sprintf("%s - %s", level, message)
	if level == LevelDebug {
		ctxlog.FromContext(ctx).Debug("Forwarding log line to manager.", "line", line)
	}
	return driver.SendFrameworkMessage([]byte(line))
}
