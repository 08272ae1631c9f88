package app

import (
	"testing"

	"github.com/vk/gridagentgo/internal/registry"
	"github.com/vk/gridagentgo/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing, logging
// into a thread-safe buffer.
func SetupAppTest(t *testing.T, appConfig *Config, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	testApp := New(logBuffer, appConfig, modules...)
	return testApp, logBuffer
}
