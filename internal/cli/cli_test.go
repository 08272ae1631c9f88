package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gridagentgo/internal/testutil"
)

func runCLI(t *testing.T, args ...string) (*testutil.SafeBuffer, error) {
	t.Helper()
	buf := &testutil.SafeBuffer{}
	cliApp := NewApp(buf)
	err := cliApp.Run(append([]string{AppName}, args...))
	return buf, err
}

func TestExecutor_RequiresMaster(t *testing.T) {
	_, err := runCLI(t, "executor")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "--master")
}

func TestFramework_RequiresMaster(t *testing.T) {
	_, err := runCLI(t, "framework", "--tasks", "2")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestInvalidLogLevelRejected(t *testing.T) {
	_, err := runCLI(t, "--log-level", "loud", "local", "--tasks", "1")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "log-level")
}

func TestInvalidLogFormatRejected(t *testing.T) {
	_, err := runCLI(t, "--log-format", "xml", "local", "--tasks", "1")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "log-format")
}

func TestLocal_RejectsNonPositiveTaskCount(t *testing.T) {
	_, err := runCLI(t, "local", "--tasks", "0")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "--tasks")
}

func TestLocal_RunsTasksEndToEnd(t *testing.T) {
	buf, err := runCLI(t, "local", "--tasks", "2", "--command", "sleeper 1ms")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "All tasks terminal.")
}

func TestHelpDoesNotRunAnything(t *testing.T) {
	buf, err := runCLI(t, "--help")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "executor")
	assert.Contains(t, buf.String(), "framework")
	assert.Contains(t, buf.String(), "local")
}
