package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gridagentgo/internal/cli"
	"github.com/vk/gridagentgo/internal/testutil"
)

func TestRun_Help(t *testing.T) {
	buf := &testutil.SafeBuffer{}
	require.NoError(t, run(buf, []string{"gridagent", "--help"}))
	assert.Contains(t, buf.String(), "gridagent")
}

func TestRun_ValidationErrorSurfacesAsExitError(t *testing.T) {
	buf := &testutil.SafeBuffer{}
	err := run(buf, []string{"gridagent", "executor"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRun_StartupPanicBecomesError(t *testing.T) {
	buf := &testutil.SafeBuffer{}
	err := run(buf, []string{"gridagent", "--config", "/nonexistent/agent.hcl", "local", "--tasks", "1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "critical startup error")
}
