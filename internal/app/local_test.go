package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLocal_AllTasksFinish(t *testing.T) {
	appConfig := &Config{
		LogLevel:    "debug",
		LogFormat:   "text",
		TaskCount:   3,
		TaskCommand: "sleeper 5ms",
	}
	testApp, logBuffer := SetupAppTest(t, appConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, testApp.RunLocal(ctx, appConfig))

	logs := logBuffer.String()
	assert.Equal(t, 3, strings.Count(logs, "Task submitted."))
	assert.Equal(t, 3, strings.Count(logs, "TASK_FINISHED"))
	assert.Contains(t, logs, "Local run complete.")
}

func TestRunLocal_ShellTasks(t *testing.T) {
	appConfig := &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		TaskCount:   2,
		TaskCommand: "true",
		TaskShell:   true,
	}
	testApp, logBuffer := SetupAppTest(t, appConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, testApp.RunLocal(ctx, appConfig))
	assert.Equal(t, 2, strings.Count(logBuffer.String(), "TASK_FINISHED"))
}

func TestRunLocal_FailingTasksSurfaceAsError(t *testing.T) {
	appConfig := &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		TaskCount:   2,
		TaskCommand: "exit 7",
		TaskShell:   true,
	}
	testApp, logBuffer := SetupAppTest(t, appConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := testApp.RunLocal(ctx, appConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 2")
	assert.Equal(t, 2, strings.Count(logBuffer.String(), "TASK_FAILED"))
}

func TestNew_InvalidConfigFilePanics(t *testing.T) {
	appConfig := &Config{ConfigPath: "/nonexistent/agent.hcl", LogLevel: "error", LogFormat: "text"}

	require.Panics(t, func() {
		SetupAppTest(t, appConfig)
	})
}
