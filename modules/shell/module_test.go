package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/gridagentgo/internal/model"
)

func task(command string) *model.TaskInfo {
	return &model.TaskInfo{
		TaskID:  model.ID{Value: "t1"},
		Command: model.CommandInfo{Value: command, Shell: true},
	}
}

func TestOnRunShell_Success(t *testing.T) {
	err := OnRunShell(context.Background(), task("true"))
	require.NoError(t, err)
}

func TestOnRunShell_NonZeroExit(t *testing.T) {
	err := OnRunShell(context.Background(), task("echo boom >&2; exit 3"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}
