package identity

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gridagentgo/internal/model"
)

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.NotEmpty(t, id.Value)
		_, dup := seen[id.Value]
		require.False(t, dup, "identifier %q generated twice", id.Value)
		seen[id.Value] = struct{}{}
	}
}

func TestNewID_WireShape(t *testing.T) {
	raw, err := json.Marshal(NewID())
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	require.NotEmpty(t, decoded["value"])
}

func TestExecutorInfo(t *testing.T) {
	info := ExecutorInfo("")
	assert.Equal(t, DefaultExecutorName, info.Name)
	assert.NotEmpty(t, info.ExecutorID.Value)

	named := ExecutorInfo("edge-agent")
	assert.Equal(t, "edge-agent", named.Name)
	assert.NotEqual(t, info.ExecutorID, named.ExecutorID)
}

func TestCommandDescriptor(t *testing.T) {
	fid := model.ID{Value: "fw-1"}
	desc := CommandDescriptor("http://master:5050", fid, "/opt/agent")

	assert.Equal(t, fid, desc.FrameworkID)

	require.Len(t, desc.Resources, 2)
	byName := make(map[string]model.Resource)
	for _, r := range desc.Resources {
		byName[r.Name] = r
	}
	assert.Equal(t, 0.1, byName["cpus"].Scalar)
	assert.Equal(t, model.ResourceTypeScalar, byName["cpus"].Type)
	assert.Equal(t, float64(128), byName["mem"].Scalar)

	assert.True(t, desc.Command.Shell)
	assert.True(t, strings.Contains(desc.Command.Value, "http://master:5050"))
	assert.True(t, strings.Contains(desc.Command.Value, "/opt/agent"))
	assert.True(t, strings.Contains(desc.Command.Value, "executor"))
}
