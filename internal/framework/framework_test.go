package framework

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gridagentgo/internal/model"
	"github.com/vk/gridagentgo/internal/testutil"
)

// fakeConn records submissions and lets the test answer with status updates.
type fakeConn struct {
	mu        sync.Mutex
	submitted []model.TaskInfo
	statuses  chan model.StatusUpdate
	messages  chan []byte
	submitErr error
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		statuses: make(chan model.StatusUpdate, 16),
		messages: make(chan []byte, 16),
	}
}

func (c *fakeConn) SubmitTask(task model.TaskInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitErr != nil {
		return c.submitErr
	}
	c.submitted = append(c.submitted, task)
	return nil
}

func (c *fakeConn) StatusUpdates() <-chan model.StatusUpdate { return c.statuses }
func (c *fakeConn) Messages() <-chan []byte                  { return c.messages }

func (c *fakeConn) tasks() []model.TaskInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.TaskInfo(nil), c.submitted...)
}

func TestRun_WaitsForAllTerminalStatuses(t *testing.T) {
	ctx, _ := testutil.ContextWithLogger()
	conn := newFakeConn()
	executorID := model.ID{Value: "e1"}
	s := New(3, model.CommandInfo{Value: "sleeper 1ms"})

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, conn, executorID) }()

	// Wait for all submissions, then drive each task to FINISHED.
	require.Eventually(t, func() bool { return len(conn.tasks()) == 3 }, time.Second, 5*time.Millisecond)
	for _, task := range conn.tasks() {
		require.Equal(t, executorID, task.ExecutorID)
		require.Equal(t, "sleeper 1ms", task.Command.Value)
		conn.statuses <- model.StatusUpdate{ExecutorID: executorID, TaskID: task.TaskID, State: model.TaskRunning}
		conn.statuses <- model.StatusUpdate{ExecutorID: executorID, TaskID: task.TaskID, State: model.TaskFinished}
	}

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not finish after all tasks went terminal")
	}
}

func TestRun_ReportsFailedTasks(t *testing.T) {
	ctx, _ := testutil.ContextWithLogger()
	conn := newFakeConn()
	executorID := model.ID{Value: "e1"}
	s := New(2, model.CommandInfo{})

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, conn, executorID) }()

	require.Eventually(t, func() bool { return len(conn.tasks()) == 2 }, time.Second, 5*time.Millisecond)
	tasks := conn.tasks()
	conn.statuses <- model.StatusUpdate{TaskID: tasks[0].TaskID, State: model.TaskFinished}
	conn.statuses <- model.StatusUpdate{TaskID: tasks[1].TaskID, State: model.TaskFailed}

	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
}

func TestRun_ContextCancellation(t *testing.T) {
	baseCtx, _ := testutil.ContextWithLogger()
	ctx, cancel := context.WithCancel(baseCtx)
	conn := newFakeConn()
	s := New(1, model.CommandInfo{})

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, conn, model.ID{Value: "e1"}) }()

	require.Eventually(t, func() bool { return len(conn.tasks()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	err := <-done
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_ClosedStatusStream(t *testing.T) {
	ctx, _ := testutil.ContextWithLogger()
	conn := newFakeConn()
	s := New(1, model.CommandInfo{})

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, conn, model.ID{Value: "e1"}) }()

	require.Eventually(t, func() bool { return len(conn.tasks()) == 1 }, time.Second, 5*time.Millisecond)
	close(conn.statuses)

	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outstanding")
}

func TestNew_GeneratesFrameworkID(t *testing.T) {
	a := New(1, model.CommandInfo{})
	b := New(1, model.CommandInfo{})
	require.NotEmpty(t, a.FrameworkID().Value)
	require.NotEqual(t, a.FrameworkID(), b.FrameworkID())
}
