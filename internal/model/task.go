package model

// TaskState is a task lifecycle state as reported to the manager.
type TaskState string

// Task states produced by this agent. A task is implicitly staged on
// arrival; the agent itself only ever reports the three states below.
// KILLED and ERROR exist on the manager side and are never produced here.
const (
	TaskRunning  TaskState = "TASK_RUNNING"
	TaskFinished TaskState = "TASK_FINISHED"
	TaskFailed   TaskState = "TASK_FAILED"
)

// Terminal reports whether no further update is expected after this state.
func (s TaskState) Terminal() bool {
	return s == TaskFinished || s == TaskFailed
}

// CommandInfo describes how a unit of work is invoked. When Shell is set
// the value is a full shell command line; otherwise the first token of
// the value names a registered runner.
type CommandInfo struct {
	Value string `json:"value"`
	Shell bool   `json:"shell"`
}

// TaskInfo describes one task as delivered by the manager. Immutable
// once received.
type TaskInfo struct {
	TaskID     ID          `json:"task_id"`
	ExecutorID ID          `json:"executor_id"`
	Command    CommandInfo `json:"command"`
}

// StatusUpdate reports a task's lifecycle state back to the manager.
type StatusUpdate struct {
	ExecutorID ID        `json:"executor_id"`
	TaskID     ID        `json:"task_id"`
	State      TaskState `json:"state"`
}
