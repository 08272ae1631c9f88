package model

// EventType tags an inbound manager event.
type EventType string

// The closed set of event kinds the manager delivers. Anything outside
// this set reaches the dispatcher's default arm.
const (
	EventRegistered       EventType = "registered"
	EventReregistered     EventType = "reregistered"
	EventDisconnected     EventType = "disconnected"
	EventLaunchTask       EventType = "launch-task"
	EventKillTask         EventType = "kill-task"
	EventFrameworkMessage EventType = "framework-message"
	EventShutdown         EventType = "shutdown"
	EventError            EventType = "error"
)

// Event is the tagged union of manager-delivered lifecycle events. Type
// selects the variant; the payload fields are populated per kind and nil
// otherwise:
//
//   - registered / reregistered: ExecutorInfo
//   - launch-task: Task (plus ExecutorInfo when the manager includes it)
//   - kill-task: TaskID
//   - framework-message: Data
//   - error: Message
//   - disconnected / shutdown: no payload
//
// An Event is consumed exactly once and never retained after handling.
type Event struct {
	Type         EventType     `json:"type"`
	ExecutorInfo *ExecutorInfo `json:"executor_info,omitempty"`
	Task         *TaskInfo     `json:"task,omitempty"`
	TaskID       *ID           `json:"task_id,omitempty"`
	Data         []byte        `json:"data,omitempty"`
	Message      string        `json:"message,omitempty"`
}
