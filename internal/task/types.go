package task

import "time"

// ActionType names one of the moves a scenario exposes to agents.
// Each scenario declares a closed set of these.
type ActionType string

// Status classifies the outcome of processing a single action.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
	StatusError   Status = "error"
)

// Action is one move proposed by an agent. It has no identity beyond
// its position in the trace.
type Action struct {
	Type       ActionType     `json:"type"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Reasoning  string         `json:"reasoning,omitempty"`
}

// BoolParam reads a boolean parameter, treating absence or a
// non-boolean value as false.
func (a Action) BoolParam(key string) bool {
	v, ok := a.Parameters[key].(bool)
	return ok && v
}

// StringParam reads a string parameter, returning "" when absent.
func (a Action) StringParam(key string) string {
	v, _ := a.Parameters[key].(string)
	return v
}

// Result is the structured feedback a task returns for one action.
type Result struct {
	Status   Status         `json:"status"`
	Message  string         `json:"message,omitempty"`
	Findings []string       `json:"findings,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// ActionRecord is one entry in a task's execution trace. The trace is
// append-only and grows even for unknown action types.
type ActionRecord struct {
	Index     int       `json:"index"`
	Action    Action    `json:"action"`
	Result    Result    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
	Proactive bool      `json:"is_proactive"`
}

// Context is the scenario framing handed to agents: task description,
// available actions, and any scenario-specific keys.
type Context map[string]any

// State is the task lifecycle state. Completed and Failed are terminal.
type State int

const (
	StateInitialized State = iota
	StateInProgress
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Details holds the raw counts the metrics engine reads out of a
// finished run.
type Details struct {
	TotalActions          int `json:"total_actions"`
	ProactiveActions      int `json:"proactive_actions"`
	ReactiveActions       int `json:"reactive_actions"`
	BottlenecksTotal      int `json:"bottlenecks_total"`
	BottlenecksIdentified int `json:"bottlenecks_identified"`
	BottlenecksResolved   int `json:"bottlenecks_resolved"`
}

// TaskResult is the terminal snapshot of one run. Immutable after
// construction; owned by the Task that produced it.
type TaskResult struct {
	TaskID                string        `json:"task_id"`
	Success               bool          `json:"success"`
	ProactivityScore      float64       `json:"proactivity_score"`
	EfficiencyScore       float64       `json:"efficiency_score"`
	ActionsTaken          []string      `json:"actions_taken"`
	BottlenecksIdentified []string      `json:"bottlenecks_identified"`
	BottlenecksResolved   []string      `json:"bottlenecks_resolved"`
	CompletionTime        time.Duration `json:"completion_time"`
	Details               Details       `json:"details"`
}
