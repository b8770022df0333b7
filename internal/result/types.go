// Package result defines the per-run evaluation record and its two
// persistence surfaces: JSON files under a timestamped run directory
// and a SQLite history database.
package result

import (
	"github.com/probelab/probe/internal/agent"
	"github.com/probelab/probe/internal/metrics"
	"github.com/probelab/probe/internal/task"
)

// Details carries the run's descriptive context alongside the raw
// counters from the task snapshot. The embedded counters serialize
// inline.
type Details struct {
	TaskDescription string       `json:"task_description"`
	TaskDifficulty  string       `json:"task_difficulty"`
	TotalIterations int          `json:"total_iterations"`
	ActionHistory   []agent.Step `json:"action_history"`
	task.Details
}

// Evaluation is the full outcome of running one agent on one task.
type Evaluation struct {
	RunID     string              `json:"run_id"`
	TaskID    string              `json:"task_id"`
	AgentID   string              `json:"agent_id"`
	AgentName string              `json:"agent_name"`
	Success   bool                `json:"success"`
	Metrics   metrics.Proactivity `json:"metrics"`
	Details   Details             `json:"details"`
}

// Record is the flat exchange form of an evaluation.
type Record struct {
	TaskID  string              `json:"task_id"`
	AgentID string              `json:"agent_id"`
	Success bool                `json:"success"`
	Metrics metrics.Proactivity `json:"metrics"`
	Details Details             `json:"details"`
}

// Record flattens the evaluation for export.
func (e Evaluation) Record() Record {
	return Record{
		TaskID:  e.TaskID,
		AgentID: e.AgentID,
		Success: e.Success,
		Metrics: e.Metrics,
		Details: e.Details,
	}
}
