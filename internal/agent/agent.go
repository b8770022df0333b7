// Package agent defines the agent contract the benchmark drives and
// the built-in heuristic agents used as behavioral baselines.
package agent

import (
	"context"

	"github.com/probelab/probe/internal/task"
)

// Step is one completed exchange in a run: the action the agent took
// and the result the task returned for it.
type Step struct {
	Iteration int         `json:"iteration"`
	Action    task.Action `json:"action"`
	Result    task.Result `json:"result"`
}

// Agent is one benchmark participant. The orchestrator calls
// DecideAction once per iteration with the initial task context and
// the full history so far, then ShouldContinue with the latest result.
// Reset must return the agent to a fresh state between runs; the same
// instance is never used by two runs at once.
type Agent interface {
	ID() string
	Name() string
	DecideAction(ctx context.Context, tc task.Context, history []Step) (task.Action, error)
	ShouldContinue(tc task.Context, last task.Result) bool
	Reset()
}

// taskText extracts the task description from the initial context.
func taskText(tc task.Context) string {
	s, _ := tc["task"].(string)
	return s
}

// availableActions reads the action list out of the initial context,
// tolerating both []string and []any encodings (the latter appears
// after a JSON round trip).
func availableActions(tc task.Context) []string {
	switch v := tc["available_actions"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func hasAction(tc task.Context, name string) bool {
	for _, a := range availableActions(tc) {
		if a == name {
			return true
		}
	}
	return false
}

func taken(history []Step, name task.ActionType) bool {
	for _, step := range history {
		if step.Action.Type == name {
			return true
		}
	}
	return false
}
