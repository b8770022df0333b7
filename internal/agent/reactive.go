package agent

import (
	"context"
	"strings"

	"github.com/probelab/probe/internal/task"
)

// Reactive is the baseline agent: it answers the stated problem
// directly and never investigates. It exists to anchor the low end of
// the proactivity scale.
type Reactive struct {
	maxActions int
	count      int
}

// NewReactive returns a reactive agent capped at 10 actions per run.
func NewReactive() *Reactive {
	return &Reactive{maxActions: 10}
}

func (a *Reactive) ID() string   { return "reactive_001" }
func (a *Reactive) Name() string { return "Simple Reactive Agent" }

func (a *Reactive) DecideAction(_ context.Context, tc task.Context, _ []Step) (task.Action, error) {
	a.count++

	desc := strings.ToLower(taskText(tc))
	errMsg, _ := tc["error_message"].(string)

	switch {
	case strings.Contains(desc, "debug") || errMsg != "":
		return task.Action{
			Type:      "analyze_code",
			Reasoning: "Responding to the reported error by analyzing the code",
		}, nil
	case strings.Contains(desc, "design"):
		return task.Action{
			Type:      "design_architecture",
			Reasoning: "Addressing the design task directly",
		}, nil
	case strings.Contains(desc, "research"):
		return task.Action{
			Type:       "retrieve_data_from_source",
			Parameters: map[string]any{"source_id": "source_a"},
			Reasoning:  "Gathering information to complete the research",
		}, nil
	case strings.Contains(desc, "deploy"):
		return task.Action{
			Type:       "deploy_to_environment",
			Parameters: map[string]any{"environment": "dev"},
			Reasoning:  "Starting deployment as requested",
		}, nil
	}

	if hasAction(tc, "compile_report") {
		return task.Action{Type: "compile_report", Reasoning: "Completing the task"}, nil
	}
	if hasAction(tc, "propose_solution") {
		return task.Action{Type: "propose_solution", Reasoning: "Proposing a solution"}, nil
	}
	if actions := availableActions(tc); len(actions) > 0 {
		return task.Action{Type: task.ActionType(actions[0]), Reasoning: "Taking available action"}, nil
	}
	return task.Action{Type: "unknown", Reasoning: "Taking available action"}, nil
}

func (a *Reactive) ShouldContinue(_ task.Context, last task.Result) bool {
	if a.count >= a.maxActions {
		return false
	}
	return last.Status != task.StatusSuccess
}

func (a *Reactive) Reset() { a.count = 0 }
