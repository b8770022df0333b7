package bench_test

import (
	"context"
	"errors"
	"testing"

	"github.com/probelab/probe/internal/agent"
	"github.com/probelab/probe/internal/bench"
	"github.com/probelab/probe/internal/scenario"
	"github.com/probelab/probe/internal/task"
)

// stubAgent takes a fixed action every iteration and optionally stops
// or errors.
type stubAgent struct {
	id        string
	action    task.Action
	stopAfter int // 0 means never stop voluntarily
	decideErr error
	decisions int
}

func (s *stubAgent) ID() string   { return s.id }
func (s *stubAgent) Name() string { return "Stub " + s.id }

func (s *stubAgent) DecideAction(_ context.Context, _ task.Context, _ []agent.Step) (task.Action, error) {
	if s.decideErr != nil {
		return task.Action{}, s.decideErr
	}
	s.decisions++
	return s.action, nil
}

func (s *stubAgent) ShouldContinue(_ task.Context, _ task.Result) bool {
	return s.stopAfter == 0 || s.decisions < s.stopAfter
}

func (s *stubAgent) Reset() { s.decisions = 0 }

func debugDef(t *testing.T) *task.Definition {
	t.Helper()
	def, ok := scenario.ByID("code_debug_001")
	if !ok {
		t.Fatal("missing builtin scenario")
	}
	return def
}

func TestRunPairIterationCap(t *testing.T) {
	ag := &stubAgent{id: "loop", action: task.Action{Type: "run_tests"}}
	eval, err := bench.RunPair(context.Background(), ag, debugDef(t), bench.Options{MaxIterations: 5})
	if err != nil {
		t.Fatal(err)
	}
	if eval.Details.TotalIterations != 5 {
		t.Errorf("iterations = %d, want 5", eval.Details.TotalIterations)
	}
	if eval.Details.TotalActions != 5 {
		t.Errorf("trace length = %d, want 5", eval.Details.TotalActions)
	}
	if eval.Success {
		t.Error("looping agent should not succeed")
	}
}

func TestRunPairAgentStopsEarly(t *testing.T) {
	ag := &stubAgent{id: "oneshot", action: task.Action{Type: "analyze_code"}, stopAfter: 1}
	eval, err := bench.RunPair(context.Background(), ag, debugDef(t), bench.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if eval.Details.TotalIterations != 1 {
		t.Errorf("iterations = %d, want 1", eval.Details.TotalIterations)
	}
	if len(eval.Details.ActionHistory) != 1 {
		t.Errorf("history length = %d, want 1", len(eval.Details.ActionHistory))
	}
}

func TestRunPairDecideErrorStillEvaluates(t *testing.T) {
	ag := &stubAgent{id: "broken", decideErr: errors.New("container crashed")}
	eval, err := bench.RunPair(context.Background(), ag, debugDef(t), bench.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if eval.Success {
		t.Error("a run that never acted should not succeed")
	}
	if eval.Details.TotalIterations != 0 {
		t.Errorf("iterations = %d, want 0", eval.Details.TotalIterations)
	}
	if eval.Metrics.OverallProactivity != 0 {
		t.Errorf("overall = %f, want 0", eval.Metrics.OverallProactivity)
	}
}

func TestRunPairUnknownActionsAreScoredNotFatal(t *testing.T) {
	ag := &stubAgent{id: "confused", action: task.Action{Type: "summon_kraken"}, stopAfter: 3}
	eval, err := bench.RunPair(context.Background(), ag, debugDef(t), bench.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if eval.Details.TotalActions != 3 {
		t.Errorf("trace length = %d, want 3", eval.Details.TotalActions)
	}
	for _, step := range eval.Details.ActionHistory {
		if step.Result.Status != task.StatusError {
			t.Errorf("step %d status = %s, want error", step.Iteration, step.Result.Status)
		}
	}
}

func TestEvaluateAgent(t *testing.T) {
	spec := bench.AgentSpec{
		ID:   "proactive_001",
		Name: "Simple Proactive Agent",
		New:  func() agent.Agent { return agent.NewProactive() },
	}
	report, err := bench.EvaluateAgent(context.Background(), spec, scenario.Builtins(), bench.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Summary.Runs != 4 {
		t.Fatalf("summary runs = %d, want 4", report.Summary.Runs)
	}
	if len(report.Evaluations) != 4 {
		t.Fatalf("evaluations = %d, want 4", len(report.Evaluations))
	}
	if report.Summary.MeanOverallProactivity <= 0 {
		t.Error("proactive agent should score above zero")
	}
}

func TestCompareKeepsAgentOrder(t *testing.T) {
	specs := []bench.AgentSpec{
		{ID: "reactive_001", Name: "Simple Reactive Agent", New: func() agent.Agent { return agent.NewReactive() }},
		{ID: "proactive_001", Name: "Simple Proactive Agent", New: func() agent.Agent { return agent.NewProactive() }},
	}
	defs := scenario.Builtins()

	cmp, err := bench.Compare(context.Background(), specs, defs, bench.Options{Parallel: 4})
	if err != nil {
		t.Fatal(err)
	}
	if cmp.RunID == "" {
		t.Error("comparison should carry a run id")
	}
	if len(cmp.Reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(cmp.Reports))
	}
	for i, spec := range specs {
		if cmp.Reports[i].AgentID != spec.ID {
			t.Errorf("report %d agent = %s, want %s", i, cmp.Reports[i].AgentID, spec.ID)
		}
	}
	for _, report := range cmp.Reports {
		for ti, eval := range report.Evaluations {
			if eval == nil {
				t.Fatalf("agent %s missing evaluation %d", report.AgentID, ti)
			}
			if eval.TaskID != defs[ti].ID {
				t.Errorf("agent %s evaluation %d = %s, want %s", report.AgentID, ti, eval.TaskID, defs[ti].ID)
			}
			if eval.RunID != cmp.RunID {
				t.Errorf("evaluation run id = %q, want %q", eval.RunID, cmp.RunID)
			}
		}
	}

	if got := len(cmp.Evaluations()); got != 8 {
		t.Errorf("flattened evaluations = %d, want 8", got)
	}

	proactive := cmp.Reports[1].Summary.MeanOverallProactivity
	reactive := cmp.Reports[0].Summary.MeanOverallProactivity
	if proactive <= reactive {
		t.Errorf("proactive mean %.3f should exceed reactive mean %.3f", proactive, reactive)
	}
}
