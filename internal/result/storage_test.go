package result_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/probelab/probe/internal/metrics"
	"github.com/probelab/probe/internal/result"
	"github.com/probelab/probe/internal/task"
)

func sampleEvaluation() *result.Evaluation {
	return &result.Evaluation{
		RunID:     "run-1",
		TaskID:    "code_debug_001",
		AgentID:   "proactive_001",
		AgentName: "Simple Proactive Agent",
		Success:   true,
		Metrics:   metrics.New(0.6, 1.0, 1.0, 1.0, 1.0),
		Details: result.Details{
			TaskDescription: "Debug a web scraper that fails to retrieve data",
			TaskDifficulty:  "medium",
			TotalIterations: 5,
			Details: task.Details{
				TotalActions:          5,
				ProactiveActions:      3,
				ReactiveActions:       2,
				BottlenecksTotal:      3,
				BottlenecksIdentified: 3,
				BottlenecksResolved:   3,
			},
		},
	}
}

func TestWriteAndReadEvaluation(t *testing.T) {
	runDir := t.TempDir()
	eval := sampleEvaluation()
	if err := result.WriteEvaluation(runDir, eval); err != nil {
		t.Fatalf("WriteEvaluation: %v", err)
	}

	path := result.EvaluationPath(runDir, eval.AgentID, eval.TaskID)
	got, err := result.ReadEvaluation(path)
	if err != nil {
		t.Fatalf("ReadEvaluation: %v", err)
	}
	if got.TaskID != eval.TaskID || got.AgentID != eval.AgentID {
		t.Errorf("identity: got %s/%s, want %s/%s", got.AgentID, got.TaskID, eval.AgentID, eval.TaskID)
	}
	if got.Metrics.OverallProactivity != eval.Metrics.OverallProactivity {
		t.Errorf("overall: got %f, want %f", got.Metrics.OverallProactivity, eval.Metrics.OverallProactivity)
	}
	if got.Details.BottlenecksResolved != 3 {
		t.Errorf("resolved: got %d, want 3", got.Details.BottlenecksResolved)
	}
}

func TestCreateRunDir(t *testing.T) {
	base := t.TempDir()
	runDir, err := result.CreateRunDir(base)
	if err != nil {
		t.Fatalf("CreateRunDir: %v", err)
	}
	if _, err := os.Stat(runDir); os.IsNotExist(err) {
		t.Errorf("run directory not created: %s", runDir)
	}
	latest := filepath.Join(base, "latest")
	target, err := os.Readlink(latest)
	if err != nil {
		t.Fatalf("reading latest symlink: %v", err)
	}
	if target != runDir {
		t.Errorf("latest symlink: got %q, want %q", target, runDir)
	}
}

func TestCollect(t *testing.T) {
	runDir := t.TempDir()
	first := sampleEvaluation()
	second := sampleEvaluation()
	second.TaskID = "research_001"
	second.AgentID = "reactive_001"
	for _, eval := range []*result.Evaluation{first, second} {
		if err := result.WriteEvaluation(runDir, eval); err != nil {
			t.Fatalf("WriteEvaluation: %v", err)
		}
	}

	evals, err := result.Collect(runDir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(evals) != 2 {
		t.Fatalf("collected %d evaluations, want 2", len(evals))
	}
}

func TestRecordShape(t *testing.T) {
	rec := sampleEvaluation().Record()
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"task_id", "agent_id", "success", "metrics", "details"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("record missing key %q", key)
		}
	}

	m, ok := decoded["metrics"].(map[string]any)
	if !ok {
		t.Fatal("metrics is not an object")
	}
	for _, key := range []string{
		"search_score", "identification_score", "resolution_score",
		"overall_proactivity", "efficiency_score", "success_rate",
	} {
		if _, ok := m[key]; !ok {
			t.Errorf("metrics missing key %q", key)
		}
	}

	// counters from the task snapshot serialize inline under details
	d, ok := decoded["details"].(map[string]any)
	if !ok {
		t.Fatal("details is not an object")
	}
	if _, ok := d["total_actions"]; !ok {
		t.Error("details missing total_actions")
	}
	if _, ok := d["task_description"]; !ok {
		t.Error("details missing task_description")
	}
}
