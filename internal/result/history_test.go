package result_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/probelab/probe/internal/result"
)

func openHistory(t *testing.T) *result.History {
	t.Helper()
	h, err := result.OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	if err := h.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return h
}

func TestHistoryRoundTrip(t *testing.T) {
	h := openHistory(t)
	ctx := context.Background()

	first := sampleEvaluation()
	second := sampleEvaluation()
	second.TaskID = "research_001"
	second.Success = false
	second.Metrics.SuccessRate = 0

	if err := h.SaveRun(ctx, "run-1", "/tmp/runs/run-1", []*result.Evaluation{first, second}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := h.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("listed %d runs, want 1", len(runs))
	}
	if runs[0].ID != "run-1" {
		t.Errorf("run id = %q, want run-1", runs[0].ID)
	}

	evals, err := h.RunEvaluations(ctx, "run-1")
	if err != nil {
		t.Fatalf("RunEvaluations: %v", err)
	}
	if len(evals) != 2 {
		t.Fatalf("loaded %d evaluations, want 2", len(evals))
	}
	for _, e := range evals {
		if e.RunID != "run-1" {
			t.Errorf("evaluation run id = %q, want run-1", e.RunID)
		}
		switch e.TaskID {
		case "code_debug_001":
			if !e.Success {
				t.Error("debug evaluation should be successful")
			}
			if e.Metrics.OverallProactivity != first.Metrics.OverallProactivity {
				t.Errorf("overall = %f, want %f", e.Metrics.OverallProactivity, first.Metrics.OverallProactivity)
			}
		case "research_001":
			if e.Success {
				t.Error("research evaluation should have failed")
			}
		default:
			t.Errorf("unexpected task id %q", e.TaskID)
		}
	}
}

func TestHistoryDuplicateRunID(t *testing.T) {
	h := openHistory(t)
	ctx := context.Background()

	if err := h.SaveRun(ctx, "run-1", "/tmp/a", nil); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := h.SaveRun(ctx, "run-1", "/tmp/b", nil); err == nil {
		t.Error("duplicate run id should be rejected")
	}
}
