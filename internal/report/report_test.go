package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/probelab/probe/internal/metrics"
	"github.com/probelab/probe/internal/report"
	"github.com/probelab/probe/internal/result"
	"github.com/probelab/probe/internal/task"
)

func evalFor(agentID, agentName, taskID string, overallInputs [3]float64, success bool) *result.Evaluation {
	var rate float64
	if success {
		rate = 1.0
	}
	return &result.Evaluation{
		TaskID:    taskID,
		AgentID:   agentID,
		AgentName: agentName,
		Success:   success,
		Metrics:   metrics.New(overallInputs[0], overallInputs[1], overallInputs[2], 1.0, rate),
		Details: result.Details{
			Details: task.Details{TotalActions: 5, BottlenecksTotal: 3},
		},
	}
}

func sampleEvals() []*result.Evaluation {
	return []*result.Evaluation{
		evalFor("proactive_001", "Simple Proactive Agent", "code_debug_001", [3]float64{0.6, 1.0, 1.0}, true),
		evalFor("proactive_001", "Simple Proactive Agent", "research_001", [3]float64{0.8, 1.0, 0.66}, true),
		evalFor("reactive_001", "Simple Reactive Agent", "code_debug_001", [3]float64{0.0, 0.0, 0.0}, false),
		evalFor("reactive_001", "Simple Reactive Agent", "research_001", [3]float64{0.0, 0.33, 0.0}, false),
	}
}

func TestSummarizeGroupsAndOrders(t *testing.T) {
	summaries := report.Summarize(sampleEvals(), []string{"reactive_001", "proactive_001"})
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if summaries[0].AgentID != "reactive_001" || summaries[1].AgentID != "proactive_001" {
		t.Errorf("order = %s, %s; want reactive first", summaries[0].AgentID, summaries[1].AgentID)
	}
	if summaries[0].Metrics.Runs != 2 {
		t.Errorf("reactive runs = %d, want 2", summaries[0].Metrics.Runs)
	}
	if summaries[1].Metrics.SuccessRate != 1.0 {
		t.Errorf("proactive success rate = %f, want 1.0", summaries[1].Metrics.SuccessRate)
	}
}

func TestSummarizeUnlistedAgentsAppended(t *testing.T) {
	summaries := report.Summarize(sampleEvals(), []string{"proactive_001"})
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if summaries[0].AgentID != "proactive_001" || summaries[1].AgentID != "reactive_001" {
		t.Errorf("order = %s, %s", summaries[0].AgentID, summaries[1].AgentID)
	}
}

func TestGenerateTable(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Generate(report.Summarize(sampleEvals(), nil), "table", &buf); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Simple Proactive Agent") {
		t.Error("expected proactive agent row")
	}
	if !strings.Contains(output, "Simple Reactive Agent") {
		t.Error("expected reactive agent row")
	}
	if !strings.Contains(output, "PROACTIVITY") {
		t.Error("expected table header")
	}
}

func TestGenerateMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Generate(report.Summarize(sampleEvals(), nil), "markdown", &buf); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "| Agent |") {
		t.Errorf("markdown output should start with a header row, got %q", buf.String())
	}
}

func TestGenerateJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Generate(report.Summarize(sampleEvals(), nil), "json", &buf); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var decoded []report.AgentSummary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("decoded %d summaries, want 2", len(decoded))
	}
}

func TestFromRunDir(t *testing.T) {
	runDir := t.TempDir()
	for _, eval := range sampleEvals() {
		if err := result.WriteEvaluation(runDir, eval); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := report.FromRunDir(runDir, "table", &buf); err != nil {
		t.Fatalf("FromRunDir: %v", err)
	}
	if !strings.Contains(buf.String(), "Simple Proactive Agent") {
		t.Error("expected proactive agent in run dir report")
	}
}

func TestFromRunDirEmpty(t *testing.T) {
	if err := report.FromRunDir(t.TempDir(), "table", &bytes.Buffer{}); err == nil {
		t.Error("expected an error for an empty run dir")
	}
}
