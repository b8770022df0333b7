package result

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// CreateRunDir makes a timestamped directory under baseDir/runs and
// repoints the baseDir/latest symlink at it.
func CreateRunDir(baseDir string) (string, error) {
	runsDir := filepath.Join(baseDir, "runs")
	stamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	runDir := filepath.Join(runsDir, stamp)
	runDir, err := filepath.Abs(runDir)
	if err != nil {
		return "", fmt.Errorf("resolving run dir: %w", err)
	}
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("creating run dir: %w", err)
	}
	latest := filepath.Join(baseDir, "latest")
	os.Remove(latest)
	if err := os.Symlink(runDir, latest); err != nil {
		return "", fmt.Errorf("creating latest symlink: %w", err)
	}
	return runDir, nil
}

// EvaluationPath names the JSON file for one agent/task pairing.
func EvaluationPath(runDir, agentID, taskID string) string {
	return filepath.Join(runDir, "evaluations", agentID, taskID+".json")
}

// WriteEvaluation stores one evaluation as indented JSON under the
// run directory.
func WriteEvaluation(runDir string, eval *Evaluation) error {
	path := EvaluationPath(runDir, eval.AgentID, eval.TaskID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating evaluation dir: %w", err)
	}
	data, err := json.MarshalIndent(eval, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling evaluation: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadEvaluation loads one evaluation file.
func ReadEvaluation(path string) (*Evaluation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading evaluation: %w", err)
	}
	var eval Evaluation
	if err := json.Unmarshal(data, &eval); err != nil {
		return nil, fmt.Errorf("parsing evaluation %s: %w", path, err)
	}
	return &eval, nil
}

// Collect walks a run directory and loads every evaluation in it.
func Collect(runDir string) ([]*Evaluation, error) {
	var evals []*Evaluation
	root := filepath.Join(runDir, "evaluations")
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		eval, err := ReadEvaluation(path)
		if err != nil {
			return err
		}
		evals = append(evals, eval)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting evaluations: %w", err)
	}
	return evals, nil
}
