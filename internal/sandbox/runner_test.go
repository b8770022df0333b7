package sandbox_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/probelab/probe/internal/sandbox"
)

func TestRunContainer(t *testing.T) {
	if os.Getenv("PROBE_DOCKER_TESTS") == "" {
		t.Skip("set PROBE_DOCKER_TESTS=1 to run Docker tests")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	exchangeDir := t.TempDir()
	os.WriteFile(filepath.Join(exchangeDir, "request.json"), []byte("{}"), 0o644)

	result, err := sandbox.RunContainer(ctx, &sandbox.RunOpts{
		Image:       "alpine:latest",
		Command:     []string{"sh", "-c", "cp /exchange/request.json /exchange/action.json"},
		ExchangeDir: exchangeDir,
		Env:         map[string]string{"EXCHANGE_DIR": "/exchange"},
		Timeout:     30 * time.Second,
	})
	if err != nil {
		t.Fatalf("RunContainer: %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("exit code: got %d, want 0", result.ExitCode)
	}
	if result.TimedOut {
		t.Error("unexpected timeout")
	}
	if _, err := os.Stat(filepath.Join(exchangeDir, "action.json")); err != nil {
		t.Errorf("expected action.json in exchange dir: %v", err)
	}
}

func TestRunContainerTimeout(t *testing.T) {
	if os.Getenv("PROBE_DOCKER_TESTS") == "" {
		t.Skip("set PROBE_DOCKER_TESTS=1 to run Docker tests")
	}
	ctx := context.Background()

	result, err := sandbox.RunContainer(ctx, &sandbox.RunOpts{
		Image:       "alpine:latest",
		Command:     []string{"sleep", "60"},
		ExchangeDir: t.TempDir(),
		Timeout:     2 * time.Second,
	})
	if err != nil {
		t.Fatalf("RunContainer: %v", err)
	}
	if !result.TimedOut {
		t.Error("expected a timeout")
	}
}
