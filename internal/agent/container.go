package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/probelab/probe/internal/sandbox"
	"github.com/probelab/probe/internal/task"
)

// request is the JSON document written to the exchange directory
// before each container run.
type request struct {
	Iteration int          `json:"iteration"`
	Context   task.Context `json:"context"`
	History   []Step       `json:"history"`
}

// response is what the containerized agent writes back. Setting final
// tells the harness to stop after this action is processed.
type response struct {
	Action task.Action `json:"action"`
	Final  bool        `json:"final,omitempty"`
}

type runFunc func(ctx context.Context, opts *sandbox.RunOpts) (*sandbox.RunResult, error)

// ContainerOpts configures a container-backed agent.
type ContainerOpts struct {
	ID         string
	Name       string
	Image      string
	Command    []string
	Env        map[string]string
	Timeout    time.Duration
	MaxActions int
}

// Container adapts an external agent packaged as a Docker image to the
// Agent interface. Each decision is one container run: the harness
// writes request.json into a bind-mounted exchange directory, the
// container writes action.json, and the harness reads it back. State
// between iterations is the agent's own problem; the full history is
// resent every time.
type Container struct {
	opts        ContainerOpts
	run         runFunc
	exchangeDir string
	iteration   int
	final       bool
}

// NewContainer builds a container-backed agent. Timeout defaults to 2
// minutes per decision and MaxActions to 20.
func NewContainer(opts ContainerOpts) *Container {
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	if opts.MaxActions <= 0 {
		opts.MaxActions = 20
	}
	return &Container{opts: opts, run: sandbox.RunContainer}
}

func (a *Container) ID() string   { return a.opts.ID }
func (a *Container) Name() string { return a.opts.Name }

func (a *Container) DecideAction(ctx context.Context, tc task.Context, history []Step) (task.Action, error) {
	if a.exchangeDir == "" {
		dir, err := os.MkdirTemp("", "probe-exchange-")
		if err != nil {
			return task.Action{}, fmt.Errorf("creating exchange dir: %w", err)
		}
		a.exchangeDir = dir
	}
	a.iteration++

	req := request{Iteration: a.iteration, Context: tc, History: history}
	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return task.Action{}, fmt.Errorf("encoding request: %w", err)
	}
	if err := os.WriteFile(filepath.Join(a.exchangeDir, "request.json"), data, 0o644); err != nil {
		return task.Action{}, fmt.Errorf("writing request: %w", err)
	}
	// Stale responses from a previous iteration must not be re-read.
	os.Remove(filepath.Join(a.exchangeDir, "action.json"))

	result, err := a.run(ctx, &sandbox.RunOpts{
		Image:       a.opts.Image,
		Command:     a.opts.Command,
		ExchangeDir: a.exchangeDir,
		Env:         a.opts.Env,
		Timeout:     a.opts.Timeout,
	})
	if err != nil {
		return task.Action{}, fmt.Errorf("agent %s: running container: %w", a.opts.ID, err)
	}
	if result.TimedOut {
		return task.Action{}, fmt.Errorf("agent %s: decision timed out after %s", a.opts.ID, a.opts.Timeout)
	}
	if result.ExitCode != 0 {
		return task.Action{}, fmt.Errorf("agent %s: container exited with code %d", a.opts.ID, result.ExitCode)
	}

	raw, err := os.ReadFile(filepath.Join(a.exchangeDir, "action.json"))
	if err != nil {
		return task.Action{}, fmt.Errorf("agent %s: reading action: %w", a.opts.ID, err)
	}
	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return task.Action{}, fmt.Errorf("agent %s: decoding action: %w", a.opts.ID, err)
	}
	if resp.Action.Type == "" {
		return task.Action{}, fmt.Errorf("agent %s: action.json has no action type", a.opts.ID)
	}
	a.final = resp.Final
	return resp.Action, nil
}

func (a *Container) ShouldContinue(_ task.Context, _ task.Result) bool {
	if a.final {
		return false
	}
	return a.iteration < a.opts.MaxActions
}

func (a *Container) Reset() {
	if a.exchangeDir != "" {
		os.RemoveAll(a.exchangeDir)
		a.exchangeDir = ""
	}
	a.iteration = 0
	a.final = false
}
