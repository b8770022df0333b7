// Package bench orchestrates benchmark runs: it drives the
// agent/task action loop, scores each run, and compares agents across
// the scenario suite.
package bench

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/probelab/probe/internal/agent"
	"github.com/probelab/probe/internal/metrics"
	"github.com/probelab/probe/internal/result"
	"github.com/probelab/probe/internal/task"
)

// DefaultMaxIterations caps the action loop when the config does not
// say otherwise.
const DefaultMaxIterations = 20

// Options configures a benchmark run.
type Options struct {
	MaxIterations int
	Calibration   task.Calibration
	Parallel      int
	Verbose       bool
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Parallel <= 0 {
		o.Parallel = 1
	}
	if o.Calibration.MinOptimalActions <= 0 && o.Calibration.ActionsPerBottleneck <= 0 {
		o.Calibration = task.DefaultCalibration
	}
	return o
}

// AgentSpec describes one participant. New must return a fresh agent
// instance; Compare calls it once per task so parallel runs never
// share agent state.
type AgentSpec struct {
	ID   string
	Name string
	New  func() agent.Agent
}

// AgentReport is the per-agent outcome of a benchmark: the aggregate
// summary plus the individual evaluations in task order.
type AgentReport struct {
	AgentID     string               `json:"agent_id"`
	AgentName   string               `json:"agent_name"`
	Summary     metrics.Summary      `json:"aggregated_metrics"`
	Evaluations []*result.Evaluation `json:"individual_results"`
}

// Comparison is the full outcome of comparing several agents. Reports
// preserve the input agent order.
type Comparison struct {
	RunID   string         `json:"run_id"`
	Reports []*AgentReport `json:"comparison_results"`
}

// Evaluations flattens every report's evaluations for persistence.
func (c *Comparison) Evaluations() []*result.Evaluation {
	var evals []*result.Evaluation
	for _, r := range c.Reports {
		evals = append(evals, r.Evaluations...)
	}
	return evals
}

// RunPair runs one agent against one scenario. The loop ends when the
// agent stops, errors, or hits the iteration cap; whichever way it
// ends, the task is evaluated exactly once. A decision error fails
// that run's evaluation rather than the benchmark.
func RunPair(ctx context.Context, ag agent.Agent, def *task.Definition, opts Options) (*result.Evaluation, error) {
	opts = opts.withDefaults()

	tk := task.New(def, task.WithCalibration(opts.Calibration))
	ag.Reset()
	tc, err := tk.Start()
	if err != nil {
		return nil, fmt.Errorf("starting task %s: %w", def.ID, err)
	}

	if opts.Verbose {
		fmt.Printf("Running %s on %s: %s\n", ag.Name(), def.ID, def.Description)
	}

	var history []agent.Step
	for iteration := 0; iteration < opts.MaxIterations; iteration++ {
		act, err := ag.DecideAction(ctx, tc, history)
		if err != nil {
			log.Printf("agent %s on %s: iteration %d: %v", ag.ID(), def.ID, iteration+1, err)
			break
		}
		if opts.Verbose {
			fmt.Printf("  [%d] %s", iteration+1, act.Type)
			if act.Reasoning != "" {
				fmt.Printf(" (%s)", act.Reasoning)
			}
			fmt.Println()
		}

		res := tk.ProcessAction(act)
		if opts.Verbose {
			fmt.Printf("      -> %s", res.Status)
			if res.Message != "" {
				fmt.Printf(": %s", res.Message)
			}
			fmt.Println()
		}

		history = append(history, agent.Step{Iteration: iteration, Action: act, Result: res})
		if !ag.ShouldContinue(tc, res) {
			break
		}
	}

	taskResult := tk.Evaluate()
	if opts.Verbose {
		verdict := "FAILED"
		if taskResult.Success {
			verdict = "SUCCESS"
		}
		fmt.Printf("  %s: %s (proactivity %.3f, efficiency %.3f)\n",
			def.ID, verdict, taskResult.ProactivityScore, taskResult.EfficiencyScore)
	}

	return &result.Evaluation{
		TaskID:    def.ID,
		AgentID:   ag.ID(),
		AgentName: ag.Name(),
		Success:   taskResult.Success,
		Metrics:   metrics.FromTaskResult(taskResult),
		Details: result.Details{
			TaskDescription: def.Description,
			TaskDifficulty:  def.Difficulty,
			TotalIterations: len(history),
			ActionHistory:   history,
			Details:         taskResult.Details,
		},
	}, nil
}

// EvaluateAgent runs one agent across every scenario sequentially and
// aggregates its scores.
func EvaluateAgent(ctx context.Context, spec AgentSpec, defs []*task.Definition, opts Options) (*AgentReport, error) {
	report := &AgentReport{AgentID: spec.ID, AgentName: spec.Name}
	for _, def := range defs {
		eval, err := RunPair(ctx, spec.New(), def, opts)
		if err != nil {
			return nil, err
		}
		report.Evaluations = append(report.Evaluations, eval)
	}
	report.Summary = summarize(report.Evaluations)
	return report, nil
}

// Compare runs every agent against every scenario and returns per-
// agent reports in the input agent order. With Parallel > 1, pairs
// run concurrently; each job gets its own agent and task instance and
// writes to its own slot.
func Compare(ctx context.Context, specs []AgentSpec, defs []*task.Definition, opts Options) (*Comparison, error) {
	opts = opts.withDefaults()
	runID := uuid.NewString()

	grid := make([][]*result.Evaluation, len(specs))
	var jobs []job
	for ai, spec := range specs {
		grid[ai] = make([]*result.Evaluation, len(defs))
		for ti, def := range defs {
			jobs = append(jobs, func() error {
				eval, err := RunPair(ctx, spec.New(), def, opts)
				if err != nil {
					return err
				}
				eval.RunID = runID
				grid[ai][ti] = eval
				return nil
			})
		}
	}

	if errs := runPool(opts.Parallel, jobs); len(errs) > 0 {
		return nil, fmt.Errorf("benchmark failed: %v", errs[0])
	}

	cmp := &Comparison{RunID: runID}
	for ai, spec := range specs {
		report := &AgentReport{
			AgentID:     spec.ID,
			AgentName:   spec.Name,
			Evaluations: grid[ai],
		}
		report.Summary = summarize(report.Evaluations)
		cmp.Reports = append(cmp.Reports, report)
	}
	return cmp, nil
}

func summarize(evals []*result.Evaluation) metrics.Summary {
	ms := make([]metrics.Proactivity, len(evals))
	for i, e := range evals {
		ms[i] = e.Metrics
	}
	return metrics.Aggregate(ms)
}
