package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/probelab/probe/internal/agent"
	"github.com/probelab/probe/internal/bench"
	"github.com/probelab/probe/internal/config"
	"github.com/probelab/probe/internal/report"
	"github.com/probelab/probe/internal/result"
	"github.com/probelab/probe/internal/scenario"
	"github.com/probelab/probe/internal/task"
)

var (
	flagAgent         string
	flagScenario      string
	flagMaxIterations int
	flagParallel      int
	flagVerbose       bool
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a benchmark run",
		RunE:  runBenchmark,
	}
	cmd.Flags().StringVar(&flagAgent, "agent", "", "filter to a single agent id")
	cmd.Flags().StringVar(&flagScenario, "scenario", "", "filter to a single scenario id")
	cmd.Flags().IntVar(&flagMaxIterations, "max-iterations", 0, "override the action loop cap")
	cmd.Flags().IntVar(&flagParallel, "parallel", 0, "max concurrent agent/task pairs")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "print every action and result")
	return cmd
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagMaxIterations > 0 {
		cfg.Benchmark.MaxIterations = flagMaxIterations
	}
	if flagParallel > 0 {
		cfg.Benchmark.Parallel = flagParallel
	}
	if flagVerbose {
		cfg.Benchmark.Verbose = true
	}

	specs := filterAgents(buildAgentSpecs(cfg.Agents), flagAgent)
	if len(specs) == 0 {
		return fmt.Errorf("no agents match %q", flagAgent)
	}
	defs, err := loadScenarios(cfg.Scenarios)
	if err != nil {
		return err
	}
	defs = filterScenarios(defs, flagScenario)
	if len(defs) == 0 {
		return fmt.Errorf("no scenarios match %q", flagScenario)
	}

	runDir, err := result.CreateRunDir(cfg.Results.Dir)
	if err != nil {
		return err
	}
	fmt.Printf("Run directory: %s\n", runDir)

	ctx := context.Background()
	opts := bench.Options{
		MaxIterations: cfg.Benchmark.MaxIterations,
		Parallel:      cfg.Benchmark.Parallel,
		Verbose:       cfg.Benchmark.Verbose,
		Calibration: task.Calibration{
			MinOptimalActions:    cfg.Benchmark.Calibration.MinOptimalActions,
			ActionsPerBottleneck: cfg.Benchmark.Calibration.ActionsPerBottleneck,
		},
	}

	cmp, err := bench.Compare(ctx, specs, defs, opts)
	if err != nil {
		return err
	}

	for _, eval := range cmp.Evaluations() {
		if err := result.WriteEvaluation(runDir, eval); err != nil {
			return err
		}
	}

	if cfg.Results.HistoryDB != "" {
		if err := saveHistory(ctx, cfg.Results.HistoryDB, cmp, runDir); err != nil {
			return err
		}
	}

	agentOrder := make([]string, len(specs))
	for i, spec := range specs {
		agentOrder[i] = spec.ID
	}

	fmt.Println("\n--- Results ---")
	return report.Generate(report.Summarize(cmp.Evaluations(), agentOrder), "table", os.Stdout)
}

func saveHistory(ctx context.Context, dbPath string, cmp *bench.Comparison, runDir string) error {
	history, err := result.OpenHistory(dbPath)
	if err != nil {
		return err
	}
	defer history.Close()
	if err := history.Migrate(ctx); err != nil {
		return err
	}
	return history.SaveRun(ctx, cmp.RunID, runDir, cmp.Evaluations())
}

// loadConfig reads the configured file; when the default file is
// absent, it falls back to the built-in agents and scenarios so a
// bare `probe run` works out of the box.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err == nil {
		return cfg, nil
	}
	if cfgFile == "probe.yaml" {
		if _, statErr := os.Stat(cfgFile); os.IsNotExist(statErr) {
			return defaultConfig(), nil
		}
	}
	return nil, err
}

func defaultConfig() *config.Config {
	return &config.Config{
		Agents: []config.Agent{
			{ID: "reactive_001", Name: "Simple Reactive Agent", Kind: "reactive"},
			{ID: "proactive_001", Name: "Simple Proactive Agent", Kind: "proactive"},
		},
		Results: config.Results{Dir: "results"},
	}
}

func buildAgentSpecs(agents []config.Agent) []bench.AgentSpec {
	specs := make([]bench.AgentSpec, 0, len(agents))
	for _, a := range agents {
		spec := bench.AgentSpec{ID: a.ID, Name: a.Name}
		switch a.Kind {
		case "reactive":
			spec.New = func() agent.Agent { return agent.NewReactive() }
		case "proactive":
			spec.New = func() agent.Agent { return agent.NewProactive() }
		case "container":
			spec.New = func() agent.Agent {
				return agent.NewContainer(agent.ContainerOpts{
					ID:         a.ID,
					Name:       a.Name,
					Image:      a.Image,
					Command:    a.Command,
					Env:        a.Env,
					Timeout:    a.Timeout(),
					MaxActions: a.MaxActions,
				})
			}
		default:
			continue
		}
		specs = append(specs, spec)
	}
	return specs
}

// loadScenarios resolves the config's scenario list; an empty list
// means the full built-in suite.
func loadScenarios(selections []config.Scenario) ([]*task.Definition, error) {
	if len(selections) == 0 {
		return scenario.Builtins(), nil
	}
	var defs []*task.Definition
	for _, sel := range selections {
		if sel.File != "" {
			def, err := scenario.Load(sel.File)
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
			continue
		}
		def, ok := scenario.ByID(sel.ID)
		if !ok {
			return nil, fmt.Errorf("unknown scenario id %q", sel.ID)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func filterAgents(specs []bench.AgentSpec, id string) []bench.AgentSpec {
	if id == "" {
		return specs
	}
	var filtered []bench.AgentSpec
	for _, s := range specs {
		if s.ID == id {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func filterScenarios(defs []*task.Definition, id string) []*task.Definition {
	if id == "" {
		return defs
	}
	var filtered []*task.Definition
	for _, d := range defs {
		if d.ID == id {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
