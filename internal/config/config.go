// Package config loads and validates the YAML benchmark
// configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Agents    []Agent    `yaml:"agents"`
	Scenarios []Scenario `yaml:"scenarios"`
	Benchmark Benchmark  `yaml:"benchmark"`
	Results   Results    `yaml:"results"`
}

// Agent declares one benchmark participant. Kind selects the
// implementation: "reactive" and "proactive" are built in; "container"
// runs an external agent image through Docker.
type Agent struct {
	ID             string            `yaml:"id"`
	Name           string            `yaml:"name"`
	Kind           string            `yaml:"kind"`
	Image          string            `yaml:"image"`
	Command        []string          `yaml:"command"`
	Env            map[string]string `yaml:"env"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	MaxActions     int               `yaml:"max_actions"`
}

// Timeout converts the per-decision timeout to a duration.
func (a Agent) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Scenario selects one task: either a built-in id or a TOML file.
type Scenario struct {
	ID   string `yaml:"id"`
	File string `yaml:"file"`
}

type Benchmark struct {
	MaxIterations int         `yaml:"max_iterations"`
	Parallel      int         `yaml:"parallel"`
	Verbose       bool        `yaml:"verbose"`
	Calibration   Calibration `yaml:"calibration"`
}

type Calibration struct {
	MinOptimalActions    int `yaml:"min_optimal_actions"`
	ActionsPerBottleneck int `yaml:"actions_per_bottleneck"`
}

type Results struct {
	Dir       string `yaml:"dir"`
	HistoryDB string `yaml:"history_db"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Agents) == 0 {
		return fmt.Errorf("no agents defined")
	}
	seen := map[string]bool{}
	for i := range cfg.Agents {
		a := &cfg.Agents[i]
		if a.ID == "" {
			return fmt.Errorf("agent %d: id is required", i)
		}
		if seen[a.ID] {
			return fmt.Errorf("agent %q: duplicate id", a.ID)
		}
		seen[a.ID] = true
		if a.Name == "" {
			a.Name = a.ID
		}
		switch a.Kind {
		case "reactive", "proactive":
		case "container":
			if a.Image == "" {
				return fmt.Errorf("agent %q: image is required for container agents", a.ID)
			}
		case "":
			return fmt.Errorf("agent %q: kind is required", a.ID)
		default:
			return fmt.Errorf("agent %q: unknown kind %q", a.ID, a.Kind)
		}
	}

	for i, s := range cfg.Scenarios {
		if s.ID == "" && s.File == "" {
			return fmt.Errorf("scenario %d: id or file is required", i)
		}
		if s.ID != "" && s.File != "" {
			return fmt.Errorf("scenario %d: id and file are mutually exclusive", i)
		}
	}

	if cfg.Benchmark.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must not be negative")
	}
	if cfg.Benchmark.Parallel < 0 {
		return fmt.Errorf("parallel must not be negative")
	}
	if cfg.Results.Dir == "" {
		cfg.Results.Dir = "results"
	}
	return nil
}
