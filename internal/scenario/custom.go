package scenario

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/probelab/probe/internal/task"
)

// File-defined scenarios. A TOML file declares the bottleneck registry,
// the action table, and the completion rule; Load compiles it into a
// regular Definition. Declarative actions cover the common patterns
// (identify, resolve, gate on a parameter or prior flags); anything
// richer belongs in a builtin.

type customFile struct {
	ID          string         `toml:"id"`
	Description string         `toml:"description"`
	Difficulty  string         `toml:"difficulty"`
	Bottlenecks []string       `toml:"bottlenecks"`
	Context     map[string]any `toml:"context"`
	Actions     []customAction `toml:"action"`
	Completion  completionRule `toml:"completion"`
}

type customAction struct {
	Type           string   `toml:"type"`
	Proactive      bool     `toml:"proactive"`
	Identifies     []string `toml:"identifies"`
	Resolves       []string `toml:"resolves"`
	ResolveParam   string   `toml:"resolve_param"`
	SetsFlag       string   `toml:"sets_flag"`
	Findings       []string `toml:"findings"`
	Message        string   `toml:"message"`
	FailMessage    string   `toml:"fail_message"`
	PartialMessage string   `toml:"partial_message"`
	RequiresFlags  []string `toml:"requires_flags"`
	MinResolved    int      `toml:"min_resolved"`
}

type completionRule struct {
	MinResolved  int      `toml:"min_resolved"`
	RequireFlags []string `toml:"require_flags"`
}

// Load reads a TOML scenario file and compiles it into a Definition.
func Load(path string) (*task.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var f customFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return f.compile(), nil
}

func (f *customFile) validate() error {
	if f.ID == "" {
		return fmt.Errorf("id is required")
	}
	if f.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(f.Actions) == 0 {
		return fmt.Errorf("at least one action is required")
	}

	registry := make(map[string]struct{}, len(f.Bottlenecks))
	for _, id := range f.Bottlenecks {
		if _, dup := registry[id]; dup {
			return fmt.Errorf("duplicate bottleneck %q", id)
		}
		registry[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(f.Actions))
	for _, act := range f.Actions {
		if act.Type == "" {
			return fmt.Errorf("action with empty type")
		}
		if _, dup := seen[act.Type]; dup {
			return fmt.Errorf("duplicate action type %q", act.Type)
		}
		seen[act.Type] = struct{}{}
		for _, id := range act.Identifies {
			if _, ok := registry[id]; !ok {
				return fmt.Errorf("action %q identifies unknown bottleneck %q", act.Type, id)
			}
		}
		for _, id := range act.Resolves {
			if _, ok := registry[id]; !ok {
				return fmt.Errorf("action %q resolves unknown bottleneck %q", act.Type, id)
			}
		}
	}

	if f.Completion.MinResolved > len(f.Bottlenecks) {
		return fmt.Errorf("completion min_resolved %d exceeds bottleneck count %d",
			f.Completion.MinResolved, len(f.Bottlenecks))
	}
	return nil
}

func (f *customFile) compile() *task.Definition {
	ctx := task.Context{"task": f.Description}
	for k, v := range f.Context {
		ctx[k] = v
	}
	names := make([]string, 0, len(f.Actions))
	actions := make(map[task.ActionType]task.ActionSpec, len(f.Actions))
	for _, spec := range f.Actions {
		names = append(names, spec.Type)
		actions[task.ActionType(spec.Type)] = task.ActionSpec{
			Proactive: spec.Proactive,
			Handle:    spec.handler(),
		}
	}
	ctx["available_actions"] = names

	completion := f.Completion
	return &task.Definition{
		ID:          f.ID,
		Description: f.Description,
		Difficulty:  f.Difficulty,
		Bottlenecks: append([]string(nil), f.Bottlenecks...),
		Context:     ctx,
		Actions:     actions,
		Complete: func(p *task.Progress) bool {
			if p.ResolvedCount() < completion.MinResolved {
				return false
			}
			for _, name := range completion.RequireFlags {
				if !p.Flag(name) {
					return false
				}
			}
			return true
		},
	}
}

func (spec customAction) handler() task.Handler {
	return func(p *task.Progress, act task.Action) task.Result {
		for _, name := range spec.RequiresFlags {
			if !p.Flag(name) {
				return task.Result{
					Status:  task.StatusFailed,
					Message: orDefault(spec.FailMessage, fmt.Sprintf("%s requires %s first", spec.Type, name)),
				}
			}
		}
		for _, id := range spec.Identifies {
			p.MarkIdentified(id)
		}
		if spec.ResolveParam == "" || act.BoolParam(spec.ResolveParam) {
			for _, id := range spec.Resolves {
				p.MarkResolved(id)
			}
		}
		if spec.MinResolved > 0 && p.ResolvedCount() < spec.MinResolved {
			return task.Result{
				Status:   task.StatusPartial,
				Message:  orDefault(spec.PartialMessage, spec.Message),
				Findings: append([]string(nil), spec.Findings...),
			}
		}
		if spec.SetsFlag != "" {
			p.SetFlag(spec.SetsFlag)
		}
		return task.Result{
			Status:   task.StatusSuccess,
			Message:  spec.Message,
			Findings: append([]string(nil), spec.Findings...),
		}
	}
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
