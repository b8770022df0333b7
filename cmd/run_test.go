package cmd

import (
	"testing"

	"github.com/probelab/probe/internal/config"
	"github.com/probelab/probe/internal/scenario"
)

func TestFilterAgents(t *testing.T) {
	specs := buildAgentSpecs([]config.Agent{
		{ID: "reactive_001", Name: "Reactive", Kind: "reactive"},
		{ID: "proactive_001", Name: "Proactive", Kind: "proactive"},
		{ID: "ext_001", Name: "External", Kind: "container", Image: "probe/agent:test"},
	})
	if len(specs) != 3 {
		t.Fatalf("built %d specs, want 3", len(specs))
	}

	tests := []struct {
		name   string
		filter string
		want   int
	}{
		{"empty filter returns all", "", 3},
		{"exact match", "proactive_001", 1},
		{"no match", "psychic_001", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterAgents(specs, tt.filter)
			if len(got) != tt.want {
				t.Errorf("filterAgents(%q) returned %d, want %d", tt.filter, len(got), tt.want)
			}
		})
	}
}

func TestBuildAgentSpecsFreshInstances(t *testing.T) {
	specs := buildAgentSpecs([]config.Agent{{ID: "reactive_001", Kind: "reactive"}})
	if len(specs) != 1 {
		t.Fatalf("built %d specs, want 1", len(specs))
	}
	first := specs[0].New()
	second := specs[0].New()
	if first == second {
		t.Error("New should return distinct agent instances")
	}
}

func TestFilterScenarios(t *testing.T) {
	defs := scenario.Builtins()

	if got := filterScenarios(defs, ""); len(got) != len(defs) {
		t.Errorf("empty filter returned %d, want %d", len(got), len(defs))
	}
	got := filterScenarios(defs, "research_001")
	if len(got) != 1 || got[0].ID != "research_001" {
		t.Errorf("filterScenarios(research_001) = %v", got)
	}
	if got := filterScenarios(defs, "nope"); len(got) != 0 {
		t.Errorf("unknown id returned %d scenarios", len(got))
	}
}

func TestLoadScenariosDefaultsToBuiltins(t *testing.T) {
	defs, err := loadScenarios(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 4 {
		t.Errorf("got %d scenarios, want 4 builtins", len(defs))
	}
}

func TestLoadScenariosUnknownID(t *testing.T) {
	if _, err := loadScenarios([]config.Scenario{{ID: "nope"}}); err == nil {
		t.Error("expected an error for an unknown scenario id")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	specs := buildAgentSpecs(cfg.Agents)
	if len(specs) != 2 {
		t.Fatalf("default config built %d specs, want 2", len(specs))
	}
	if cfg.Results.Dir == "" {
		t.Error("default config should set a results dir")
	}
}
