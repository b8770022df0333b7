package main

import "testing"

func requestWith(actions []any, history []step) *request {
	return &request{
		Iteration: len(history) + 1,
		Context:   map[string]any{"available_actions": actions},
		History:   history,
	}
}

func TestDecidePicksUntriedAction(t *testing.T) {
	req := requestWith([]any{"check_dependencies", "analyze_code"}, []step{
		{Iteration: 0, Action: action{Type: "check_dependencies"}},
	})
	resp := decide(req)
	if resp.Action.Type != "analyze_code" {
		t.Errorf("action = %s, want analyze_code", resp.Action.Type)
	}
	if resp.Final {
		t.Error("should not be final while untried actions remain")
	}
}

func TestDecideCarriesUnlockParameters(t *testing.T) {
	resp := decide(requestWith([]any{"check_environment_variables"}, nil))
	if resp.Action.Type != "check_environment_variables" {
		t.Fatalf("action = %s", resp.Action.Type)
	}
	if v, ok := resp.Action.Parameters["set_api_key"].(bool); !ok || !v {
		t.Errorf("parameters = %v, want set_api_key=true", resp.Action.Parameters)
	}
}

func TestDecideFinalWhenExhausted(t *testing.T) {
	history := []step{
		{Iteration: 0, Action: action{Type: "a"}},
		{Iteration: 1, Action: action{Type: "b"}},
	}
	resp := decide(requestWith([]any{"a", "b"}, history))
	if !resp.Final {
		t.Error("should be final once every action has been tried")
	}
	if resp.Action.Type != "b" {
		t.Errorf("action = %s, want the last tried action", resp.Action.Type)
	}
}

func TestDecideEmptyContext(t *testing.T) {
	resp := decide(requestWith(nil, nil))
	if !resp.Final {
		t.Error("no available actions should end the run")
	}
	if resp.Action.Type != "complete" {
		t.Errorf("action = %s, want complete", resp.Action.Type)
	}
}
