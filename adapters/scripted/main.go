// Command scripted is an example external agent for the benchmark's
// container protocol. The harness bind-mounts an exchange directory at
// /exchange, writes request.json, and runs this binary once per
// decision; the binary writes action.json and exits.
//
// The strategy is deliberately simple: work through the untried
// actions advertised in the task context, then declare the decision
// final once everything has been tried or the last result succeeded.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
)

type action struct {
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Reasoning  string         `json:"reasoning,omitempty"`
}

type step struct {
	Iteration int    `json:"iteration"`
	Action    action `json:"action"`
	Result    struct {
		Status string `json:"status"`
	} `json:"result"`
}

type request struct {
	Iteration int            `json:"iteration"`
	Context   map[string]any `json:"context"`
	History   []step         `json:"history"`
}

type response struct {
	Action action `json:"action"`
	Final  bool   `json:"final,omitempty"`
}

// Parameters that unlock resolution on the built-in scenarios.
var actionParams = map[string]map[string]any{
	"check_environment_variables": {"set_api_key": true},
	"check_dependencies":          {"update_dependencies": true},
	"check_configuration_files":   {"create_config": true},
	"check_resource_availability": {"scale_prod": true},
	"check_source_credibility":    {"source_id": "all"},
	"retrieve_data_from_source":   {"source_id": "source_b"},
	"deploy_to_environment":       {"environment": "dev"},
	"validate_deployment":         {"environment": "dev"},
}

func main() {
	exchangeDir := flag.String("exchange", "/exchange", "exchange directory")
	flag.Parse()

	req, err := readRequest(filepath.Join(*exchangeDir, "request.json"))
	if err != nil {
		log.Fatalf("reading request: %v", err)
	}

	resp := decide(req)
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatalf("encoding response: %v", err)
	}
	if err := os.WriteFile(filepath.Join(*exchangeDir, "action.json"), out, 0o644); err != nil {
		log.Fatalf("writing response: %v", err)
	}
}

func readRequest(path string) (*request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func decide(req *request) response {
	available := availableActions(req.Context)
	tried := map[string]bool{}
	for _, s := range req.History {
		tried[s.Action.Type] = true
	}

	for _, name := range available {
		if tried[name] {
			continue
		}
		return response{Action: action{
			Type:       name,
			Parameters: actionParams[name],
			Reasoning:  "Trying an action not yet attempted",
		}}
	}

	// Everything tried: repeat the last action and stop afterwards.
	last := action{Type: "complete", Reasoning: "Nothing left to try"}
	if n := len(req.History); n > 0 {
		last = req.History[n-1].Action
		last.Reasoning = "Retrying the final action"
	}
	return response{Action: last, Final: true}
}

func availableActions(ctx map[string]any) []string {
	raw, _ := ctx["available_actions"].([]any)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
