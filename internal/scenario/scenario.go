// Package scenario holds the benchmark's scenario content: the four
// built-in proactivity scenarios and a TOML loader for custom
// declarative ones. Scenario definitions are stateless tables of
// action specs over canned findings; all run state lives in
// task.Progress.
package scenario

import "github.com/probelab/probe/internal/task"

// Builtins returns fresh definitions for every built-in scenario, in
// the published benchmark order.
func Builtins() []*task.Definition {
	return []*task.Definition{
		CodeDebugging(),
		SystemDesign(),
		Research(),
		DeploymentPlanning(),
	}
}

// ByID looks up a built-in scenario by its task id.
func ByID(id string) (*task.Definition, bool) {
	for _, def := range Builtins() {
		if def.ID == id {
			return def, true
		}
	}
	return nil, false
}

// actionNames lists the action table's types as strings for the
// initial context's available_actions entry.
func actionNames(types ...task.ActionType) []string {
	names := make([]string, len(types))
	for i, at := range types {
		names[i] = string(at)
	}
	return names
}
