// Package report renders benchmark comparisons as a plain-text table,
// markdown, or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/probelab/probe/internal/metrics"
	"github.com/probelab/probe/internal/result"
)

// AgentSummary is one comparison row: an agent's aggregate metrics
// over every task it ran.
type AgentSummary struct {
	AgentID   string          `json:"agent_id"`
	AgentName string          `json:"agent_name"`
	Metrics   metrics.Summary `json:"aggregated_metrics"`
}

// Summarize groups evaluations by agent and aggregates each group.
// agentOrder fixes row order; agents absent from it are appended
// alphabetically.
func Summarize(evals []*result.Evaluation, agentOrder []string) []AgentSummary {
	byAgent := map[string][]*result.Evaluation{}
	names := map[string]string{}
	for _, e := range evals {
		byAgent[e.AgentID] = append(byAgent[e.AgentID], e)
		if e.AgentName != "" {
			names[e.AgentID] = e.AgentName
		}
	}

	ordered := make([]string, 0, len(byAgent))
	seen := map[string]bool{}
	for _, id := range agentOrder {
		if _, ok := byAgent[id]; ok && !seen[id] {
			ordered = append(ordered, id)
			seen[id] = true
		}
	}
	var rest []string
	for id := range byAgent {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	summaries := make([]AgentSummary, 0, len(ordered))
	for _, id := range ordered {
		group := byAgent[id]
		ms := make([]metrics.Proactivity, len(group))
		for i, e := range group {
			ms[i] = e.Metrics
		}
		name := names[id]
		if name == "" {
			name = id
		}
		summaries = append(summaries, AgentSummary{
			AgentID:   id,
			AgentName: name,
			Metrics:   metrics.Aggregate(ms),
		})
	}
	return summaries
}

// Generate renders summaries in the requested format: "markdown",
// "json", or anything else for the plain table.
func Generate(summaries []AgentSummary, format string, w io.Writer) error {
	switch format {
	case "markdown":
		return writeMarkdown(summaries, w)
	case "json":
		return writeJSON(summaries, w)
	default:
		return writeTable(summaries, w)
	}
}

// FromRunDir loads a run directory's evaluations and renders them.
func FromRunDir(runDir, format string, w io.Writer) error {
	evals, err := result.Collect(runDir)
	if err != nil {
		return err
	}
	if len(evals) == 0 {
		return fmt.Errorf("no evaluations found in %s", runDir)
	}
	return Generate(Summarize(evals, nil), format, w)
}

func writeTable(summaries []AgentSummary, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENT\tTASKS\tPROACTIVITY\tSTD\tEFFICIENCY\tSUCCESS RATE")
	fmt.Fprintln(tw, strings.Repeat("-", 80))
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.3f\t%.0f%%\n",
			s.AgentName, s.Metrics.Runs,
			s.Metrics.MeanOverallProactivity, s.Metrics.StdOverallProactivity,
			s.Metrics.MeanEfficiency, s.Metrics.SuccessRate*100)
	}
	return tw.Flush()
}

func writeMarkdown(summaries []AgentSummary, w io.Writer) error {
	fmt.Fprintln(w, "| Agent | Tasks | Proactivity | Std | Efficiency | Success Rate |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|")
	for _, s := range summaries {
		fmt.Fprintf(w, "| %s | %d | %.3f | %.3f | %.3f | %.0f%% |\n",
			s.AgentName, s.Metrics.Runs,
			s.Metrics.MeanOverallProactivity, s.Metrics.StdOverallProactivity,
			s.Metrics.MeanEfficiency, s.Metrics.SuccessRate*100)
	}
	return nil
}

func writeJSON(summaries []AgentSummary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}
