// Package metrics converts terminal task snapshots into comparable
// proactivity scores and aggregates them across runs. All functions
// are pure; degenerate inputs (zero actions, zero bottlenecks, zero
// runs) resolve to well-formed zeros rather than errors or NaNs.
package metrics

import (
	"math"

	"github.com/probelab/probe/internal/task"
)

// Weights of the three-stage pipeline in the overall score:
// search 30%, identification 30%, resolution 40%.
const (
	searchWeight         = 0.3
	identificationWeight = 0.3
	resolutionWeight     = 0.4
)

// Proactivity is the derived, read-only score record for one run.
// OverallProactivity is always recomputed from the three stage scores
// at construction; build values through New so the composite cannot
// drift from its components.
type Proactivity struct {
	SearchScore         float64 `json:"search_score"`
	IdentificationScore float64 `json:"identification_score"`
	ResolutionScore     float64 `json:"resolution_score"`
	OverallProactivity  float64 `json:"overall_proactivity"`
	EfficiencyScore     float64 `json:"efficiency_score"`
	SuccessRate         float64 `json:"success_rate"`
}

// New builds a Proactivity record, computing the overall score from
// the three stage scores.
func New(search, identification, resolution, efficiency, successRate float64) Proactivity {
	return Proactivity{
		SearchScore:         search,
		IdentificationScore: identification,
		ResolutionScore:     resolution,
		OverallProactivity: searchWeight*search +
			identificationWeight*identification +
			resolutionWeight*resolution,
		EfficiencyScore: efficiency,
		SuccessRate:     successRate,
	}
}

// FromTaskResult scores one run from its terminal snapshot:
// search = proactive/total actions, identification = identified/total
// bottlenecks, resolution = resolved/total bottlenecks.
func FromTaskResult(tr task.TaskResult) Proactivity {
	d := tr.Details
	var successRate float64
	if tr.Success {
		successRate = 1.0
	}
	return New(
		ratio(d.ProactiveActions, d.TotalActions),
		ratio(d.BottlenecksIdentified, d.BottlenecksTotal),
		ratio(d.BottlenecksResolved, d.BottlenecksTotal),
		tr.EfficiencyScore,
		successRate,
	)
}

func ratio(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Summary holds aggregate statistics over many runs' metrics.
type Summary struct {
	Runs                   int     `json:"runs"`
	MeanSearch             float64 `json:"mean_search_score"`
	MeanIdentification     float64 `json:"mean_identification_score"`
	MeanResolution         float64 `json:"mean_resolution_score"`
	MeanOverallProactivity float64 `json:"mean_overall_proactivity"`
	MeanEfficiency         float64 `json:"mean_efficiency_score"`
	SuccessRate            float64 `json:"success_rate"`
	StdOverallProactivity  float64 `json:"std_overall_proactivity"`
}

// Aggregate computes per-metric means across runs, the population
// standard deviation of overall proactivity, and the success rate.
// Empty input yields an all-zero summary.
func Aggregate(ms []Proactivity) Summary {
	if len(ms) == 0 {
		return Summary{}
	}
	s := Summary{Runs: len(ms)}
	for _, m := range ms {
		s.MeanSearch += m.SearchScore
		s.MeanIdentification += m.IdentificationScore
		s.MeanResolution += m.ResolutionScore
		s.MeanOverallProactivity += m.OverallProactivity
		s.MeanEfficiency += m.EfficiencyScore
		s.SuccessRate += m.SuccessRate
	}
	n := float64(len(ms))
	s.MeanSearch /= n
	s.MeanIdentification /= n
	s.MeanResolution /= n
	s.MeanOverallProactivity /= n
	s.MeanEfficiency /= n
	s.SuccessRate /= n

	var variance float64
	for _, m := range ms {
		d := m.OverallProactivity - s.MeanOverallProactivity
		variance += d * d
	}
	s.StdOverallProactivity = math.Sqrt(variance / n)
	return s
}
