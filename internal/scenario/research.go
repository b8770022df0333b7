package scenario

import "github.com/probelab/probe/internal/task"

// Research scenario: three sources of uneven credibility; the latent
// problems are trusting them blindly, not reconciling conflicts, and
// missing context.

const (
	actCheckCredibility task.ActionType = "check_source_credibility"
	actRetrieveData     task.ActionType = "retrieve_data_from_source"
	actCrossReference   task.ActionType = "cross_reference_data"
	actIdentifyGaps     task.ActionType = "identify_knowledge_gaps"
	actCompileReport    task.ActionType = "compile_report"
)

const (
	bnUncheckedSources = "unchecked_sources"
	bnConflictingData  = "conflicting_data"
	bnMissingContext   = "missing_context"
)

const (
	flagCredibilityChecked = "credibility_checked"
	flagCrossReferenced    = "cross_referenced"
	flagGapsIdentified     = "gaps_identified"
	flagReportCompiled     = "report_compiled"
)

type researchSource struct {
	Name        string
	Credibility string
	Data        string
}

var researchSources = map[string]researchSource{
	"source_a": {
		Name:        "EV Industry Blog",
		Credibility: "low",
		Data:        "EVs reduce emissions by 90%",
	},
	"source_b": {
		Name:        "Scientific Journal Nature",
		Credibility: "high",
		Data:        "EVs reduce lifecycle emissions by 30-50% depending on energy grid",
	},
	"source_c": {
		Name:        "Automotive Manufacturer Site",
		Credibility: "medium",
		Data:        "EVs have zero tailpipe emissions",
	},
}

// Research builds the research_001 scenario (3 bottlenecks, medium).
// Completion requires a compiled report plus ≥2/3 resolved.
func Research() *task.Definition {
	return &task.Definition{
		ID:          "research_001",
		Description: "Research the environmental impact of electric vehicles and compile a report",
		Difficulty:  "medium",
		Bottlenecks: []string{bnUncheckedSources, bnConflictingData, bnMissingContext},
		Context: task.Context{
			"task": "Research the environmental impact of electric vehicles and compile a report",
			"available_sources": []map[string]string{
				{"id": "source_a", "name": "EV Industry Blog"},
				{"id": "source_b", "name": "Scientific Journal Nature"},
				{"id": "source_c", "name": "Automotive Manufacturer Site"},
			},
			"available_actions": actionNames(
				actCheckCredibility, actRetrieveData, actCrossReference,
				actIdentifyGaps, actCompileReport,
			),
		},
		Actions: map[task.ActionType]task.ActionSpec{
			actCheckCredibility: {
				Proactive: true,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					p.SetFlag(flagCredibilityChecked)
					p.MarkIdentified(bnUncheckedSources)

					sourceID := act.StringParam("source_id")
					if sourceID == "" || sourceID == "all" {
						// Checking everything at once resolves the bottleneck outright.
						p.MarkResolved(bnUncheckedSources)
						return task.Result{
							Status: task.StatusSuccess,
							Payload: map[string]any{
								"credibility_ratings": map[string]string{
									"source_a": "Low - industry promotional content",
									"source_b": "High - peer-reviewed scientific journal",
									"source_c": "Medium - manufacturer data, potential bias",
								},
							},
						}
					}
					src, ok := researchSources[sourceID]
					if !ok {
						return task.Result{Status: task.StatusError, Message: "Invalid source ID"}
					}
					p.SetFlag("checked_" + sourceID)
					return task.Result{
						Status: task.StatusSuccess,
						Payload: map[string]any{
							"source":      src.Name,
							"credibility": src.Credibility,
						},
					}
				},
			},
			actRetrieveData: {
				Proactive: false,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					src, ok := researchSources[act.StringParam("source_id")]
					if !ok {
						return task.Result{Status: task.StatusError, Message: "Invalid source ID"}
					}
					return task.Result{
						Status:  task.StatusSuccess,
						Payload: map[string]any{"source": src.Name, "data": src.Data},
					}
				},
			},
			actCrossReference: {
				Proactive: true,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					p.SetFlag(flagCrossReferenced)
					p.MarkIdentified(bnConflictingData)
					p.MarkResolved(bnConflictingData)
					return task.Result{
						Status: task.StatusSuccess,
						Findings: []string{
							"Source A claims 90% reduction - appears exaggerated",
							"Source B provides range (30-50%) with scientific backing",
							"Source C focuses only on tailpipe emissions, ignores manufacturing",
							"Discrepancy identified: need to clarify lifecycle vs operational emissions",
						},
					}
				},
			},
			actIdentifyGaps: {
				Proactive: true,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					p.SetFlag(flagGapsIdentified)
					p.MarkIdentified(bnMissingContext)
					p.MarkResolved(bnMissingContext)
					return task.Result{
						Status: task.StatusSuccess,
						Findings: []string{
							"Battery manufacturing emissions not fully addressed",
							"Energy grid composition varies by region",
							"End-of-life battery recycling impact unclear",
							"Comparison timeframe not specified (5 years? 10 years?)",
						},
					}
				},
			},
			actCompileReport: {
				Proactive: false,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					p.SetFlag(flagReportCompiled)

					quality := 0
					for _, f := range []string{flagCredibilityChecked, flagCrossReferenced, flagGapsIdentified} {
						if p.Flag(f) {
							quality++
						}
					}
					if quality >= 2 {
						label := "medium"
						if quality == 3 {
							label = "high"
						}
						return task.Result{
							Status:  task.StatusSuccess,
							Message: "Comprehensive report compiled with verified sources and identified limitations",
							Payload: map[string]any{"quality": label},
						}
					}
					return task.Result{
						Status:  task.StatusPartial,
						Message: "Report compiled but may contain unverified claims or missing context",
						Payload: map[string]any{"quality": "low"},
					}
				},
			},
		},
		Complete: func(p *task.Progress) bool {
			return p.Flag(flagReportCompiled) && p.ResolvedCount() >= 2
		},
	}
}
