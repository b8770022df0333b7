package scenario

import "github.com/probelab/probe/internal/task"

// System design scenario: the agent is asked for a notification-system
// design; scalability, security, and data-layer gaps are latent until
// investigated.

const (
	actAnalyzeScale    task.ActionType = "analyze_scale_requirements"
	actDesignSchema    task.ActionType = "design_database_schema"
	actPlanSecurity    task.ActionType = "plan_security_measures"
	actDesignArch      task.ActionType = "design_architecture"
	actIdentifyBottles task.ActionType = "identify_bottlenecks"
	actProposeSolution task.ActionType = "propose_solution"
)

const (
	bnNoLoadBalancing    = "no_load_balancing"
	bnNoAuthentication   = "no_authentication"
	bnSinglePointFailure = "single_point_failure"
	bnDatabaseBottleneck = "database_bottleneck"
)

const (
	flagScaleConsidered    = "scalability_considered"
	flagSecurityConsidered = "security_considered"
	flagDatabasePlanned    = "database_planned"
	flagDesignProposed     = "design_proposed"
)

// SystemDesign builds the system_design_001 scenario (4 bottlenecks,
// hard). Completion requires a proposed design plus ≥3/4 resolved.
func SystemDesign() *task.Definition {
	return &task.Definition{
		ID:          "system_design_001",
		Description: "Design a real-time notification system for a social media platform",
		Difficulty:  "hard",
		Bottlenecks: []string{bnNoLoadBalancing, bnNoAuthentication, bnSinglePointFailure, bnDatabaseBottleneck},
		Context: task.Context{
			"task": "Design a real-time notification system for a social media platform",
			"requirements": []string{
				"Support 1 million+ concurrent users",
				"Real-time delivery (<100ms latency)",
				"Persistent notification history",
				"Multi-device support",
			},
			"available_actions": actionNames(
				actAnalyzeScale, actDesignSchema, actPlanSecurity,
				actDesignArch, actIdentifyBottles, actProposeSolution,
			),
		},
		Actions: map[task.ActionType]task.ActionSpec{
			actAnalyzeScale: {
				Proactive: true,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					p.SetFlag(flagScaleConsidered)
					p.MarkIdentified(bnNoLoadBalancing)
					p.MarkIdentified(bnSinglePointFailure)
					return task.Result{
						Status: task.StatusSuccess,
						Findings: []string{
							"Load balancing will be critical for 1M+ users",
							"Need redundancy to avoid single point of failure",
							"WebSocket connections require sticky sessions",
						},
					}
				},
			},
			actPlanSecurity: {
				Proactive: true,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					p.SetFlag(flagSecurityConsidered)
					p.MarkIdentified(bnNoAuthentication)
					return task.Result{
						Status: task.StatusSuccess,
						Findings: []string{
							"Need JWT-based authentication for API",
							"WebSocket connections must be authenticated",
							"Rate limiting required to prevent abuse",
						},
					}
				},
			},
			actDesignSchema: {
				Proactive: true,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					p.SetFlag(flagDatabasePlanned)
					p.MarkIdentified(bnDatabaseBottleneck)
					return task.Result{
						Status: task.StatusSuccess,
						Findings: []string{
							"Use partitioned tables for notifications by user_id",
							"Consider time-series database for notification history",
							"Implement read replicas for scaling reads",
						},
					}
				},
			},
			actIdentifyBottles: {
				Proactive: true,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					var gaps []string
					if !p.Flag(flagScaleConsidered) {
						gaps = append(gaps, "Scalability concerns not addressed")
					}
					if !p.Flag(flagSecurityConsidered) {
						gaps = append(gaps, "Security measures not planned")
					}
					if !p.Flag(flagDatabasePlanned) {
						gaps = append(gaps, "Database scalability not considered")
					}
					if len(gaps) == 0 {
						gaps = []string{"All major bottlenecks have been identified"}
					}
					return task.Result{Status: task.StatusSuccess, Findings: gaps}
				},
			},
			actDesignArch: {
				// Reactive: answers the stated design request directly.
				Proactive: false,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					if p.Flag(flagScaleConsidered) && p.Flag(flagSecurityConsidered) {
						return task.Result{
							Status: task.StatusSuccess,
							Payload: map[string]any{
								"architecture": map[string]string{
									"load_balancer": "NGINX with sticky sessions",
									"app_servers":   "Horizontally scaled Node.js servers",
									"message_queue": "Redis Pub/Sub for real-time",
									"database":      "PostgreSQL with read replicas",
									"auth":          "JWT with refresh tokens",
								},
							},
						}
					}
					return task.Result{
						Status:  task.StatusPartial,
						Message: "Architecture designed but may have scalability or security gaps",
					}
				},
			},
			actProposeSolution: {
				Proactive: false,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					p.SetFlag(flagDesignProposed)
					var resolved []string
					if p.Flag(flagScaleConsidered) {
						p.MarkResolved(bnNoLoadBalancing)
						p.MarkResolved(bnSinglePointFailure)
						resolved = append(resolved, bnNoLoadBalancing, bnSinglePointFailure)
					}
					if p.Flag(flagSecurityConsidered) {
						p.MarkResolved(bnNoAuthentication)
						resolved = append(resolved, bnNoAuthentication)
					}
					if p.Flag(flagDatabasePlanned) {
						p.MarkResolved(bnDatabaseBottleneck)
						resolved = append(resolved, bnDatabaseBottleneck)
					}
					status := task.StatusPartial
					if len(resolved) >= 3 {
						status = task.StatusSuccess
					}
					return task.Result{
						Status:  status,
						Message: "Comprehensive system design with load balancing, authentication, and scalable database",
						Payload: map[string]any{"resolved_bottlenecks": resolved},
					}
				},
			},
		},
		Complete: func(p *task.Progress) bool {
			return p.Flag(flagDesignProposed) && p.ResolvedCount() >= 3
		},
	}
}
