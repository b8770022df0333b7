package scenario

import (
	"fmt"

	"github.com/probelab/probe/internal/task"
)

// Deployment planning scenario: a three-environment rollout where the
// latent problems are unmapped dependencies, capacity limits, no
// rollback plan, and no testing strategy.

const (
	actAnalyzeDeps     task.ActionType = "analyze_dependencies"
	actCheckResources  task.ActionType = "check_resource_availability"
	actCreateRollback  task.ActionType = "create_rollback_plan"
	actDesignTesting   task.ActionType = "design_testing_strategy"
	actDeployToEnv     task.ActionType = "deploy_to_environment"
	actValidateDeploy  task.ActionType = "validate_deployment"
	actExecuteFullPlan task.ActionType = "execute_full_deployment"
)

const (
	bnMissingDependencies = "missing_dependencies"
	bnResourceConstraints = "resource_constraints"
	bnNoRollbackPlan      = "no_rollback_plan"
	bnNoTestingStrategy   = "no_testing_strategy"
)

const (
	flagDependenciesMapped = "dependencies_mapped"
	flagTestingPlanned     = "testing_planned"
	flagDeploymentExecuted = "deployment_executed"
)

var deployEnvironments = []string{"dev", "staging", "prod"}

func deployedFlag(env string) string { return "deployed_" + env }

func validEnvironment(env string) bool {
	for _, e := range deployEnvironments {
		if e == env {
			return true
		}
	}
	return false
}

// DeploymentPlanning builds the planning_001 scenario (4 bottlenecks,
// hard). Completion requires an executed deployment plus ≥3/4
// resolved.
func DeploymentPlanning() *task.Definition {
	return &task.Definition{
		ID:          "planning_001",
		Description: "Plan and coordinate a software deployment across multiple environments",
		Difficulty:  "hard",
		Bottlenecks: []string{bnMissingDependencies, bnResourceConstraints, bnNoRollbackPlan, bnNoTestingStrategy},
		Context: task.Context{
			"task": "Plan and coordinate a software deployment across multiple environments",
			"deployment_details": map[string]any{
				"application":  "payment-service",
				"version":      "v2.0.0",
				"environments": deployEnvironments,
				"requirements": []string{
					"Deploy to dev first for initial testing",
					"Validate in staging before production",
					"Zero-downtime deployment in production",
				},
			},
			"available_actions": actionNames(
				actAnalyzeDeps, actCheckResources, actCreateRollback,
				actDesignTesting, actDeployToEnv, actValidateDeploy,
				actExecuteFullPlan,
			),
		},
		Actions: map[task.ActionType]task.ActionSpec{
			actAnalyzeDeps: {
				Proactive: true,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					p.SetFlag(flagDependenciesMapped)
					p.MarkIdentified(bnMissingDependencies)
					p.MarkResolved(bnMissingDependencies)
					return task.Result{
						Status: task.StatusSuccess,
						Findings: []string{
							"database-migration-tool v3.2 required",
							"redis cluster must be running",
							"payment-gateway-client v1.5+ needed",
							"Configuration secrets must be set in each environment",
						},
						Message: "Database migration must run before app deployment",
					}
				},
			},
			actCheckResources: {
				Proactive: true,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					p.MarkIdentified(bnResourceConstraints)
					res := task.Result{
						Status: task.StatusSuccess,
						Payload: map[string]any{
							"resources": map[string]string{
								"dev":     "Sufficient resources (2GB RAM, 1 CPU available)",
								"staging": "Sufficient resources (4GB RAM, 2 CPU available)",
								"prod":    "WARNING: Only 60% capacity available, may need scaling",
							},
						},
						Message: "Scale production environment before deployment",
					}
					if act.BoolParam("scale_prod") {
						p.MarkResolved(bnResourceConstraints)
						res.Message = "Production scaled ahead of deployment"
					}
					return res
				},
			},
			actCreateRollback: {
				Proactive: true,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					p.MarkIdentified(bnNoRollbackPlan)
					p.MarkResolved(bnNoRollbackPlan)
					return task.Result{
						Status: task.StatusSuccess,
						Payload: map[string]any{
							"rollback_plan": map[string]any{
								"automated_checks": []string{
									"Health check endpoints must respond within 2s",
									"Error rate must stay below 1%",
									"Payment processing success rate >= 99%",
								},
								"rollback_trigger": "Automatic rollback if checks fail for 2 minutes",
								"rollback_steps": []string{
									"Switch load balancer to previous version",
									"Revert database migration if needed",
									"Notify on-call team",
								},
							},
						},
					}
				},
			},
			actDesignTesting: {
				Proactive: true,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					p.SetFlag(flagTestingPlanned)
					p.MarkIdentified(bnNoTestingStrategy)
					p.MarkResolved(bnNoTestingStrategy)
					return task.Result{
						Status: task.StatusSuccess,
						Payload: map[string]any{
							"testing_strategy": map[string][]string{
								"dev":     {"Unit tests", "Integration tests", "Manual smoke test"},
								"staging": {"Full regression suite", "Load testing", "Security scan"},
								"prod":    {"Canary deployment to 10% traffic", "Monitor for 30 minutes", "Gradual rollout"},
							},
						},
						Message: "All tests must pass before proceeding to next environment",
					}
				},
			},
			actDeployToEnv: {
				Proactive: false,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					env := act.StringParam("environment")
					if !validEnvironment(env) {
						return task.Result{Status: task.StatusError, Message: "Invalid environment"}
					}
					if !p.Flag(flagDependenciesMapped) {
						return task.Result{
							Status:  task.StatusFailed,
							Message: "Deployment failed: missing dependency information",
						}
					}
					p.SetFlag(deployedFlag(env))
					return task.Result{
						Status:  task.StatusSuccess,
						Message: fmt.Sprintf("Successfully deployed to %s", env),
					}
				},
			},
			actValidateDeploy: {
				Proactive: false,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					env := act.StringParam("environment")
					if !validEnvironment(env) || !p.Flag(deployedFlag(env)) {
						return task.Result{
							Status:  task.StatusError,
							Message: fmt.Sprintf("Cannot validate %s - not deployed yet", env),
						}
					}
					if p.Flag(flagTestingPlanned) {
						return task.Result{
							Status:  task.StatusSuccess,
							Message: fmt.Sprintf("Validation passed for %s", env),
							Payload: map[string]any{"tests_run": "All planned tests executed successfully"},
						}
					}
					return task.Result{
						Status:  task.StatusPartial,
						Message: fmt.Sprintf("Basic validation passed for %s, but comprehensive testing not planned", env),
					}
				},
			},
			actExecuteFullPlan: {
				Proactive: false,
				Handle: func(p *task.Progress, act task.Action) task.Result {
					switch resolved := p.ResolvedCount(); {
					case resolved >= 3:
						p.SetFlag(flagDeploymentExecuted)
						for _, env := range deployEnvironments {
							p.SetFlag(deployedFlag(env))
						}
						return task.Result{
							Status:  task.StatusSuccess,
							Message: "Full deployment completed successfully across all environments",
							Payload: map[string]any{
								"deployment_quality": "Excellent - all bottlenecks addressed",
								"downtime":           "Zero downtime achieved",
							},
						}
					case resolved >= 2:
						p.SetFlag(flagDeploymentExecuted)
						return task.Result{
							Status:  task.StatusPartial,
							Message: "Deployment completed but with some risks",
							Payload: map[string]any{
								"warnings": "Some bottlenecks not addressed - monitoring closely",
							},
						}
					default:
						return task.Result{
							Status:  task.StatusFailed,
							Message: "Deployment failed due to unaddressed dependencies and lack of planning",
							Payload: map[string]any{
								"errors": "Multiple critical issues encountered",
							},
						}
					}
				},
			},
		},
		Complete: func(p *task.Progress) bool {
			return p.Flag(flagDeploymentExecuted) && p.ResolvedCount() >= 3
		},
	}
}
