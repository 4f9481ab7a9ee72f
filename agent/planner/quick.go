package planner

import (
	"strings"

	contractx "github.com/supakit/agentplan/agent/contract"
)

// QuickPlan maps common task shapes to canned plans so the AI planner only
// pays for an LLM call on genuinely open-ended work. A nil return tells the
// caller to escalate.
func QuickPlan(taskDescription string) *contractx.ExecutionPlan {
	task := strings.TrimSpace(taskDescription)
	lower := strings.ToLower(task)

	switch {
	case hasAnyPrefix(lower, "list", "show", "get", "fetch", "display"):
		return &contractx.ExecutionPlan{
			TaskSummary:     task,
			Complexity:      contractx.ComplexitySimple,
			EstimatedEffort: contractx.EffortQuick,
			Milestones: []contractx.Milestone{
				{ID: "retrieve", Description: "Retrieve the requested data"},
				{ID: "present", Description: "Format and present the results"},
			},
		}

	case hasAnyPrefix(lower, "create", "add", "make", "new"):
		return &contractx.ExecutionPlan{
			TaskSummary:     task,
			Complexity:      contractx.ComplexityModerate,
			EstimatedEffort: contractx.EffortMedium,
			Milestones: []contractx.Milestone{
				{ID: "prepare", Description: "Gather required details and validate inputs"},
				{ID: "create", Description: "Create the requested item"},
				{ID: "confirm", Description: "Confirm creation and report the result"},
			},
		}

	case hasAnyPrefix(lower, "delete", "remove", "destroy"):
		return &contractx.ExecutionPlan{
			TaskSummary:     task,
			Complexity:      contractx.ComplexitySimple,
			EstimatedEffort: contractx.EffortQuick,
			Milestones: []contractx.Milestone{
				{ID: "locate", Description: "Locate the target item"},
				{ID: "delete", Description: "Delete the item"},
				{ID: "verify", Description: "Verify the item is gone"},
			},
		}

	case hasAnyPrefix(lower, "deploy", "release", "ship"):
		return &contractx.ExecutionPlan{
			TaskSummary:     task,
			Complexity:      contractx.ComplexityComplex,
			EstimatedEffort: contractx.EffortSubstantial,
			Milestones: []contractx.Milestone{
				{ID: "precheck", Description: "Check current state and prerequisites"},
				{ID: "build", Description: "Build and package the release"},
				{ID: "deploy", Description: "Deploy to the target environment"},
				{ID: "smoke", Description: "Run post-deploy health checks"},
				{ID: "report", Description: "Report deployment status"},
			},
		}

	case hasAnyPrefix(lower, "analyze", "analyse", "review", "audit", "examine", "assess", "evaluate", "improve"):
		if containsAny(lower, "repo", "codebase", "project", "architecture") {
			return &contractx.ExecutionPlan{
				TaskSummary:       task,
				Complexity:        contractx.ComplexityExploratory,
				EstimatedEffort:   contractx.EffortSubstantial,
				ExplorationNeeded: true,
				Milestones: []contractx.Milestone{
					{ID: "structure", Description: "Map the repository structure"},
					{ID: "entrypoints", Description: "Identify entry points and core modules"},
					{ID: "dependencies", Description: "Review dependencies and integrations"},
					{ID: "quality", Description: "Assess code quality and test coverage"},
					{ID: "risks", Description: "Flag risks and improvement opportunities"},
					{ID: "summary", Description: "Write up findings and recommendations"},
				},
			}
		}
		return &contractx.ExecutionPlan{
			TaskSummary:     task,
			Complexity:      contractx.ComplexityModerate,
			EstimatedEffort: contractx.EffortMedium,
			Milestones: []contractx.Milestone{
				{ID: "collect", Description: "Collect the material to analyze"},
				{ID: "analyze", Description: "Analyze it against the request"},
				{ID: "conclude", Description: "Draw conclusions"},
				{ID: "report", Description: "Report findings"},
			},
		}
	}

	return nil
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if s == p || strings.HasPrefix(s, p+" ") {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
