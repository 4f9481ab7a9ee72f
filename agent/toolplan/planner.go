package toolplan

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/supakit/agentplan/agent/contract"
)

// Flags mirrors which integrations the surrounding process has configured.
// The available-tool subset is computed once from these at construction and
// fixed for the planner's lifetime.
type Flags struct {
	Trello           bool
	Hetzner          bool
	ClaudeContainers bool
}

type archetype struct {
	name      string
	predicate *regexp.Regexp
	// secondary is ANDed with predicate when set (codebase analysis needs
	// both an analysis verb and a codebase noun).
	secondary *regexp.Regexp
}

// Archetypes are evaluated in this order and the first match wins. The
// predicates deliberately overlap ("implement a deployment pipeline"
// matches both deployment and implementation); the order is behavior, not
// an accident, so keep it stable.
var archetypes = []archetype{
	{
		name:      "codebase_analysis",
		predicate: regexp.MustCompile(`(?i)\b(analy[sz]e|review|audit|examine|assess|evaluate|improve)\b`),
		secondary: regexp.MustCompile(`(?i)\b(codebase|repo|repository|project|architecture|code)\b`),
	},
	{
		name:      "deployment",
		predicate: regexp.MustCompile(`(?i)\b(deploy|release|ship|rollout)|\broll out\b`),
	},
	{
		name:      "task_management",
		predicate: regexp.MustCompile(`(?i)\b(trello|card|board|ticket|todo|organi[sz]e|track)\b`),
	},
	{
		name:      "implementation",
		predicate: regexp.MustCompile(`(?i)\b(implement|build|create|develop|refactor|fix|add|write)\b`),
	},
}

var (
	implementationVerbs = regexp.MustCompile(`(?i)\b(implement|build|refactor|create|develop)\b`)
	scaleQualifiers     = regexp.MustCompile(`(?i)\b(complex|large|entire|full)\b`)
)

// Planner produces archetype-based plans annotated with ranked tool
// suggestions and delegation hints.
type Planner struct {
	available []contractx.ToolCapability
	flags     Flags
	log       zerolog.Logger
}

func New(flags Flags) *Planner {
	enabled := map[string]bool{
		"trello":            flags.Trello,
		"hetzner":           flags.Hetzner,
		"claude_containers": flags.ClaudeContainers,
	}

	var available []contractx.ToolCapability
	for _, tc := range Registry() {
		ok := true
		for _, req := range tc.Requires {
			if !enabled[req] {
				ok = false
				break
			}
		}
		if ok {
			available = append(available, tc)
		}
	}

	return &Planner{
		available: available,
		flags:     flags,
		log:       log.With().Str("component", "toolplan").Logger(),
	}
}

// AvailableTools returns the names of the tools this planner may suggest.
func (p *Planner) AvailableTools() []string {
	names := make([]string, 0, len(p.available))
	for _, tc := range p.available {
		names = append(names, tc.Name)
	}
	return names
}

// FindBestTools scores each available tool by how many of its BestFor
// keywords appear in the task description, highest first. Ties keep
// registry declaration order; zero-score tools are excluded.
func (p *Planner) FindBestTools(taskDescription string) []contractx.ToolCapability {
	lower := strings.ToLower(taskDescription)

	type scored struct {
		tc    contractx.ToolCapability
		score int
	}
	var ranked []scored
	for _, tc := range p.available {
		score := 0
		for _, kw := range tc.BestFor {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{tc: tc, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]contractx.ToolCapability, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.tc)
	}
	return out
}

// CreatePlan classifies the task into exactly one archetype and instantiates
// that archetype's milestone template. It never returns an empty milestone
// list and always returns ToolsRequired, even if empty.
func (p *Planner) CreatePlan(taskDescription string) contractx.ToolAwarePlan {
	task := strings.TrimSpace(taskDescription)
	name := "exploration"
	for _, a := range archetypes {
		if !a.predicate.MatchString(task) {
			continue
		}
		if a.secondary != nil && !a.secondary.MatchString(task) {
			continue
		}
		name = a.name
		break
	}
	p.log.Debug().Str("archetype", name).Str("task", task).Msg("task classified")

	ranked := p.FindBestTools(task)

	var plan contractx.ToolAwarePlan
	switch name {
	case "codebase_analysis":
		plan = p.codebaseAnalysisPlan(task)
	case "deployment":
		plan = p.deploymentPlan(task)
	case "task_management":
		plan = p.taskManagementPlan(task)
	case "implementation":
		plan = p.implementationPlan(task, ranked)
	default:
		plan = p.explorationPlan(task, ranked)
	}

	plan.ToolsRequired = dedupeMilestoneTools(plan.Milestones)
	plan.DelegationOpportunities = p.delegationOpportunities(task, plan.Milestones)
	return plan
}

func (p *Planner) codebaseAnalysisPlan(task string) contractx.ToolAwarePlan {
	return contractx.ToolAwarePlan{
		ExecutionPlan: contractx.ExecutionPlan{
			TaskSummary:       task,
			Complexity:        contractx.ComplexityExploratory,
			EstimatedEffort:   contractx.EffortSubstantial,
			ExplorationNeeded: true,
			Milestones: []contractx.Milestone{
				{
					ID:             "map",
					Description:    "Map the repository layout and entry points",
					SuggestedTools: p.filter(ToolExecuteBash),
					ToolStrategy:   "use find/ls and read key files before forming opinions",
				},
				{
					ID:             "deps",
					Description:    "Inventory dependencies and integrations",
					SuggestedTools: p.filter(ToolExecuteBash),
					ToolStrategy:   "inspect manifests and lockfiles",
				},
				{
					ID:             "hotspots",
					Description:    "Identify complexity hotspots and missing tests",
					SuggestedTools: p.filter(ToolExecuteBash),
				},
				{
					ID:             "writeup",
					Description:    "Write findings and recommendations",
					SuggestedTools: p.filter(ToolTrelloCreateCard),
					ToolStrategy:   "file a card so the findings are tracked",
				},
			},
		},
	}
}

func (p *Planner) deploymentPlan(task string) contractx.ToolAwarePlan {
	return contractx.ToolAwarePlan{
		ExecutionPlan: contractx.ExecutionPlan{
			TaskSummary:     task,
			Complexity:      contractx.ComplexityComplex,
			EstimatedEffort: contractx.EffortSubstantial,
			Milestones: []contractx.Milestone{
				{
					ID:             "preflight",
					Description:    "Verify server health before touching anything",
					SuggestedTools: p.filter(ToolHetznerServerStatus, ToolExecuteBash),
					ToolStrategy:   "abort early if the target is already unhealthy",
				},
				{
					ID:             "build",
					Description:    "Build and package the release artifact",
					SuggestedTools: p.filter(ToolExecuteBash),
				},
				{
					ID:             "deploy",
					Description:    "Ship the artifact to the target server",
					SuggestedTools: p.filter(ToolDeployToHetzner, ToolExecuteBash),
					ToolStrategy:   "prefer the managed deploy path over raw ssh",
				},
				{
					ID:             "verify",
					Description:    "Confirm the service is healthy after rollout",
					SuggestedTools: p.filter(ToolHetznerServerStatus),
				},
				{
					ID:             "record",
					Description:    "Record the deployment outcome",
					SuggestedTools: p.filter(ToolTrelloAddComment),
				},
			},
		},
	}
}

func (p *Planner) taskManagementPlan(task string) contractx.ToolAwarePlan {
	return contractx.ToolAwarePlan{
		ExecutionPlan: contractx.ExecutionPlan{
			TaskSummary:     task,
			Complexity:      contractx.ComplexitySimple,
			EstimatedEffort: contractx.EffortQuick,
			Milestones: []contractx.Milestone{
				{
					ID:             "resolve",
					Description:    "Resolve which board, card, or item is meant",
					SuggestedTools: p.filter(ToolExecuteBash),
				},
				{
					ID:             "apply",
					Description:    "Create or update the tracking item",
					SuggestedTools: p.filter(ToolTrelloCreateCard, ToolTrelloAddComment),
					ToolStrategy:   "create when nothing exists, comment when it does",
				},
				{
					ID:          "confirm",
					Description: "Confirm the change and link it back to the user",
				},
			},
		},
	}
}

func (p *Planner) implementationPlan(task string, ranked []contractx.ToolCapability) contractx.ToolAwarePlan {
	return contractx.ToolAwarePlan{
		ExecutionPlan: contractx.ExecutionPlan{
			TaskSummary:     task,
			Complexity:      contractx.ComplexityComplex,
			EstimatedEffort: contractx.EffortSubstantial,
			Milestones: []contractx.Milestone{
				{
					ID:             "scope",
					Description:    "Pin down requirements and affected surfaces",
					SuggestedTools: p.filter(ToolExecuteBash),
				},
				{
					ID:             "implement",
					Description:    "Implement the change",
					SuggestedTools: topNames(ranked, 2),
					ToolStrategy:   "hand self-contained work to an agent container when one is available",
					CanDelegate:    p.flags.ClaudeContainers,
				},
				{
					ID:             "test",
					Description:    "Test the change end to end",
					SuggestedTools: p.filter(ToolExecuteBash),
				},
				{
					ID:             "wrapup",
					Description:    "Summarize what changed and what to watch",
					SuggestedTools: p.filter(ToolTrelloAddComment),
				},
			},
		},
	}
}

func (p *Planner) explorationPlan(task string, ranked []contractx.ToolCapability) contractx.ToolAwarePlan {
	return contractx.ToolAwarePlan{
		ExecutionPlan: contractx.ExecutionPlan{
			TaskSummary:       task,
			Complexity:        contractx.ComplexityExploratory,
			EstimatedEffort:   contractx.EffortMedium,
			ExplorationNeeded: true,
			Milestones: []contractx.Milestone{
				{
					ID:             "orient",
					Description:    "Gather context about the request",
					SuggestedTools: p.filter(ToolExecuteBash),
				},
				{
					ID:             "attempt",
					Description:    "Attempt the task with the best-ranked tools",
					SuggestedTools: topNames(ranked, 3),
					ToolStrategy:   "start with the highest-scoring tool and fall back in rank order",
				},
				{
					ID:          "report",
					Description: "Report what was done or what is blocking",
				},
			},
		},
	}
}

// delegationOpportunities collects milestones flagged CanDelegate plus a
// keyword heuristic: an implementation verb combined with a scale qualifier
// suggests the whole task could run in a sub-agent.
func (p *Planner) delegationOpportunities(task string, milestones []contractx.Milestone) []string {
	var out []string
	for _, m := range milestones {
		if m.CanDelegate {
			out = append(out, fmt.Sprintf("milestone %q can be delegated to an autonomous sub-agent", m.ID))
		}
	}
	if implementationVerbs.MatchString(task) && scaleQualifiers.MatchString(task) {
		out = append(out, "full task looks large enough to delegate end to end")
	}
	return out
}

// filter keeps only the named tools that are actually available, preserving
// the given order.
func (p *Planner) filter(names ...string) []string {
	avail := make(map[string]bool, len(p.available))
	for _, tc := range p.available {
		avail[tc.Name] = true
	}
	var out []string
	for _, n := range names {
		if avail[n] {
			out = append(out, n)
		}
	}
	return out
}

func topNames(ranked []contractx.ToolCapability, n int) []string {
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]string, 0, len(ranked))
	for _, tc := range ranked {
		out = append(out, tc.Name)
	}
	return out
}

func dedupeMilestoneTools(milestones []contractx.Milestone) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, m := range milestones {
		for _, t := range m.SuggestedTools {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}
