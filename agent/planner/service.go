package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/supakit/agentplan/agent/contract"
)

const systemPrompt = `You are a task planning assistant for an autonomous agent.

Given a task, produce a structured execution plan.

Vocabulary (closed sets, use exactly these values):
- complexity: "simple" | "moderate" | "complex" | "exploratory"
- estimatedEffort: "quick" | "medium" | "substantial"

Rules:
- 3 to 8 milestones, ordered by execution/dependency order.
- Each milestone has a short stable id (lowercase, no spaces), a one-sentence description, and "completed": false.
- Set explorationNeeded to true only when the task requires investigating unknown territory first.

Respond with ONLY this JSON object and nothing else:
{"taskSummary": "...", "complexity": "...", "estimatedEffort": "...", "explorationNeeded": false, "milestones": [{"id": "...", "description": "...", "completed": false}]}`

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Service is the AI execution planner. It tries the quick planner first and
// escalates to a single LLM call for exploratory or unmatched tasks. It
// never fails: every error path resolves to the generic fallback plan.
type Service struct {
	completer contractx.Completer
	log       zerolog.Logger
}

var _ contractx.Planner = (*Service)(nil)

func NewService(completer contractx.Completer) (*Service, error) {
	if completer == nil {
		return nil, fmt.Errorf("%w: completer is required", contractx.ErrValidation)
	}
	return &Service{
		completer: completer,
		log:       log.With().Str("component", "planner").Logger(),
	}, nil
}

// CreatePlan suspends on at most one outbound network call. A single
// attempt, no retries; retries are the caller's responsibility.
func (s *Service) CreatePlan(ctx context.Context, pc contractx.PlanningContext) (contractx.ExecutionPlan, error) {
	task := strings.TrimSpace(pc.OriginalTask)

	// Escalate only when the quick plan is nil OR exploratory. Exploratory
	// quick plans still go to the model because the canned milestones are a
	// guess at best for open-ended work.
	if quick := QuickPlan(task); quick != nil && quick.Complexity != contractx.ComplexityExploratory {
		s.log.Debug().Str("task", task).Str("complexity", string(quick.Complexity)).Msg("quick plan hit")
		return *quick, nil
	}

	plan, err := s.planWithModel(ctx, pc)
	if err != nil {
		s.log.Warn().Err(err).Str("task", task).Msg("planning degraded to fallback plan")
		return FallbackPlan(task), nil
	}
	return plan, nil
}

func (s *Service) planWithModel(ctx context.Context, pc contractx.PlanningContext) (contractx.ExecutionPlan, error) {
	raw, err := s.completer.Complete(ctx, systemPrompt, buildUserPrompt(pc))
	if err != nil {
		return contractx.ExecutionPlan{}, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}

	plan, err := parsePlan(raw)
	if err != nil {
		return contractx.ExecutionPlan{}, err
	}

	if strings.TrimSpace(plan.TaskSummary) == "" {
		plan.TaskSummary = strings.TrimSpace(pc.OriginalTask)
	}
	return plan, nil
}

func buildUserPrompt(pc contractx.PlanningContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n", strings.TrimSpace(pc.OriginalTask))
	if pc.ExplorationFindings != "" {
		fmt.Fprintf(&b, "\nFindings so far:\n%s\n", pc.ExplorationFindings)
	}
	if len(pc.AvailableTools) > 0 {
		fmt.Fprintf(&b, "\nAvailable tools: %s\n", strings.Join(pc.AvailableTools, ", "))
	}
	if len(pc.Constraints) > 0 {
		fmt.Fprintf(&b, "\nConstraints:\n- %s\n", strings.Join(pc.Constraints, "\n- "))
	}
	return b.String()
}

// parsePlan extracts the first greedy {...} match from the raw response and
// decodes it. Out-of-vocabulary enum values are normalized rather than
// rejected: the model's plan is advisory, not authoritative.
func parsePlan(raw string) (contractx.ExecutionPlan, error) {
	match := jsonObjectPattern.FindString(raw)
	if match == "" {
		return contractx.ExecutionPlan{}, fmt.Errorf("%w: no JSON object in response", contractx.ErrSchemaViolation)
	}

	var plan contractx.ExecutionPlan
	if err := json.Unmarshal([]byte(match), &plan); err != nil {
		return contractx.ExecutionPlan{}, fmt.Errorf("%w: %v", contractx.ErrSchemaViolation, err)
	}

	milestones := plan.Milestones[:0]
	for i, m := range plan.Milestones {
		if strings.TrimSpace(m.Description) == "" {
			continue
		}
		if strings.TrimSpace(m.ID) == "" {
			m.ID = fmt.Sprintf("step_%d", i+1)
		}
		m.Completed = false
		milestones = append(milestones, m)
	}
	plan.Milestones = milestones
	if len(plan.Milestones) == 0 {
		return contractx.ExecutionPlan{}, errors.New("plan has no usable milestones")
	}

	switch plan.Complexity {
	case contractx.ComplexitySimple, contractx.ComplexityModerate, contractx.ComplexityComplex, contractx.ComplexityExploratory:
	default:
		plan.Complexity = contractx.ComplexityExploratory
	}
	switch plan.EstimatedEffort {
	case contractx.EffortQuick, contractx.EffortMedium, contractx.EffortSubstantial:
	default:
		plan.EstimatedEffort = contractx.EffortSubstantial
	}

	return plan, nil
}

// FallbackPlan is the statically computable plan used whenever the model
// path fails. It shares the shape of every happy-path plan.
func FallbackPlan(task string) contractx.ExecutionPlan {
	return contractx.ExecutionPlan{
		TaskSummary:       task,
		Complexity:        contractx.ComplexityExploratory,
		EstimatedEffort:   contractx.EffortSubstantial,
		ExplorationNeeded: true,
		Milestones: []contractx.Milestone{
			{ID: "understand", Description: "Understand the task and its context"},
			{ID: "explore", Description: "Explore the environment and gather information"},
			{ID: "execute", Description: "Execute the main work"},
			{ID: "verify", Description: "Verify the outcome"},
			{ID: "report", Description: "Report results"},
		},
	}
}
