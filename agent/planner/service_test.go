package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/supakit/agentplan/agent/contract"
)

type fakeCompleter struct {
	resp  string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.resp, nil
}

func TestCreatePlanQuickFastPath(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{err: errors.New("must not be called")}
	svc, err := NewService(completer)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	plan, err := svc.CreatePlan(context.Background(), contractx.PlanningContext{
		OriginalTask: "list open tasks",
	})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	if plan.Complexity != contractx.ComplexitySimple {
		t.Fatalf("complexity = %s, want simple", plan.Complexity)
	}
	if completer.calls != 0 {
		t.Fatalf("completer calls = %d, want 0", completer.calls)
	}
}

func TestCreatePlanFallbackOnModelError(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&fakeCompleter{err: errors.New("network down")})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	plan, err := svc.CreatePlan(context.Background(), contractx.PlanningContext{
		OriginalTask: "figure out why the scheduler drifts",
	})
	if err != nil {
		t.Fatalf("CreatePlan() must never fail, got %v", err)
	}
	if len(plan.Milestones) != 5 {
		t.Fatalf("fallback milestones = %d, want 5", len(plan.Milestones))
	}
	if plan.Complexity != contractx.ComplexityExploratory {
		t.Fatalf("fallback complexity = %s, want exploratory", plan.Complexity)
	}
	if plan.EstimatedEffort != contractx.EffortSubstantial {
		t.Fatalf("fallback effort = %s, want substantial", plan.EstimatedEffort)
	}
	if plan.Milestones[0].ID != "understand" || plan.Milestones[4].ID != "report" {
		t.Fatalf("unexpected fallback milestone order: %+v", plan.Milestones)
	}
}

func TestCreatePlanFallbackOnMissingJSON(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&fakeCompleter{resp: "I cannot produce a plan right now."})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	plan, err := svc.CreatePlan(context.Background(), contractx.PlanningContext{
		OriginalTask: "investigate the flaky webhook",
	})
	if err != nil {
		t.Fatalf("CreatePlan() must never fail, got %v", err)
	}
	if len(plan.Milestones) != 5 {
		t.Fatalf("expected the fallback plan, got %d milestones", len(plan.Milestones))
	}
}

func TestCreatePlanParsesEmbeddedJSON(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{
		resp: `Sure, here is the plan:
{"taskSummary": "tune cache", "complexity": "moderate", "estimatedEffort": "medium", "explorationNeeded": false, "milestones": [
  {"id": "measure", "description": "Measure current hit rate", "completed": false},
  {"id": "tune", "description": "Adjust cache sizing", "completed": false},
  {"id": "verify", "description": "Verify improvement", "completed": false}
]}
Let me know if you need anything else.`,
	}
	svc, err := NewService(completer)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	plan, err := svc.CreatePlan(context.Background(), contractx.PlanningContext{
		OriginalTask: "investigate cache hit rate and tune it",
	})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	if completer.calls != 1 {
		t.Fatalf("completer calls = %d, want 1", completer.calls)
	}
	if plan.TaskSummary != "tune cache" {
		t.Fatalf("taskSummary = %q", plan.TaskSummary)
	}
	if plan.Complexity != contractx.ComplexityModerate {
		t.Fatalf("complexity = %s, want moderate", plan.Complexity)
	}
	if len(plan.Milestones) != 3 {
		t.Fatalf("milestones = %d, want 3", len(plan.Milestones))
	}
	if plan.Milestones[1].ID != "tune" {
		t.Fatalf("milestone order lost: %+v", plan.Milestones)
	}
}

func TestCreatePlanEscalatesExploratoryQuickPlan(t *testing.T) {
	t.Parallel()

	// "analyze the codebase" has a quick template, but it is exploratory, so
	// the model still gets consulted.
	completer := &fakeCompleter{
		resp: `{"taskSummary": "codebase analysis", "complexity": "exploratory", "estimatedEffort": "substantial", "explorationNeeded": true, "milestones": [
  {"id": "scan", "description": "Scan the tree", "completed": false},
  {"id": "report", "description": "Report findings", "completed": false},
  {"id": "follow_up", "description": "Propose follow-ups", "completed": false}
]}`,
	}
	svc, err := NewService(completer)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	plan, err := svc.CreatePlan(context.Background(), contractx.PlanningContext{
		OriginalTask: "analyze the codebase for dead code",
	})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	if completer.calls != 1 {
		t.Fatalf("completer calls = %d, want 1", completer.calls)
	}
	if len(plan.Milestones) != 3 {
		t.Fatalf("expected the model plan, got %d milestones", len(plan.Milestones))
	}
}

func TestParsePlanNormalizesUnknownEnums(t *testing.T) {
	t.Parallel()

	plan, err := parsePlan(`{"taskSummary": "x", "complexity": "insane", "estimatedEffort": "heroic", "milestones": [
  {"id": "a", "description": "do a"},
  {"description": "do b"}
]}`)
	if err != nil {
		t.Fatalf("parsePlan() error = %v", err)
	}
	if plan.Complexity != contractx.ComplexityExploratory {
		t.Fatalf("complexity = %s, want exploratory", plan.Complexity)
	}
	if plan.EstimatedEffort != contractx.EffortSubstantial {
		t.Fatalf("effort = %s, want substantial", plan.EstimatedEffort)
	}
	if plan.Milestones[1].ID == "" {
		t.Fatal("expected a synthesized id for the second milestone")
	}
	if !strings.HasPrefix(plan.Milestones[1].ID, "step_") {
		t.Fatalf("unexpected synthesized id %q", plan.Milestones[1].ID)
	}
}

func TestNewServiceRequiresCompleter(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
