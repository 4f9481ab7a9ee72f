package planner

import (
	"testing"

	contractx "github.com/supakit/agentplan/agent/contract"
)

func TestQuickPlanRetrieval(t *testing.T) {
	t.Parallel()

	plan := QuickPlan("list all files in the backup directory")
	if plan == nil {
		t.Fatal("expected a plan")
	}
	if plan.Complexity != contractx.ComplexitySimple {
		t.Fatalf("complexity = %s, want simple", plan.Complexity)
	}
	if len(plan.Milestones) != 2 {
		t.Fatalf("milestones = %d, want 2", len(plan.Milestones))
	}
}

func TestQuickPlanCreation(t *testing.T) {
	t.Parallel()

	plan := QuickPlan("create a reminder for tomorrow")
	if plan == nil {
		t.Fatal("expected a plan")
	}
	if plan.Complexity != contractx.ComplexityModerate {
		t.Fatalf("complexity = %s, want moderate", plan.Complexity)
	}
	if len(plan.Milestones) != 3 {
		t.Fatalf("milestones = %d, want 3", len(plan.Milestones))
	}
}

func TestQuickPlanDeployment(t *testing.T) {
	t.Parallel()

	plan := QuickPlan("deploy the dashboard")
	if plan == nil {
		t.Fatal("expected a plan")
	}
	if plan.Complexity != contractx.ComplexityComplex {
		t.Fatalf("complexity = %s, want complex", plan.Complexity)
	}
	if len(plan.Milestones) != 5 {
		t.Fatalf("milestones = %d, want 5", len(plan.Milestones))
	}
}

func TestQuickPlanCodebaseAnalysis(t *testing.T) {
	t.Parallel()

	plan := QuickPlan("analyze the repo and suggest improvements")
	if plan == nil {
		t.Fatal("expected a plan")
	}
	if plan.Complexity != contractx.ComplexityExploratory {
		t.Fatalf("complexity = %s, want exploratory", plan.Complexity)
	}
	if !plan.ExplorationNeeded {
		t.Fatal("expected ExplorationNeeded")
	}
	if len(plan.Milestones) != 6 {
		t.Fatalf("milestones = %d, want 6", len(plan.Milestones))
	}
}

func TestQuickPlanGenericAnalysis(t *testing.T) {
	t.Parallel()

	plan := QuickPlan("review last month's spending")
	if plan == nil {
		t.Fatal("expected a plan")
	}
	if plan.Complexity != contractx.ComplexityModerate {
		t.Fatalf("complexity = %s, want moderate", plan.Complexity)
	}
	if len(plan.Milestones) != 4 {
		t.Fatalf("milestones = %d, want 4", len(plan.Milestones))
	}
}

func TestQuickPlanNoMatch(t *testing.T) {
	t.Parallel()

	if plan := QuickPlan("write a novel"); plan != nil {
		t.Fatalf("expected nil, got %+v", plan)
	}
}

func TestQuickPlanMilestonesStartPending(t *testing.T) {
	t.Parallel()

	plan := QuickPlan("delete the stale container")
	if plan == nil {
		t.Fatal("expected a plan")
	}
	for _, m := range plan.Milestones {
		if m.Completed {
			t.Fatalf("milestone %q must start pending", m.ID)
		}
		if m.ID == "" || m.Description == "" {
			t.Fatalf("milestone missing id or description: %+v", m)
		}
	}
}
