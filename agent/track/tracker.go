package track

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/supakit/agentplan/agent/contract"
)

// Tracker is the milestone state machine for one in-flight ExecutionPlan.
// It is owned exclusively by the execution flow that created it; no
// concurrent mutation is expected or guarded against.
type Tracker struct {
	id         string
	plan       contractx.ExecutionPlan
	milestones []contractx.Milestone
	started    time.Time
	log        zerolog.Logger

	now func() time.Time
}

// Progress is a point-in-time snapshot; Remaining preserves plan order.
type Progress struct {
	Completed  int
	Total      int
	Percentage int
	Remaining  []contractx.Milestone
}

func New(plan contractx.ExecutionPlan) *Tracker {
	id := uuid.NewString()
	milestones := append([]contractx.Milestone(nil), plan.Milestones...)
	return &Tracker{
		id:         id,
		plan:       plan,
		milestones: milestones,
		started:    time.Now(),
		log:        log.With().Str("component", "track").Str("plan_id", id).Logger(),
		now:        time.Now,
	}
}

func (t *Tracker) ID() string { return t.id }

// Plan returns the plan as handed in at construction, without completion
// state; Milestones carries the live state.
func (t *Tracker) Plan() contractx.ExecutionPlan { return t.plan }

func (t *Tracker) Milestones() []contractx.Milestone {
	return append([]contractx.Milestone(nil), t.milestones...)
}

// CompleteMilestone transitions a milestone pending -> completed. It is
// idempotent for already-completed ids and returns false, with no state
// change, for unknown ids.
func (t *Tracker) CompleteMilestone(id string) bool {
	for i := range t.milestones {
		if t.milestones[i].ID != id {
			continue
		}
		if !t.milestones[i].Completed {
			t.milestones[i].Completed = true
			t.log.Debug().Str("milestone", id).Msg("milestone completed")
		}
		return true
	}
	t.log.Warn().Str("milestone", id).Msg("unknown milestone id")
	return false
}

// NextMilestone returns the first pending milestone in plan order, nil when
// the plan is complete. Plan order is dependency order, not priority.
func (t *Tracker) NextMilestone() *contractx.Milestone {
	for i := range t.milestones {
		if !t.milestones[i].Completed {
			m := t.milestones[i]
			return &m
		}
	}
	return nil
}

func (t *Tracker) Progress() Progress {
	completed := 0
	var remaining []contractx.Milestone
	for _, m := range t.milestones {
		if m.Completed {
			completed++
		} else {
			remaining = append(remaining, m)
		}
	}
	total := len(t.milestones)
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return Progress{
		Completed:  completed,
		Total:      total,
		Percentage: pct,
		Remaining:  remaining,
	}
}

func (t *Tracker) IsComplete() bool {
	for _, m := range t.milestones {
		if !m.Completed {
			return false
		}
	}
	return true
}

// ProgressString renders a one-line human-readable status. Elapsed time is
// derived only; it never affects state transitions.
func (t *Tracker) ProgressString() string {
	p := t.Progress()
	elapsed := int(t.now().Sub(t.started).Seconds())
	return fmt.Sprintf("%d/%d milestones (%d%%), %ds elapsed", p.Completed, p.Total, p.Percentage, elapsed)
}

// DetailedStatus renders a checklist view of the plan.
func (t *Tracker) DetailedStatus() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — %s\n", t.plan.TaskSummary, t.ProgressString())
	for _, m := range t.milestones {
		mark := " "
		if m.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s\n", mark, m.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
