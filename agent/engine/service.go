package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/supakit/agentplan/agent/contract"
	intentx "github.com/supakit/agentplan/agent/intent"
	summaryx "github.com/supakit/agentplan/agent/summary"
	toolplanx "github.com/supakit/agentplan/agent/toolplan"
	trackx "github.com/supakit/agentplan/agent/track"
)

// Config carries the integration flags and the context window size. These
// come from the environment in the real process; tests build them directly.
type Config struct {
	TrelloEnabled           bool `envconfig:"TRELLO_ENABLED" split_words:"true" default:"false"`
	HetznerEnabled          bool `envconfig:"HETZNER_ENABLED" split_words:"true" default:"false"`
	ClaudeContainersEnabled bool `envconfig:"CLAUDE_CONTAINERS_ENABLED" split_words:"true" default:"false"`
	KeepRecentMessages      int  `envconfig:"KEEP_RECENT_MESSAGES" split_words:"true" default:"10"`
}

func (c Config) ToolFlags() toolplanx.Flags {
	return toolplanx.Flags{
		Trello:           c.TrelloEnabled,
		Hetzner:          c.HetznerEnabled,
		ClaudeContainers: c.ClaudeContainersEnabled,
	}
}

// Decision is what the engine hands to the surrounding transport layer for
// one inbound message: either a conversational reply, or the plans plus a
// live tracker for the external executor to drive.
type Decision struct {
	Classification contractx.ClassificationResult
	Reply          string
	Plan           *contractx.ExecutionPlan
	ToolPlan       *contractx.ToolAwarePlan
	Tracker        *trackx.Tracker
}

// Engine is the message front door: classify, then plan, then hand off.
// The tool-invoking executor and the Discord transport live outside it.
type Engine struct {
	classifier *intentx.Classifier
	planner    contractx.Planner
	toolplan   *toolplanx.Planner
	summarizer contractx.Summarizer
	keepRecent int
	log        zerolog.Logger
}

func New(classifier *intentx.Classifier, planner contractx.Planner, tools *toolplanx.Planner, summarizer contractx.Summarizer, cfg Config) (*Engine, error) {
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if planner == nil {
		return nil, errors.New("planner is required")
	}
	if tools == nil {
		tools = toolplanx.New(cfg.ToolFlags())
	}

	keepRecent := cfg.KeepRecentMessages
	if keepRecent <= 0 {
		keepRecent = summaryx.DefaultKeepRecent
	}

	return &Engine{
		classifier: classifier,
		planner:    planner,
		toolplan:   tools,
		summarizer: summarizer,
		keepRecent: keepRecent,
		log:        log.With().Str("component", "engine").Logger(),
	}, nil
}

// HandleMessage classifies one inbound message and, when it is actionable,
// produces the execution plan, the tool-aware plan, and a tracker. The
// never-fail planner contract means this only errors on empty planner
// misuse, never on model failure.
func (e *Engine) HandleMessage(ctx context.Context, text string) (Decision, error) {
	result := e.classifier.Classify(text)
	e.log.Debug().
		Str("intent", string(result.Intent)).
		Str("confidence", string(result.Confidence)).
		Bool("task", result.ShouldExecuteTask).
		Msg("message classified")

	if !result.ShouldExecuteTask {
		return Decision{
			Classification: result,
			Reply:          result.SuggestedResponse,
		}, nil
	}

	task := strings.TrimSpace(text)
	plan, err := e.planner.CreatePlan(ctx, contractx.PlanningContext{
		OriginalTask:   task,
		AvailableTools: e.toolplan.AvailableTools(),
	})
	if err != nil {
		// Shipped planners never reach here; honor the interface anyway.
		return Decision{Classification: result}, err
	}

	toolPlan := e.toolplan.CreatePlan(task)
	tracker := trackx.New(plan)

	e.log.Info().
		Str("plan_id", tracker.ID()).
		Int("milestones", len(plan.Milestones)).
		Str("complexity", string(plan.Complexity)).
		Msg("plan created")

	return Decision{
		Classification: result,
		Plan:           &plan,
		ToolPlan:       &toolPlan,
		Tracker:        tracker,
	}, nil
}

// CompactHistory bounds a conversation to the configured window. Without a
// summarizer wired in it is the identity function.
func (e *Engine) CompactHistory(ctx context.Context, messages []contractx.ConversationMessage) []contractx.ConversationMessage {
	if e.summarizer == nil {
		return messages
	}
	return e.summarizer.Summarize(ctx, messages, e.keepRecent)
}
