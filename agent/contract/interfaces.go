package contract

import "context"

// Completer is the single LLM boundary: one chat completion per call.
// Implementations decide model, temperature, and timeout; callers decide
// what to do when the call fails.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Planner turns a planning context into an execution plan. The shipped
// implementations never return a non-nil error: every failure path resolves
// to a structurally valid fallback plan. The error is part of the contract
// so alternative implementations can opt out of that guarantee.
type Planner interface {
	CreatePlan(ctx context.Context, pc PlanningContext) (ExecutionPlan, error)
}

// Summarizer compacts a conversation into a bounded window.
type Summarizer interface {
	Summarize(ctx context.Context, messages []ConversationMessage, keepRecent int) []ConversationMessage
}
