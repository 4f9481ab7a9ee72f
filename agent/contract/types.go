package contract

import "time"

type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentFarewell      Intent = "farewell"
	IntentGratitude     Intent = "gratitude"
	IntentAffirmation   Intent = "affirmation"
	IntentNegation      Intent = "negation"
	IntentSmallTalk     Intent = "small_talk"
	IntentAgentQuestion Intent = "agent_question"
	IntentClarification Intent = "clarification"
	IntentTask          Intent = "task"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ClassificationResult is produced fresh per inbound message and never persisted.
type ClassificationResult struct {
	Intent            Intent     `json:"intent"`
	Confidence        Confidence `json:"confidence"`
	ShouldExecuteTask bool       `json:"should_execute_task"`
	SuggestedResponse string     `json:"suggested_response,omitempty"`
	Reasoning         string     `json:"reasoning"`
}

type Complexity string

const (
	ComplexitySimple      Complexity = "simple"
	ComplexityModerate    Complexity = "moderate"
	ComplexityComplex     Complexity = "complex"
	ComplexityExploratory Complexity = "exploratory"
)

type Effort string

const (
	EffortQuick       Effort = "quick"
	EffortMedium      Effort = "medium"
	EffortSubstantial Effort = "substantial"
)

// Milestone is a single verifiable unit of work. Completed is monotonic:
// it only ever moves false -> true. The tool fields are populated by the
// tool-aware planner and stay empty on plain execution plans.
type Milestone struct {
	ID             string   `json:"id"`
	Description    string   `json:"description"`
	Completed      bool     `json:"completed"`
	SuggestedTools []string `json:"suggestedTools,omitempty"`
	ToolStrategy   string   `json:"toolStrategy,omitempty"`
	CanDelegate    bool     `json:"canDelegate,omitempty"`
}

// ExecutionPlan is created once per task invocation and owned exclusively
// by the caller that requested it. Milestone order is execution order,
// not a priority queue, and the list is never empty in a returned plan.
type ExecutionPlan struct {
	TaskSummary       string      `json:"taskSummary"`
	Complexity        Complexity  `json:"complexity"`
	EstimatedEffort   Effort      `json:"estimatedEffort"`
	ExplorationNeeded bool        `json:"explorationNeeded"`
	Milestones        []Milestone `json:"milestones"`
}

// ToolAwarePlan is an ExecutionPlan annotated with routing and delegation
// guidance for the external executor.
type ToolAwarePlan struct {
	ExecutionPlan
	ToolsRequired           []string `json:"toolsRequired"`
	DelegationOpportunities []string `json:"delegationOpportunities,omitempty"`
}

type ToolCategory string

const (
	CategoryExploration  ToolCategory = "exploration"
	CategoryCreation     ToolCategory = "creation"
	CategoryModification ToolCategory = "modification"
	CategoryDeployment   ToolCategory = "deployment"
	CategoryMonitoring   ToolCategory = "monitoring"
	CategoryDelegation   ToolCategory = "delegation"
)

// ToolCapability declares one integration action. BestFor keywords are
// matched against the task text (lower-cased substring match) when ranking.
type ToolCapability struct {
	Name        string       `json:"name"`
	Category    ToolCategory `json:"category"`
	Description string       `json:"description"`
	BestFor     []string     `json:"best_for"`
	Requires    []string     `json:"requires,omitempty"`
}

// PlanningContext is input only; planners do not retain it.
type PlanningContext struct {
	OriginalTask        string   `json:"original_task"`
	ExplorationFindings string   `json:"exploration_findings,omitempty"`
	AvailableTools      []string `json:"available_tools,omitempty"`
	Constraints         []string `json:"constraints,omitempty"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ConversationMessage struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
