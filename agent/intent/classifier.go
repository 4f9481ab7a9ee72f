package intent

import (
	"fmt"
	"regexp"
	"strings"

	contractx "github.com/supakit/agentplan/agent/contract"
)

// Classifier gates whether an inbound message needs task execution at all,
// so conversational chatter never reaches the LLM planner. Classification
// is total: every string input, including empty, yields a result.
type Classifier struct {
	rules []rule
}

// rule maps a pattern set to one intent. Rules are evaluated in declared
// order and the first matching rule wins; the order resolves deliberate
// overlaps (a negation-shaped message must not fall through to
// clarification).
type rule struct {
	intent   contractx.Intent
	patterns []*regexp.Regexp
	respond  string
}

func NewClassifier() *Classifier {
	return &Classifier{rules: conversationalRules()}
}

func conversationalRules() []rule {
	return []rule{
		{
			intent: contractx.IntentGreeting,
			patterns: compile(
				`^(hi|hiya|hello|hey|yo|sup|howdy|greetings)\b`,
				`^good (morning|afternoon|evening)\b`,
			),
			respond: "Hey! What can I help you with?",
		},
		{
			intent: contractx.IntentFarewell,
			patterns: compile(
				`^(bye|goodbye|cya|see (ya|you)( later)?|later|good night)\b`,
				`^(i('m| am) (off|heading out|done for today))\b`,
			),
			respond: "See you later!",
		},
		{
			intent: contractx.IntentGratitude,
			patterns: compile(
				`^(thanks|thank you|thankyou|thx|ty|cheers|much appreciated|appreciate (it|that))\b`,
			),
			respond: "You're welcome!",
		},
		{
			intent: contractx.IntentAffirmation,
			patterns: compile(
				`^(yes|yep|yeah|yup|ok|okay|sure|sounds good|go ahead|do it|confirmed?|correct|exactly|perfect|great)[.!]*$`,
			),
			respond: "Got it.",
		},
		{
			intent: contractx.IntentNegation,
			patterns: compile(
				`^(no|nope|nah|negative|never ?mind|forget it|stop|cancel|abort|don'?t)[.!]*$`,
				`^(no,? (don'?t|stop|wait|cancel))\b`,
			),
			respond: "Okay, I won't.",
		},
		{
			intent: contractx.IntentSmallTalk,
			patterns: compile(
				`^(how are you|how'?s it going|what'?s up|wassup|how do you feel)\b`,
				`^(lol|haha|lmao|nice|cool|wow)[.!]*$`,
			),
			respond: "All good here. Anything you need done?",
		},
		{
			intent: contractx.IntentAgentQuestion,
			patterns: compile(
				`\b(who|what) are you\b`,
				`\bwhat can you do\b`,
				`\b(are you (a bot|an? ai|real|human|sentient))\b`,
				`\byour (name|capabilities|model)\b`,
			),
			respond: "I'm an autonomous assistant: I can plan tasks, run them, and report progress.",
		},
		{
			intent: contractx.IntentClarification,
			patterns: compile(
				`^(what|huh|eh|hm+|why|how come)\??$`,
				`\bwhat do you mean\b`,
				`\bi don'?t (understand|get it)\b`,
				`\bcan you (explain|clarify|elaborate)\b`,
			),
			respond: "Could you give me a bit more detail about what you need?",
		},
	}
}

// taskIndicators are action verbs and domain nouns whose presence marks a
// message as actionable. Matched as lower-cased substrings.
var taskIndicators = []string{
	"create", "add", "make", "build", "deploy", "delete", "remove", "update",
	"fix", "check", "run", "list", "show", "get", "fetch", "find", "search",
	"analyze", "analyse", "review", "install", "restart", "send", "write",
	"implement", "refactor", "test", "configure", "migrate", "schedule",
	"server", "database", "file", "code", "repo", "task", "card", "budget",
	"transaction", "container", "deployment", "branch", "backup", "log",
}

// Classify resolves a message to exactly one of the nine intents. It is a
// pure function with no side effects.
func (c *Classifier) Classify(message string) contractx.ClassificationResult {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return contractx.ClassificationResult{
			Intent:            contractx.IntentClarification,
			Confidence:        contractx.ConfidenceHigh,
			ShouldExecuteTask: false,
			SuggestedResponse: "I didn't catch that. What would you like me to do?",
			Reasoning:         "empty or whitespace-only message",
		}
	}

	lower := strings.ToLower(trimmed)

	for _, r := range c.rules {
		for _, re := range r.patterns {
			if re.MatchString(lower) {
				return contractx.ClassificationResult{
					Intent:            r.intent,
					Confidence:        contractx.ConfidenceHigh,
					ShouldExecuteTask: false,
					SuggestedResponse: r.respond,
					Reasoning:         fmt.Sprintf("matched %s pattern", r.intent),
				}
			}
		}
	}

	hasIndicator := false
	for _, kw := range taskIndicators {
		if strings.Contains(lower, kw) {
			hasIndicator = true
			break
		}
	}

	if len(strings.Fields(trimmed)) <= 3 && !hasIndicator {
		return contractx.ClassificationResult{
			Intent:            contractx.IntentClarification,
			Confidence:        contractx.ConfidenceMedium,
			ShouldExecuteTask: false,
			SuggestedResponse: "Could you tell me more about what you'd like me to do?",
			Reasoning:         "short message with no task indicators",
		}
	}

	confidence := contractx.ConfidenceMedium
	reasoning := "no conversational pattern matched"
	if hasIndicator {
		confidence = contractx.ConfidenceHigh
		reasoning = "contains task indicator keywords"
	}

	return contractx.ClassificationResult{
		Intent:            contractx.IntentTask,
		Confidence:        confidence,
		ShouldExecuteTask: true,
		Reasoning:         reasoning,
	}
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}
