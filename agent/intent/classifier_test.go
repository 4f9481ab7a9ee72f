package intent

import (
	"testing"

	contractx "github.com/supakit/agentplan/agent/contract"
)

func TestClassifyConversational(t *testing.T) {
	t.Parallel()

	c := NewClassifier()

	cases := []struct {
		message string
		intent  contractx.Intent
	}{
		{"hello", contractx.IntentGreeting},
		{"Hey there", contractx.IntentGreeting},
		{"good morning!", contractx.IntentGreeting},
		{"bye", contractx.IntentFarewell},
		{"see you later", contractx.IntentFarewell},
		{"thanks!", contractx.IntentGratitude},
		{"thank you so much", contractx.IntentGratitude},
		{"yes", contractx.IntentAffirmation},
		{"sounds good", contractx.IntentAffirmation},
		{"no", contractx.IntentNegation},
		{"never mind", contractx.IntentNegation},
		{"how are you?", contractx.IntentSmallTalk},
		{"what can you do?", contractx.IntentAgentQuestion},
		{"are you a bot?", contractx.IntentAgentQuestion},
		{"what do you mean?", contractx.IntentClarification},
	}

	for _, tc := range cases {
		got := c.Classify(tc.message)
		if got.Intent != tc.intent {
			t.Errorf("Classify(%q) intent = %s, want %s", tc.message, got.Intent, tc.intent)
		}
		if got.ShouldExecuteTask {
			t.Errorf("Classify(%q) should not execute a task", tc.message)
		}
		if got.Confidence != contractx.ConfidenceHigh {
			t.Errorf("Classify(%q) confidence = %s, want high", tc.message, got.Confidence)
		}
		if got.SuggestedResponse == "" {
			t.Errorf("Classify(%q) expected a suggested response", tc.message)
		}
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	t.Parallel()

	c := NewClassifier()

	for _, message := range []string{"", "   ", "\n\t"} {
		got := c.Classify(message)
		if got.Intent != contractx.IntentClarification {
			t.Fatalf("Classify(%q) intent = %s, want clarification", message, got.Intent)
		}
		if got.Confidence != contractx.ConfidenceHigh {
			t.Fatalf("Classify(%q) confidence = %s, want high", message, got.Confidence)
		}
		if got.ShouldExecuteTask {
			t.Fatalf("Classify(%q) must not execute a task", message)
		}
	}
}

func TestClassifyTaskWithIndicator(t *testing.T) {
	t.Parallel()

	c := NewClassifier()

	got := c.Classify("deploy the api to the production server")
	if got.Intent != contractx.IntentTask {
		t.Fatalf("intent = %s, want task", got.Intent)
	}
	if got.Confidence != contractx.ConfidenceHigh {
		t.Fatalf("confidence = %s, want high", got.Confidence)
	}
	if !got.ShouldExecuteTask {
		t.Fatal("expected ShouldExecuteTask")
	}
}

func TestClassifyTaskWithoutIndicator(t *testing.T) {
	t.Parallel()

	c := NewClassifier()

	got := c.Classify("please summarize yesterday's long planning discussion for everyone")
	if got.Intent != contractx.IntentTask {
		t.Fatalf("intent = %s, want task", got.Intent)
	}
	if got.Confidence != contractx.ConfidenceMedium {
		t.Fatalf("confidence = %s, want medium", got.Confidence)
	}
}

func TestClassifyShortAmbiguousMessage(t *testing.T) {
	t.Parallel()

	c := NewClassifier()

	got := c.Classify("banana sunset maybe")
	if got.Intent != contractx.IntentClarification {
		t.Fatalf("intent = %s, want clarification", got.Intent)
	}
	if got.Confidence != contractx.ConfidenceMedium {
		t.Fatalf("confidence = %s, want medium", got.Confidence)
	}
	if got.ShouldExecuteTask {
		t.Fatal("short ambiguous message must not execute a task")
	}
}

func TestClassifyNegationBeatsClarification(t *testing.T) {
	t.Parallel()

	// "no" is short and indicator-free; the negation rule must win before
	// the short-message clarification fallback runs.
	got := NewClassifier().Classify("no")
	if got.Intent != contractx.IntentNegation {
		t.Fatalf("intent = %s, want negation", got.Intent)
	}
}
