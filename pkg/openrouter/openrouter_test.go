package openrouter

import (
	"errors"
	"testing"

	openaisdk "github.com/openai/openai-go"

	contractx "github.com/supakit/agentplan/agent/contract"
)

func TestNewClientValidates(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{Model: "some/model"}); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient(Config{APIKey: "key"}); err == nil {
		t.Fatal("expected error for missing model")
	}
	if _, err := NewClient(Config{APIKey: "key", Model: "some/model"}); err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
}

func TestFirstChoiceContent(t *testing.T) {
	t.Parallel()

	got, err := firstChoiceContent(&openaisdk.ChatCompletion{
		Choices: []openaisdk.ChatCompletionChoice{
			{Message: openaisdk.ChatCompletionMessage{Content: "plan text"}},
		},
	})
	if err != nil {
		t.Fatalf("firstChoiceContent() error = %v", err)
	}
	if got != "plan text" {
		t.Fatalf("content = %q, want plan text", got)
	}
}

func TestFirstChoiceContentEmpty(t *testing.T) {
	t.Parallel()

	if _, err := firstChoiceContent(&openaisdk.ChatCompletion{}); !errors.Is(err, contractx.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
	if _, err := firstChoiceContent(nil); !errors.Is(err, contractx.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse for nil response, got %v", err)
	}
}
