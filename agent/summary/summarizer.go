package summary

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/supakit/agentplan/agent/contract"
)

// DefaultKeepRecent is the number of most-recent turns kept verbatim.
const DefaultKeepRecent = 10

const summaryPrompt = `You summarize agent conversation history.

Summarize the topics discussed, decisions made, tasks performed, and any
state the agent should remember. Be concise: a short paragraph, no
formatting, no preamble.`

// Summarizer compresses older conversation turns into one synthetic message
// so the planner/executor prompt stays inside the model's context budget.
// The cache is process-lifetime with no TTL or eviction; the fingerprint is
// a content-slice heuristic, so repeated-prefix histories of the same length
// can collide (a content hash is a drop-in replacement if that matters).
type Summarizer struct {
	completer contractx.Completer

	mu    sync.Mutex
	cache map[string]string

	log zerolog.Logger
}

var _ contractx.Summarizer = (*Summarizer)(nil)

func NewSummarizer(completer contractx.Completer) (*Summarizer, error) {
	if completer == nil {
		return nil, fmt.Errorf("%w: completer is required", contractx.ErrValidation)
	}
	return &Summarizer{
		completer: completer,
		cache:     make(map[string]string),
		log:       log.With().Str("component", "summary").Logger(),
	}, nil
}

// Summarize returns the input unchanged when it fits the window. Otherwise
// it returns [synthetic summary, ...recent verbatim]: the most recent
// keepRecent turns always retain full fidelity. Never fails; on model error
// the summary degrades to a local truncation.
func (s *Summarizer) Summarize(ctx context.Context, messages []contractx.ConversationMessage, keepRecent int) []contractx.ConversationMessage {
	if keepRecent <= 0 {
		keepRecent = DefaultKeepRecent
	}
	if len(messages) <= keepRecent {
		return messages
	}

	old := messages[:len(messages)-keepRecent]
	recent := messages[len(messages)-keepRecent:]

	text := s.summarizeOld(ctx, old)

	out := make([]contractx.ConversationMessage, 0, len(recent)+1)
	out = append(out, contractx.ConversationMessage{
		// Always role=user so downstream consumers need no role-based
		// branching to treat it as background context.
		Role:    contractx.RoleUser,
		Content: fmt.Sprintf("CONVERSATION SUMMARY (%d messages): %s", len(old), text),
	})
	out = append(out, recent...)
	return out
}

func (s *Summarizer) summarizeOld(ctx context.Context, old []contractx.ConversationMessage) string {
	key := fingerprint(old)

	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		s.log.Debug().Str("fingerprint", key).Msg("summary cache hit")
		return cached
	}

	text, err := s.completer.Complete(ctx, summaryPrompt, renderTranscript(old))
	if err != nil || strings.TrimSpace(text) == "" {
		s.log.Warn().Err(err).Int("messages", len(old)).Msg("summarization degraded to local truncation")
		return truncateLocally(old)
	}
	text = strings.TrimSpace(text)

	s.mu.Lock()
	s.cache[key] = text
	s.mu.Unlock()
	return text
}

// fingerprint keys the cache by the first 50 chars of the oldest and newest
// old-window message plus the window length.
func fingerprint(old []contractx.ConversationMessage) string {
	first := head(old[0].Content, 50)
	last := head(old[len(old)-1].Content, 50)
	return fmt.Sprintf("%s|%s|%d", first, last, len(old))
}

func renderTranscript(messages []contractx.ConversationMessage) string {
	var b strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	return b.String()
}

// truncateLocally is the deterministic no-network fallback: each message
// rendered as "role: first-100-chars...".
func truncateLocally(messages []contractx.ConversationMessage) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		content := head(m.Content, 100)
		if len(m.Content) > 100 {
			content += "..."
		}
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, content))
	}
	return strings.Join(lines, "\n")
}

// QuickSummarize is a cheap deterministic preview, independent of the LLM
// and the cache: it extracts one emoji-tagged line per notable message and
// hard-truncates to maxLength.
func QuickSummarize(messages []contractx.ConversationMessage, maxLength int) string {
	var lines []string
	for _, m := range messages {
		lower := strings.ToLower(m.Content)
		switch {
		case strings.Contains(lower, "task complete") || strings.Contains(lower, "completed"):
			lines = append(lines, "✅ "+head(m.Content, 80))
		case strings.Contains(lower, "error") || strings.Contains(lower, "failed"):
			lines = append(lines, "⚠️ "+head(m.Content, 80))
		case strings.Contains(lower, "found") || strings.Contains(lower, "created"):
			lines = append(lines, "📌 "+head(m.Content, 80))
		}
	}
	out := strings.Join(lines, "\n")
	if maxLength > 0 && len(out) > maxLength {
		out = head(out, maxLength) + "..."
	}
	return out
}

// head cuts s to at most n bytes without splitting a multi-byte rune;
// summaries routinely carry emoji and accented text.
func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
