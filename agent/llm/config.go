package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/supakit/agentplan/agent/contract"
	openrouterx "github.com/supakit/agentplan/pkg/openrouter"
)

// Role selects per-purpose model overrides. Planning wants a stronger
// model than summarization; both fall back to the default.
type Role string

const (
	RolePlanner    Role = "planner"
	RoleSummarizer Role = "summarizer"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.3"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`

	PlannerModel          string  `envconfig:"PLANNER_MODEL" split_words:"true"`
	SummarizerModel       string  `envconfig:"SUMMARIZER_MODEL" split_words:"true"`
	PlannerTemperature    float32 `envconfig:"PLANNER_TEMPERATURE" split_words:"true" default:"-1"`
	SummarizerTemperature float32 `envconfig:"SUMMARIZER_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the effective client config for a role.
func (c Config) OpenRouterFor(role Role) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch role {
	case RolePlanner:
		if v := strings.TrimSpace(c.PlannerModel); v != "" {
			modelName = v
		}
		if c.PlannerTemperature >= 0 {
			temp = c.PlannerTemperature
		}
	case RoleSummarizer:
		if v := strings.TrimSpace(c.SummarizerModel); v != "" {
			modelName = v
		}
		if c.SummarizerTemperature >= 0 {
			temp = c.SummarizerTemperature
		}
	}

	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: c.MaxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
	}
}
