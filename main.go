package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	enginex "github.com/supakit/agentplan/agent/engine"
	intentx "github.com/supakit/agentplan/agent/intent"
	llmx "github.com/supakit/agentplan/agent/llm"
	plannerx "github.com/supakit/agentplan/agent/planner"
	summaryx "github.com/supakit/agentplan/agent/summary"
	toolplanx "github.com/supakit/agentplan/agent/toolplan"
	configx "github.com/supakit/agentplan/pkg/config"
	logx "github.com/supakit/agentplan/pkg/logger"
	openrouterx "github.com/supakit/agentplan/pkg/openrouter"
)

func main() {
	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		panic(err)
	}

	plannerClient := openrouterx.MustNew(llmCfg.OpenRouterFor(llmx.RolePlanner))
	summarizerClient := openrouterx.MustNew(llmCfg.OpenRouterFor(llmx.RoleSummarizer))

	planSvc, err := plannerx.NewService(plannerClient)
	if err != nil {
		panic(err)
	}
	summarizer, err := summaryx.NewSummarizer(summarizerClient)
	if err != nil {
		panic(err)
	}

	engineCfg := configx.MustNew[enginex.Config]("AGENT")
	eng, err := enginex.New(
		intentx.NewClassifier(),
		planSvc,
		toolplanx.New(engineCfg.ToolFlags()),
		summarizer,
		*engineCfg,
	)
	if err != nil {
		panic(err)
	}

	message := strings.Join(os.Args[1:], " ")
	if strings.TrimSpace(message) == "" {
		message = "analyze the codebase and suggest improvements"
	}

	decision, err := eng.HandleMessage(context.Background(), message)
	if err != nil {
		panic(err)
	}

	fmt.Printf("intent: %s (%s)\n", decision.Classification.Intent, decision.Classification.Confidence)
	if decision.Plan == nil {
		fmt.Printf("reply: %s\n", decision.Reply)
		return
	}

	fmt.Println(decision.Tracker.DetailedStatus())
	fmt.Printf("tools required: %s\n", strings.Join(decision.ToolPlan.ToolsRequired, ", "))
	for _, opp := range decision.ToolPlan.DelegationOpportunities {
		fmt.Printf("delegation: %s\n", opp)
	}
	if next := decision.Tracker.NextMilestone(); next != nil {
		fmt.Printf("next: %s\n", next.Description)
	}
}
