package toolplan

import contractx "github.com/supakit/agentplan/agent/contract"

// ToolExecuteBash is always available; everything else is gated by an
// integration flag at planner construction.
const (
	ToolExecuteBash         = "execute_bash"
	ToolTrelloCreateCard    = "trello_create_card"
	ToolTrelloAddComment    = "trello_add_comment"
	ToolDeployToHetzner     = "deploy_to_hetzner"
	ToolHetznerServerStatus = "hetzner_server_status"
	ToolClaudeContainerTask = "claude_container_task"
)

// Registry returns the static tool-capability table in declaration order.
// Declaration order is load-bearing: it is the tie-breaker when ranking
// tools by keyword score.
func Registry() []contractx.ToolCapability {
	return []contractx.ToolCapability{
		{
			Name:        ToolExecuteBash,
			Category:    contractx.CategoryExploration,
			Description: "Run a shell command on the agent host",
			BestFor:     []string{"run", "command", "script", "check", "inspect", "list", "file", "log", "grep"},
		},
		{
			Name:        ToolTrelloCreateCard,
			Category:    contractx.CategoryCreation,
			Description: "Create a card on the configured Trello board",
			BestFor:     []string{"trello", "card", "board", "track", "todo", "remind"},
			Requires:    []string{"trello"},
		},
		{
			Name:        ToolTrelloAddComment,
			Category:    contractx.CategoryMonitoring,
			Description: "Add a progress comment to an existing Trello card",
			BestFor:     []string{"trello", "comment", "update", "progress", "note"},
			Requires:    []string{"trello"},
		},
		{
			Name:        ToolDeployToHetzner,
			Category:    contractx.CategoryDeployment,
			Description: "Deploy a container or service to the Hetzner server",
			BestFor:     []string{"deploy", "hetzner", "release", "ship", "container", "server"},
			Requires:    []string{"hetzner"},
		},
		{
			Name:        ToolHetznerServerStatus,
			Category:    contractx.CategoryMonitoring,
			Description: "Check health and resource usage of the Hetzner server",
			BestFor:     []string{"status", "health", "monitor", "uptime", "disk", "memory"},
			Requires:    []string{"hetzner"},
		},
		{
			Name:        ToolClaudeContainerTask,
			Category:    contractx.CategoryDelegation,
			Description: "Hand a self-contained coding task to an autonomous agent container",
			BestFor:     []string{"delegate", "implement", "build", "refactor", "agent", "autonomous"},
			Requires:    []string{"claude_containers"},
		},
	}
}
