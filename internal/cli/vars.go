package cli

import (
	"github.com/cloudsteak/dora-mcp-server/internal/config"
	"github.com/cloudsteak/dora-mcp-server/internal/observability"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath string
	Config   *config.Config
	EventLog observability.EventLog
)

// defaultPeriodDays returns the configured deployment-frequency
// measurement period, falling back to 30 when no config was wired.
func defaultPeriodDays() int {
	if Config != nil && Config.DefaultPeriodDays > 0 {
		return Config.DefaultPeriodDays
	}
	return 30
}
