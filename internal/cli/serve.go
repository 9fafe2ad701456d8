package cli

import (
	"context"
	"os"
	"os/signal"

	doramcp "github.com/cloudsteak/dora-mcp-server/internal/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the DORA metrics MCP server on stdio",
	Long: `Start the MCP (Model Context Protocol) server on stdio transport.

The server exposes the DORA calculators as tools that remote callers can
discover and invoke: get_deployment_frequency, get_lead_time_for_changes,
get_change_failure_rate, get_mean_time_to_recovery, get_dora_summary.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "dora-metrics"
		if Config != nil && Config.ServerName != "" {
			name = Config.ServerName
		}

		opts := []doramcp.Option{
			doramcp.WithDefaultPeriodDays(defaultPeriodDays()),
		}
		if EventLog != nil {
			opts = append(opts, doramcp.WithEventLog(EventLog))
		}

		srv := doramcp.NewServer(name, appVersion, opts...)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
