package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloudsteak/dora-mcp-server/internal/observability"
)

var (
	eventsJSON    bool
	eventsSince   string
	eventsTool    string
	eventsOutcome string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the tool-invocation audit log",
	Long: `Display events from the JSONL audit log written by the MCP server:
which tools were called, when, and with what outcome.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event log not initialized (events may be disabled in .doraconfig)")
		}

		sinceTime, err := parseSinceDuration(eventsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		events, err := EventLog.Read(observability.EventFilter{
			Since:   &sinceTime,
			Tool:    eventsTool,
			Outcome: eventsOutcome,
		})
		if err != nil {
			return fmt.Errorf("reading events: %w", err)
		}

		if eventsJSON {
			return emitJSON(events)
		}

		if len(events) == 0 {
			fmt.Println("No events recorded in the selected window.")
			return nil
		}

		fmt.Printf("Events since %s\n\n", sinceTime.Format("2006-01-02 15:04"))
		for _, e := range events {
			line := fmt.Sprintf("  %s  %-28s %s", e.Time.Format(time.RFC3339), e.Tool, e.Outcome)
			if e.Message != "" {
				line += "  " + e.Message
			}
			fmt.Println(line)
		}
		fmt.Printf("\n  Total: %d event(s)\n", len(events))
		return nil
	},
}

// parseSinceDuration parses a human-friendly duration string like "7d",
// "30d", or "24h" and returns the corresponding time in the past.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now().UTC()
	s = strings.TrimSpace(s)
	if s == "" {
		return now.AddDate(0, 0, -7), nil
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day duration %q", s)
		}
		return now.AddDate(0, 0, -days), nil
	}

	if strings.HasSuffix(s, "h") {
		hours, err := strconv.Atoi(strings.TrimSuffix(s, "h"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid hour duration %q", s)
		}
		return now.Add(-time.Duration(hours) * time.Hour), nil
	}

	return time.Time{}, fmt.Errorf("unsupported duration format %q (use e.g. 7d, 30d, 24h)", s)
}

func init() {
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "Output events as JSON")
	eventsCmd.Flags().StringVar(&eventsSince, "since", "7d", "Time window for events (e.g. 7d, 30d, 24h)")
	eventsCmd.Flags().StringVar(&eventsTool, "tool", "", "Filter by tool name")
	eventsCmd.Flags().StringVar(&eventsOutcome, "outcome", "", "Filter by outcome (ok or error)")
	rootCmd.AddCommand(eventsCmd)
}
