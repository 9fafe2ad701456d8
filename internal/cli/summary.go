package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cloudsteak/dora-mcp-server/pkg/dora"
)

var (
	summaryJSON      bool
	summaryFrequency float64
	summaryLeadTime  float64
	summaryCFR       float64
	summaryMTTR      float64
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Classify four pre-computed rates into an overall assessment",
	Long: `Classify four pre-computed DORA rates against the benchmark thresholds
and aggregate the per-metric scores into an overall software delivery
performance tier.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := dora.Summary(summaryFrequency, summaryLeadTime, summaryCFR, summaryMTTR)
		if err != nil {
			if summaryJSON {
				return emitJSON(map[string]string{"error": err.Error()})
			}
			return err
		}
		if summaryJSON {
			return emitJSON(result)
		}

		fmt.Println("DORA performance summary")
		fmt.Println()

		names := make([]string, 0, len(result.Metrics))
		for name := range result.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			ms := result.Metrics[name]
			fmt.Printf("  %-26s %s (score %d)\n", name, renderLevel(ms.Level), ms.Score)
		}

		fmt.Println()
		fmt.Printf("  %s %d/16 (average %.2f)\n", labelStyle.Render("Total score:"), result.TotalScore, result.AverageScore)
		fmt.Printf("  %s %s\n", labelStyle.Render("Overall:    "), renderLevel(result.OverallPerformance))
		return nil
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Output the summary as JSON")
	summaryCmd.Flags().Float64Var(&summaryFrequency, "frequency", 0, "Average deployments per day")
	summaryCmd.Flags().Float64Var(&summaryLeadTime, "lead-time", 0, "Average lead time in days")
	summaryCmd.Flags().Float64Var(&summaryCFR, "failure-rate", 0, "Change failure rate percentage (0-100)")
	summaryCmd.Flags().Float64Var(&summaryMTTR, "mttr", 0, "Mean time to recovery in hours")
	_ = summaryCmd.MarkFlagRequired("frequency")
	_ = summaryCmd.MarkFlagRequired("lead-time")
	_ = summaryCmd.MarkFlagRequired("failure-rate")
	_ = summaryCmd.MarkFlagRequired("mttr")
	rootCmd.AddCommand(summaryCmd)
}
