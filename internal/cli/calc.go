package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cloudsteak/dora-mcp-server/pkg/dora"
)

var calcJSON bool

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Run a DORA metric calculator directly",
	Long: `Run one of the four DORA metric calculators from the command line
without going through the MCP server.`,
}

// --- frequency ---

var (
	calcDeployments int
	calcDays        int
)

var calcFrequencyCmd = &cobra.Command{
	Use:   "frequency",
	Short: "Calculate deployment frequency",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days := calcDays
		if !cmd.Flags().Changed("days") {
			days = defaultPeriodDays()
		}

		result, err := dora.DeploymentFrequency(calcDeployments, days)
		if err != nil {
			return emitError(err)
		}
		if calcJSON {
			return emitJSON(result)
		}

		fmt.Printf("Deployment frequency (%d deployments over %d days)\n\n", result.Deployments, result.Days)
		fmt.Printf("  %s %.4f deploys/day\n", labelStyle.Render("Frequency:  "), result.FrequencyPerDay)
		fmt.Printf("  %s %s\n", labelStyle.Render("Performance:"), renderLevel(result.PerformanceLevel))
		fmt.Printf("  %s %s\n", labelStyle.Render("Benchmark:  "), result.Description)
		return nil
	},
}

// --- lead-time ---

var (
	calcHours string
	calcInput string
)

var calcLeadTimeCmd = &cobra.Command{
	Use:   "lead-time",
	Short: "Calculate lead time for changes",
	Long: `Calculate the mean commit-to-deploy lead time from per-change
durations in hours, supplied either as a comma-separated --hours list or
as a YAML sequence file via --input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, err := loadSamples(calcHours, calcInput)
		if err != nil {
			return err
		}

		result, err := dora.LeadTimeForChanges(samples)
		if err != nil {
			return emitError(err)
		}
		if calcJSON {
			return emitJSON(result)
		}

		fmt.Printf("Lead time for changes (%d samples)\n\n", result.SampleSize)
		fmt.Printf("  %s %.2f hours (%.2f days)\n", labelStyle.Render("Average:    "), result.AverageHours, result.AverageDays)
		fmt.Printf("  %s %.2f - %.2f hours\n", labelStyle.Render("Range:      "), result.MinHours, result.MaxHours)
		fmt.Printf("  %s %s\n", labelStyle.Render("Performance:"), renderLevel(result.PerformanceLevel))
		fmt.Printf("  %s %s\n", labelStyle.Render("Benchmark:  "), result.Description)
		return nil
	},
}

// --- failure-rate ---

var (
	calcTotal  int
	calcFailed int
)

var calcFailureRateCmd = &cobra.Command{
	Use:   "failure-rate",
	Short: "Calculate change failure rate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := dora.ChangeFailureRate(calcTotal, calcFailed)
		if err != nil {
			return emitError(err)
		}
		if calcJSON {
			return emitJSON(result)
		}

		fmt.Printf("Change failure rate (%d failed of %d deployments)\n\n", result.FailedDeployments, result.TotalDeployments)
		fmt.Printf("  %s %.2f%%\n", labelStyle.Render("Rate:       "), result.FailureRatePercent)
		fmt.Printf("  %s %s\n", labelStyle.Render("Performance:"), renderLevel(result.PerformanceLevel))
		fmt.Printf("  %s %s\n", labelStyle.Render("Benchmark:  "), result.Description)
		return nil
	},
}

// --- mttr ---

var calcMTTRCmd = &cobra.Command{
	Use:   "mttr",
	Short: "Calculate mean time to recovery",
	Long: `Calculate the mean incident recovery time from per-incident durations
in hours, supplied either as a comma-separated --hours list or as a YAML
sequence file via --input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, err := loadSamples(calcHours, calcInput)
		if err != nil {
			return err
		}

		result, err := dora.MeanTimeToRecovery(samples)
		if err != nil {
			return emitError(err)
		}
		if calcJSON {
			return emitJSON(result)
		}

		fmt.Printf("Mean time to recovery (%d incidents)\n\n", result.SampleSize)
		fmt.Printf("  %s %.2f hours\n", labelStyle.Render("Average:    "), result.AverageHours)
		fmt.Printf("  %s %.2f - %.2f hours\n", labelStyle.Render("Range:      "), result.MinHours, result.MaxHours)
		fmt.Printf("  %s %s\n", labelStyle.Render("Performance:"), renderLevel(result.PerformanceLevel))
		fmt.Printf("  %s %s\n", labelStyle.Render("Benchmark:  "), result.Description)
		return nil
	},
}

// --- helpers ---

// loadSamples resolves the sample list from either a comma-separated
// flag value or a YAML file holding a sequence of numbers. Exactly one
// source must be provided.
func loadSamples(hoursFlag, inputFlag string) ([]float64, error) {
	if hoursFlag != "" && inputFlag != "" {
		return nil, fmt.Errorf("--hours and --input are mutually exclusive")
	}

	if inputFlag != "" {
		data, err := os.ReadFile(inputFlag)
		if err != nil {
			return nil, fmt.Errorf("reading sample file: %w", err)
		}
		var samples []float64
		if err := yaml.Unmarshal(data, &samples); err != nil {
			return nil, fmt.Errorf("parsing sample file %s: %w", inputFlag, err)
		}
		return samples, nil
	}

	if hoursFlag == "" {
		return nil, fmt.Errorf("either --hours or --input is required")
	}

	parts := strings.Split(hoursFlag, ",")
	samples := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hours value %q", p)
		}
		samples = append(samples, v)
	}
	return samples, nil
}

// emitError reports a validation failure. In JSON mode it prints the
// same error mapping the MCP tools produce and exits cleanly; otherwise
// it surfaces the reason through the normal CLI error path.
func emitError(err error) error {
	if calcJSON {
		return emitJSON(map[string]string{"error": err.Error()})
	}
	return err
}

func emitJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting result as JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	calcCmd.PersistentFlags().BoolVar(&calcJSON, "json", false, "Output the result as JSON")

	calcFrequencyCmd.Flags().IntVar(&calcDeployments, "deployments", 0, "Number of deployments in the period")
	calcFrequencyCmd.Flags().IntVar(&calcDays, "days", 30, "Number of days in the measurement period")
	_ = calcFrequencyCmd.MarkFlagRequired("deployments")

	calcLeadTimeCmd.Flags().StringVar(&calcHours, "hours", "", "Comma-separated commit-to-deploy hours")
	calcLeadTimeCmd.Flags().StringVar(&calcInput, "input", "", "YAML file holding a sequence of hour values")

	calcFailureRateCmd.Flags().IntVar(&calcTotal, "total", 0, "Total number of deployments")
	calcFailureRateCmd.Flags().IntVar(&calcFailed, "failed", 0, "Number of deployments that caused failures")
	_ = calcFailureRateCmd.MarkFlagRequired("total")

	calcMTTRCmd.Flags().StringVar(&calcHours, "hours", "", "Comma-separated recovery times in hours")
	calcMTTRCmd.Flags().StringVar(&calcInput, "input", "", "YAML file holding a sequence of hour values")

	calcCmd.AddCommand(calcFrequencyCmd, calcLeadTimeCmd, calcFailureRateCmd, calcMTTRCmd)
	rootCmd.AddCommand(calcCmd)
}
