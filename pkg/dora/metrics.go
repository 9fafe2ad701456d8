package dora

import (
	"math"
	"time"
)

// Metric names as they appear in results and summaries.
const (
	MetricDeploymentFrequency = "deployment_frequency"
	MetricLeadTimeForChanges  = "lead_time_for_changes"
	MetricChangeFailureRate   = "change_failure_rate"
	MetricMeanTimeToRecovery  = "mean_time_to_recovery"
)

// ValidationError reports a precondition violation on calculator input.
// Callers are expected to surface the reason to the remote caller rather
// than treat it as a fault.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(reason string) error {
	return &ValidationError{Reason: reason}
}

// DeploymentFrequencyResult holds the computed deployment frequency
// metric and its benchmark classification.
type DeploymentFrequencyResult struct {
	Metric           string    `json:"metric"`
	Deployments      int       `json:"deployments"`
	Days             int       `json:"days"`
	FrequencyPerDay  float64   `json:"frequency_per_day"`
	PerformanceLevel Level     `json:"performance_level"`
	Description      string    `json:"description"`
	CalculatedAt     time.Time `json:"calculated_at"`
}

// DeploymentFrequency computes deployments per day over the given period
// and classifies the rate against the benchmark bands.
func DeploymentFrequency(deployments, days int) (*DeploymentFrequencyResult, error) {
	if days <= 0 {
		return nil, validationErr("days must be positive")
	}
	if deployments < 0 {
		return nil, validationErr("deployments cannot be negative")
	}

	frequency := float64(deployments) / float64(days)
	band := DeploymentFrequencyBands.Classify(frequency)

	return &DeploymentFrequencyResult{
		Metric:           MetricDeploymentFrequency,
		Deployments:      deployments,
		Days:             days,
		FrequencyPerDay:  roundTo(frequency, 4),
		PerformanceLevel: band.Level,
		Description:      band.Description,
		CalculatedAt:     time.Now(),
	}, nil
}

// LeadTimeResult holds the computed lead time for changes metric and its
// benchmark classification.
type LeadTimeResult struct {
	Metric           string    `json:"metric"`
	SampleSize       int       `json:"sample_size"`
	AverageHours     float64   `json:"average_hours"`
	AverageDays      float64   `json:"average_days"`
	MinHours         float64   `json:"min_hours"`
	MaxHours         float64   `json:"max_hours"`
	PerformanceLevel Level     `json:"performance_level"`
	Description      string    `json:"description"`
	CalculatedAt     time.Time `json:"calculated_at"`
}

// LeadTimeForChanges computes the mean commit-to-deploy time from a list
// of per-change durations in hours and classifies the mean, expressed in
// days, against the benchmark bands.
func LeadTimeForChanges(commitToDeployHours []float64) (*LeadTimeResult, error) {
	stats, err := sampleStats(commitToDeployHours, "hours")
	if err != nil {
		return nil, err
	}

	avgDays := stats.mean / 24
	band := LeadTimeBands.Classify(avgDays)

	return &LeadTimeResult{
		Metric:           MetricLeadTimeForChanges,
		SampleSize:       len(commitToDeployHours),
		AverageHours:     roundTo(stats.mean, 2),
		AverageDays:      roundTo(avgDays, 2),
		MinHours:         roundTo(stats.min, 2),
		MaxHours:         roundTo(stats.max, 2),
		PerformanceLevel: band.Level,
		Description:      band.Description,
		CalculatedAt:     time.Now(),
	}, nil
}

// ChangeFailureRateResult holds the computed change failure rate metric
// and its benchmark classification.
type ChangeFailureRateResult struct {
	Metric             string    `json:"metric"`
	TotalDeployments   int       `json:"total_deployments"`
	FailedDeployments  int       `json:"failed_deployments"`
	FailureRatePercent float64   `json:"failure_rate_percent"`
	PerformanceLevel   Level     `json:"performance_level"`
	Description        string    `json:"description"`
	CalculatedAt       time.Time `json:"calculated_at"`
}

// ChangeFailureRate computes the percentage of deployments that caused a
// failure and classifies it against the benchmark bands.
func ChangeFailureRate(totalDeployments, failedDeployments int) (*ChangeFailureRateResult, error) {
	if totalDeployments <= 0 {
		return nil, validationErr("total deployments must be positive")
	}
	if failedDeployments < 0 {
		return nil, validationErr("failed deployments cannot be negative")
	}
	if failedDeployments > totalDeployments {
		return nil, validationErr("failed deployments cannot exceed total deployments")
	}

	rate := float64(failedDeployments) / float64(totalDeployments) * 100
	band := ChangeFailureRateBands.Classify(rate)

	return &ChangeFailureRateResult{
		Metric:             MetricChangeFailureRate,
		TotalDeployments:   totalDeployments,
		FailedDeployments:  failedDeployments,
		FailureRatePercent: roundTo(rate, 2),
		PerformanceLevel:   band.Level,
		Description:        band.Description,
		CalculatedAt:       time.Now(),
	}, nil
}

// RecoveryTimeResult holds the computed mean time to recovery metric and
// its benchmark classification.
type RecoveryTimeResult struct {
	Metric           string    `json:"metric"`
	SampleSize       int       `json:"sample_size"`
	AverageHours     float64   `json:"average_hours"`
	MinHours         float64   `json:"min_hours"`
	MaxHours         float64   `json:"max_hours"`
	PerformanceLevel Level     `json:"performance_level"`
	Description      string    `json:"description"`
	CalculatedAt     time.Time `json:"calculated_at"`
}

// MeanTimeToRecovery computes the mean incident recovery time from a
// list of per-incident durations in hours and classifies it against the
// benchmark bands.
func MeanTimeToRecovery(recoveryTimesHours []float64) (*RecoveryTimeResult, error) {
	stats, err := sampleStats(recoveryTimesHours, "recovery times")
	if err != nil {
		return nil, err
	}

	band := RecoveryTimeBands.Classify(stats.mean)

	return &RecoveryTimeResult{
		Metric:           MetricMeanTimeToRecovery,
		SampleSize:       len(recoveryTimesHours),
		AverageHours:     roundTo(stats.mean, 2),
		MinHours:         roundTo(stats.min, 2),
		MaxHours:         roundTo(stats.max, 2),
		PerformanceLevel: band.Level,
		Description:      band.Description,
		CalculatedAt:     time.Now(),
	}, nil
}

// MetricScore is the per-metric classification within a summary.
type MetricScore struct {
	Level Level `json:"level"`
	Score int   `json:"score"`
}

// SummaryResult aggregates the classification of all four DORA metrics
// into a single overall performance assessment.
type SummaryResult struct {
	Metrics            map[string]MetricScore `json:"metrics"`
	TotalScore         int                    `json:"total_score"`
	AverageScore       float64                `json:"average_score"`
	OverallPerformance Level                  `json:"overall_performance"`
	CalculatedAt       time.Time              `json:"calculated_at"`
}

// Summary classifies four pre-computed rates through the same band
// tables as the individual calculators, sums the per-metric scores
// (4 = Elite down to 1 = Low), and derives the overall tier from the
// average score.
func Summary(deploymentFrequencyPerDay, leadTimeDays, changeFailureRatePercent, mttrHours float64) (*SummaryResult, error) {
	if err := validRate(deploymentFrequencyPerDay, "deployment frequency"); err != nil {
		return nil, err
	}
	if err := validRate(leadTimeDays, "lead time"); err != nil {
		return nil, err
	}
	if err := validRate(changeFailureRatePercent, "change failure rate"); err != nil {
		return nil, err
	}
	if changeFailureRatePercent > 100 {
		return nil, validationErr("change failure rate cannot exceed 100 percent")
	}
	if err := validRate(mttrHours, "mean time to recovery"); err != nil {
		return nil, err
	}

	metrics := map[string]MetricScore{
		MetricDeploymentFrequency: scoreFor(DeploymentFrequencyBands, deploymentFrequencyPerDay),
		MetricLeadTimeForChanges:  scoreFor(LeadTimeBands, leadTimeDays),
		MetricChangeFailureRate:   scoreFor(ChangeFailureRateBands, changeFailureRatePercent),
		MetricMeanTimeToRecovery:  scoreFor(RecoveryTimeBands, mttrHours),
	}

	total := 0
	for _, m := range metrics {
		total += m.Score
	}
	average := float64(total) / float64(len(metrics))

	return &SummaryResult{
		Metrics:            metrics,
		TotalScore:         total,
		AverageScore:       roundTo(average, 2),
		OverallPerformance: OverallBands.Classify(average).Level,
		CalculatedAt:       time.Now(),
	}, nil
}

func scoreFor(bands BandSet, v float64) MetricScore {
	band := bands.Classify(v)
	return MetricScore{Level: band.Level, Score: band.Level.Score()}
}

func validRate(v float64, name string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return validationErr(name + " must be a finite number")
	}
	if v < 0 {
		return validationErr(name + " cannot be negative")
	}
	return nil
}

type stats struct {
	mean, min, max float64
}

// sampleStats validates a sample list and computes mean, min, and max in
// a single pass. name identifies the sample kind in error messages.
func sampleStats(samples []float64, name string) (stats, error) {
	if len(samples) == 0 {
		return stats{}, validationErr("no data provided")
	}

	s := stats{min: samples[0], max: samples[0]}
	sum := 0.0
	for _, v := range samples {
		if v < 0 {
			return stats{}, validationErr(name + " cannot be negative")
		}
		sum += v
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.mean = sum / float64(len(samples))
	return s, nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
