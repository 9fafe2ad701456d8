package dora

import (
	"errors"
	"testing"
)

func TestDeploymentFrequency(t *testing.T) {
	tests := []struct {
		name        string
		deployments int
		days        int
		wantFreq    float64
		wantLevel   Level
	}{
		{"daily deploys over a month", 30, 30, 1, LevelElite},
		{"multiple per day", 90, 30, 3, LevelElite},
		{"exactly weekly", 1, 7, 0.1429, LevelHigh},
		{"just under weekly", 1, 8, 0.125, LevelMedium},
		{"exactly monthly", 1, 30, 0.0333, LevelMedium},
		{"rarely", 1, 90, 0.0111, LevelLow},
		{"no deployments", 0, 30, 0, LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DeploymentFrequency(tt.deployments, tt.days)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Metric != MetricDeploymentFrequency {
				t.Errorf("metric = %s, want %s", result.Metric, MetricDeploymentFrequency)
			}
			if result.FrequencyPerDay != tt.wantFreq {
				t.Errorf("frequency = %v, want %v", result.FrequencyPerDay, tt.wantFreq)
			}
			if result.PerformanceLevel != tt.wantLevel {
				t.Errorf("level = %s, want %s", result.PerformanceLevel, tt.wantLevel)
			}
			if result.Deployments != tt.deployments || result.Days != tt.days {
				t.Errorf("inputs not echoed: got %d/%d", result.Deployments, result.Days)
			}
			if result.CalculatedAt.IsZero() {
				t.Error("expected CalculatedAt to be set")
			}
		})
	}
}

func TestDeploymentFrequencyValidation(t *testing.T) {
	tests := []struct {
		name        string
		deployments int
		days        int
	}{
		{"zero days", 10, 0},
		{"negative days", 10, -1},
		{"negative deployments", -1, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DeploymentFrequency(tt.deployments, tt.days)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if result != nil {
				t.Error("expected nil result on validation failure")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestLeadTimeForChanges(t *testing.T) {
	tests := []struct {
		name      string
		hours     []float64
		wantHours float64
		wantDays  float64
		wantLevel Level
	}{
		{"same-day changes", []float64{2, 4, 6}, 4, 0.17, LevelElite},
		{"exactly one day is high", []float64{24}, 24, 1, LevelHigh},
		{"a few days", []float64{48, 96}, 72, 3, LevelHigh},
		{"a couple of weeks", []float64{300, 420}, 360, 15, LevelMedium},
		{"months", []float64{800, 900}, 850, 35.42, LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := LeadTimeForChanges(tt.hours)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.AverageHours != tt.wantHours {
				t.Errorf("average hours = %v, want %v", result.AverageHours, tt.wantHours)
			}
			if result.AverageDays != tt.wantDays {
				t.Errorf("average days = %v, want %v", result.AverageDays, tt.wantDays)
			}
			if result.PerformanceLevel != tt.wantLevel {
				t.Errorf("level = %s, want %s", result.PerformanceLevel, tt.wantLevel)
			}
			if result.SampleSize != len(tt.hours) {
				t.Errorf("sample size = %d, want %d", result.SampleSize, len(tt.hours))
			}
		})
	}
}

func TestLeadTimeForChangesMinMax(t *testing.T) {
	result, err := LeadTimeForChanges([]float64{12.345, 48.678, 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MinHours != 12.35 {
		t.Errorf("min = %v, want 12.35", result.MinHours)
	}
	if result.MaxHours != 48.68 {
		t.Errorf("max = %v, want 48.68", result.MaxHours)
	}
}

func TestLeadTimeForChangesValidation(t *testing.T) {
	if _, err := LeadTimeForChanges(nil); err == nil {
		t.Error("expected error for empty sample list")
	}
	if _, err := LeadTimeForChanges([]float64{}); err == nil {
		t.Error("expected error for empty sample list")
	}
	if _, err := LeadTimeForChanges([]float64{5, -1, 3}); err == nil {
		t.Error("expected error for negative sample")
	}
}

func TestChangeFailureRate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		failed    int
		wantRate  float64
		wantLevel Level
	}{
		{"no failures", 50, 0, 0, LevelEliteHigh},
		{"exactly fifteen percent", 100, 15, 15, LevelEliteHigh},
		{"sixteen percent", 100, 16, 16, LevelMedium},
		{"exactly thirty percent", 10, 3, 30, LevelMedium},
		{"half fail", 10, 5, 50, LevelLow},
		{"all fail", 4, 4, 100, LevelLow},
		{"repeating decimal", 3, 1, 33.33, LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ChangeFailureRate(tt.total, tt.failed)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.FailureRatePercent != tt.wantRate {
				t.Errorf("rate = %v, want %v", result.FailureRatePercent, tt.wantRate)
			}
			if result.PerformanceLevel != tt.wantLevel {
				t.Errorf("level = %s, want %s", result.PerformanceLevel, tt.wantLevel)
			}
		})
	}
}

func TestChangeFailureRateValidation(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		failed int
	}{
		{"zero total", 0, 0},
		{"negative total", -5, 0},
		{"negative failed", 10, -1},
		{"failed exceeds total", 10, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ChangeFailureRate(tt.total, tt.failed); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestMeanTimeToRecovery(t *testing.T) {
	tests := []struct {
		name      string
		hours     []float64
		wantMean  float64
		wantLevel Level
	}{
		{"minutes", []float64{0.25, 0.75}, 0.5, LevelElite},
		{"exactly one hour is high", []float64{0.5, 1.5}, 1, LevelHigh},
		{"same day", []float64{4, 8}, 6, LevelHigh},
		{"exactly one day", []float64{24}, 24, LevelHigh},
		{"days", []float64{48, 96}, 72, LevelMedium},
		{"over a week", []float64{200, 400}, 300, LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MeanTimeToRecovery(tt.hours)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.AverageHours != tt.wantMean {
				t.Errorf("mean = %v, want %v", result.AverageHours, tt.wantMean)
			}
			if result.PerformanceLevel != tt.wantLevel {
				t.Errorf("level = %s, want %s", result.PerformanceLevel, tt.wantLevel)
			}
			if result.SampleSize != len(tt.hours) {
				t.Errorf("sample size = %d, want %d", result.SampleSize, len(tt.hours))
			}
		})
	}
}

func TestMeanTimeToRecoveryValidation(t *testing.T) {
	if _, err := MeanTimeToRecovery([]float64{}); err == nil {
		t.Error("expected error for empty sample list")
	}
	if _, err := MeanTimeToRecovery([]float64{1, -0.5}); err == nil {
		t.Error("expected error for negative sample")
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name        string
		freq        float64
		leadDays    float64
		cfrPercent  float64
		mttrHours   float64
		wantTotal   int
		wantAverage float64
		wantOverall Level
	}{
		{"elite across the board", 2, 0.5, 5, 0.5, 16, 4.0, LevelElite},
		{"solid high performer", 0.5, 3, 10, 0.75, 14, 3.5, LevelElite},
		{"medium shop", 0.05, 20, 25, 100, 8, 2.0, LevelMedium},
		{"struggling", 0.01, 45, 60, 300, 4, 1.0, LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Summary(tt.freq, tt.leadDays, tt.cfrPercent, tt.mttrHours)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.TotalScore != tt.wantTotal {
				t.Errorf("total score = %d, want %d", result.TotalScore, tt.wantTotal)
			}
			if result.AverageScore != tt.wantAverage {
				t.Errorf("average score = %v, want %v", result.AverageScore, tt.wantAverage)
			}
			if result.OverallPerformance != tt.wantOverall {
				t.Errorf("overall = %s, want %s", result.OverallPerformance, tt.wantOverall)
			}
			if len(result.Metrics) != 4 {
				t.Fatalf("expected 4 metric entries, got %d", len(result.Metrics))
			}
		})
	}
}

func TestSummaryPerMetricScores(t *testing.T) {
	result, err := Summary(2, 0.5, 5, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]MetricScore{
		MetricDeploymentFrequency: {Level: LevelElite, Score: 4},
		MetricLeadTimeForChanges:  {Level: LevelElite, Score: 4},
		MetricChangeFailureRate:   {Level: LevelEliteHigh, Score: 4},
		MetricMeanTimeToRecovery:  {Level: LevelElite, Score: 4},
	}
	for name, ms := range want {
		if result.Metrics[name] != ms {
			t.Errorf("%s = %+v, want %+v", name, result.Metrics[name], ms)
		}
	}
}

// The merged change-failure-rate tier collapses Elite and High, so its
// Medium band must still score 2 in the summary, same as every other
// metric's Medium.
func TestSummaryChangeFailureRateMediumScore(t *testing.T) {
	result, err := Summary(2, 0.5, 25, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfr := result.Metrics[MetricChangeFailureRate]
	if cfr.Level != LevelMedium || cfr.Score != 2 {
		t.Errorf("change failure rate = %+v, want {Medium 2}", cfr)
	}
	if result.TotalScore != 14 {
		t.Errorf("total score = %d, want 14", result.TotalScore)
	}
}

func TestSummaryValidation(t *testing.T) {
	tests := []struct {
		name string
		freq, lead, cfr, mttr float64
	}{
		{"negative frequency", -1, 1, 10, 5},
		{"negative lead time", 1, -0.5, 10, 5},
		{"negative failure rate", 1, 1, -10, 5},
		{"failure rate over 100", 1, 1, 101, 5},
		{"negative mttr", 1, 1, 10, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Summary(tt.freq, tt.lead, tt.cfr, tt.mttr)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if result != nil {
				t.Error("expected nil result on validation failure")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestResultsIdenticalExceptTimestamp(t *testing.T) {
	first, err := DeploymentFrequency(42, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := DeploymentFrequency(42, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first.CalculatedAt = second.CalculatedAt
	if *first != *second {
		t.Errorf("results differ beyond timestamp: %+v vs %+v", first, second)
	}
}
