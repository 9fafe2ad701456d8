package dora

// Level represents a DORA performance tier.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
	LevelElite  Level = "Elite"

	// LevelEliteHigh is the merged top tier used by change failure rate,
	// where the DORA benchmarks do not distinguish Elite from High.
	LevelEliteHigh Level = "Elite/High"
)

// Score returns the numeric rank of the level: Low=1, Medium=2, High=3,
// Elite=4. The merged Elite/High tier ranks as Elite.
func (l Level) Score() int {
	switch l {
	case LevelElite, LevelEliteHigh:
		return 4
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	default:
		return 1
	}
}

// Polarity indicates which direction of a metric value is better, and
// therefore how band thresholds are compared.
type Polarity int

const (
	// HigherIsBetter matches a band when the value is at or above its
	// threshold (e.g. deployment frequency).
	HigherIsBetter Polarity = iota

	// LowerIsBetter matches a band when the value is at or below its
	// threshold (e.g. lead time, failure rate, recovery time).
	LowerIsBetter
)

// Band is one classification band of a metric: the tier assigned when the
// derived value falls on its side of Threshold. Exclusive bands do not
// match the threshold value itself.
type Band struct {
	Level       Level
	Description string
	Threshold   float64
	Exclusive   bool
}

// BandSet holds the ordered classification bands for one metric, best
// tier first. The final band is the fallback and matches any value, so
// the bands partition the whole axis with no overlap.
type BandSet struct {
	Metric   string
	Polarity Polarity
	Bands    []Band
}

// Classify returns the first band whose threshold test the value passes.
func (s BandSet) Classify(v float64) Band {
	last := len(s.Bands) - 1
	for i, b := range s.Bands {
		if i == last || s.matches(b, v) {
			return b
		}
	}
	return Band{}
}

func (s BandSet) matches(b Band, v float64) bool {
	if s.Polarity == HigherIsBetter {
		if b.Exclusive {
			return v > b.Threshold
		}
		return v >= b.Threshold
	}
	if b.Exclusive {
		return v < b.Threshold
	}
	return v <= b.Threshold
}

// The benchmark tables below are the single source of truth for tier
// assignment: the individual calculators and the summary aggregator both
// classify through them, so the two paths cannot drift.

// DeploymentFrequencyBands classifies deployments per day.
var DeploymentFrequencyBands = BandSet{
	Metric:   MetricDeploymentFrequency,
	Polarity: HigherIsBetter,
	Bands: []Band{
		{Level: LevelElite, Description: "Multiple deploys per day", Threshold: 1},
		{Level: LevelHigh, Description: "Between once per day and once per week", Threshold: 1.0 / 7},
		{Level: LevelMedium, Description: "Between once per week and once per month", Threshold: 1.0 / 30},
		{Level: LevelLow, Description: "Less than once per month"},
	},
}

// LeadTimeBands classifies mean commit-to-deploy lead time in days.
// Exactly one day is High, not Elite.
var LeadTimeBands = BandSet{
	Metric:   MetricLeadTimeForChanges,
	Polarity: LowerIsBetter,
	Bands: []Band{
		{Level: LevelElite, Description: "Less than one day", Threshold: 1, Exclusive: true},
		{Level: LevelHigh, Description: "Between one day and one week", Threshold: 7},
		{Level: LevelMedium, Description: "Between one week and one month", Threshold: 30},
		{Level: LevelLow, Description: "More than one month"},
	},
}

// ChangeFailureRateBands classifies the failure rate percentage. The top
// two tiers are merged per the DORA benchmarks.
var ChangeFailureRateBands = BandSet{
	Metric:   MetricChangeFailureRate,
	Polarity: LowerIsBetter,
	Bands: []Band{
		{Level: LevelEliteHigh, Description: "0-15% failure rate", Threshold: 15},
		{Level: LevelMedium, Description: "16-30% failure rate", Threshold: 30},
		{Level: LevelLow, Description: "More than 30% failure rate"},
	},
}

// RecoveryTimeBands classifies mean time to recovery in hours. Exactly
// one hour is High, not Elite.
var RecoveryTimeBands = BandSet{
	Metric:   MetricMeanTimeToRecovery,
	Polarity: LowerIsBetter,
	Bands: []Band{
		{Level: LevelElite, Description: "Less than one hour", Threshold: 1, Exclusive: true},
		{Level: LevelHigh, Description: "Less than one day", Threshold: 24},
		{Level: LevelMedium, Description: "Less than one week", Threshold: 168},
		{Level: LevelLow, Description: "More than one week"},
	},
}

// OverallBands classifies the average of the four per-metric scores
// (range 1.0 to 4.0) into the overall performance tier.
var OverallBands = BandSet{
	Metric:   "overall",
	Polarity: HigherIsBetter,
	Bands: []Band{
		{Level: LevelElite, Description: "Elite overall performance", Threshold: 3.5},
		{Level: LevelHigh, Description: "High overall performance", Threshold: 2.5},
		{Level: LevelMedium, Description: "Medium overall performance", Threshold: 1.5},
		{Level: LevelLow, Description: "Low overall performance"},
	},
}
