// Package risk turns a model probability and the raw patient answers into
// a risk level, an advisory message and a list of flagged risk factors.
package risk

import "github.com/Skufu/cardiorisk/internal/patient"

type Level string

const (
	Low    Level = "LOW"
	Medium Level = "MEDIUM"
	High   Level = "HIGH"
)

// Probability thresholds in percent. A value equal to a bound belongs to
// the higher tier.
const (
	MediumThreshold = 30.0
	HighThreshold   = 70.0
)

const (
	DiagnosisPositive = "Heart Disease Detected"
	DiagnosisNegative = "No Heart Disease"

	NoFactorsMessage = "No major risk factors detected."
)

var advisories = map[Level]string{
	Low:    "Low risk detected. Maintain a healthy lifestyle and regular checkups.",
	Medium: "Moderate risk detected. Medical consultation is recommended.",
	High:   "High risk detected. Immediate medical evaluation is advised.",
}

// Assessment is the result shown to the user for one prediction.
type Assessment struct {
	Diagnosis   int      `json:"diagnosis"`
	Label       string   `json:"label"`
	Probability float64  `json:"probability"`
	Level       Level    `json:"riskLevel"`
	Advisory    string   `json:"advisory"`
	Factors     []string `json:"riskFactors"`
}

// Classify maps a positive-class probability in percent to a risk level.
func Classify(p float64) Level {
	switch {
	case p < MediumThreshold:
		return Low
	case p < HighThreshold:
		return Medium
	default:
		return High
	}
}

// Advisory returns the recommendation text for a level.
func Advisory(level Level) string {
	return advisories[level]
}

// Indicator is the colour marker shown next to the level.
func (l Level) Indicator() string {
	switch l {
	case Low:
		return "🟢"
	case Medium:
		return "🟡"
	default:
		return "🔴"
	}
}

// Tone names the alert style used to render the advisory.
func (l Level) Tone() string {
	switch l {
	case Low:
		return "success"
	case Medium:
		return "warning"
	default:
		return "error"
	}
}

// DiagnosisLabel is the headline text for a model prediction.
func DiagnosisLabel(diagnosis int) string {
	if diagnosis == 1 {
		return DiagnosisPositive
	}
	return DiagnosisNegative
}

// SummaryLabel is the shorter prediction text used in the summary table.
func SummaryLabel(diagnosis int) string {
	if diagnosis == 1 {
		return "Heart Disease"
	}
	return DiagnosisNegative
}

// Factors flags clinically notable answers. Each rule is checked on its own
// and the result keeps the order below.
func Factors(in patient.Input) []string {
	factors := []string{}
	if in.Age > 55 {
		factors = append(factors, "Advanced age")
	}
	if in.RestingBP > 140 {
		factors = append(factors, "High blood pressure")
	}
	if in.Cholesterol > 240 {
		factors = append(factors, "High cholesterol")
	}
	if in.HasExerciseAngina() {
		factors = append(factors, "Exercise-induced angina")
	}
	if in.STDepression > 2 {
		factors = append(factors, "High ST depression")
	}
	if in.MajorVessels > 1 {
		factors = append(factors, "Multiple blocked vessels")
	}
	return factors
}

// Assess combines the model output with the threshold rules.
func Assess(diagnosis int, probability float64, in patient.Input) Assessment {
	level := Classify(probability)
	return Assessment{
		Diagnosis:   diagnosis,
		Label:       DiagnosisLabel(diagnosis),
		Probability: probability,
		Level:       level,
		Advisory:    Advisory(level),
		Factors:     Factors(in),
	}
}
