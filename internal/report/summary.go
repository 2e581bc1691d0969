// Package report builds the patient summary table shown under a prediction.
package report

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/Skufu/cardiorisk/internal/patient"
	"github.com/Skufu/cardiorisk/internal/risk"
)

var ErrProbability = errors.New("probability out of range")

type Row struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type Table struct {
	Rows []Row `json:"rows"`
}

// Build echoes every input followed by the prediction columns.
func Build(in patient.Input, a risk.Assessment) (Table, error) {
	if math.IsNaN(a.Probability) || a.Probability < 0 || a.Probability > 100 {
		return Table{}, fmt.Errorf("%w: %v", ErrProbability, a.Probability)
	}

	rows := []Row{
		{"Age", strconv.Itoa(in.Age)},
		{"Gender", in.Sex},
		{"Chest Pain Type", strconv.Itoa(in.ChestPainType)},
		{"Resting BP", strconv.Itoa(in.RestingBP)},
		{"Cholesterol", strconv.Itoa(in.Cholesterol)},
		{"Fasting BS", patient.YesNo(in.HasFastingBloodSugar())},
		{"Resting ECG", strconv.Itoa(in.RestingECG)},
		{"Max HR", strconv.Itoa(in.MaxHeartRate)},
		{"Exercise Angina", patient.YesNo(in.HasExerciseAngina())},
		{"ST Depression", strconv.FormatFloat(in.STDepression, 'f', 1, 64)},
		{"ST Slope", strconv.Itoa(in.STSlope)},
		{"Major Vessels", strconv.Itoa(in.MajorVessels)},
		{"Thalassemia", strconv.Itoa(in.Thalassemia)},
		{"Prediction", risk.SummaryLabel(a.Diagnosis)},
		{"Probability (%)", FormatProbability(a.Probability)},
		{"Risk Level", string(a.Level)},
	}
	return Table{Rows: rows}, nil
}

// FormatProbability renders a percentage with one decimal place.
func FormatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
