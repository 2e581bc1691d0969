// Package patient holds the clinical attributes collected by the
// assessment form and their conversion into the model's feature vector.
package patient

import "strings"

const (
	SexFemale = "Female"
	SexMale   = "Male"

	No  = "No"
	Yes = "Yes"
)

// FeatureCount is the length of the vector the classifier was fitted on.
const FeatureCount = 13

// FeatureNames lists the model columns in vector order.
var FeatureNames = []string{
	"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg",
	"thalach", "exang", "oldpeak", "slope", "ca", "thal",
}

// fieldNames holds the Input field for each entry of FeatureNames.
var fieldNames = []string{
	"Age", "Sex", "ChestPainType", "RestingBP", "Cholesterol", "FastingBloodSugar", "RestingECG",
	"MaxHeartRate", "ExerciseAngina", "STDepression", "STSlope", "MajorVessels", "Thalassemia",
}

// MissingFields returns the Input field names whose column is not present
// according to has. Zero is a valid answer for several columns, so binding
// alone cannot tell an omitted value from a real one.
func MissingFields(has func(column string) bool) []string {
	var missing []string
	for i, column := range FeatureNames {
		if !has(column) {
			missing = append(missing, fieldNames[i])
		}
	}
	return missing
}

// Input is one patient's form submission. Categorical answers keep the
// labels shown in the form; Features converts them to 0/1.
type Input struct {
	Age               int     `form:"age" json:"age" binding:"min=20,max=100"`
	Sex               string  `form:"sex" json:"sex" binding:"required,oneof=Female Male"`
	ChestPainType     int     `form:"cp" json:"cp" binding:"oneof=1 2 3 4"`
	RestingBP         int     `form:"trestbps" json:"trestbps" binding:"min=90,max=200"`
	Cholesterol       int     `form:"chol" json:"chol" binding:"min=100,max=600"`
	FastingBloodSugar string  `form:"fbs" json:"fbs" binding:"required,oneof=No Yes"`
	RestingECG        int     `form:"restecg" json:"restecg" binding:"oneof=0 1 2"`
	MaxHeartRate      int     `form:"thalach" json:"thalach" binding:"min=60,max=220"`
	ExerciseAngina    string  `form:"exang" json:"exang" binding:"required,oneof=No Yes"`
	STDepression      float64 `form:"oldpeak" json:"oldpeak" binding:"min=0,max=10"`
	STSlope           int     `form:"slope" json:"slope" binding:"oneof=1 2 3"`
	MajorVessels      int     `form:"ca" json:"ca" binding:"min=0,max=3"`
	Thalassemia       int     `form:"thal" json:"thal" binding:"oneof=3 6 7"`
}

// Defaults returns the values the form is prefilled with.
func Defaults() Input {
	return Input{
		Age:               52,
		Sex:               SexFemale,
		ChestPainType:     1,
		RestingBP:         125,
		Cholesterol:       212,
		FastingBloodSugar: No,
		RestingECG:        0,
		MaxHeartRate:      168,
		ExerciseAngina:    No,
		STDepression:      1.0,
		STSlope:           1,
		MajorVessels:      2,
		Thalassemia:       3,
	}
}

func (in Input) IsMale() bool {
	return strings.EqualFold(strings.TrimSpace(in.Sex), SexMale)
}

func (in Input) HasFastingBloodSugar() bool {
	return isYes(in.FastingBloodSugar)
}

func (in Input) HasExerciseAngina() bool {
	return isYes(in.ExerciseAngina)
}

// Features builds the model input in FeatureNames order.
func (in Input) Features() []float64 {
	return []float64{
		float64(in.Age),
		flag(in.IsMale()),
		float64(in.ChestPainType),
		float64(in.RestingBP),
		float64(in.Cholesterol),
		flag(in.HasFastingBloodSugar()),
		float64(in.RestingECG),
		float64(in.MaxHeartRate),
		flag(in.HasExerciseAngina()),
		in.STDepression,
		float64(in.STSlope),
		float64(in.MajorVessels),
		float64(in.Thalassemia),
	}
}

// YesNo renders a boolean answer the way the form labels it.
func YesNo(v bool) string {
	if v {
		return Yes
	}
	return No
}

func isYes(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), Yes)
}

func flag(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
