package patient

import "testing"

func TestFeaturesOrderAndConversion(t *testing.T) {
	in := Input{
		Age:               60,
		Sex:               SexMale,
		ChestPainType:     4,
		RestingBP:         150,
		Cholesterol:       260,
		FastingBloodSugar: Yes,
		RestingECG:        2,
		MaxHeartRate:      120,
		ExerciseAngina:    Yes,
		STDepression:      3.0,
		STSlope:           2,
		MajorVessels:      3,
		Thalassemia:       7,
	}

	got := in.Features()
	want := []float64{60, 1, 4, 150, 260, 1, 2, 120, 1, 3.0, 2, 3, 7}
	if len(got) != FeatureCount {
		t.Fatalf("expected %d features, got %d", FeatureCount, len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("feature %s: expected %v, got %v", FeatureNames[i], want[i], got[i])
		}
	}
}

func TestCategoricalDefaultsToZero(t *testing.T) {
	in := Defaults()
	f := in.Features()
	if f[1] != 0 || f[5] != 0 || f[8] != 0 {
		t.Fatalf("expected Female/No/No to encode as 0, got sex=%v fbs=%v exang=%v", f[1], f[5], f[8])
	}
}

func TestYesIsCaseInsensitive(t *testing.T) {
	in := Input{ExerciseAngina: " yes", Sex: "male"}
	if !in.HasExerciseAngina() || !in.IsMale() {
		t.Fatalf("expected lowercase answers to be accepted: %+v", in)
	}
}

func TestYesNo(t *testing.T) {
	if YesNo(true) != "Yes" || YesNo(false) != "No" {
		t.Fatal("unexpected YesNo labels")
	}
}

func TestFeatureNamesMatchCount(t *testing.T) {
	if len(FeatureNames) != FeatureCount {
		t.Fatalf("expected %d names, got %d", FeatureCount, len(FeatureNames))
	}
}
