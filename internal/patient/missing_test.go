package patient

import (
	"reflect"
	"testing"
)

func TestMissingFields(t *testing.T) {
	present := map[string]bool{}
	for _, name := range FeatureNames {
		present[name] = true
	}
	if got := MissingFields(func(c string) bool { return present[c] }); len(got) != 0 {
		t.Fatalf("expected nothing missing, got %v", got)
	}

	delete(present, "restecg")
	delete(present, "oldpeak")
	delete(present, "ca")
	got := MissingFields(func(c string) bool { return present[c] })
	want := []string{"RestingECG", "STDepression", "MajorVessels"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
