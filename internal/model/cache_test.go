package model

import (
	"errors"
	"testing"
)

func TestCacheLoadsOnce(t *testing.T) {
	calls := 0
	c := &Cache{path: "model.json", load: func(string) (*LogisticRegression, error) {
		calls++
		return New(Artifact{Coefficients: []float64{1}}, nil)
	}}

	for i := 0; i < 3; i++ {
		if _, err := c.Get(); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single load, got %d", calls)
	}
}

func TestCacheRetriesAfterFailure(t *testing.T) {
	fail := true
	c := &Cache{path: "model.json", load: func(string) (*LogisticRegression, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return New(Artifact{Coefficients: []float64{1}}, nil)
	}}

	if _, err := c.Get(); err == nil {
		t.Fatal("expected first load to fail")
	}
	fail = false
	if _, err := c.Get(); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestCacheReloadKeepsPreviousOnError(t *testing.T) {
	fail := false
	c := &Cache{path: "model.json", load: func(string) (*LogisticRegression, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return New(Artifact{Coefficients: []float64{1}}, nil)
	}}

	first, err := c.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	fail = true
	if err := c.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	again, err := c.Get()
	if err != nil || again != first {
		t.Fatalf("expected previous model to be kept, got %v (%v)", again, err)
	}
}

func TestCacheRejectsWrongFeatureCount(t *testing.T) {
	path := writeFile(t, "model.json", `{"coefficients": [1, 2], "intercept": 0}`)
	c := NewCache(path, heartFeatures)

	if _, err := c.Get(); !errors.Is(err, ErrInvalidArtifact) {
		t.Fatalf("expected ErrInvalidArtifact, got %v", err)
	}
}
