// Package model loads the pre-trained heart disease classifier and runs
// inference on a single patient feature vector.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gonum/floats"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidArtifact = errors.New("invalid model artifact")
	ErrFeatureCount    = errors.New("feature vector length mismatch")
)

// Classifier is the contract the HTTP layer relies on.
type Classifier interface {
	Predict(features []float64) (int, error)
	PredictProba(features []float64) ([2]float64, error)
}

// Scaler standardizes features as (x - mean) / scale before the linear term.
type Scaler struct {
	Mean  []float64 `json:"mean" yaml:"mean"`
	Scale []float64 `json:"scale" yaml:"scale"`
}

// Artifact is the on-disk form of a fitted logistic regression.
type Artifact struct {
	Algorithm    string    `json:"algorithm" yaml:"algorithm"`
	Features     []string  `json:"features" yaml:"features"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	Intercept    float64   `json:"intercept" yaml:"intercept"`
	Scaler       *Scaler   `json:"scaler,omitempty" yaml:"scaler,omitempty"`
	Threshold    float64   `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// LogisticRegression is a binary classifier over a fixed feature order.
type LogisticRegression struct {
	artifact Artifact
}

// Load reads a JSON or YAML artifact, chosen by file extension. When
// features is non-nil the artifact must be fitted on exactly those columns.
func Load(path string, features []string) (*LogisticRegression, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	var a Artifact
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &a)
	default:
		err = json.Unmarshal(data, &a)
	}
	if err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}

	m, err := New(a, features)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return m, nil
}

// New validates an artifact and wraps it as a classifier. A nil features
// list skips the column check.
func New(a Artifact, features []string) (*LogisticRegression, error) {
	n := len(a.Coefficients)
	if n == 0 {
		return nil, fmt.Errorf("%w: no coefficients", ErrInvalidArtifact)
	}
	if len(a.Features) != 0 && len(a.Features) != n {
		return nil, fmt.Errorf("%w: %d features for %d coefficients", ErrInvalidArtifact, len(a.Features), n)
	}
	if features != nil {
		if n != len(features) {
			return nil, fmt.Errorf("%w: %d coefficients, want %d", ErrInvalidArtifact, n, len(features))
		}
		for i, name := range a.Features {
			if name != features[i] {
				return nil, fmt.Errorf("%w: feature %d is %q, want %q", ErrInvalidArtifact, i, name, features[i])
			}
		}
	}
	if a.Scaler != nil {
		if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n {
			return nil, fmt.Errorf("%w: scaler length does not match %d coefficients", ErrInvalidArtifact, n)
		}
		for i, s := range a.Scaler.Scale {
			if s == 0 {
				return nil, fmt.Errorf("%w: zero scale for feature %d", ErrInvalidArtifact, i)
			}
		}
	}
	if a.Threshold == 0 {
		a.Threshold = 0.5
	}
	if a.Threshold <= 0 || a.Threshold >= 1 {
		return nil, fmt.Errorf("%w: threshold %v outside (0, 1)", ErrInvalidArtifact, a.Threshold)
	}
	return &LogisticRegression{artifact: a}, nil
}

// NumFeatures is the expected vector length.
func (m *LogisticRegression) NumFeatures() int {
	return len(m.artifact.Coefficients)
}

func (m *LogisticRegression) Algorithm() string {
	if m.artifact.Algorithm == "" {
		return "logistic_regression"
	}
	return m.artifact.Algorithm
}

// PredictProba returns [p_negative, p_positive].
func (m *LogisticRegression) PredictProba(features []float64) ([2]float64, error) {
	if len(features) != m.NumFeatures() {
		return [2]float64{}, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), m.NumFeatures())
	}

	x := features
	if s := m.artifact.Scaler; s != nil {
		x = make([]float64, len(features))
		floats.SubTo(x, features, s.Mean)
		floats.Div(x, s.Scale)
	}

	p := sigmoid(floats.Dot(x, m.artifact.Coefficients) + m.artifact.Intercept)
	return [2]float64{1 - p, p}, nil
}

// Predict returns 1 when the positive-class probability reaches the threshold.
func (m *LogisticRegression) Predict(features []float64) (int, error) {
	proba, err := m.PredictProba(features)
	if err != nil {
		return 0, err
	}
	if proba[1] >= m.artifact.Threshold {
		return 1, nil
	}
	return 0, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
