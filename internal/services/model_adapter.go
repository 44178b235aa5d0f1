package services

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"skycast/internal/models/dtos"

	"gopkg.in/yaml.v3"
)

// The artifact is the output of a hyperparameter search: a list of fitted
// candidates with their cross-validation scores. The time-encoding step is
// declarative metadata (hhmm_features) rather than an executable pipeline
// stage, so inference can apply a known transform instead of resolving a
// symbol baked in at training time.
type modelArtifact struct {
	Version             int                  `yaml:"version"`
	NumericFeatures     []string             `yaml:"numeric_features"`
	CategoricalFeatures []string             `yaml:"categorical_features"`
	HHMMFeatures        []string             `yaml:"hhmm_features"`
	Candidates          []estimatorCandidate `yaml:"candidates"`
}

type estimatorCandidate struct {
	Params       map[string]float64         `yaml:"params"`
	CVScore      float64                    `yaml:"cv_score"`
	Intercept    float64                    `yaml:"intercept"`
	Coefficients map[string]float64         `yaml:"coefficients"`
	Categorical  map[string]categoryWeights `yaml:"categorical"`
}

type categoryWeights struct {
	Weights map[string]float64 `yaml:"weights"`
	Default float64            `yaml:"default"`
}

// placeholderMax bounds degraded-mode predictions to [0,20] minutes.
const placeholderMax = 20

// defaultFeatureSpec drives the feature builder when no artifact is
// loaded, so degraded-mode requests still validate the same fields.
var defaultFeatureSpec = FeatureSpec{
	Numeric:     []string{"day_of_week", "taxi_out", "taxi_in", "wheels_on", "wheels_off", "crs_dep_time", "distance"},
	Categorical: []string{"origin", "dest", "airline"},
	HHMM:        []string{"wheels_on", "wheels_off", "crs_dep_time"},
}

// ModelAdapter owns the loaded estimator and exposes the narrow predict
// contract. With no estimator it serves bounded placeholder predictions
// instead of failing (degraded mode).
type ModelAdapter struct {
	spec FeatureSpec
	best *estimatorCandidate
}

// LoadModelAdapter reads the artifact, extracts the best-scoring fitted
// candidate and discards the search metadata. It fails if the artifact is
// absent or structurally invalid; callers degrade to a placeholder
// adapter in that case.
func LoadModelAdapter(path string) (*ModelAdapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var artifact modelArtifact
	if err := yaml.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}

	if len(artifact.Candidates) == 0 {
		return nil, fmt.Errorf("model artifact %s has no candidates", path)
	}
	if len(artifact.NumericFeatures) == 0 {
		return nil, fmt.Errorf("model artifact %s declares no numeric features", path)
	}

	best := artifact.Candidates[0]
	for _, c := range artifact.Candidates[1:] {
		if c.CVScore > best.CVScore {
			best = c
		}
	}

	for _, name := range artifact.NumericFeatures {
		if _, ok := best.Coefficients[name]; !ok {
			return nil, fmt.Errorf("model artifact %s: best candidate has no coefficient for %q", path, name)
		}
	}

	return &ModelAdapter{
		spec: FeatureSpec{
			Numeric:     artifact.NumericFeatures,
			Categorical: artifact.CategoricalFeatures,
			HHMM:        artifact.HHMMFeatures,
		},
		best: &best,
	}, nil
}

// NewPlaceholderAdapter returns a degraded-mode adapter with no estimator.
func NewPlaceholderAdapter() *ModelAdapter {
	return &ModelAdapter{spec: defaultFeatureSpec}
}

// Degraded reports whether predictions are placeholders.
func (m *ModelAdapter) Degraded() bool {
	return m.best == nil
}

// FeatureSpec returns the column layout the loaded estimator expects.
func (m *ModelAdapter) FeatureSpec() FeatureSpec {
	return m.spec
}

// Predict scores a feature row, returning the estimate in minutes and its
// source (model or placeholder).
func (m *ModelAdapter) Predict(row *FeatureRow) (float64, string, error) {
	if m.best == nil {
		return float64(rand.Intn(placeholderMax + 1)), dtos.PredictionSourcePlaceholder, nil
	}

	sum := m.best.Intercept
	for _, name := range m.spec.Numeric {
		v, ok := row.Numeric[name]
		if !ok {
			return 0, "", fmt.Errorf("%w: row is missing numeric feature %q", ErrFeatureMismatch, name)
		}
		sum += m.best.Coefficients[name] * v
	}

	for _, name := range m.spec.Categorical {
		v, ok := row.Categorical[name]
		if !ok {
			return 0, "", fmt.Errorf("%w: row is missing categorical feature %q", ErrFeatureMismatch, name)
		}
		cw := m.best.Categorical[name]
		if w, found := cw.Weights[v]; found {
			sum += w
		} else {
			sum += cw.Default
		}
	}

	return math.Round(sum*100) / 100, dtos.PredictionSourceModel, nil
}
