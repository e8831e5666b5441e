package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/goodnatureofminers/chainguard-backend/internal/risk/feature"
)

// ManifestFile is the name of the ensemble manifest inside a model directory.
const ManifestFile = "ensemble_manifest.json"

const weightTolerance = 1e-6

// ErrModelUnavailable reports that no usable trained ensemble could be loaded.
var ErrModelUnavailable = errors.New("trained model unavailable")

// Manifest describes a trained ensemble: its feature columns, the standard
// scaler fitted at training time, the weighted sub-models and the decision threshold.
type Manifest struct {
	Version   string      `json:"version"`
	Threshold float64     `json:"threshold"`
	Features  []string    `json:"features"`
	Scaler    *Scaler     `json:"scaler,omitempty"`
	Models    []ModelSpec `json:"models"`
}

// Scaler standardizes a feature row as (x-mean)/scale.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// ModelSpec is one weighted logistic sub-model.
type ModelSpec struct {
	Name         string    `json:"name"`
	Weight       float64   `json:"weight"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// LoadManifest reads and validates the manifest in dir. A missing or invalid
// manifest is reported as ErrModelUnavailable.
func LoadManifest(dir string) (*Manifest, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: model directory not configured", ErrModelUnavailable)
	}

	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", ErrModelUnavailable, path)
		}
		return nil, fmt.Errorf("%w: read manifest: %v", ErrModelUnavailable, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: decode manifest: %v", ErrModelUnavailable, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return &m, nil
}

// Validate checks the manifest for internal consistency.
func (m *Manifest) Validate() error {
	if len(m.Models) == 0 {
		return errors.New("manifest has no models")
	}
	if len(m.Features) == 0 {
		return errors.New("manifest has no features")
	}
	if m.Threshold <= 0 || m.Threshold >= 1 {
		return fmt.Errorf("threshold %v outside (0,1)", m.Threshold)
	}
	for _, name := range m.Features {
		if _, ok := feature.Index(name); !ok {
			return fmt.Errorf("unknown feature %q", name)
		}
	}
	if m.Scaler != nil && (len(m.Scaler.Mean) != len(m.Features) || len(m.Scaler.Scale) != len(m.Features)) {
		return errors.New("scaler width does not match features")
	}

	var sum float64
	for _, spec := range m.Models {
		if spec.Weight < 0 {
			return fmt.Errorf("model %q has negative weight", spec.Name)
		}
		if len(spec.Coefficients) != len(m.Features) {
			return fmt.Errorf("model %q has %d coefficients, want %d", spec.Name, len(spec.Coefficients), len(m.Features))
		}
		sum += spec.Weight
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("model weights sum to %v, want 1", sum)
	}
	return nil
}

// Transform applies the scaler to a row. A nil scaler returns the row unchanged.
func (s *Scaler) Transform(row []float64) []float64 {
	if s == nil {
		return row
	}
	out := make([]float64, len(row))
	for i, v := range row {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out
}

// Logistic is a logistic-regression sub-model.
type Logistic struct {
	spec ModelSpec
}

// NewLogistic constructs a Logistic sub-model from its spec.
func NewLogistic(spec ModelSpec) *Logistic {
	return &Logistic{spec: spec}
}

// Name implements SubModel.
func (l *Logistic) Name() string { return l.spec.Name }

// PredictProba implements SubModel.
func (l *Logistic) PredictProba(x []float64) (float64, error) {
	if len(x) != len(l.spec.Coefficients) {
		return 0, fmt.Errorf("model %s: got %d features, want %d", l.spec.Name, len(x), len(l.spec.Coefficients))
	}
	z := l.spec.Intercept
	for i, c := range l.spec.Coefficients {
		z += c * x[i]
	}
	p := 1 / (1 + math.Exp(-z))
	if math.IsNaN(p) {
		return 0, fmt.Errorf("model %s: probability is NaN", l.spec.Name)
	}
	return p, nil
}
