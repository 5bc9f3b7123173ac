package predict

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names, fixed relative to the models directory.
const (
	ScalerFile    = "scaler.json"
	DetectorFile  = "leak_detection_model.json"
	RateModelFile = "leak_rate_model.json"
)

// NumFeatures is the width of a sensor feature vector.
const NumFeatures = 5

// FeatureNames is the training-time column order. Artifacts whose
// feature list differs are rejected at load.
var FeatureNames = [NumFeatures]string{"CH4L", "CH4R", "P", "RsL", "RsR"}

// FeatureVector is one sensor sample in fixed column order
// {CH4L, CH4R, P, RsL, RsR}.
type FeatureVector [NumFeatures]float64

// Scaler is a pre-fit standard scaler (z-score transform).
type Scaler struct {
	Features []string  `json:"features"`
	Mean     []float64 `json:"mean"`
	Scale    []float64 `json:"scale"`
}

// Transform normalizes a raw feature vector with the fitted mean/scale.
func (s *Scaler) Transform(v FeatureVector) FeatureVector {
	var out FeatureVector
	for i := range v {
		out[i] = (v[i] - s.Mean[i]) / s.Scale[i]
	}
	return out
}

// Artifacts bundles the three pre-trained estimators loaded from disk.
// It is constructed once at startup and never mutated.
type Artifacts struct {
	Scaler    *Scaler
	Detector  *Forest
	RateModel *Forest
}

// LoadArtifacts deserializes the scaler and both models from dir.
// Any missing, corrupt, or mismatched artifact is an error; callers
// treat that as fatal.
func LoadArtifacts(dir string) (*Artifacts, error) {
	var scaler Scaler
	if err := readJSON(filepath.Join(dir, ScalerFile), &scaler); err != nil {
		return nil, err
	}
	if err := validateScaler(&scaler); err != nil {
		return nil, fmt.Errorf("%s: %w", ScalerFile, err)
	}

	var detector Forest
	if err := readJSON(filepath.Join(dir, DetectorFile), &detector); err != nil {
		return nil, err
	}
	if err := validateForest(&detector, KindClassifier); err != nil {
		return nil, fmt.Errorf("%s: %w", DetectorFile, err)
	}

	var rateModel Forest
	if err := readJSON(filepath.Join(dir, RateModelFile), &rateModel); err != nil {
		return nil, err
	}
	if err := validateForest(&rateModel, KindRegressor); err != nil {
		return nil, fmt.Errorf("%s: %w", RateModelFile, err)
	}

	return &Artifacts{Scaler: &scaler, Detector: &detector, RateModel: &rateModel}, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func validateScaler(s *Scaler) error {
	if err := checkFeatures(s.Features); err != nil {
		return err
	}
	if len(s.Mean) != NumFeatures || len(s.Scale) != NumFeatures {
		return fmt.Errorf("expected %d mean/scale entries, got %d/%d", NumFeatures, len(s.Mean), len(s.Scale))
	}
	for i, sc := range s.Scale {
		if sc == 0 {
			return fmt.Errorf("zero scale for feature %s", FeatureNames[i])
		}
	}
	return nil
}

func validateForest(f *Forest, kind string) error {
	if f.Kind != kind {
		return fmt.Errorf("expected a %s, got %q", kind, f.Kind)
	}
	if err := checkFeatures(f.Features); err != nil {
		return err
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	if kind == KindClassifier {
		// Positive label must be literally 1; reject any other encoding
		// up front instead of silently never detecting.
		if len(f.Classes) != 2 || f.Classes[0] != 0 || f.Classes[1] != 1 {
			return fmt.Errorf("classifier classes must be [0,1], got %v", f.Classes)
		}
	}
	for ti, t := range f.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, n := range t.Nodes {
			if n.Left < 0 {
				continue // leaf
			}
			if n.Feature < 0 || n.Feature >= NumFeatures {
				return fmt.Errorf("tree %d node %d: feature index %d out of range", ti, ni, n.Feature)
			}
			if n.Left >= len(t.Nodes) || n.Right < 0 || n.Right >= len(t.Nodes) {
				return fmt.Errorf("tree %d node %d: child index out of range", ti, ni)
			}
		}
	}
	return nil
}

func checkFeatures(features []string) error {
	if len(features) != NumFeatures {
		return fmt.Errorf("expected %d features, got %d", NumFeatures, len(features))
	}
	for i, name := range features {
		if name != FeatureNames[i] {
			return fmt.Errorf("feature %d is %q, want %q", i, name, FeatureNames[i])
		}
	}
	return nil
}
