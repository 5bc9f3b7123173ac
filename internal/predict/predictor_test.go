package predict

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leafTree returns a single-leaf tree that always predicts v.
func leafTree(v float64) Tree {
	return Tree{Nodes: []Node{{Left: -1, Right: -1, Value: v}}}
}

// stumpTree splits on one feature: <= threshold predicts lo, otherwise hi.
func stumpTree(feature int, threshold, lo, hi float64) Tree {
	return Tree{Nodes: []Node{
		{Feature: feature, Threshold: threshold, Left: 1, Right: 2},
		{Left: -1, Right: -1, Value: lo},
		{Left: -1, Right: -1, Value: hi},
	}}
}

func identityScaler() *Scaler {
	return &Scaler{
		Features: FeatureNames[:],
		Mean:     []float64{0, 0, 0, 0, 0},
		Scale:    []float64{1, 1, 1, 1, 1},
	}
}

func classifier(trees ...Tree) *Forest {
	return &Forest{Kind: KindClassifier, Features: FeatureNames[:], Classes: []int{0, 1}, Trees: trees}
}

func regressor(trees ...Tree) *Forest {
	return &Forest{Kind: KindRegressor, Features: FeatureNames[:], Trees: trees}
}

func TestScalerTransform(t *testing.T) {
	s := &Scaler{
		Features: FeatureNames[:],
		Mean:     []float64{1, 2, 3, 4, 5},
		Scale:    []float64{2, 2, 2, 2, 2},
	}
	got := s.Transform(FeatureVector{3, 2, 3, 0, 10})
	assert.Equal(t, FeatureVector{1, 0, 0, -2, 2.5}, got)
}

func TestForestClassify(t *testing.T) {
	t.Run("MajorityVote", func(t *testing.T) {
		f := classifier(leafTree(1), leafTree(1), leafTree(0))
		assert.Equal(t, 1, f.Classify(FeatureVector{}))
	})

	t.Run("TieGoesToNegative", func(t *testing.T) {
		f := classifier(leafTree(1), leafTree(0))
		assert.Equal(t, 0, f.Classify(FeatureVector{}))
	})

	t.Run("StumpSplit", func(t *testing.T) {
		f := classifier(stumpTree(2, 0.5, 0, 1))
		assert.Equal(t, 0, f.Classify(FeatureVector{0, 0, 0.5, 0, 0}))
		assert.Equal(t, 1, f.Classify(FeatureVector{0, 0, 0.51, 0, 0}))
	})
}

func TestForestRegress(t *testing.T) {
	f := regressor(leafTree(2), leafTree(4), leafTree(6))
	assert.InDelta(t, 4.0, f.Regress(FeatureVector{}), 1e-12)
}

func TestPredictorNoLeak(t *testing.T) {
	p := NewPredictor(&Artifacts{
		Scaler:    identityScaler(),
		Detector:  classifier(leafTree(0)),
		RateModel: regressor(leafTree(9.9)),
	})

	res := p.Predict(FeatureVector{0, 0, 0, 0, 0})
	assert.False(t, res.Leak)
	assert.Zero(t, res.Rate)
}

func TestPredictorLeakWithRate(t *testing.T) {
	p := NewPredictor(&Artifacts{
		Scaler:    identityScaler(),
		Detector:  classifier(stumpTree(0, 0.5, 0, 1)),
		RateModel: regressor(leafTree(3.25)),
	})

	t.Run("BelowThreshold", func(t *testing.T) {
		res := p.Predict(FeatureVector{0.4, 0, 0, 0, 0})
		assert.False(t, res.Leak)
	})

	t.Run("AboveThreshold", func(t *testing.T) {
		res := p.Predict(FeatureVector{2, 0, 0, 0, 0})
		require.True(t, res.Leak)
		assert.InDelta(t, 3.25, res.Rate, 1e-12)
	})
}

func TestPredictorTotality(t *testing.T) {
	// For well-formed non-negative input the result is always either
	// (false, 0) or (true, finite rate).
	p := NewPredictor(&Artifacts{
		Scaler: &Scaler{
			Features: FeatureNames[:],
			Mean:     []float64{10, 10, 5, 100, 100},
			Scale:    []float64{3, 3, 2, 40, 40},
		},
		Detector:  classifier(stumpTree(0, 0, 0, 1), stumpTree(3, -1, 0, 1), leafTree(1)),
		RateModel: regressor(stumpTree(2, 0.2, 1.5, 8.75), leafTree(4)),
	})

	inputs := []FeatureVector{
		{0, 0, 0, 0, 0},
		{0.01, 0.02, 0.03, 0.04, 0.05},
		{100, 200, 300, 400, 500},
		{1e9, 1e9, 1e9, 1e9, 1e9},
		{5, 0, 12.5, 99.99, 0.25},
	}
	for _, v := range inputs {
		res := p.Predict(v)
		if res.Leak {
			assert.False(t, math.IsNaN(res.Rate) || math.IsInf(res.Rate, 0), "rate must be finite for %v", v)
		} else {
			assert.Zero(t, res.Rate)
		}
	}
}
