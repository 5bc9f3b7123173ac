package predict

// Result is the outcome of one prediction. Rate is meaningful only
// when Leak is true.
type Result struct {
	Leak bool
	Rate float64
}

// Predictor runs the detection and rate models against sensor samples.
// It holds explicit references to the loaded artifacts; there is no
// package-level model state.
type Predictor struct {
	arts *Artifacts
}

// NewPredictor wraps loaded artifacts in a Predictor.
func NewPredictor(arts *Artifacts) *Predictor {
	return &Predictor{arts: arts}
}

// Predict scales the raw vector, classifies it, and on a positive label
// estimates the leak rate with the regressor. Inputs are assumed to be
// finite; the caller validates them at the edge.
func (p *Predictor) Predict(v FeatureVector) Result {
	scaled := p.arts.Scaler.Transform(v)
	if p.arts.Detector.Classify(scaled) != 1 {
		return Result{}
	}
	return Result{Leak: true, Rate: p.arts.RateModel.Regress(scaled)}
}

// Artifacts exposes the loaded artifacts (read-only use).
func (p *Predictor) Artifacts() *Artifacts {
	return p.arts
}
