package predict

// Forest kinds as carried in the artifact files.
const (
	KindClassifier = "classifier"
	KindRegressor  = "regressor"
)

// Node is one decision-tree node in a flat node array.
// Left/Right of -1 marks a leaf; Value is then the leaf output
// (predicted class for classifier trees, mean target for regressor trees).
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a single decision tree; Nodes[0] is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t *Tree) eval(v FeatureVector) float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Left < 0 {
			return n.Value
		}
		if v[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Forest is a pre-trained random forest exported from the training
// environment.
type Forest struct {
	Kind     string   `json:"kind"`
	Features []string `json:"features"`
	Classes  []int    `json:"classes,omitempty"`
	Trees    []Tree   `json:"trees"`
}

// Classify returns the majority-vote class label for a scaled vector.
// Ties go to the lower class, matching the training library's behavior.
func (f *Forest) Classify(v FeatureVector) int {
	positive := 0
	for i := range f.Trees {
		if f.Trees[i].eval(v) == 1 {
			positive++
		}
	}
	if positive*2 > len(f.Trees) {
		return 1
	}
	return 0
}

// Regress returns the mean of the per-tree predictions for a scaled vector.
func (f *Forest) Regress(v FeatureVector) float64 {
	sum := 0.0
	for i := range f.Trees {
		sum += f.Trees[i].eval(v)
	}
	return sum / float64(len(f.Trees))
}
