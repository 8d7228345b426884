package dart

import (
	"errors"
	"testing"
)

func defaultParams() Params {
	return Params{
		MaxDepth:        2,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Lambda:          1e-6,
		Seed:            0,
	}
}

// TestBuildAndPredictScenario1 covers spec §8 scenario 1: a perfectly
// separable 2-feature dataset where feature 0 alone determines the
// label, so the Gibbs selection (at this lambda) must pick it and the
// resulting tree must predict y exactly.
func TestBuildAndPredictScenario1(t *testing.T) {
	x := matrixOf([][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
	y := vectorOf([]float64{0, 0, 1, 1})

	tree, err := Build(x, y, defaultParams())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tree.Root.IsLeaf() {
		t.Fatalf("root should not be a leaf for a separable dataset")
	}
	if tree.Root.Internal.ChosenFeature != 0 {
		t.Fatalf("chosen feature = %d, want 0", tree.Root.Internal.ChosenFeature)
	}

	preds := Predict(tree, x)
	want := []float64{0, 0, 1, 1}
	for i, p := range preds {
		got := 0.0
		if p >= 0.5 {
			got = 1
		}
		if got != want[i] {
			t.Fatalf("row %d: predicted class %v, want %v (raw %v)", i, got, want[i], p)
		}
	}
}

func TestBuildRejectsInvalidParams(t *testing.T) {
	x := matrixOf([][]float64{{0}, {1}})
	y := vectorOf([]float64{0, 1})

	bad := defaultParams()
	bad.Lambda = 0
	if _, err := Build(x, y, bad); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("got %v, want ErrInvalidParams", err)
	}

	bad = defaultParams()
	bad.TopD = 3
	if _, err := Build(x, y, bad); !errors.Is(err, ErrInvalidParams) {
		t.Fatalf("got %v, want ErrInvalidParams for nonzero TopD", err)
	}
}

func TestBuildStopsOnPureNode(t *testing.T) {
	x := matrixOf([][]float64{{0}, {0}, {0}})
	y := vectorOf([]float64{1, 1, 1})

	tree, err := Build(x, y, defaultParams())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !tree.Root.IsLeaf() {
		t.Fatalf("a pure node must be built as a leaf")
	}
	if tree.Root.Leaf.PredictedProbability != 1 {
		t.Fatalf("leaf probability = %v, want 1", tree.Root.Leaf.PredictedProbability)
	}
}

func TestBuildStopsWhenFeaturesExhausted(t *testing.T) {
	// A single feature: after one split no features remain for the
	// children, so a mixed-label child must still terminate as a leaf.
	x := matrixOf([][]float64{{0}, {0}, {1}, {1}})
	y := vectorOf([]float64{0, 1, 0, 1})

	params := defaultParams()
	params.MaxDepth = 10
	tree, err := Build(x, y, params)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if maxDepth(tree.Root) > 1 {
		t.Fatalf("tree depth = %d, want <= 1 once the only feature is exhausted", maxDepth(tree.Root))
	}
}

func TestEqualDetectsDivergence(t *testing.T) {
	x := matrixOf([][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
	y := vectorOf([]float64{0, 0, 1, 1})

	a, err := Build(x, y, defaultParams())
	if err != nil {
		t.Fatalf("Build a: %v", err)
	}
	b, err := Build(x, y, defaultParams())
	if err != nil {
		t.Fatalf("Build b: %v", err)
	}
	if !Equal(a, b) {
		t.Fatalf("two trees built from identical data/params/seed must be Equal")
	}

	b2, err := Build(matrixOf([][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 0}}), vectorOf([]float64{0, 0, 1, 0}), defaultParams())
	if err != nil {
		t.Fatalf("Build b2: %v", err)
	}
	if Equal(a, b2) {
		t.Fatalf("trees built from different data must not be Equal")
	}
}
