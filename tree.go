package dart

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Params collects the global parameters of a Tree. TopD and K are
// carried over from the source's continuous-feature/top-d-retrain
// variant (spec §9) but are not implemented here: this package only
// supports the full-tree boolean-feature protocol, so Validate rejects
// any non-zero value.
type Params struct {
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	Lambda          float64
	Seed            int64

	TopD int // deprecated, must be 0
	K    int // deprecated, must be 0
}

// Validate checks that p is usable by Build, returning ErrInvalidParams
// wrapped with the offending field otherwise.
func (p Params) Validate() error {
	switch {
	case p.MaxDepth < 0:
		return fmt.Errorf("%w: max_depth must be >= 0", ErrInvalidParams)
	case p.MinSamplesSplit < 2:
		return fmt.Errorf("%w: min_samples_split must be >= 2", ErrInvalidParams)
	case p.MinSamplesLeaf < 1:
		return fmt.Errorf("%w: min_samples_leaf must be >= 1", ErrInvalidParams)
	case p.Lambda <= 0:
		return fmt.Errorf("%w: lambda must be > 0", ErrInvalidParams)
	case p.TopD != 0:
		return fmt.Errorf("%w: topd is deprecated and unsupported, leave at 0", ErrInvalidParams)
	case p.K != 0:
		return fmt.Errorf("%w: k is deprecated and unsupported, leave at 0", ErrInvalidParams)
	}
	return nil
}

// Tree owns a root Node, the parameters it was built with, the
// DataManager backing its samples, and the RNG threaded explicitly
// through every build/split/retrain call (spec §9: "there is no ambient
// randomness").
type Tree struct {
	Root   *Node
	Params Params
	Data   *DataManager

	rng      *rand.Rand
	poisoned bool

	cumRetrains         int
	cumRetrainDepths    []int
	cumLeafUpdates      int
	cumSamplesRetrained int
}

// Build constructs a Tree from scratch over X (n x d binary) and y (n
// binary), per spec §4.3/§6.
func Build(x *mat.Dense, y *mat.VecDense, params Params) (*Tree, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	dm, err := NewDataManager(x, y)
	if err != nil {
		return nil, err
	}

	features := make([]int, dm.NumFeatures())
	for i := range features {
		features[i] = i
	}
	ids := make([]int, dm.NumSamples())
	for i := range ids {
		ids[i] = i
	}

	t := &Tree{
		Params: params,
		Data:   dm,
		rng:    rand.New(rand.NewSource(params.Seed)),
	}
	t.Root = t.buildNode(ids, features, 0)
	return t, nil
}

// buildNode implements the recursive tree-builder algorithm of spec
// §4.3: stop and emit a leaf on depth/size/purity/exhausted-features,
// otherwise split and recurse on both children with F minus the chosen
// feature.
func (t *Tree) buildNode(ids []int, features []int, depth int) *Node {
	positiveCount := 0
	for _, id := range ids {
		if t.Data.Label(id) != 0 {
			positiveCount++
		}
	}
	sampleCount := len(ids)

	if sampleCount < t.Params.MinSamplesSplit ||
		depth == t.Params.MaxDepth ||
		positiveCount == 0 || positiveCount == sampleCount ||
		len(features) == 0 {
		return newLeaf(depth, ids, positiveCount)
	}

	view := t.Data.Get(ids)
	rec, meta, u, err := split(view, features, t.Params.MinSamplesLeaf, t.Params.Lambda, t.rng)
	if err != nil {
		return newLeaf(depth, ids, positiveCount)
	}

	left := t.buildNode(rec.LeftIDs, rec.Features, depth+1)
	right := t.buildNode(rec.RightIDs, rec.Features, depth+1)

	return &Node{
		Depth:         depth,
		SampleCount:   sampleCount,
		PositiveCount: positiveCount,
		SampleIDs:     ids,
		Internal: &InternalData{
			ChosenFeature: rec.Feature,
			Left:          left,
			Right:         right,
			Features:      features,
			Meta:          meta,
			U:             u,
		},
	}
}
