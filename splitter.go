package dart

import (
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// errNoValidSplit signals that no candidate feature satisfies the
// min-samples-leaf eligibility filter. This is not a boundary error
// (spec §7): the builder and the Remover both treat it as "emit a
// leaf", never surface it past this package.
var errNoValidSplit = errors.New("dart: no eligible split")

// SplitRecord is the result of a successful Split: the chosen feature,
// the two partitions of sample ids, and the feature set the children
// inherit (F minus the chosen feature).
type SplitRecord struct {
	Feature           int
	LeftIDs, RightIDs []int
	Features          []int
}

// gini computes g(c, p) = 1 - (p/c)^2 - ((c-p)/c)^2, defined as 0 for an
// empty node.
func gini(c, p int) float64 {
	if c == 0 {
		return 0
	}
	q := float64(p) / float64(c)
	return 1 - q*q - (1-q)*(1-q)
}

// weightedScore computes G(f') for one candidate split, the sample-count
// weighted sum of the Gini impurity on each side.
func weightedScore(cL, pL, cR, pR int) float64 {
	c := cL + cR
	return float64(cL)/float64(c)*gini(cL, pL) + float64(cR)/float64(c)*gini(cR, pR)
}

// scanFeature scans the view once for feature f and returns the left
// (X[.,f]==0) and right counts and positive counts, by convention
// left = value 0.
func scanFeature(view *View, f int) (cL, pL, cR, pR int) {
	for i := 0; i < view.Len(); i++ {
		positive := view.Label(i) != 0
		if view.Feature(i, f) == 0 {
			cL++
			if positive {
				pL++
			}
		} else {
			cR++
			if positive {
				pR++
			}
		}
	}
	return
}

// buildMeta scans every candidate feature once and returns the dense
// sufficient-statistics block for all of them, eligible or not -- the
// node invariant (spec §3) requires Meta to cover the whole of F(N).
func buildMeta(view *View, features []int) *Meta {
	meta := newMeta(features)
	for _, f := range features {
		cL, pL, cR, pR := scanFeature(view, f)
		meta.Set(f, cL, cR, pL, pR)
	}
	return meta
}

// giniSelection filters features down to the ones eligible under
// minSamplesLeaf and returns them alongside the numerically stable
// Gibbs distribution pi(f') proportional to exp(-G(f')/lambda). It
// returns (nil, nil) when no feature is eligible.
func giniSelection(meta *Meta, features []int, minSamplesLeaf int, lambda float64) (eligible []int, pi []float64) {
	logWeights := make([]float64, 0, len(features))
	for _, f := range features {
		cL, cR := meta.LeftCount(f), meta.RightCount(f)
		if cL < minSamplesLeaf || cR < minSamplesLeaf {
			continue
		}
		g := weightedScore(cL, meta.LeftPos(f), cR, meta.RightPos(f))
		eligible = append(eligible, f)
		logWeights = append(logWeights, -g/lambda)
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	// Numerically stable softmax: subtract the log-normalizer before
	// exponentiating, computed with gonum's LogSumExp rather than a
	// hand-rolled max-subtraction.
	logZ := floats.LogSumExp(logWeights)
	pi = make([]float64, len(logWeights))
	for i, lw := range logWeights {
		pi[i] = math.Exp(lw - logZ)
	}
	return eligible, pi
}

// selectFromPi maps a uniform draw u in [0,1) to an index into pi via
// its cumulative distribution. Persisting u (rather than the resulting
// index or feature) is what lets the Remover recompute pi' on updated
// statistics and test for an identical outcome exactly, per spec §9.
func selectFromPi(pi []float64, u float64) int {
	cum := make([]float64, len(pi))
	floats.CumSum(cum, pi)
	for i, c := range cum {
		if u < c {
			return i
		}
	}
	return len(pi) - 1
}

// split chooses a split feature for the sample ids in view from the
// candidate features in features, using rng for the randomized Gibbs
// draw. It returns errNoValidSplit when no feature is eligible.
func split(view *View, features []int, minSamplesLeaf int, lambda float64, rng *rand.Rand) (*SplitRecord, *Meta, float64, error) {
	meta := buildMeta(view, features)

	eligible, pi := giniSelection(meta, features, minSamplesLeaf, lambda)
	if eligible == nil {
		return nil, meta, 0, errNoValidSplit
	}

	u := rng.Float64()
	chosen := eligible[selectFromPi(pi, u)]

	var leftIDs, rightIDs []int
	for i := 0; i < view.Len(); i++ {
		id := view.IDs[i]
		if view.Feature(i, chosen) == 0 {
			leftIDs = append(leftIDs, id)
		} else {
			rightIDs = append(rightIDs, id)
		}
	}

	rec := &SplitRecord{
		Feature:  chosen,
		LeftIDs:  leftIDs,
		RightIDs: rightIDs,
		Features: withoutFeature(features, chosen),
	}
	return rec, meta, u, nil
}
