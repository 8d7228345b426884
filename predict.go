package dart

import "gonum.org/v1/gonum/mat"

// Predict walks tree for every row of x and returns the leaf predicted
// probability reached by that row (spec §6). x must have the same
// number of columns the tree was built with.
func Predict(tree *Tree, x *mat.Dense) []float64 {
	n, _ := x.Dims()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = predictRow(tree.Root, x, i)
	}
	return out
}

// PredictOne walks tree for a single row, given as a plain feature
// slice, and returns the leaf predicted probability.
func PredictOne(tree *Tree, row []float64) float64 {
	n := tree.Root
	for !n.IsLeaf() {
		f := n.Internal.ChosenFeature
		if row[f] == 0 {
			n = n.Internal.Left
		} else {
			n = n.Internal.Right
		}
	}
	return n.Leaf.PredictedProbability
}

func predictRow(n *Node, x *mat.Dense, row int) float64 {
	for !n.IsLeaf() {
		f := n.Internal.ChosenFeature
		if x.At(row, f) == 0 {
			n = n.Internal.Left
		} else {
			n = n.Internal.Right
		}
	}
	return n.Leaf.PredictedProbability
}
