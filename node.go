package dart

// Node is a tagged variant: exactly one of Leaf or Internal is non-nil.
// The two variants share Depth, SampleCount, PositiveCount and SampleIDs;
// everything else about how a node behaves is dispatched on the tag,
// checked once per visit by IsLeaf.
type Node struct {
	Depth         int
	SampleCount   int
	PositiveCount int
	SampleIDs     []int

	Leaf     *LeafData
	Internal *InternalData
}

// LeafData holds the fields specific to a leaf node.
type LeafData struct {
	PredictedProbability float64
}

// InternalData holds the fields specific to an internal node.
type InternalData struct {
	ChosenFeature int
	Left, Right   *Node
	Features      []int // F(N): candidate feature set considered at this node
	Meta          *Meta
	U             float64 // persisted uniform draw used to pick ChosenFeature from Meta's pi
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Leaf != nil
}

// newLeaf builds a Leaf node from the given sample ids and positive
// count, by convention predicting 0.5 for an empty node (spec §8,
// boundary case "all samples removed").
func newLeaf(depth int, sampleIDs []int, positiveCount int) *Node {
	n := &Node{
		Depth:         depth,
		SampleCount:   len(sampleIDs),
		PositiveCount: positiveCount,
		SampleIDs:     sampleIDs,
		Leaf:          &LeafData{PredictedProbability: leafProbability(len(sampleIDs), positiveCount)},
	}
	return n
}

// leafProbability computes positiveCount/sampleCount, by convention
// returning 0.5 for an empty node rather than NaN.
func leafProbability(sampleCount, positiveCount int) float64 {
	if sampleCount == 0 {
		return 0.5
	}
	return float64(positiveCount) / float64(sampleCount)
}

// withoutFeature returns a copy of features with f removed.
func withoutFeature(features []int, f int) []int {
	out := make([]int, 0, len(features)-1)
	for _, g := range features {
		if g != f {
			out = append(out, g)
		}
	}
	return out
}

// collectLeafSampleIDs walks every descendant leaf of n and appends its
// sample ids to ids, excluding anything present in exclude. This is the
// O(size of subtree) leaf-collection step used before a retrain.
func collectLeafSampleIDs(n *Node, exclude map[int]struct{}, ids []int) []int {
	if n == nil {
		return ids
	}
	if n.IsLeaf() {
		for _, id := range n.SampleIDs {
			if _, skip := exclude[id]; !skip {
				ids = append(ids, id)
			}
		}
		return ids
	}
	ids = collectLeafSampleIDs(n.Internal.Left, exclude, ids)
	ids = collectLeafSampleIDs(n.Internal.Right, exclude, ids)
	return ids
}

// maxDepth returns the maximum depth of any node in the subtree rooted
// at n.
func maxDepth(n *Node) int {
	if n == nil {
		return -1
	}
	if n.IsLeaf() {
		return n.Depth
	}
	l := maxDepth(n.Internal.Left)
	r := maxDepth(n.Internal.Right)
	if l > r {
		return l
	}
	return r
}
