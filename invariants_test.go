package dart

import "testing"

// checkInvariants walks a built tree and asserts the universal
// per-node invariants of spec §3/§8: a node's sample/positive counts
// equal the sum of its children's, an internal node's Meta column sums
// for the chosen feature equal the node's own counts, children inherit
// F(N) minus the chosen feature with strictly decreasing |F|, and depth
// increases by exactly one per level.
func checkInvariants(t *testing.T, n *Node) {
	t.Helper()
	if n.IsLeaf() {
		return
	}
	in := n.Internal
	if in.Left.Depth != n.Depth+1 || in.Right.Depth != n.Depth+1 {
		t.Fatalf("child depth mismatch at depth %d: left=%d right=%d", n.Depth, in.Left.Depth, in.Right.Depth)
	}
	if got := n.SampleCount; got != in.Left.SampleCount+in.Right.SampleCount {
		t.Fatalf("sample count not conserved: node=%d children=%d+%d", got, in.Left.SampleCount, in.Right.SampleCount)
	}
	if got := n.PositiveCount; got != in.Left.PositiveCount+in.Right.PositiveCount {
		t.Fatalf("positive count not conserved: node=%d children=%d+%d", got, in.Left.PositiveCount, in.Right.PositiveCount)
	}
	if in.Meta.SampleCount(in.ChosenFeature) != n.SampleCount {
		t.Fatalf("meta sample count for chosen feature = %d, want %d", in.Meta.SampleCount(in.ChosenFeature), n.SampleCount)
	}
	if in.Meta.PositiveCount(in.ChosenFeature) != n.PositiveCount {
		t.Fatalf("meta positive count for chosen feature = %d, want %d", in.Meta.PositiveCount(in.ChosenFeature), n.PositiveCount)
	}
	for _, child := range []*Node{in.Left, in.Right} {
		if child.IsLeaf() {
			continue
		}
		if len(child.Internal.Features) != len(in.Features)-1 {
			t.Fatalf("child feature set size = %d, want %d", len(child.Internal.Features), len(in.Features)-1)
		}
		for _, f := range child.Internal.Features {
			if f == in.ChosenFeature {
				t.Fatalf("child feature set still contains chosen feature %d", f)
			}
		}
	}
	checkInvariants(t, in.Left)
	checkInvariants(t, in.Right)
}

func TestBuildInvariantsHoldOnDenseDataset(t *testing.T) {
	x := matrixOf([][]float64{
		{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1},
		{1, 0, 0}, {1, 0, 1}, {1, 1, 0}, {1, 1, 1},
	})
	y := vectorOf([]float64{0, 0, 1, 1, 1, 0, 1, 0})

	params := defaultParams()
	params.MaxDepth = 3
	tree, err := Build(x, y, params)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	checkInvariants(t, tree.Root)
}

func TestInvariantsHoldAfterRemoval(t *testing.T) {
	x := matrixOf([][]float64{
		{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1},
		{1, 0, 0}, {1, 0, 1}, {1, 1, 0}, {1, 1, 1},
	})
	y := vectorOf([]float64{0, 0, 1, 1, 1, 0, 1, 0})

	params := defaultParams()
	params.MaxDepth = 3
	tree, err := Build(x, y, params)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, err := Remove(tree, []int{0, 3, 5}); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	checkInvariants(t, tree.Root)
}
