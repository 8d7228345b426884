package dart

import (
	"fmt"
	"log"
)

// RemovalReport summarizes what a single Remove call did: how many
// retrains it triggered and at what depths, how many leaves had only
// their prediction updated, and how many samples were fed into
// retraining. NConvertedToLeaf is an enrichment beyond the spec's four
// fields: a structural conversion to a leaf (spec §4.4.3a) is, per
// scenario 2, distinct from a retrain, so it gets its own counter
// instead of being folded into either NRetrains or NLeafUpdates.
type RemovalReport struct {
	NRetrains         int
	RetrainDepths     []int
	NLeafUpdates      int
	NSamplesRetrained int
	NConvertedToLeaf  int
}

func (r *RemovalReport) merge(o *RemovalReport) {
	r.NRetrains += o.NRetrains
	r.RetrainDepths = append(r.RetrainDepths, o.RetrainDepths...)
	r.NLeafUpdates += o.NLeafUpdates
	r.NSamplesRetrained += o.NSamplesRetrained
	r.NConvertedToLeaf += o.NConvertedToLeaf
}

// Remove deletes the batch of sample ids in ids from tree, mutating it
// in place, per spec §4.4. It fails with ErrUnknownID/ErrAlreadyRemoved
// (wrapped in an *IDError) without mutating anything if any id is
// invalid, and with ErrPoisoned without mutating anything if tree
// suffered a resource-exhaustion failure on a previous call.
func Remove(tree *Tree, ids []int) (*RemovalReport, error) {
	if tree.poisoned {
		return nil, ErrPoisoned
	}
	if err := tree.Data.MarkRemoved(ids); err != nil {
		return nil, err
	}

	report := &RemovalReport{}
	var panicErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				tree.poisoned = true
				panicErr = fmt.Errorf("%w: %v", ErrPoisoned, r)
			}
		}()
		tree.descend(&tree.Root, ids, report)
	}()
	if panicErr != nil {
		return nil, panicErr
	}

	tree.cumRetrains += report.NRetrains
	tree.cumRetrainDepths = append(tree.cumRetrainDepths, report.RetrainDepths...)
	tree.cumLeafUpdates += report.NLeafUpdates
	tree.cumSamplesRetrained += report.NSamplesRetrained

	return report, nil
}

// Metrics returns the cumulative telemetry accumulated across every
// Remove call since the tree was built or last cleared. Leaf conversions
// are not accumulated: NConvertedToLeaf is always zero here and is only
// reported in each call's own RemovalReport.
func (t *Tree) Metrics() RemovalReport {
	return RemovalReport{
		NRetrains:         t.cumRetrains,
		RetrainDepths:     append([]int(nil), t.cumRetrainDepths...),
		NLeafUpdates:      t.cumLeafUpdates,
		NSamplesRetrained: t.cumSamplesRetrained,
	}
}

// ClearRemovalMetrics resets tree's cumulative telemetry to zero.
func ClearRemovalMetrics(tree *Tree) {
	tree.cumRetrains = 0
	tree.cumRetrainDepths = nil
	tree.cumLeafUpdates = 0
	tree.cumSamplesRetrained = 0
}

// descend implements the per-node descent/update/validity-check/retrain
// procedure of spec §4.4 at *nodePtr, for the subset removeIDs of the
// removal batch that route through this node. nodePtr is passed so a
// retrain or leaf-conversion can splice a replacement node in place
// without a parent pointer.
func (t *Tree) descend(nodePtr **Node, removeIDs []int, report *RemovalReport) {
	if len(removeIDs) == 0 {
		return
	}
	n := *nodePtr

	removedPositive := 0
	removedSet := make(map[int]struct{}, len(removeIDs))
	for _, id := range removeIDs {
		removedSet[id] = struct{}{}
		if t.Data.Label(id) != 0 {
			removedPositive++
		}
	}

	n.SampleCount -= len(removeIDs)
	n.PositiveCount -= removedPositive
	n.SampleIDs = filterOutIDs(n.SampleIDs, removedSet)

	if n.IsLeaf() {
		n.Leaf.PredictedProbability = leafProbability(n.SampleCount, n.PositiveCount)
		report.NLeafUpdates++
		return
	}

	for _, f := range n.Internal.Features {
		for _, id := range removeIDs {
			onLeft := t.Data.Feature(id, f) == 0
			positive := t.Data.Label(id) != 0
			n.Internal.Meta.DecrementOne(f, onLeft, positive)
		}
	}

	pure := n.PositiveCount == 0 || n.PositiveCount == n.SampleCount
	eligible, pi := giniSelection(n.Internal.Meta, n.Internal.Features, t.Params.MinSamplesLeaf, t.Params.Lambda)
	structurallyImpossible := n.SampleCount < t.Params.MinSamplesSplit || pure || eligible == nil

	if structurallyImpossible {
		remaining := collectLeafSampleIDs(n, removedSet, nil)
		*nodePtr = newLeaf(n.Depth, remaining, n.PositiveCount)
		report.NConvertedToLeaf++
		return
	}

	idx := selectFromPi(pi, n.Internal.U)
	stillValid := eligible[idx] == n.Internal.ChosenFeature

	if !stillValid {
		remaining := collectLeafSampleIDs(n, removedSet, nil)
		*nodePtr = t.buildNode(remaining, n.Internal.Features, n.Depth)
		report.NRetrains++
		report.RetrainDepths = append(report.RetrainDepths, n.Depth)
		report.NSamplesRetrained += len(remaining)
		log.Printf("dart: retrained subtree at depth %d (%d samples)\n", n.Depth, len(remaining))
		return
	}

	var leftIDs, rightIDs []int
	for _, id := range removeIDs {
		if t.Data.Feature(id, n.Internal.ChosenFeature) == 0 {
			leftIDs = append(leftIDs, id)
		} else {
			rightIDs = append(rightIDs, id)
		}
	}
	if len(leftIDs) > 0 {
		t.descend(&n.Internal.Left, leftIDs, report)
	}
	if len(rightIDs) > 0 {
		t.descend(&n.Internal.Right, rightIDs, report)
	}
}

// filterOutIDs returns ids with every id present in exclude removed,
// preserving order.
func filterOutIDs(ids []int, exclude map[int]struct{}) []int {
	if len(exclude) == 0 {
		return ids
	}
	out := ids[:0:0]
	for _, id := range ids {
		if _, skip := exclude[id]; !skip {
			out = append(out, id)
		}
	}
	return out
}
