package dart

import "gorgonia.org/tensor"

// metaCol indexes the four sufficient statistics gorgonia/tensor stores
// per candidate feature.
const (
	metaColLeftCount = iota
	metaColRightCount
	metaColLeftPos
	metaColRightPos
	metaNumCols
)

// Meta is the per-node sufficient-statistics block: for every candidate
// feature f' in the node's feature set, the counts and positive counts
// on each side of a split on f'. It is stored densely, indexed by the
// node's local feature set, and is never recomputed from scratch during
// descent -- only ever incrementally updated by Remove.
//
// The backing store is a gorgonia.org/tensor Dense of shape
// (len(Features), 4), the same dense-preallocated-array idiom the
// domain stack uses for its own per-node hessian tensor, sized exactly
// to the spec's Sum_nodes |F(N)| x (4 x int) storage-cost formula.
type Meta struct {
	Features []int // parallel to the tensor's rows
	index    map[int]int
	counts   *tensor.Dense
}

// newMeta allocates a zeroed Meta for the given candidate feature set.
func newMeta(features []int) *Meta {
	m := &Meta{
		Features: features,
		index:    make(map[int]int, len(features)),
		counts:   tensor.New(tensor.WithShape(len(features), metaNumCols), tensor.Of(tensor.Int)),
	}
	for i, f := range features {
		m.index[f] = i
	}
	return m
}

func (m *Meta) row(f int) int {
	i, ok := m.index[f]
	if !ok {
		panic("dart: feature not in Meta's candidate set")
	}
	return i
}

func (m *Meta) get(f, col int) int {
	v, err := m.counts.At(m.row(f), col)
	HandleTensorError(err)
	return v.(int)
}

func (m *Meta) set(f, col, value int) {
	HandleTensorError(m.counts.SetAt(value, m.row(f), col))
}

// LeftCount returns M.left_count[f].
func (m *Meta) LeftCount(f int) int { return m.get(f, metaColLeftCount) }

// RightCount returns M.right_count[f].
func (m *Meta) RightCount(f int) int { return m.get(f, metaColRightCount) }

// LeftPos returns M.left_pos[f].
func (m *Meta) LeftPos(f int) int { return m.get(f, metaColLeftPos) }

// RightPos returns M.right_pos[f].
func (m *Meta) RightPos(f int) int { return m.get(f, metaColRightPos) }

// SampleCount returns left_count[f] + right_count[f].
func (m *Meta) SampleCount(f int) int { return m.LeftCount(f) + m.RightCount(f) }

// PositiveCount returns left_pos[f] + right_pos[f].
func (m *Meta) PositiveCount(f int) int { return m.LeftPos(f) + m.RightPos(f) }

// Set stores the four statistics for feature f in one call.
func (m *Meta) Set(f, leftCount, rightCount, leftPos, rightPos int) {
	m.set(f, metaColLeftCount, leftCount)
	m.set(f, metaColRightCount, rightCount)
	m.set(f, metaColLeftPos, leftPos)
	m.set(f, metaColRightPos, rightPos)
}

// DecrementOne updates the statistics for feature f to account for one
// removed sample whose value at f was onLeft and whose label was
// positive.
func (m *Meta) DecrementOne(f int, onLeft, positive bool) {
	if onLeft {
		m.set(f, metaColLeftCount, m.LeftCount(f)-1)
		if positive {
			m.set(f, metaColLeftPos, m.LeftPos(f)-1)
		}
	} else {
		m.set(f, metaColRightCount, m.RightCount(f)-1)
		if positive {
			m.set(f, metaColRightPos, m.RightPos(f)-1)
		}
	}
}

// HandleTensorError panics on an unexpected gorgonia/tensor indexing
// error; every call site here uses a row/column computed from m's own
// fixed shape, so an error here means the tensor was built wrong.
func HandleTensorError(err error) {
	if err != nil {
		panic(err)
	}
}
