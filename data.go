package dart

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DataManager owns the immutable training matrix and label vector and
// tracks which of the original row ids are still live. Rows are never
// physically deleted -- this keeps sample ids stable across removal
// batches -- they are only logically marked invalid.
//
// X and Y are held the way the domain stack's own EMatrix holds its
// feature/target matrices: as gonum mat.Dense/VecDense, handed out by
// reference rather than copied per access.
type DataManager struct {
	x       *mat.Dense
	y       *mat.VecDense
	n, d    int
	removed map[int]struct{}
}

// NewDataManager loads X (n x d, binary) and y (n, binary) and marks
// every row id valid.
func NewDataManager(x *mat.Dense, y *mat.VecDense) (*DataManager, error) {
	if x == nil || y == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrInvalidParams)
	}
	n, d := x.Dims()
	if n == 0 || d == 0 {
		return nil, fmt.Errorf("%w: empty training set", ErrInvalidParams)
	}
	if yn := y.Len(); yn != n {
		return nil, fmt.Errorf("%w: y has %d rows, want %d", ErrInvalidParams, yn, n)
	}
	return &DataManager{
		x:       x,
		y:       y,
		n:       n,
		d:       d,
		removed: make(map[int]struct{}),
	}, nil
}

// NumSamples returns the total number of rows ever loaded, including
// ones since marked removed.
func (dm *DataManager) NumSamples() int { return dm.n }

// NumFeatures returns the number of columns of X.
func (dm *DataManager) NumFeatures() int { return dm.d }

// NValid returns the number of row ids that are still valid.
func (dm *DataManager) NValid() int {
	return dm.n - len(dm.removed)
}

// IsValid reports whether id is in range and has not been removed.
func (dm *DataManager) IsValid(id int) bool {
	if id < 0 || id >= dm.n {
		return false
	}
	_, gone := dm.removed[id]
	return !gone
}

// Feature returns X[id, f].
func (dm *DataManager) Feature(id, f int) float64 {
	return dm.x.At(id, f)
}

// Label returns y[id].
func (dm *DataManager) Label(id int) float64 {
	return dm.y.AtVec(id)
}

// MarkRemoved marks every id in ids invalid. It is atomic: if any id is
// out of range (ErrUnknownID) or already removed (ErrAlreadyRemoved),
// none of the ids are marked.
func (dm *DataManager) MarkRemoved(ids []int) error {
	for _, id := range ids {
		if id < 0 || id >= dm.n {
			return unknownID(id)
		}
		if _, gone := dm.removed[id]; gone {
			return alreadyRemoved(id)
		}
	}
	for _, id := range ids {
		dm.removed[id] = struct{}{}
	}
	return nil
}

// View is a restriction of the DataManager to a fixed list of sample
// ids, returned by Get. It never copies the underlying matrix.
type View struct {
	dm  *DataManager
	IDs []int
}

// Get returns a view over X and y restricted to ids.
func (dm *DataManager) Get(ids []int) *View {
	return &View{dm: dm, IDs: ids}
}

// Len returns the number of rows in the view.
func (v *View) Len() int { return len(v.IDs) }

// Feature returns X[v.IDs[i], f].
func (v *View) Feature(i, f int) float64 { return v.dm.Feature(v.IDs[i], f) }

// Label returns y[v.IDs[i]].
func (v *View) Label(i int) float64 { return v.dm.Label(v.IDs[i]) }
