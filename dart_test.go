package dart

import "gonum.org/v1/gonum/mat"

// matrixOf builds a row-major *mat.Dense from literal rows, the way the
// domain stack's own tests build small fixture EMatrix objects by hand.
func matrixOf(rows [][]float64) *mat.Dense {
	n := len(rows)
	d := len(rows[0])
	flat := make([]float64, 0, n*d)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return mat.NewDense(n, d, flat)
}

func vectorOf(values []float64) *mat.VecDense {
	return mat.NewVecDense(len(values), values)
}
