// Package linalg wraps the dense solver routines the rest of the library
// treats as opaque: pseudo-inversion and the matrix exponential.
package linalg

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNonFinite indicates a matrix with NaN or Inf entries.
	ErrNonFinite = errors.New("linalg: matrix has non-finite entries")

	// ErrSVDFailed indicates the singular value decomposition did not converge.
	ErrSVDFailed = errors.New("linalg: svd failed to converge")
)

// PseudoInverse computes the Moore-Penrose pseudo-inverse of a via SVD.
// Singular values below eps * max(rows, cols) * sigma_max are treated as
// zero, so singular and near-singular matrices are handled gracefully.
func PseudoInverse(a mat.Matrix) (*mat.Dense, error) {
	if !allFinite(a) {
		return nil, ErrNonFinite
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, ErrSVDFailed
	}

	r, c := a.Dims()
	k := min(r, c)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sigma := svd.Values(nil)

	tol := 0.0
	if len(sigma) > 0 {
		tol = float64(max(r, c)) * sigma[0] * epsilon
	}

	// V * Sigma^+ * U^T
	scaled := mat.NewDense(c, k, nil)
	for j := 0; j < k; j++ {
		inv := 0.0
		if sigma[j] > tol {
			inv = 1 / sigma[j]
		}
		for i := 0; i < c; i++ {
			scaled.Set(i, j, v.At(i, j)*inv)
		}
	}

	pinv := mat.NewDense(c, r, nil)
	pinv.Mul(scaled, u.T())
	return pinv, nil
}

const epsilon = 2.220446049250313e-16

// Expm computes the matrix exponential of the square matrix a using
// scaling and squaring with a degree-6 Pade approximant. The input is
// scaled so its 1-norm is at most 1/2, which keeps the approximant well
// inside its accuracy region.
func Expm(a mat.Matrix) (*mat.Dense, error) {
	n, c := a.Dims()
	if n != c {
		return nil, errors.New("linalg: expm requires a square matrix")
	}
	if !allFinite(a) {
		return nil, ErrNonFinite
	}

	norm := mat.Norm(a, 1)
	squarings := 0
	if norm > 0.5 {
		squarings = int(math.Ceil(math.Log2(norm/0.5))) + 1
	}

	scaled := mat.NewDense(n, n, nil)
	scaled.Scale(math.Ldexp(1, -squarings), a)

	// Pade coefficients for p/q approximant of degree 6.
	const degree = 6
	coef := make([]float64, degree+1)
	coef[0] = 1
	for k := 0; k < degree; k++ {
		coef[k+1] = coef[k] * float64(degree-k) / float64((2*degree-k)*(k+1))
	}

	num := eye(n)  // numerator polynomial in scaled
	den := eye(n)  // denominator polynomial in -scaled
	term := eye(n) // scaled^k
	for k := 1; k <= degree; k++ {
		var next mat.Dense
		next.Mul(term, scaled)
		term = &next

		var nt, dt mat.Dense
		nt.Scale(coef[k], term)
		num.Add(num, &nt)

		sign := 1.0
		if k%2 == 1 {
			sign = -1
		}
		dt.Scale(sign*coef[k], term)
		den.Add(den, &dt)
	}

	result := mat.NewDense(n, n, nil)
	if err := result.Solve(den, num); err != nil {
		return nil, err
	}

	for s := 0; s < squarings; s++ {
		var sq mat.Dense
		sq.Mul(result, result)
		result.CloneFrom(&sq)
	}
	return result, nil
}

func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func allFinite(a mat.Matrix) bool {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
