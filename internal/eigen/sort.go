package eigen

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// DefaultImagTol is the relative tolerance used to decide whether a
// spectrum is purely real. An eigenvalue's imaginary part is treated as
// zero when its magnitude is below DefaultImagTol times the largest
// eigenvalue magnitude. Whitened symmetric problems are real in exact
// arithmetic but pick up imaginary noise on the order of machine epsilon,
// so the threshold sits a few orders of magnitude above it.
const DefaultImagTol = 1e-9

var (
	// ErrFactorization indicates the eigensolver did not converge.
	ErrFactorization = errors.New("eigen: factorization failed")

	// ErrShape indicates a non-square input or mismatched pair dimensions.
	ErrShape = errors.New("eigen: matrices must be square and of equal size")
)

// Sort computes the eigendecomposition of a and returns the eigenpairs
// in canonical order. Eigenvector columns are co-permuted with the
// eigenvalues.
func Sort(a mat.Matrix) ([]complex128, *mat.CDense, error) {
	return SortTol(a, nil, DefaultImagTol)
}

// SortPair solves the generalized problem a·v = λ·b·v and returns the
// eigenpairs in canonical order.
func SortPair(a, b mat.Matrix) ([]complex128, *mat.CDense, error) {
	return SortTol(a, b, DefaultImagTol)
}

// SortTol is Sort with an explicit real-spectrum tolerance. A nil b
// selects the standard problem. Setting imagTol to zero restores an
// exact comparison.
func SortTol(a, b mat.Matrix, imagTol float64) ([]complex128, *mat.CDense, error) {
	r, c := a.Dims()
	if r != c {
		return nil, nil, ErrShape
	}

	target := mat.DenseCopyOf(a)
	if b != nil {
		br, bc := b.Dims()
		if br != bc || br != r {
			return nil, nil, ErrShape
		}
		// gonum has no generalized driver; reduce to the standard
		// problem on B^-1·A.
		var lu mat.LU
		lu.Factorize(b)
		reduced := mat.NewDense(r, r, nil)
		if err := lu.SolveTo(reduced, false, target); err != nil {
			return nil, nil, err
		}
		target = reduced
	}

	var eig mat.Eigen
	if ok := eig.Factorize(target, mat.EigenRight); !ok {
		return nil, nil, ErrFactorization
	}

	values := eig.Values(nil)
	var vectors mat.CDense
	eig.VectorsTo(&vectors)

	idx := order(values, imagTol)

	sortedValues := make([]complex128, len(values))
	sortedVectors := mat.NewCDense(r, r, nil)
	for j, src := range idx {
		sortedValues[j] = values[src]
		for i := 0; i < r; i++ {
			sortedVectors.Set(i, j, vectors.At(i, src))
		}
	}
	return sortedValues, sortedVectors, nil
}

// order returns the permutation that puts values in canonical order:
// the ascending positive branch followed by the descending negative
// branch, ranked by imaginary part for complex spectra and by real part
// otherwise. All-positive real spectra sort ascending with no split.
func order(values []complex128, imagTol float64) []int {
	n := len(values)

	scale := 0.0
	for _, v := range values {
		scale = math.Max(scale, cmplx.Abs(v))
	}

	realSpectrum := true
	for _, v := range values {
		if math.Abs(imag(v)) > imagTol*scale {
			realSpectrum = false
			break
		}
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	if realSpectrum {
		sort.SliceStable(idx, func(i, j int) bool {
			return real(values[idx[i]]) < real(values[idx[j]])
		})

		allPositive := true
		for _, v := range values {
			if real(v) <= 0 {
				allPositive = false
				break
			}
		}
		if allPositive {
			return idx
		}
		return splitHalves(idx)
	}

	sort.SliceStable(idx, func(i, j int) bool {
		return imag(values[idx[i]]) < imag(values[idx[j]])
	})
	return splitHalves(idx)
}

// splitHalves rearranges an ascending ranking into the positive block
// (upper half, ascending) followed by the negative block (lower half,
// descending). The split index uses integer division, so for odd n the
// halves differ in size by one.
func splitHalves(idx []int) []int {
	n := len(idx)
	half := n / 2

	out := make([]int, 0, n)
	out = append(out, idx[half:]...)
	for i := half - 1; i >= 0; i-- {
		out = append(out, idx[i])
	}
	return out
}
