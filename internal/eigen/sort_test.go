package eigen

import (
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestSortPositiveRealAscending(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 5, 0,
		0, 0, 3,
	})

	values, vectors, err := Sort(a)
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}

	want := []float64{1, 3, 5}
	if len(values) != len(want) {
		t.Fatalf("expected %d eigenvalues, got %d", len(want), len(values))
	}
	for i, w := range want {
		if math.Abs(real(values[i])-w) > 1e-9 {
			t.Errorf("eigenvalue %d: expected %f, got %f", i, w, real(values[i]))
		}
		if math.Abs(imag(values[i])) > 1e-9 {
			t.Errorf("eigenvalue %d: expected real, got imag %g", i, imag(values[i]))
		}
	}

	r, c := vectors.Dims()
	if r != 3 || c != 3 {
		t.Errorf("expected 3x3 eigenvector matrix, got %dx%d", r, c)
	}
}

func TestSortMixedRealSplit(t *testing.T) {
	tests := []struct {
		name string
		diag []float64
		want []float64
	}{
		// Odd n: integer-division split leaves unequal halves, the
		// positive block keeping the extra element.
		{"odd", []float64{-1, 2, 5}, []float64{2, 5, -1}},
		{"even", []float64{-3, -1, 2, 5}, []float64{2, 5, -1, -3}},
		{"zero counts as non-positive", []float64{0, 1, 2, 3}, []float64{2, 3, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.diag)
			a := mat.NewDense(n, n, nil)
			for i, d := range tt.diag {
				a.Set(i, i, d)
			}

			values, _, err := Sort(a)
			if err != nil {
				t.Fatalf("sort failed: %v", err)
			}
			for i, w := range tt.want {
				if math.Abs(real(values[i])-w) > 1e-9 {
					t.Errorf("position %d: expected %f, got %f", i, w, real(values[i]))
				}
			}
		})
	}
}

func TestSortComplexConjugateSplit(t *testing.T) {
	// State matrix of two uncoupled oscillators with omega = 1 and 2;
	// the raw spectrum is ±1j, ±2j in solver order.
	a := mat.NewDense(4, 4, []float64{
		0, 0, 1, 0,
		0, 0, 0, 1,
		-1, 0, 0, 0,
		0, -4, 0, 0,
	})

	values, _, err := Sort(a)
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}

	want := []float64{1, 2, -1, -2}
	for i, w := range want {
		if math.Abs(imag(values[i])-w) > 1e-9 {
			t.Errorf("position %d: expected imag %f, got %f", i, w, imag(values[i]))
		}
		if math.Abs(real(values[i])) > 1e-9 {
			t.Errorf("position %d: expected zero real part, got %g", i, real(values[i]))
		}
	}
}

// Every output column must remain an eigenvector of the eigenvalue at
// the same index after reordering.
func TestSortCoPermutation(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		2, -1, 0,
		-4, 8, -4,
		0, -4, 4,
	})

	values, vectors, err := Sort(a)
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}

	n, _ := a.Dims()
	for j := 0; j < n; j++ {
		residual := 0.0
		for i := 0; i < n; i++ {
			var av complex128
			for k := 0; k < n; k++ {
				av += complex(a.At(i, k), 0) * vectors.At(k, j)
			}
			residual += cmplx.Abs(av - values[j]*vectors.At(i, j))
		}
		if residual > 1e-9 {
			t.Errorf("column %d is not an eigenvector of eigenvalue %v: residual %g", j, values[j], residual)
		}
	}
}

func TestSortPairGeneralized(t *testing.T) {
	// K·v = λ·M·v for the three-mass chain; λ are the squared natural
	// frequencies.
	k := mat.NewDense(3, 3, []float64{
		8, -4, 0,
		-4, 8, -4,
		0, -4, 4,
	})
	m := mat.NewDense(3, 3, []float64{
		4, 0, 0,
		0, 4, 0,
		0, 0, 4,
	})

	values, _, err := SortPair(k, m)
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}

	want := []float64{0.19806226, 1.55495813, 3.24697960}
	for i, w := range want {
		if math.Abs(real(values[i])-w) > 1e-6 {
			t.Errorf("eigenvalue %d: expected %f, got %f", i, w, real(values[i]))
		}
	}
}

// Generalized solvers leave imaginary noise on the order of machine
// epsilon on spectra that are real in exact arithmetic; the classifier
// must keep such spectra in the real branch.
func TestOrderToleratesImagNoise(t *testing.T) {
	values := []complex128{
		complex(3.2, 3e-14),
		complex(0.19, -2e-14),
		complex(1.5, 1e-14),
	}

	idx := order(values, DefaultImagTol)
	want := []int{1, 2, 0} // ascending by real part, no split
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("default tolerance: expected order %v, got %v", want, idx)
		}
	}

	// Zero tolerance restores the exact comparison: the same noise now
	// selects the imaginary-part split.
	idx = order(values, 0)
	want = []int{2, 0, 1}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("zero tolerance: expected order %v, got %v", want, idx)
		}
	}
}

func TestSortTolZeroOnExactSpectrum(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 5, 0,
		0, 0, 3,
	})

	// Triangular input yields bitwise-zero imaginary parts, so even the
	// exact comparison classifies the spectrum as real.
	values, _, err := SortTol(a, nil, 0)
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}
	want := []float64{1, 3, 5}
	for i, w := range want {
		if math.Abs(real(values[i])-w) > 1e-9 || imag(values[i]) != 0 {
			t.Errorf("eigenvalue %d: expected %g+0i, got %v", i, w, values[i])
		}
	}
}

func TestSortShapeErrors(t *testing.T) {
	rect := mat.NewDense(2, 3, nil)
	if _, _, err := Sort(rect); err != ErrShape {
		t.Errorf("expected ErrShape for non-square input, got %v", err)
	}

	a := mat.NewDense(3, 3, nil)
	b := mat.NewDense(2, 2, nil)
	if _, _, err := SortPair(a, b); err != ErrShape {
		t.Errorf("expected ErrShape for mismatched pair, got %v", err)
	}
}

func TestSortLengthPreserved(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8} {
		a := mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			a.Set(i, i, float64(i+1))
		}
		values, vectors, err := Sort(a)
		if err != nil {
			t.Fatalf("n=%d: sort failed: %v", n, err)
		}
		if len(values) != n {
			t.Errorf("n=%d: expected %d eigenvalues, got %d", n, n, len(values))
		}
		r, c := vectors.Dims()
		if r != n || c != n {
			t.Errorf("n=%d: expected %dx%d vectors, got %dx%d", n, n, n, r, c)
		}
	}
}
