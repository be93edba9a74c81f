// Package modal derives natural frequencies and mode shapes of undamped
// MDOF systems from their mass and stiffness matrices.
package modal

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/mvalt/mdof/internal/eigen"
)

var (
	// ErrNotPositiveDefinite indicates a mass matrix the Cholesky
	// factorization rejected.
	ErrNotPositiveDefinite = errors.New("modal: mass matrix is not positive definite")

	// ErrShape indicates mismatched or non-square mass/stiffness matrices.
	ErrShape = errors.New("modal: mass and stiffness matrices must be square and of equal size")
)

// Modes holds the modal decomposition of an undamped system.
type Modes struct {
	// OmegaSq contains the squared natural frequencies in canonical
	// order; the whitened problem's eigenvalues equal ω².
	OmegaSq []complex128

	// P holds the eigenvectors of the whitened problem, column i
	// pairing with OmegaSq[i].
	P *mat.CDense

	// S holds the physical mode shapes, S = L⁻¹·P.
	S *mat.CDense

	// Sinv maps physical to modal coordinates, r = Sinv·x.
	Sinv *mat.CDense
}

// Undamped computes the modal decomposition of the system described by
// mass matrix m and stiffness matrix k. The generalized problem is
// whitened through the lower Cholesky factor L of m (m = L·Lᵀ), reducing
// it to a standard symmetric one on L⁻¹·K·L⁻ᵀ.
//
// m must be symmetric positive definite; the Cholesky step fails with
// ErrNotPositiveDefinite otherwise. Symmetry of m and k is the caller's
// responsibility and is not validated here.
func Undamped(m, k mat.Matrix) (*Modes, error) {
	n, c := m.Dims()
	kr, kc := k.Dims()
	if n != c || kr != kc || kr != n {
		return nil, ErrShape
	}

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, m.At(i, j))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, ErrNotPositiveDefinite
	}
	var l mat.TriDense
	chol.LTo(&l)

	// Explicit inverse; the problem sizes this library targets make the
	// extra factorization cost irrelevant.
	var linv mat.Dense
	if err := linv.Inverse(&l); err != nil {
		return nil, err
	}

	var kl, white mat.Dense
	kl.Mul(&linv, k)
	white.Mul(&kl, linv.T())

	omegaSq, p, err := eigen.Sort(&white)
	if err != nil {
		return nil, err
	}

	// CDense carries no arithmetic, so S = L⁻¹·P and Sinv = Pᵀ·L⁻¹ are
	// formed entry-wise with L⁻¹ kept real.
	s := mat.NewCDense(n, n, nil)
	sinv := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sij, sinvij complex128
			for kk := 0; kk < n; kk++ {
				sij += complex(linv.At(i, kk), 0) * p.At(kk, j)
				sinvij += p.At(kk, i) * complex(linv.At(kk, j), 0)
			}
			s.Set(i, j, sij)
			sinv.Set(i, j, sinvij)
		}
	}

	return &Modes{OmegaSq: omegaSq, P: p, S: s, Sinv: sinv}, nil
}
