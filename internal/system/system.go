// Package system describes undamped MDOF systems by their mass and
// stiffness matrices and assembles them for common configurations.
package system

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimension indicates mismatched matrix or vector sizes.
	ErrDimension = errors.New("system: dimension mismatch")

	// ErrEmpty indicates a system with no coordinates.
	ErrEmpty = errors.New("system: at least one mass is required")
)

// System is an undamped linear MDOF system M·ẍ + K·x = 0.
type System struct {
	M *mat.Dense
	K *mat.Dense
}

// New wraps explicit mass and stiffness matrices. Both must be square
// and of equal size; symmetry is the caller's responsibility.
func New(m, k *mat.Dense) (*System, error) {
	mr, mc := m.Dims()
	kr, kc := k.Dims()
	if mr != mc || kr != kc || mr != kr {
		return nil, ErrDimension
	}
	if mr == 0 {
		return nil, ErrEmpty
	}
	return &System{M: m, K: k}, nil
}

// NewChain assembles a chain of point masses coupled by linear springs.
// springs[0] anchors the first mass to the wall and springs[i] couples
// mass i-1 to mass i. With len(springs) == len(masses) the far end is
// free; one extra spring anchors it to a second wall.
func NewChain(masses, springs []float64) (*System, error) {
	n := len(masses)
	if n == 0 {
		return nil, ErrEmpty
	}
	if len(springs) != n && len(springs) != n+1 {
		return nil, ErrDimension
	}

	m := mat.NewDense(n, n, nil)
	k := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, masses[i])

		diag := springs[i]
		if i+1 < len(springs) {
			diag += springs[i+1]
		}
		k.Set(i, i, diag)

		if i+1 < n {
			k.Set(i, i+1, -springs[i+1])
			k.Set(i+1, i, -springs[i+1])
		}
	}
	return &System{M: m, K: k}, nil
}

// Dim returns the number of coordinates n.
func (s *System) Dim() int {
	n, _ := s.M.Dims()
	return n
}

// Energy returns the total mechanical energy ½·vᵀMv + ½·xᵀKx for a
// stacked state [x; v] of length 2n.
func (s *System) Energy(state []float64) float64 {
	n := s.Dim()
	if len(state) != 2*n {
		return 0
	}
	x := mat.NewVecDense(n, state[:n])
	v := mat.NewVecDense(n, state[n:])
	return 0.5*mat.Inner(v, s.M, v) + 0.5*mat.Inner(x, s.K, x)
}
