package response

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/mvalt/mdof/internal/linalg"
)

// SamplesPerUnitTime fixes the sampling rate of the time grid.
const SamplesPerUnitTime = 250

var (
	// ErrShape indicates mismatched matrix or initial-condition sizes.
	ErrShape = errors.New("response: dimension mismatch")

	// ErrMaxTime indicates a horizon too short to carry two samples at
	// the fixed sampling rate.
	ErrMaxTime = errors.New("response: max time must span at least two samples")
)

// Trajectory is a fixed-rate sampling of the state over time. Column j
// of States is the stacked state [x; v] at Times[j]; the first n rows
// hold displacement and the last n velocity.
type Trajectory struct {
	Times  []float64
	States *mat.Dense

	n int
}

// Len returns the number of samples.
func (t *Trajectory) Len() int { return len(t.Times) }

// Dt returns the sampling interval.
func (t *Trajectory) Dt() float64 {
	if len(t.Times) < 2 {
		return 0
	}
	return t.Times[1] - t.Times[0]
}

// Sample returns a copy of the stacked state at sample j.
func (t *Trajectory) Sample(j int) []float64 {
	return mat.Col(nil, j, t.States)
}

// Displacement returns the displacement history of coordinate i.
func (t *Trajectory) Displacement(i int) []float64 {
	return mat.Row(nil, i, t.States)
}

// Velocity returns the velocity history of coordinate i.
func (t *Trajectory) Velocity(i int) []float64 {
	return mat.Row(nil, t.n+i, t.States)
}

// Free computes the undamped free response of the system with mass
// matrix m, stiffness matrix k and initial displacement x0 and velocity
// v0, sampled at SamplesPerUnitTime over [0, maxTime] inclusive.
//
// The mass matrix is inverted through its pseudo-inverse, so singular
// and near-singular m are tolerated rather than rejected.
func Free(m, k mat.Matrix, x0, v0 []float64, maxTime float64) (*Trajectory, error) {
	n, c := m.Dims()
	kr, kc := k.Dims()
	if n != c || kr != kc || kr != n || len(x0) != n || len(v0) != n {
		return nil, ErrShape
	}

	samples := int(math.Round(SamplesPerUnitTime * maxTime))
	if samples < 2 {
		return nil, ErrMaxTime
	}
	dt := maxTime / float64(samples-1)

	minv, err := linalg.PseudoInverse(m)
	if err != nil {
		return nil, err
	}
	var mk mat.Dense
	mk.Mul(minv, k)

	// A = [[0, I], [-M⁺K, 0]], scaled by dt before discretization.
	a := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < n; i++ {
		a.Set(i, n+i, dt)
		for j := 0; j < n; j++ {
			a.Set(n+i, j, -mk.At(i, j)*dt)
		}
	}

	ad, err := linalg.Expm(a)
	if err != nil {
		return nil, err
	}

	times := make([]float64, samples)
	for i := range times {
		times[i] = float64(i) * dt
	}

	states := mat.NewDense(2*n, samples, nil)
	cur := mat.NewVecDense(2*n, nil)
	for i := 0; i < n; i++ {
		cur.SetVec(i, x0[i])
		cur.SetVec(n+i, v0[i])
	}
	states.SetCol(0, cur.RawVector().Data)

	next := mat.NewVecDense(2*n, nil)
	for j := 1; j < samples; j++ {
		next.MulVec(ad, cur)
		states.SetCol(j, next.RawVector().Data)
		cur.CopyVec(next)
	}

	return &Trajectory{Times: times, States: states, n: n}, nil
}
