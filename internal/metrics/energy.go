// Package metrics evaluates scalar diagnostics over simulated
// trajectories.
package metrics

import (
	"math"

	"github.com/mvalt/mdof/internal/response"
	"github.com/mvalt/mdof/internal/system"
)

// Metric accumulates a scalar diagnostic over trajectory samples.
type Metric interface {
	Name() string
	Observe(state []float64, t float64)
	Value() float64
	Reset()
}

// Apply feeds every trajectory sample through the given metrics.
func Apply(traj *response.Trajectory, ms ...Metric) {
	for _, m := range ms {
		m.Reset()
	}
	for j := 0; j < traj.Len(); j++ {
		x := traj.Sample(j)
		for _, m := range ms {
			m.Observe(x, traj.Times[j])
		}
	}
}

// Energy reports the mean total mechanical energy ½vᵀMv + ½xᵀKx.
type Energy struct {
	sys     *system.System
	total   float64
	samples int
}

func NewEnergy(sys *system.System) *Energy {
	return &Energy{sys: sys}
}

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(state []float64, t float64) {
	e.total += e.sys.Energy(state)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift reports the maximum relative deviation of total energy
// from the first observed sample. An undamped response conserves energy,
// so drift measures accumulated integration error.
type EnergyDrift struct {
	sys      *system.System
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(sys *system.System) *EnergyDrift {
	return &EnergyDrift{sys: sys}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(state []float64, t float64) {
	energy := e.sys.Energy(state)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// PeakAmplitude reports the largest absolute displacement of one
// coordinate.
type PeakAmplitude struct {
	coord int
	peak  float64
}

func NewPeakAmplitude(coord int) *PeakAmplitude {
	return &PeakAmplitude{coord: coord}
}

func (p *PeakAmplitude) Name() string { return "peak_amplitude" }

func (p *PeakAmplitude) Observe(state []float64, t float64) {
	if p.coord >= 0 && p.coord < len(state)/2 {
		p.peak = math.Max(p.peak, math.Abs(state[p.coord]))
	}
}

func (p *PeakAmplitude) Value() float64 { return p.peak }

func (p *PeakAmplitude) Reset() { p.peak = 0 }
