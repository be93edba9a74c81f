package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/mvalt/mdof/internal/system"
)

const DefaultDuration = 10.0

// Config describes a system to analyze: either a spring-mass chain or
// explicit mass/stiffness matrices, plus initial conditions and the
// simulation horizon.
type Config struct {
	Name     string       `yaml:"name"`
	System   SystemConfig `yaml:"system"`
	Init     InitConfig   `yaml:"init"`
	Duration float64      `yaml:"duration"`
}

type SystemConfig struct {
	Masses  []float64 `yaml:"masses,omitempty"`
	Springs []float64 `yaml:"springs,omitempty"`

	MassMatrix      [][]float64 `yaml:"mass_matrix,omitempty"`
	StiffnessMatrix [][]float64 `yaml:"stiffness_matrix,omitempty"`
}

type InitConfig struct {
	Displacement []float64 `yaml:"displacement"`
	Velocity     []float64 `yaml:"velocity"`
}

func DefaultConfig() *Config {
	return &Config{Duration: DefaultDuration}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build assembles the configured system.
func (c *Config) Build() (*system.System, error) {
	switch {
	case len(c.System.Masses) > 0:
		return system.NewChain(c.System.Masses, c.System.Springs)
	case len(c.System.MassMatrix) > 0:
		m, err := denseOf(c.System.MassMatrix)
		if err != nil {
			return nil, err
		}
		k, err := denseOf(c.System.StiffnessMatrix)
		if err != nil {
			return nil, err
		}
		return system.New(m, k)
	default:
		return nil, errors.New("config: system requires masses or mass_matrix")
	}
}

// InitState returns initial displacement and velocity padded with zeros
// to the system dimension n.
func (c *Config) InitState(n int) (x0, v0 []float64, err error) {
	if len(c.Init.Displacement) > n || len(c.Init.Velocity) > n {
		return nil, nil, fmt.Errorf("config: initial state longer than %d coordinates", n)
	}
	x0 = make([]float64, n)
	v0 = make([]float64, n)
	copy(x0, c.Init.Displacement)
	copy(v0, c.Init.Velocity)
	return x0, v0, nil
}

func denseOf(rows [][]float64) (*mat.Dense, error) {
	n := len(rows)
	if n == 0 {
		return nil, errors.New("config: empty matrix")
	}
	d := mat.NewDense(n, n, nil)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("config: matrix row %d has %d entries, want %d", i, len(row), n)
		}
		d.SetRow(i, row)
	}
	return d, nil
}
