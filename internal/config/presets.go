package config

import "sort"

// Presets are ready-made benchmark systems from the vibration
// literature.
var Presets = map[string]*Config{
	"chain3": {
		Name: "three-mass spring chain, free far end",
		System: SystemConfig{
			Masses:  []float64{4, 4, 4},
			Springs: []float64{4, 4, 4},
		},
		Init:     InitConfig{Displacement: []float64{1, 0, 0}},
		Duration: 10,
	},
	"two-mass": {
		Name: "two-mass benchmark with coupled stiffness",
		System: SystemConfig{
			MassMatrix:      [][]float64{{1, 0}, {0, 4}},
			StiffnessMatrix: [][]float64{{12, -2}, {-2, 12}},
		},
		Init:     InitConfig{Displacement: []float64{1, 1}},
		Duration: 10,
	},
	"chain5": {
		Name: "five-mass chain anchored at both walls",
		System: SystemConfig{
			Masses:  []float64{1, 1, 1, 1, 1},
			Springs: []float64{100, 100, 100, 100, 100, 100},
		},
		Init:     InitConfig{Displacement: []float64{1, 0.5, 0, 0, 0}},
		Duration: 5,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
