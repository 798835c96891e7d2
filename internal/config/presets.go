package config

import "sort"

// Presets are ready-to-run scenarios. The figure8 initial conditions
// are the Chenciner-Montgomery choreography for three equal masses.
var Presets = map[string]*Config{
	"binary": {
		Scenario: "binary", Field: "gravity", Dt: 0.001, Duration: 30.0,
		Capacity: 2048, G: 1.0,
		Bodies: []BodyConfig{
			{ID: "a", Mass: 1.0, Position: [3]float64{-0.5, 0, 0}, Velocity: [3]float64{0, -0.5, 0}},
			{ID: "b", Mass: 1.0, Position: [3]float64{0.5, 0, 0}, Velocity: [3]float64{0, 0.5, 0}},
		},
	},
	"figure8": {
		Scenario: "figure8", Field: "gravity", Dt: 0.001, Duration: 20.0,
		Capacity: 4096, G: 1.0,
		Bodies: []BodyConfig{
			{ID: "a", Mass: 1.0, Position: [3]float64{-0.97000436, 0.24308753, 0}, Velocity: [3]float64{0.4662036850, 0.4323657300, 0}},
			{ID: "b", Mass: 1.0, Position: [3]float64{0.97000436, -0.24308753, 0}, Velocity: [3]float64{0.4662036850, 0.4323657300, 0}},
			{ID: "c", Mass: 1.0, Position: [3]float64{0, 0, 0}, Velocity: [3]float64{-0.93240737, -0.86473146, 0}},
		},
	},
	"oscillator": {
		Scenario: "oscillator", Field: "harmonic", Dt: 0.01, Duration: 20.0,
		Capacity: 1024, Omega: 1.0,
		Bodies: []BodyConfig{
			{ID: "m", Mass: 1.0, Position: [3]float64{0, 0, 1}},
		},
	},
	"drop": {
		Scenario: "drop", Field: "uniform", Dt: 0.01, Duration: 5.0,
		Capacity: 512, G: 9.81,
		Bodies: []BodyConfig{
			{ID: "m", Mass: 1.0, Position: [3]float64{0, 5, 0}, Velocity: [3]float64{2, 0, 0}},
		},
	},
	"plasma": {
		Scenario: "plasma", Field: "coulomb", Dt: 0.001, Duration: 10.0,
		Capacity: 1024, K: 1.0, Softening: 0.05,
		Bodies: []BodyConfig{
			{ID: "p1", Mass: 1.0, Position: [3]float64{-1, 0, 0}},
			{ID: "p2", Mass: 1.0, Position: [3]float64{1, 0, 0}},
			{ID: "p3", Mass: 1.0, Position: [3]float64{0, 1.2, 0}},
		},
	},
}

// GetPreset returns a copy safe for the caller to override, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	c.Bodies = append([]BodyConfig(nil), p.Bodies...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
