package config

import "sort"

func ctl(q int) *int { return &q }

var Presets = map[string]*Config{
	"superposition": {
		Name: "superposition", Qubits: 1, Shots: DefaultShots,
		Circuit: []Step{{Gate: "H", Target: 0}},
	},
	"flip": {
		Name: "flip", Qubits: 1, Shots: DefaultShots,
		Circuit: []Step{{Gate: "X", Target: 0}},
	},
	"phase": {
		Name: "phase", Qubits: 1, Shots: DefaultShots,
		Circuit: []Step{{Gate: "H", Target: 0}, {Gate: "S", Target: 0}, {Gate: "T", Target: 0}},
	},
	"bell": {
		Name: "bell", Qubits: 2, Shots: DefaultShots,
		Circuit: []Step{{Gate: "H", Target: 0}, {Gate: "CNOT", Control: ctl(0), Target: 1}},
	},
	"ghz": {
		Name: "ghz", Qubits: 3, Shots: DefaultShots,
		Circuit: []Step{
			{Gate: "H", Target: 0},
			{Gate: "CNOT", Control: ctl(0), Target: 1},
			{Gate: "CNOT", Control: ctl(1), Target: 2},
		},
	},
	"uniform": {
		Name: "uniform", Qubits: 3, Shots: DefaultShots,
		Circuit: []Step{{Gate: "H", Target: 0}, {Gate: "H", Target: 1}, {Gate: "H", Target: 2}},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Circuit = make([]Step, len(p.Circuit))
	for i, st := range p.Circuit {
		cfg.Circuit[i] = st
		if st.Control != nil {
			cfg.Circuit[i].Control = ctl(*st.Control)
		}
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
