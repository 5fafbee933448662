package metrics

import "github.com/san-kum/qsim/internal/quantum"

// Metric observes a simulator after every gate application and summarizes
// what it saw as a single number.
type Metric interface {
	quantum.Observer
	Name() string
	Value() float64
}

// Defaults returns a fresh set of the standard run metrics.
func Defaults() []Metric {
	return []Metric{
		NewNormDrift(),
		NewEntropy(),
		NewGateCount(),
		NewControlledCount(),
	}
}

// Attach registers every metric as an observer of s.
func Attach(s *quantum.Simulator, ms []Metric) {
	for _, m := range ms {
		s.AddObserver(m)
	}
}

// Collect reads the current value of every metric keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
