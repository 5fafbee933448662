package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/qsim/internal/config"
	"github.com/san-kum/qsim/internal/metrics"
	"github.com/san-kum/qsim/internal/quantum"
)

type Result struct {
	Name          string              `json:"name"`
	Qubits        int                 `json:"qubits"`
	Shots         int                 `json:"shots"`
	Seed          int64               `json:"seed"`
	Circuit       []quantum.Operation `json:"circuit"`
	Amplitudes    []complex128        `json:"-"`
	Probabilities []float64           `json:"probabilities"`
	Outcomes      []int               `json:"-"`
	Counts        []int               `json:"counts"`
	Metrics       map[string]float64  `json:"metrics"`
	Elapsed       time.Duration       `json:"elapsed"`
}

type Experiment struct {
	cfg       *config.Config
	simulator *quantum.Simulator
	metrics   []metrics.Metric
	logger    *log.Logger
}

// New validates cfg and builds a simulator for it. A zero seed picks one from
// the clock; the chosen seed is recorded in the result.
func New(cfg *config.Config, logger *log.Logger) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := *cfg
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	opts := []quantum.Option{quantum.WithSeed(c.Seed)}
	if logger != nil {
		opts = append(opts, quantum.WithLogger(logger))
	}
	s, err := quantum.New(c.Qubits, opts...)
	if err != nil {
		return nil, err
	}

	ms := metrics.Defaults()
	metrics.Attach(s, ms)

	return &Experiment{cfg: &c, simulator: s, metrics: ms, logger: logger}, nil
}

// Run applies the circuit gate by gate, checking ctx between gates, then
// samples the configured number of shots.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	for i, op := range e.cfg.Operations() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := e.simulator.Apply(op); err != nil {
			return nil, fmt.Errorf("%s: %w", e.cfg.Name, &quantum.StepError{Step: i, Wrapped: err})
		}
	}

	outcomes, err := e.simulator.Measure(e.cfg.Shots)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.cfg.Name, err)
	}

	st := e.simulator.State()
	result := &Result{
		Name:          e.cfg.Name,
		Qubits:        e.cfg.Qubits,
		Shots:         e.cfg.Shots,
		Seed:          e.cfg.Seed,
		Circuit:       e.simulator.Circuit(),
		Amplitudes:    st.Amplitudes(),
		Probabilities: st.Probabilities(),
		Outcomes:      outcomes,
		Counts:        quantum.Counts(outcomes, st.Dim()),
		Metrics:       metrics.Collect(e.metrics),
		Elapsed:       time.Since(start),
	}
	if e.logger != nil {
		e.logger.Info("experiment complete", "name", result.Name, "qubits", result.Qubits, "gates", len(result.Circuit), "shots", result.Shots)
	}
	return result, nil
}

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *quantum.Simulator {
	return e.simulator
}

func (e *Experiment) Config() config.Config {
	return *e.cfg
}

// Run is the one-shot form of New followed by Run.
func Run(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	e, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx)
}
