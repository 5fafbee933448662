package quantum

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/qsim/internal/linalg"
)

// MaxQubits caps the register size. Operators are dense 2^n x 2^n matrices,
// so memory grows as 4^n.
const MaxQubits = 10

// CNOTName is the circuit-log name of the controlled bit flip.
const CNOTName = "CNOT"

// Operation is one entry of the circuit log.
type Operation struct {
	Gate    string `json:"gate" yaml:"gate"`
	Target  int    `json:"target" yaml:"target"`
	Control *int   `json:"control,omitempty" yaml:"control,omitempty"`
}

func (o Operation) Controlled() bool { return o.Control != nil }

func (o Operation) String() string {
	if o.Control != nil {
		return fmt.Sprintf("%s: Q%d → Q%d", o.Gate, *o.Control, o.Target)
	}
	return fmt.Sprintf("%s → Q%d", o.Gate, o.Target)
}

// Observer is notified after every successful gate application.
type Observer interface {
	OnApply(op Operation, st *State)
	Reset()
}

type Option func(*Simulator)

func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

func WithSeed(seed int64) Option {
	return func(s *Simulator) { s.sampler = NewSampler(seed) }
}

func WithSampler(sm *Sampler) Option {
	return func(s *Simulator) { s.sampler = sm }
}

type Simulator struct {
	state     *State
	circuit   []Operation
	sampler   *Sampler
	observers []Observer
	logger    *log.Logger
}

func New(numQubits int, opts ...Option) (*Simulator, error) {
	st, err := NewState(numQubits)
	if err != nil {
		return nil, err
	}
	s := &Simulator{
		state:     st,
		circuit:   make([]Operation, 0),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sampler == nil {
		s.sampler = NewSampler(time.Now().UnixNano())
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s, nil
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) NumQubits() int { return s.state.NumQubits() }

// State exposes the register for queries. Mutate it only through the
// Simulator so the circuit log stays in step.
func (s *Simulator) State() *State { return s.state }

// Circuit returns a copy of the applied operations, oldest first.
func (s *Simulator) Circuit() []Operation {
	out := make([]Operation, len(s.circuit))
	copy(out, s.circuit)
	return out
}

// ApplyGate applies a catalog gate to target. With a non-nil control the
// gate becomes controlled-U: it acts on target only where control is 1.
// The name CNOT (or CX) selects the controlled bit flip and needs a control.
func (s *Simulator) ApplyGate(name string, target int, control *int) error {
	if IsCNOT(name) {
		if control == nil {
			return &GateError{Gate: CNOTName, Target: target, Wrapped: fmt.Errorf("%w: CNOT needs a control qubit", ErrInvalidQubit)}
		}
		return s.ApplyCNOT(*control, target)
	}

	gate, err := Lookup(name)
	if err != nil {
		return &GateError{Gate: name, Target: target, Control: control, Wrapped: err}
	}

	var op linalg.Matrix
	if control == nil {
		op, err = Expand(gate.Matrix, target, s.NumQubits())
	} else {
		op, err = BuildControlled(gate.Matrix, *control, target, s.NumQubits())
	}
	if err != nil {
		return &GateError{Gate: gate.Name, Target: target, Control: control, Wrapped: err}
	}
	return s.apply(Operation{Gate: gate.Name, Target: target, Control: copyInt(control)}, op)
}

// ApplyCNOT flips target iff control is 1.
func (s *Simulator) ApplyCNOT(control, target int) error {
	op, err := BuildCNOT(control, target, s.NumQubits())
	if err != nil {
		return &GateError{Gate: CNOTName, Target: target, Control: &control, Wrapped: err}
	}
	return s.apply(Operation{Gate: CNOTName, Target: target, Control: &control}, op)
}

// Apply replays a logged operation.
func (s *Simulator) Apply(op Operation) error {
	return s.ApplyGate(op.Gate, op.Target, op.Control)
}

// Run applies ops in order and stops at the first failure. Operations before
// the failing one stay applied.
func (s *Simulator) Run(ops []Operation) error {
	for i, op := range ops {
		if err := s.Apply(op); err != nil {
			return &StepError{Step: i, Wrapped: err}
		}
	}
	return nil
}

func (s *Simulator) apply(entry Operation, op linalg.Matrix) error {
	if err := s.state.ApplyOperator(op); err != nil {
		return &GateError{Gate: entry.Gate, Target: entry.Target, Control: entry.Control, Wrapped: err}
	}
	s.circuit = append(s.circuit, entry)
	s.logger.Debug("gate applied", "op", entry.String(), "norm", s.state.LastNorm(), "depth", len(s.circuit))

	for _, o := range s.observers {
		o.OnApply(entry, s.state)
	}
	return nil
}

// Measure samples shots outcomes from the current distribution. The state is
// not collapsed, so repeated calls sample the same distribution.
func (s *Simulator) Measure(shots int) ([]int, error) {
	if shots < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShotCount, shots)
	}
	return s.sampler.Sample(s.state.Probabilities(), shots)
}

// Counts samples shots outcomes and returns their histogram over [0, dim).
func (s *Simulator) Counts(shots int) ([]int, error) {
	outcomes, err := s.Measure(shots)
	if err != nil {
		return nil, err
	}
	return Counts(outcomes, s.state.Dim()), nil
}

// Reset returns the register to |0...0⟩ and clears the circuit log.
func (s *Simulator) Reset() {
	s.state.Reset()
	s.circuit = s.circuit[:0]
	for _, o := range s.observers {
		o.Reset()
	}
	s.logger.Debug("simulator reset", "qubits", s.NumQubits())
}

// IsCNOT reports whether name spells the controlled bit flip.
func IsCNOT(name string) bool {
	n := strings.ToUpper(strings.TrimSpace(name))
	return n == CNOTName || n == "CX"
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
