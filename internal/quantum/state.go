package quantum

import (
	"fmt"
	"strings"

	"github.com/san-kum/qsim/internal/linalg"
)

// State is the amplitude vector of an n-qubit register. It is only ever
// replaced wholesale by ApplyOperator, which keeps it at unit norm.
type State struct {
	numQubits  int
	amplitudes []complex128
	lastNorm   float64
}

func NewState(numQubits int) (*State, error) {
	if numQubits < 1 || numQubits > MaxQubits {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidQubitCount, numQubits, MaxQubits)
	}
	s := &State{numQubits: numQubits}
	s.Reset()
	return s, nil
}

func (s *State) NumQubits() int { return s.numQubits }
func (s *State) Dim() int       { return 1 << s.numQubits }

// Reset returns the register to |0...0⟩.
func (s *State) Reset() {
	s.amplitudes = make([]complex128, s.Dim())
	s.amplitudes[0] = 1
	s.lastNorm = 1
}

// ApplyOperator replaces the amplitudes with m·ψ and renormalizes.
func (s *State) ApplyOperator(m linalg.Matrix) error {
	if m.Dim() != s.Dim() || !m.IsSquare() {
		return fmt.Errorf("%w: got %dx%d operator for dimension %d", ErrDimensionMismatch, m.Dim(), rowLen(m), s.Dim())
	}
	next, err := linalg.MulVec(m, s.amplitudes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDimensionMismatch, err)
	}
	norm := linalg.Normalize(next)
	if norm == 0 {
		return ErrDegenerateState
	}
	s.amplitudes = next
	s.lastNorm = norm
	return nil
}

// LastNorm is the norm of the vector produced by the most recent operator,
// before renormalization. For a unitary operator it stays at 1 up to rounding.
func (s *State) LastNorm() float64 { return s.lastNorm }

func (s *State) Norm() float64 { return linalg.Norm(s.amplitudes) }

func (s *State) Amplitudes() []complex128 {
	out := make([]complex128, len(s.amplitudes))
	copy(out, s.amplitudes)
	return out
}

func (s *State) Probabilities() []float64 {
	probs := make([]float64, len(s.amplitudes))
	for i, a := range s.amplitudes {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

func (s *State) Clone() *State {
	return &State{
		numQubits:  s.numQubits,
		amplitudes: s.Amplitudes(),
		lastNorm:   s.lastNorm,
	}
}

// QubitValue reports bit k of basis index i.
func QubitValue(i, k int) int {
	return (i >> k) & 1
}

// BasisLabel renders basis index i as a bit string with qubit n-1 leftmost,
// e.g. index 1 of a 3-qubit register is "001".
func BasisLabel(i, n int) string {
	var b strings.Builder
	for k := n - 1; k >= 0; k-- {
		b.WriteByte(byte('0' + QubitValue(i, k)))
	}
	return b.String()
}

// BasisLabels returns the labels for every index of an n-qubit register.
func BasisLabels(n int) []string {
	labels := make([]string, 1<<n)
	for i := range labels {
		labels[i] = BasisLabel(i, n)
	}
	return labels
}

func rowLen(m linalg.Matrix) int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}
