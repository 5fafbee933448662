package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/qsim/internal/quantum"
)

// Entropy is the Shannon entropy, in bits, of the measurement distribution
// after the most recent gate. |0...0⟩ has entropy 0; a uniform n-qubit
// superposition has entropy n.
type Entropy struct {
	name  string
	value float64
}

func NewEntropy() *Entropy {
	return &Entropy{name: "entropy_bits"}
}

func (e *Entropy) Name() string { return e.name }

func (e *Entropy) OnApply(op quantum.Operation, st *quantum.State) {
	e.value = ShannonEntropy(st.Probabilities())
}

func (e *Entropy) Value() float64 { return e.value }

func (e *Entropy) Reset() { e.value = 0 }

// ShannonEntropy is the entropy of probs in bits.
func ShannonEntropy(probs []float64) float64 {
	return stat.Entropy(probs) / math.Ln2
}
