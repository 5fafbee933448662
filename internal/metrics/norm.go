package metrics

import (
	"math"

	"github.com/san-kum/qsim/internal/quantum"
)

// NormDrift tracks the largest deviation from unit norm an operator
// produced before the state was renormalized.
type NormDrift struct {
	name string
	max  float64
}

func NewNormDrift() *NormDrift {
	return &NormDrift{name: "norm_drift"}
}

func (n *NormDrift) Name() string { return n.name }

func (n *NormDrift) OnApply(op quantum.Operation, st *quantum.State) {
	if d := math.Abs(st.LastNorm() - 1); d > n.max {
		n.max = d
	}
}

func (n *NormDrift) Value() float64 { return n.max }

func (n *NormDrift) Reset() { n.max = 0 }
