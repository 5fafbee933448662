package metrics

import "github.com/san-kum/qsim/internal/quantum"

type GateCount struct {
	count int
}

func NewGateCount() *GateCount { return &GateCount{} }

func (g *GateCount) Name() string { return "gates" }

func (g *GateCount) OnApply(op quantum.Operation, st *quantum.State) { g.count++ }

func (g *GateCount) Value() float64 { return float64(g.count) }

func (g *GateCount) Reset() { g.count = 0 }

// ControlledCount counts only two-qubit (controlled) operations.
type ControlledCount struct {
	count int
}

func NewControlledCount() *ControlledCount { return &ControlledCount{} }

func (c *ControlledCount) Name() string { return "controlled_gates" }

func (c *ControlledCount) OnApply(op quantum.Operation, st *quantum.State) {
	if op.Controlled() {
		c.count++
	}
}

func (c *ControlledCount) Value() float64 { return float64(c.count) }

func (c *ControlledCount) Reset() { c.count = 0 }
