package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/san-kum/qsim/internal/linalg"
)

// unitaryTol bounds U†U - I for catalog matrices and the norm check on states.
const unitaryTol = 1e-9

type Gate struct {
	Name        string
	Title       string
	Description string
	Glyph       string
	Matrix      linalg.Matrix
}

var (
	hadamard = linalg.Matrix{{1, 1}, {1, -1}}.Scale(complex(1/math.Sqrt2, 0))
	pauliX   = linalg.Matrix{{0, 1}, {1, 0}}
	pauliY   = linalg.Matrix{{0, -1i}, {1i, 0}}
	pauliZ   = linalg.Matrix{{1, 0}, {0, -1}}
	sGate    = linalg.Matrix{{1, 0}, {0, 1i}}
	tGate    = linalg.Matrix{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}
	identity = linalg.Identity(2)
)

var catalog = []Gate{
	{
		Name:        "H",
		Title:       "Hadamard (H)",
		Description: "Creates superposition: transforms |0⟩ → (|0⟩ + |1⟩)/√2 and |1⟩ → (|0⟩ - |1⟩)/√2",
		Glyph:       "🌊",
		Matrix:      hadamard,
	},
	{
		Name:        "X",
		Title:       "Pauli-X",
		Description: "Bit flip: swaps |0⟩ ↔ |1⟩ (like classical NOT gate)",
		Glyph:       "🔄",
		Matrix:      pauliX,
	},
	{
		Name:        "Y",
		Title:       "Pauli-Y",
		Description: "Rotation of π radians on the Y axis of the Bloch sphere",
		Glyph:       "🔃",
		Matrix:      pauliY,
	},
	{
		Name:        "Z",
		Title:       "Pauli-Z",
		Description: "Phase flip: changes the phase of |1⟩ to -|1⟩",
		Glyph:       "⚡",
		Matrix:      pauliZ,
	},
	{
		Name:        "S",
		Title:       "S Gate",
		Description: "Phase shift π/2: adds phase i to |1⟩",
		Glyph:       "📐",
		Matrix:      sGate,
	},
	{
		Name:        "T",
		Title:       "T Gate",
		Description: "Phase shift π/4: important for universal computation",
		Glyph:       "🎯",
		Matrix:      tGate,
	},
	{
		Name:        "I",
		Title:       "Identity",
		Description: "Leaves the qubit unchanged",
		Glyph:       "▫️",
		Matrix:      identity,
	},
}

// aliases maps every accepted spelling (lower-cased) to a catalog index.
var aliases = map[string]int{}

func init() {
	extra := map[string][]string{
		"H": {"hadamard"},
		"X": {"pauli-x", "not"},
		"Y": {"pauli-y"},
		"Z": {"pauli-z"},
		"S": {"s gate", "phase"},
		"T": {"t gate"},
		"I": {"identity", "id"},
	}
	for i, g := range catalog {
		if !g.Matrix.IsUnitary(unitaryTol) {
			panic(fmt.Sprintf("quantum: catalog gate %s is not unitary", g.Name))
		}
		aliases[strings.ToLower(g.Name)] = i
		aliases[strings.ToLower(g.Title)] = i
		for _, a := range extra[g.Name] {
			aliases[a] = i
		}
	}
}

// Names returns the catalog identifiers in display order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, g := range catalog {
		names[i] = g.Name
	}
	return names
}

// Gates returns a copy of the whole catalog in display order.
func Gates() []Gate {
	out := make([]Gate, len(catalog))
	for i, g := range catalog {
		out[i] = g.clone()
	}
	return out
}

// Lookup resolves a gate by identifier, title or alias, ignoring case.
func Lookup(name string) (Gate, error) {
	i, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Gate{}, fmt.Errorf("%w: %q", ErrUnknownGate, name)
	}
	return catalog[i].clone(), nil
}

func (g Gate) clone() Gate {
	g.Matrix = g.Matrix.Clone()
	return g
}
