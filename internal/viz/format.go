package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/qsim/internal/linalg"
	"github.com/san-kum/qsim/internal/quantum"
)

// zeroTol hides rounding noise when printing amplitudes.
const zeroTol = 1e-10

// FormatComplex prints v as a real, a pure imaginary or a full complex
// number, whichever is the shortest exact form.
func FormatComplex(v complex128) string {
	re, im := real(v), imag(v)
	switch {
	case math.Abs(im) < zeroTol:
		return fmt.Sprintf("%.4f", re)
	case math.Abs(re) < zeroTol:
		return fmt.Sprintf("%.4fi", im)
	default:
		return fmt.Sprintf("(%.3f%+.3fi)", re, im)
	}
}

// FormatMatrix prints m one bracketed row per line in fixed-width cells.
func FormatMatrix(m linalg.Matrix) string {
	var b strings.Builder
	for _, row := range m {
		b.WriteString("[")
		for _, v := range row {
			re, im := real(v), imag(v)
			switch {
			case math.Abs(im) < zeroTol:
				b.WriteString(fmt.Sprintf(" %7.4f      ", re))
			case math.Abs(re) < zeroTol:
				b.WriteString(fmt.Sprintf(" %7.4fi     ", im))
			default:
				b.WriteString(fmt.Sprintf(" %.3f%+.3fi ", re, im))
			}
		}
		b.WriteString("]\n")
	}
	return b.String()
}

// StateLines lists every basis state with a non-negligible amplitude, e.g.
// "|11⟩: 0.7071 (P=0.5000)".
func StateLines(amps []complex128, numQubits int) []string {
	lines := make([]string, 0, len(amps))
	for i, a := range amps {
		mag := math.Hypot(real(a), imag(a))
		if mag <= zeroTol {
			continue
		}
		lines = append(lines, fmt.Sprintf("|%s⟩: %s (P=%.4f)", quantum.BasisLabel(i, numQubits), FormatComplex(a), mag*mag))
	}
	return lines
}

// CircuitLines numbers the circuit log from 1.
func CircuitLines(ops []quantum.Operation) []string {
	lines := make([]string, len(ops))
	for i, op := range ops {
		lines[i] = fmt.Sprintf("%d. %s", i+1, op)
	}
	return lines
}

// CountLines prints one "basis: count (share%)" row per outcome.
func CountLines(counts []int, numQubits, shots int) []string {
	lines := make([]string, len(counts))
	for i, c := range counts {
		share := 0.0
		if shots > 0 {
			share = float64(c) / float64(shots) * 100
		}
		lines[i] = fmt.Sprintf("%s: %d (%.1f%%)", quantum.BasisLabel(i, numQubits), c, share)
	}
	return lines
}
