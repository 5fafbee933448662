package quantum

import (
	"fmt"

	"github.com/san-kum/qsim/internal/linalg"
)

// Expand embeds a 2x2 gate acting on qubit target into the 2^n x 2^n
// operator that leaves every other qubit alone.
//
// The per-qubit factors are listed in qubit order 0..n-1 and folded so that
// qubit 0 ends up as the right-most Kronecker factor:
//
//	op = f[n-1] ⊗ ... ⊗ f[1] ⊗ f[0]
//
// which makes qubit k bit k of the basis index, the same convention
// BuildControlled decodes with (i>>k)&1.
func Expand(gate linalg.Matrix, target, numQubits int) (linalg.Matrix, error) {
	if gate.Dim() != 2 || !gate.IsSquare() {
		return nil, fmt.Errorf("%w: single-qubit gate must be 2x2, got %dx%d", ErrDimensionMismatch, gate.Dim(), rowLen(gate))
	}
	if err := checkQubit(target, numQubits); err != nil {
		return nil, err
	}

	factors := make([]linalg.Matrix, numQubits)
	for k := range factors {
		if k == target {
			factors[k] = gate
		} else {
			factors[k] = identity
		}
	}

	op := factors[0]
	for _, f := range factors[1:] {
		op = linalg.Kron(f, op)
	}
	return op, nil
}

func checkQubit(q, numQubits int) error {
	if q < 0 || q >= numQubits {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidQubit, q, numQubits)
	}
	return nil
}
