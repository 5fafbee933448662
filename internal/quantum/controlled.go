package quantum

import (
	"fmt"

	"github.com/san-kum/qsim/internal/linalg"
)

// BuildControlled returns the 2^n x 2^n operator that applies u to the
// target qubit on every basis state whose control qubit is 1.
//
// For each index i with control bit 1 and target bit 0, j = i with the target
// bit set; rows/columns {i, j} receive u's 2x2 block. All other rows keep the
// identity. For u = X this is the CNOT permutation matrix.
func BuildControlled(u linalg.Matrix, control, target, numQubits int) (linalg.Matrix, error) {
	if u.Dim() != 2 || !u.IsSquare() {
		return nil, fmt.Errorf("%w: controlled gate must be 2x2, got %dx%d", ErrDimensionMismatch, u.Dim(), rowLen(u))
	}
	if err := checkQubit(control, numQubits); err != nil {
		return nil, fmt.Errorf("control: %w", err)
	}
	if err := checkQubit(target, numQubits); err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if control == target {
		return nil, fmt.Errorf("%w: control and target are both %d", ErrInvalidQubit, control)
	}

	dim := 1 << numQubits
	op := linalg.Identity(dim)
	tbit := 1 << target
	for i := 0; i < dim; i++ {
		if QubitValue(i, control) != 1 || QubitValue(i, target) != 0 {
			continue
		}
		j := i | tbit
		op[i][i], op[i][j] = u[0][0], u[0][1]
		op[j][i], op[j][j] = u[1][0], u[1][1]
	}
	return op, nil
}

// BuildCNOT flips the target qubit iff the control qubit is 1.
func BuildCNOT(control, target, numQubits int) (linalg.Matrix, error) {
	return BuildControlled(pauliX, control, target, numQubits)
}
