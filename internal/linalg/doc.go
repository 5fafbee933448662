// Package linalg provides the dense complex linear algebra used by the
// state-vector simulator.
//
// Matrices are stored row-major as [Matrix] (a slice of rows). Sizes in this
// project are tiny (at most 2^MaxQubits on a side), so everything is dense
// and allocation-per-call:
//
//   - [Identity], [Zeros]: constructors
//   - [Kron]: Kronecker (tensor) product
//   - [Mul], [MulVec]: matrix-matrix and matrix-vector products
//   - [Matrix.IsUnitary]: U†U = I check
//
// # Example
//
//	h := linalg.Matrix{{1, 1}, {1, -1}}.Scale(1 / math.Sqrt2)
//	op := linalg.Kron(linalg.Identity(2), h)
//	out, _ := linalg.MulVec(op, []complex128{1, 0, 0, 0})
package linalg
