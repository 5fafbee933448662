package linalg

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

var ErrShape = errors.New("linalg: incompatible shapes")

type Matrix [][]complex128

func Zeros(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]complex128, n)
	}
	return m
}

func Identity(n int) Matrix {
	m := Zeros(n)
	for i := 0; i < n; i++ {
		m[i][i] = 1
	}
	return m
}

// Dim returns the row count.
func (m Matrix) Dim() int { return len(m) }

func (m Matrix) IsSquare() bool {
	for _, row := range m {
		if len(row) != len(m) {
			return false
		}
	}
	return true
}

func (m Matrix) Clone() Matrix {
	c := make(Matrix, len(m))
	for i, row := range m {
		c[i] = make([]complex128, len(row))
		copy(c[i], row)
	}
	return c
}

func (m Matrix) Scale(f complex128) Matrix {
	c := m.Clone()
	for i := range c {
		for j := range c[i] {
			c[i][j] *= f
		}
	}
	return c
}

func (m Matrix) ConjTranspose() Matrix {
	if len(m) == 0 {
		return Matrix{}
	}
	rows, cols := len(m), len(m[0])
	t := make(Matrix, cols)
	for j := 0; j < cols; j++ {
		t[j] = make([]complex128, rows)
		for i := 0; i < rows; i++ {
			t[j][i] = cmplx.Conj(m[i][j])
		}
	}
	return t
}

// Equal reports whether every element of m is within tol of b.
func (m Matrix) Equal(b Matrix, tol float64) bool {
	if len(m) != len(b) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(b[i]) {
			return false
		}
		for j := range m[i] {
			if cmplx.Abs(m[i][j]-b[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

func (m Matrix) IsUnitary(tol float64) bool {
	if len(m) == 0 || !m.IsSquare() {
		return false
	}
	p, err := Mul(m.ConjTranspose(), m)
	if err != nil {
		return false
	}
	return p.Equal(Identity(len(m)), tol)
}

// Kron returns the Kronecker product a ⊗ b. Block (i, j) of the result is
// a[i][j]·b, so a's indices are the high-order part of the result index.
func Kron(a, b Matrix) Matrix {
	ar := len(a)
	br := len(b)
	if ar == 0 || br == 0 {
		return Matrix{}
	}
	ac, bc := len(a[0]), len(b[0])

	out := make(Matrix, ar*br)
	for i := range out {
		out[i] = make([]complex128, ac*bc)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			aij := a[i][j]
			if aij == 0 {
				continue
			}
			for k := 0; k < br; k++ {
				row := out[i*br+k]
				for l := 0; l < bc; l++ {
					row[j*bc+l] = aij * b[k][l]
				}
			}
		}
	}
	return out
}

func Mul(a, b Matrix) (Matrix, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrShape
	}
	inner := len(a[0])
	if inner != len(b) {
		return nil, fmt.Errorf("%w: %dx%d times %dx%d", ErrShape, len(a), inner, len(b), len(b[0]))
	}
	cols := len(b[0])
	out := make(Matrix, len(a))
	for i := range a {
		out[i] = make([]complex128, cols)
		for k := 0; k < inner; k++ {
			aik := a[i][k]
			if aik == 0 {
				continue
			}
			for j := 0; j < cols; j++ {
				out[i][j] += aik * b[k][j]
			}
		}
	}
	return out, nil
}

func MulVec(m Matrix, v []complex128) ([]complex128, error) {
	for i, row := range m {
		if len(row) != len(v) {
			return nil, fmt.Errorf("%w: row %d has %d columns, vector has %d", ErrShape, i, len(row), len(v))
		}
	}
	out := make([]complex128, len(m))
	if len(m) < parallelRows {
		mulRows(m, v, out, 0, len(m))
		return out, nil
	}
	mulParallel(m, v, out)
	return out, nil
}

// Norm is the Euclidean norm of v.
func Norm(v []complex128) float64 {
	sum := 0.0
	for _, a := range v {
		re, im := real(a), imag(a)
		sum += re*re + im*im
	}
	return math.Sqrt(sum)
}

// Normalize divides v by its norm in place and returns the norm it had.
// A zero vector is left unchanged.
func Normalize(v []complex128) float64 {
	n := Norm(v)
	if n == 0 {
		return 0
	}
	inv := complex(1/n, 0)
	for i := range v {
		v[i] *= inv
	}
	return n
}
