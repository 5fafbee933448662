package linalg_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qsim/internal/linalg"
)

var (
	pauliX   = linalg.Matrix{{0, 1}, {1, 0}}
	pauliZ   = linalg.Matrix{{1, 0}, {0, -1}}
	hadamard = linalg.Matrix{{1, 1}, {1, -1}}.Scale(complex(1/math.Sqrt2, 0))
)

var _ = Describe("Matrix", func() {
	Describe("Identity", func() {
		It("has ones on the diagonal only", func() {
			id := linalg.Identity(4)
			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					if i == j {
						Expect(id[i][j]).To(Equal(complex128(1)))
					} else {
						Expect(id[i][j]).To(Equal(complex128(0)))
					}
				}
			}
		})
	})

	Describe("Kron", func() {
		It("multiplies dimensions", func() {
			k := linalg.Kron(linalg.Identity(2), linalg.Identity(4))
			Expect(k.Dim()).To(Equal(8))
			Expect(k.IsSquare()).To(BeTrue())
			Expect(k.Equal(linalg.Identity(8), 0)).To(BeTrue())
		})

		It("puts the left operand in the high-order block index", func() {
			// X ⊗ I swaps the two 2x2 blocks.
			k := linalg.Kron(pauliX, linalg.Identity(2))
			want := linalg.Matrix{
				{0, 0, 1, 0},
				{0, 0, 0, 1},
				{1, 0, 0, 0},
				{0, 1, 0, 0},
			}
			Expect(k.Equal(want, 0)).To(BeTrue())
		})

		It("satisfies the mixed-product property", func() {
			left, err := linalg.Mul(linalg.Kron(hadamard, pauliX), linalg.Kron(pauliZ, hadamard))
			Expect(err).NotTo(HaveOccurred())

			hz, _ := linalg.Mul(hadamard, pauliZ)
			xh, _ := linalg.Mul(pauliX, hadamard)
			Expect(left.Equal(linalg.Kron(hz, xh), 1e-12)).To(BeTrue())
		})
	})

	Describe("Mul and MulVec", func() {
		It("rejects mismatched shapes", func() {
			_, err := linalg.Mul(linalg.Identity(2), linalg.Identity(4))
			Expect(err).To(MatchError(linalg.ErrShape))

			_, err = linalg.MulVec(linalg.Identity(4), []complex128{1, 0})
			Expect(err).To(MatchError(linalg.ErrShape))
		})

		It("applies a matrix to a vector", func() {
			out, err := linalg.MulVec(pauliX, []complex128{1, 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal([]complex128{0, 1}))
		})

		It("gives the same product when rows are split across workers", func() {
			op := linalg.Identity(1)
			for i := 0; i < 7; i++ {
				op = linalg.Kron(hadamard, op)
			}
			v := make([]complex128, op.Dim())
			col := make(linalg.Matrix, op.Dim())
			for i := range v {
				v[i] = complex(float64(i%5), float64(i%3)-1)
				col[i] = []complex128{v[i]}
			}

			out, err := linalg.MulVec(op, v)
			Expect(err).NotTo(HaveOccurred())
			want, err := linalg.Mul(op, col)
			Expect(err).NotTo(HaveOccurred())
			for i := range out {
				Expect(math.Abs(real(out[i] - want[i][0]))).To(BeNumerically("<", 1e-9))
				Expect(math.Abs(imag(out[i] - want[i][0]))).To(BeNumerically("<", 1e-9))
			}
		})
	})

	Describe("IsUnitary", func() {
		It("accepts the standard single-qubit gates", func() {
			for _, m := range []linalg.Matrix{pauliX, pauliZ, hadamard, linalg.Identity(2)} {
				Expect(m.IsUnitary(1e-9)).To(BeTrue())
			}
		})

		It("rejects non-unitary and non-square matrices", func() {
			Expect(linalg.Matrix{{1, 1}, {0, 1}}.IsUnitary(1e-9)).To(BeFalse())
			Expect(linalg.Matrix{{1, 0, 0}, {0, 1, 0}}.IsUnitary(1e-9)).To(BeFalse())
			Expect(linalg.Matrix{}.IsUnitary(1e-9)).To(BeFalse())
		})
	})

	Describe("Normalize", func() {
		It("scales to unit norm and reports the previous norm", func() {
			v := []complex128{3, 4i}
			Expect(linalg.Normalize(v)).To(BeNumerically("~", 5, 1e-12))
			Expect(linalg.Norm(v)).To(BeNumerically("~", 1, 1e-12))
		})

		It("leaves the zero vector alone", func() {
			v := []complex128{0, 0}
			Expect(linalg.Normalize(v)).To(Equal(0.0))
			Expect(v).To(Equal([]complex128{0, 0}))
		})
	})
})
