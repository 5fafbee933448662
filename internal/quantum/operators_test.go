package quantum_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qsim/internal/linalg"
	"github.com/san-kum/qsim/internal/quantum"
)

var _ = Describe("Expand", func() {
	x := linalg.Matrix{{0, 1}, {1, 0}}

	It("returns the gate itself for one qubit", func() {
		op, err := quantum.Expand(x, 0, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(op.Equal(x, 0)).To(BeTrue())
	})

	It("places qubit 0 in the least-significant factor", func() {
		op, err := quantum.Expand(x, 0, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(op.Equal(linalg.Kron(linalg.Identity(2), x), 0)).To(BeTrue())

		op, err = quantum.Expand(x, 1, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(op.Equal(linalg.Kron(x, linalg.Identity(2)), 0)).To(BeTrue())
	})

	It("flips bit t of the basis index when X acts on qubit t", func() {
		for n := 1; n <= 3; n++ {
			for t := 0; t < n; t++ {
				op, err := quantum.Expand(x, t, n)
				Expect(err).NotTo(HaveOccurred())
				Expect(op.Dim()).To(Equal(1 << n))
				for i := 0; i < 1<<n; i++ {
					Expect(op[i^(1<<t)][i]).To(Equal(complex128(1)), "n=%d t=%d i=%d", n, t, i)
				}
			}
		}
	})

	It("rejects targets outside the register", func() {
		_, err := quantum.Expand(x, 2, 2)
		Expect(err).To(MatchError(quantum.ErrInvalidQubit))
		_, err = quantum.Expand(x, -1, 2)
		Expect(err).To(MatchError(quantum.ErrInvalidQubit))
	})

	It("rejects gates that are not 2x2", func() {
		_, err := quantum.Expand(linalg.Identity(4), 0, 2)
		Expect(err).To(MatchError(quantum.ErrDimensionMismatch))
	})
})

var _ = Describe("BuildControlled", func() {
	It("builds the textbook CNOT for control 0, target 1", func() {
		op, err := quantum.BuildCNOT(0, 1, 2)
		Expect(err).NotTo(HaveOccurred())
		// |q1 q0⟩ ordering: 01 -> 11 and 11 -> 01.
		want := linalg.Matrix{
			{1, 0, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
		}
		Expect(op.Equal(want, 0)).To(BeTrue())
	})

	It("produces permutation matrices that are their own inverse", func() {
		for n := 2; n <= 3; n++ {
			for c := 0; c < n; c++ {
				for t := 0; t < n; t++ {
					if c == t {
						continue
					}
					op, err := quantum.BuildCNOT(c, t, n)
					Expect(err).NotTo(HaveOccurred())

					for i := range op {
						rowSum, colSum := complex128(0), complex128(0)
						for j := range op {
							rowSum += op[i][j]
							colSum += op[j][i]
						}
						Expect(rowSum).To(Equal(complex128(1)))
						Expect(colSum).To(Equal(complex128(1)))
					}

					sq, err := linalg.Mul(op, op)
					Expect(err).NotTo(HaveOccurred())
					Expect(sq.Equal(linalg.Identity(1<<n), 0)).To(BeTrue())
				}
			}
		}
	})

	It("agrees with Expand on which bit is the target", func() {
		// With the control forced to 1, CNOT(c, t) must act like X on t.
		cnot, err := quantum.BuildCNOT(0, 2, 3)
		Expect(err).NotTo(HaveOccurred())
		xOnTarget, err := quantum.Expand(linalg.Matrix{{0, 1}, {1, 0}}, 2, 3)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 8; i++ {
			if quantum.QubitValue(i, 0) == 1 {
				Expect(cnot[i]).To(Equal(xOnTarget[i]))
			}
		}
	})

	It("generalizes to controlled-U", func() {
		z := linalg.Matrix{{1, 0}, {0, -1}}
		op, err := quantum.BuildControlled(z, 0, 1, 2)
		Expect(err).NotTo(HaveOccurred())
		want := linalg.Identity(4)
		want[3][3] = -1
		Expect(op.Equal(want, 0)).To(BeTrue())
		Expect(op.IsUnitary(1e-12)).To(BeTrue())
	})

	DescribeTable("rejects invalid qubit pairs",
		func(control, target int) {
			_, err := quantum.BuildCNOT(control, target, 2)
			Expect(err).To(MatchError(quantum.ErrInvalidQubit))
		},
		Entry("same qubit", 1, 1),
		Entry("control out of range", 2, 0),
		Entry("target out of range", 0, 2),
		Entry("negative control", -1, 0),
	)
})
