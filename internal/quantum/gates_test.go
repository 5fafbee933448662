package quantum_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qsim/internal/quantum"
)

var _ = Describe("Gate catalog", func() {
	It("lists gates in display order", func() {
		Expect(quantum.Names()).To(Equal([]string{"H", "X", "Y", "Z", "S", "T", "I"}))
	})

	It("keeps every matrix unitary", func() {
		for _, g := range quantum.Gates() {
			Expect(g.Matrix.IsUnitary(1e-12)).To(BeTrue(), g.Name)
			Expect(g.Description).NotTo(BeEmpty())
			Expect(g.Glyph).NotTo(BeEmpty())
		}
	})

	DescribeTable("resolves titles and aliases",
		func(name, want string) {
			g, err := quantum.Lookup(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Name).To(Equal(want))
		},
		Entry("identifier", "H", "H"),
		Entry("lower case", "x", "X"),
		Entry("title", "Hadamard (H)", "H"),
		Entry("pauli title", "Pauli-Y", "Y"),
		Entry("phase gate title", "S Gate", "S"),
		Entry("alias with spaces", "  t gate ", "T"),
		Entry("identity alias", "identity", "I"),
	)

	It("rejects unknown names", func() {
		_, err := quantum.Lookup("toffoli")
		Expect(err).To(MatchError(quantum.ErrUnknownGate))
	})

	It("hands out copies of the catalog matrices", func() {
		g, err := quantum.Lookup("X")
		Expect(err).NotTo(HaveOccurred())
		g.Matrix[0][0] = 42

		again, _ := quantum.Lookup("X")
		Expect(again.Matrix[0][0]).To(Equal(complex128(0)))
	})
})
