package quantum_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qsim/internal/quantum"
)

var _ = Describe("Sampler", func() {
	It("converges to the distribution", func() {
		probs := []float64{0.5, 0, 0, 0.5}
		shots := 100000
		outcomes, err := quantum.NewSampler(7).Sample(probs, shots)
		Expect(err).NotTo(HaveOccurred())
		Expect(outcomes).To(HaveLen(shots))

		counts := quantum.Counts(outcomes, len(probs))
		for i, p := range probs {
			Expect(float64(counts[i]) / float64(shots)).To(BeNumerically("~", p, 0.02))
		}
		Expect(counts[1]).To(BeZero())
		Expect(counts[2]).To(BeZero())
	})

	It("always returns the certain outcome", func() {
		outcomes, err := quantum.NewSampler(1).Sample([]float64{0, 0, 1, 0}, 500)
		Expect(err).NotTo(HaveOccurred())
		for _, o := range outcomes {
			Expect(o).To(Equal(2))
		}
	})

	It("is reproducible for a fixed seed", func() {
		probs := []float64{0.25, 0.25, 0.25, 0.25}
		a, _ := quantum.NewSampler(99).Sample(probs, 100)
		b, _ := quantum.NewSampler(99).Sample(probs, 100)
		Expect(a).To(Equal(b))
	})

	It("draws different streams for different seeds", func() {
		probs := []float64{0.25, 0.25, 0.25, 0.25}
		a, _ := quantum.NewSampler(1).Sample(probs, 200)
		b, _ := quantum.NewSampler(2).Sample(probs, 200)
		Expect(a).NotTo(Equal(b))
	})

	It("never draws a zero-probability outcome", func() {
		probs := []float64{0, 0.5, 0, 0.5, 0, 0, 0, 0}
		for seed := int64(0); seed < 20; seed++ {
			outcomes, err := quantum.NewSampler(seed).Sample(probs, 1000)
			Expect(err).NotTo(HaveOccurred())
			counts := quantum.Counts(outcomes, len(probs))
			Expect(counts[1] + counts[3]).To(Equal(1000))
		}
	})

	It("returns an empty slice for zero shots", func() {
		outcomes, err := quantum.NewSampler(1).Sample([]float64{1, 0}, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(outcomes).To(BeEmpty())
	})

	It("rejects negative shot counts", func() {
		_, err := quantum.NewSampler(1).Sample([]float64{1, 0}, -1)
		Expect(err).To(MatchError(quantum.ErrInvalidShotCount))
	})

	DescribeTable("rejects malformed distributions",
		func(probs []float64) {
			_, err := quantum.NewSampler(1).Sample(probs, 10)
			Expect(err).To(MatchError(quantum.ErrInvalidDistribution))
		},
		Entry("empty", []float64{}),
		Entry("does not sum to one", []float64{0.5, 0.4}),
		Entry("negative entry", []float64{1.5, -0.5}),
	)

	It("ignores out-of-range outcomes when counting", func() {
		Expect(quantum.Counts([]int{0, 1, 1, 5, -1}, 2)).To(Equal([]int{1, 2}))
	})
})
