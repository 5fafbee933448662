package quantum

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws measurement outcomes. It is seeded so that a run can be
// reproduced shot for shot.
type Sampler struct {
	src rand.Source
}

func NewSampler(seed int64) *Sampler {
	return &Sampler{src: rand.NewPCG(uint64(seed), 0)}
}

// Sample draws shots independent outcomes from the categorical distribution
// probs over [0, len(probs)).
func (s *Sampler) Sample(probs []float64, shots int) ([]int, error) {
	if shots < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShotCount, shots)
	}
	if err := checkDistribution(probs); err != nil {
		return nil, err
	}

	dist := distuv.NewCategorical(probs, s.src)
	outcomes := make([]int, shots)
	for n := range outcomes {
		i := int(dist.Rand())
		// a zero uniform draw lands on index 0 whatever its weight
		for probs[i] == 0 {
			i = int(dist.Rand())
		}
		outcomes[n] = i
	}
	return outcomes, nil
}

func checkDistribution(probs []float64) error {
	if len(probs) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidDistribution)
	}
	sum := 0.0
	for i, p := range probs {
		if p < 0 || math.IsNaN(p) {
			return fmt.Errorf("%w: p[%d] = %g", ErrInvalidDistribution, i, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > unitaryTol {
		return fmt.Errorf("%w: sums to %g", ErrInvalidDistribution, sum)
	}
	return nil
}

// Counts tallies outcomes into a histogram over [0, dim). Outcomes outside
// that range are ignored.
func Counts(outcomes []int, dim int) []int {
	counts := make([]int, dim)
	for _, o := range outcomes {
		if o >= 0 && o < dim {
			counts[o]++
		}
	}
	return counts
}
