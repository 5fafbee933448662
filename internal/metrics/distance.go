package metrics

import "gonum.org/v1/gonum/floats"

// TotalVariation is half the L1 distance between the exact distribution and
// the empirical one given by counts over shots. Zero shots compare against
// an all-zero histogram.
func TotalVariation(probs []float64, counts []int, shots int) float64 {
	empirical := make([]float64, len(probs))
	if shots > 0 {
		for i := range empirical {
			if i < len(counts) {
				empirical[i] = float64(counts[i]) / float64(shots)
			}
		}
	}
	return floats.Distance(probs, empirical, 1) / 2
}
