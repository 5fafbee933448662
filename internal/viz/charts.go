package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/qsim/internal/quantum"
)

// ProbabilityPlot draws the outcome distribution as an asciigraph series
// over the basis indices.
func ProbabilityPlot(probs []float64, width, height int) string {
	if len(probs) == 0 {
		return ""
	}
	return asciigraph.Plot(probs,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("probability P(x) over basis index x"),
	)
}

// HistogramPlot draws measurement counts with asciigraph.
func HistogramPlot(counts []int, shots, width, height int) string {
	if len(counts) == 0 {
		return ""
	}
	data := make([]float64, len(counts))
	for i, c := range counts {
		data[i] = float64(c)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("measurement histogram (%d shots)", shots)),
	)
}

// ProbabilityBars renders one labelled horizontal bar per basis state.
func ProbabilityBars(probs []float64, numQubits, width int) string {
	var b strings.Builder
	for i, p := range probs {
		label := MetricLabel.Render(fmt.Sprintf("|%s⟩", quantum.BasisLabel(i, numQubits)))
		b.WriteString(fmt.Sprintf("%s %s %s\n", label, ProgressBar(p, width), MetricValue.Render(fmt.Sprintf("%.3f", p))))
	}
	return b.String()
}

// CountBars renders the histogram as bars scaled to the largest count.
func CountBars(counts []int, numQubits, shots, width int) string {
	maxC := 0
	for _, c := range counts {
		if c > maxC {
			maxC = c
		}
	}
	var b strings.Builder
	for i, c := range counts {
		frac := 0.0
		if maxC > 0 {
			frac = float64(c) / float64(maxC)
		}
		share := 0.0
		if shots > 0 {
			share = float64(c) / float64(shots) * 100
		}
		label := MetricLabel.Render(quantum.BasisLabel(i, numQubits))
		b.WriteString(fmt.Sprintf("%s %s %s\n", label, ProgressBar(frac, width), Subtle.Render(fmt.Sprintf("%d (%.1f%%)", c, share))))
	}
	return b.String()
}
