package export

import (
	"fmt"
	"html"
	"math"
	"strings"
)

const (
	background = "#0a0a0a"
	axisColor  = "#888899"
	textColor  = "#e0e0e0"
	realColor  = "#3498db"
	imagColor  = "#e74c3c"
	margin     = 50.0
)

// Bar is one labelled value of a bar chart.
type Bar struct {
	Label string
	Value float64
	Note  string
}

type Chart struct {
	Title  string
	YLabel string
	Width  int
	Height int
	// YMax fixes the top of the value axis; 0 scales to the data.
	YMax float64
}

func header(sb *strings.Builder, c Chart) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="monospace">
<rect width="100%%" height="100%%" fill="%s"/>
`, c.Width, c.Height, c.Width, c.Height, background))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="24" fill="%s" font-size="16" text-anchor="middle">%s</text>
`, float64(c.Width)/2, textColor, html.EscapeString(c.Title)))
	if c.YLabel != "" {
		sb.WriteString(fmt.Sprintf(`<text x="14" y="%.1f" fill="%s" font-size="12" transform="rotate(-90 14 %.1f)" text-anchor="middle">%s</text>
`, float64(c.Height)/2, axisColor, float64(c.Height)/2, html.EscapeString(c.YLabel)))
	}
}

// BarChartSVG draws non-negative bars, one per entry, colored from dim to
// bright by relative height.
func BarChartSVG(c Chart, bars []Bar) string {
	if len(bars) == 0 || c.Width <= 0 || c.Height <= 0 {
		return ""
	}

	maxV := c.YMax
	if maxV <= 0 {
		for _, b := range bars {
			maxV = math.Max(maxV, b.Value)
		}
		if maxV == 0 {
			maxV = 1
		}
	}

	plotW := float64(c.Width) - 2*margin
	plotH := float64(c.Height) - 2*margin
	slot := plotW / float64(len(bars))
	barW := slot * 0.7
	baseY := margin + plotH

	var sb strings.Builder
	header(&sb, c)
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, margin, baseY, margin+plotW, baseY, axisColor))

	for i, b := range bars {
		v := math.Max(0, b.Value)
		h := v / maxV * plotH
		x := margin + float64(i)*slot + (slot-barW)/2
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#000000"/>
`, x, baseY-h, barW, h, shade(v/maxV)))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="12" text-anchor="middle">%s</text>
`, x+barW/2, baseY+18, textColor, html.EscapeString(b.Label)))
		if b.Note != "" {
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="10" text-anchor="middle">%s</text>
`, x+barW/2, baseY-h-6, textColor, html.EscapeString(b.Note)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// AmplitudeSVG draws the real and imaginary parts of each amplitude side by
// side around a zero axis.
func AmplitudeSVG(c Chart, labels []string, amps []complex128) string {
	if len(amps) == 0 || len(labels) != len(amps) || c.Width <= 0 || c.Height <= 0 {
		return ""
	}

	maxAbs := 0.0
	for _, a := range amps {
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(real(a)), math.Abs(imag(a))))
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	plotW := float64(c.Width) - 2*margin
	plotH := float64(c.Height) - 2*margin
	zeroY := margin + plotH/2
	slot := plotW / float64(len(amps))
	barW := slot * 0.35

	var sb strings.Builder
	header(&sb, c)
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, margin, zeroY, margin+plotW, zeroY, axisColor))

	for i, a := range amps {
		x := margin + float64(i)*slot + slot*0.15
		for j, part := range []struct {
			v     float64
			color string
		}{{real(a), realColor}, {imag(a), imagColor}} {
			h := math.Abs(part.v) / maxAbs * plotH / 2
			y := zeroY - h
			if part.v < 0 {
				y = zeroY
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#000000"/>
`, x+float64(j)*barW, y, barW, h, part.color))
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="12" text-anchor="middle">%s</text>
`, x+barW, margin+plotH+18, textColor, html.EscapeString(labels[i])))
	}

	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="36" width="10" height="10" fill="%s"/><text x="%.1f" y="45" fill="%s" font-size="11">Real</text>
<rect x="%.1f" y="36" width="10" height="10" fill="%s"/><text x="%.1f" y="45" fill="%s" font-size="11">Imaginary</text>
`, margin, realColor, margin+14, textColor, margin+60, imagColor, margin+74, textColor))
	sb.WriteString("</svg>")
	return sb.String()
}

// ProbabilityBars labels probs with their basis states and marks every
// entry above 1% with its value.
func ProbabilityBars(labels []string, probs []float64) []Bar {
	bars := make([]Bar, len(probs))
	for i, p := range probs {
		bars[i] = Bar{Label: "|" + labels[i] + "⟩", Value: p}
		if p > 0.01 {
			bars[i].Note = fmt.Sprintf("%.3f", p)
		}
	}
	return bars
}

// HistogramBars labels counts and notes each non-zero bar with its share
// of shots.
func HistogramBars(labels []string, counts []int, shots int) []Bar {
	bars := make([]Bar, len(counts))
	for i, c := range counts {
		bars[i] = Bar{Label: labels[i], Value: float64(c)}
		if c > 0 && shots > 0 {
			bars[i].Note = fmt.Sprintf("%d (%.1f%%)", c, float64(c)/float64(shots)*100)
		}
	}
	return bars
}

// shade maps t in [0,1] from a dim violet to a bright yellow.
func shade(t float64) string {
	t = math.Max(0, math.Min(1, t))
	r := int(0x44 + t*(0xfd-0x44))
	g := int(0x01 + t*(0xe7-0x01))
	b := int(0x54 + t*(0x25-0x54))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
