package diagram

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gofers/internal/deflection"
	"github.com/guptarohit/asciigraph"
)

// DeflectionSeries concatenates the local y and z deflections of consecutive
// shapes, scaled by factor (e.g. 1000 for mm). Shared end stations are
// written once.
func DeflectionSeries(shapes []*deflection.Shape, factor float64) (y, z []float64) {
	for i, s := range shapes {
		start := 0
		if i > 0 {
			start = 1
		}
		for _, d := range s.Local[start:] {
			y = append(y, d.Y*factor)
			z = append(z, d.Z*factor)
		}
	}
	return y, z
}

// DrawDeflectionChart plots the local y and z deflection of a chain of
// members as a terminal chart, in mm.
func DrawDeflectionChart(title string, shapes []*deflection.Shape, height int) string {
	y, z := DeflectionSeries(shapes, 1000)
	if len(y) == 0 {
		return ""
	}
	if height <= 0 {
		height = 10
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", title))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", len([]rune(title)))))
	sb.WriteString(asciigraph.PlotMany([][]float64{y, z},
		asciigraph.Height(height),
		asciigraph.Offset(4),
		asciigraph.Precision(3),
		asciigraph.Caption("local y (first) and local z deflection [mm]"),
	))
	sb.WriteString("\n")
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
