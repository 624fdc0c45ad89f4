package ui

import (
	"math"
	"strings"

	"github.com/nexusriot/anacreon/internal/chart"
	"github.com/nexusriot/anacreon/internal/probe"
)

// sparkline blocks: low -> high
var blocks = []rune("▁▂▃▄▅▆▇█")

// Spark draws the sparkline geometry into width cells, one block per sample.
func Spark(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat(" ", width)
	}
	values = probe.ClampHistory(values, width)

	top := float64(len(blocks) - 1)
	g := chart.Sparkline(values, float64(len(values)-1), top)

	var b strings.Builder
	for _, p := range g.Points {
		idx := int(math.Round(top - p.Y))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	// pad to width
	if len(values) < width {
		b.WriteString(strings.Repeat(" ", width-len(values)))
	}
	return b.String()
}
