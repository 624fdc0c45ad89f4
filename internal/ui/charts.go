package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/nexusriot/anacreon/internal/chart"
)

const eighths = 8

// BarChart rasterises the grouped bar geometry into rows of cells. Each
// cell row holds eight vertical steps, followed by one line of labels.
func BarChart(labels []string, series []chart.Series, width, rows int) []string {
	if width <= 0 || rows <= 0 {
		return nil
	}
	g := chart.Bars(labels, series, chart.BarOptions{
		Width:    float64(width),
		Height:   float64(rows * eighths),
		GroupGap: 1,
	})

	hits := make([]*chart.Rect, width)
	for col := range hits {
		cx := float64(col) + 0.5
		for i := range g.Rects {
			r := &g.Rects[i]
			if cx >= r.X && cx < r.X+r.Width {
				hits[col] = r
				break
			}
		}
	}

	out := make([]string, 0, rows+1)
	for row := 0; row < rows; row++ {
		fromBottom := rows - 1 - row
		var b strings.Builder
		for _, r := range hits {
			if r == nil {
				b.WriteByte(' ')
				continue
			}
			level := int(math.Round(r.Height)) - fromBottom*eighths
			cell := " "
			switch {
			case level >= eighths:
				cell = string(blocks[len(blocks)-1])
			case level > 0:
				cell = string(blocks[level-1])
			}
			b.WriteString(fg(chart.NormalizeColor(r.Color, chart.DefaultStroke)).Render(cell))
		}
		out = append(out, b.String())
	}

	line := []rune(strings.Repeat(" ", width))
	for _, l := range g.Labels {
		text := []rune(trunc(l.Text, max(1, int(g.GroupWidth))))
		start := int(math.Round(l.X)) - len(text)/2
		for i, r := range text {
			if p := start + i; p >= 0 && p < width {
				line[p] = r
			}
		}
	}
	out = append(out, string(line))
	return out
}

// DonutBar unrolls the donut ring into a single row of width cells; cell
// boundaries follow the cumulative arc offsets so slices tile the row.
func DonutBar(g chart.DonutGeometry, width int, empty string) string {
	if width <= 0 {
		return ""
	}
	if g.Total == 0 || g.Circumference == 0 {
		return empty
	}
	var b strings.Builder
	used := 0
	for _, a := range g.Arcs {
		end := int(math.Round((a.Offset + a.Dash) / g.Circumference * float64(width)))
		n := end - used
		if n <= 0 {
			continue
		}
		b.WriteString(fg(chart.NormalizeColor(a.Color, chart.DefaultStroke)).Render(strings.Repeat("█", n)))
		used = end
	}
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}

func DonutLegend(g chart.DonutGeometry) []string {
	out := make([]string, 0, len(g.Arcs))
	for _, a := range g.Arcs {
		dot := fg(chart.NormalizeColor(a.Color, chart.DefaultStroke)).Render("●")
		out = append(out, fmt.Sprintf("%s %-10s %5.0f  %5.1f%%", dot, trunc(a.Label, 10), a.Value, a.Fraction*100))
	}
	return out
}
