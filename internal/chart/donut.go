package chart

import "math"

const (
	DefaultDonutSize      = 140
	DefaultDonutThickness = 14
)

type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Arc is one slice drawn as a dashed circle stroke. Offset is the running
// sum of the dashes before it, so arcs tile the ring in input order.
type Arc struct {
	Label    string
	Color    string
	Value    float64
	Fraction float64
	Dash     float64
	Gap      float64
	Offset   float64
}

type LegendEntry struct {
	Label string
	Color string
}

type DonutGeometry struct {
	Size          float64
	Thickness     float64
	Radius        float64 // stroke centreline
	CX, CY        float64
	Circumference float64
	Total         float64
	Arcs          []Arc
	Legend        []LegendEntry
}

// Donut splits the ring proportionally to slice values, starting at 12
// o'clock and running clockwise. A zero total yields zero-length arcs.
func Donut(slices []Slice, size, thickness float64) DonutGeometry {
	g := DonutGeometry{
		Size:      size,
		Thickness: thickness,
		Radius:    size/2 - thickness/2,
		CX:        size / 2,
		CY:        size / 2,
	}
	g.Circumference = 2 * math.Pi * g.Radius

	for _, s := range slices {
		g.Total += math.Max(0, s.Value)
	}
	divisor := g.Total
	if divisor == 0 {
		divisor = 1
	}

	g.Arcs = make([]Arc, 0, len(slices))
	g.Legend = make([]LegendEntry, 0, len(slices))
	offset := 0.0
	for _, s := range slices {
		v := math.Max(0, s.Value)
		frac := v / divisor
		dash := frac * g.Circumference
		g.Arcs = append(g.Arcs, Arc{
			Label:    s.Label,
			Color:    s.Color,
			Value:    v,
			Fraction: frac,
			Dash:     dash,
			Gap:      g.Circumference - dash,
			Offset:   offset,
		})
		g.Legend = append(g.Legend, LegendEntry{Label: s.Label, Color: s.Color})
		offset += dash
	}
	return g
}
