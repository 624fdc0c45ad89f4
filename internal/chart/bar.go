package chart

import "math"

type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Color  string    `json:"color"`
}

type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

type BarOptions struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Padding  Padding `json:"padding"`
	GroupGap float64 `json:"group_gap"` // between category groups
	BarGap   float64 `json:"bar_gap"`   // between bars inside a group
	Rounded  float64 `json:"rounded"`   // corner radius
}

func DefaultBarOptions() BarOptions {
	return BarOptions{
		Width:    720,
		Height:   220,
		Padding:  Padding{Top: 16, Right: 16, Bottom: 28, Left: 24},
		GroupGap: 8,
		BarGap:   6,
		Rounded:  3,
	}
}

type Label struct {
	Text string
	X, Y float64
}

type Rect struct {
	Series   int
	Category int
	Name     string
	Color    string
	Value    float64

	X, Y          float64
	Width, Height float64
	Rx, Ry        float64
}

type BarGeometry struct {
	Options     BarOptions
	MaxValue    float64
	InnerWidth  float64
	InnerHeight float64
	GroupWidth  float64
	BarWidth    float64
	Labels      []Label
	Rects       []Rect
}

// Bars lays out a grouped bar chart: one group per label, one bar per series
// inside each group. Rects are ordered series first, then category, matching
// the order callers draw their legend in.
//
// A series with more values than labels is clipped to the label count; one
// with fewer simply yields fewer rects.
func Bars(labels []string, series []Series, opts BarOptions) BarGeometry {
	p := opts.Padding
	g := BarGeometry{
		Options:     opts,
		MaxValue:    1,
		InnerWidth:  opts.Width - p.Left - p.Right,
		InnerHeight: opts.Height - p.Top - p.Bottom,
	}

	groups := len(labels)
	perGroup := len(series)
	if groups == 0 || perGroup == 0 {
		return g
	}

	for _, s := range series {
		for i, v := range s.Values {
			if i >= groups {
				break
			}
			if v > g.MaxValue {
				g.MaxValue = v
			}
		}
	}

	g.GroupWidth = (g.InnerWidth - opts.GroupGap*float64(groups-1)) / float64(groups)
	g.BarWidth = (g.GroupWidth - opts.BarGap*float64(perGroup-1)) / float64(perGroup)

	g.Labels = make([]Label, groups)
	for i, l := range labels {
		g.Labels[i] = Label{
			Text: l,
			X:    p.Left + float64(i)*(g.GroupWidth+opts.GroupGap) + g.GroupWidth/2,
			Y:    opts.Height - 6,
		}
	}

	g.Rects = make([]Rect, 0, groups*perGroup)
	for si, s := range series {
		n := min(len(s.Values), groups)
		for i := 0; i < n; i++ {
			// negative values draw as an empty bar
			v := math.Max(0, s.Values[i])
			scaled := (v / g.MaxValue) * g.InnerHeight
			g.Rects = append(g.Rects, Rect{
				Series:   si,
				Category: i,
				Name:     s.Name,
				Color:    s.Color,
				Value:    v,
				X:        p.Left + float64(i)*(g.GroupWidth+opts.GroupGap) + float64(si)*(g.BarWidth+opts.BarGap),
				Y:        p.Top + (g.InnerHeight - scaled),
				Width:    g.BarWidth,
				Height:   scaled,
				Rx:       opts.Rounded,
				Ry:       opts.Rounded,
			})
		}
	}
	return g
}

// SeriesRects returns the rects of series si in category order.
func (g BarGeometry) SeriesRects(si int) []Rect {
	var out []Rect
	for _, r := range g.Rects {
		if r.Series == si {
			out = append(out, r)
		}
	}
	return out
}
