package chart

import (
	"strconv"
	"strings"
)

type Point struct {
	X, Y float64
}

type SparklineGeometry struct {
	Width, Height float64
	Points        []Point
}

// Sparkline maps values onto a width x height box: the minimum sits on the
// bottom edge, the maximum on the top edge, samples evenly spaced from x=0.
func Sparkline(values []float64, width, height float64) SparklineGeometry {
	g := SparklineGeometry{Width: width, Height: height}
	if len(values) == 0 {
		return g
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	dx := width / float64(max(1, len(values)-1))
	span := maxV - minV

	g.Points = make([]Point, len(values))
	for i, v := range values {
		y := height / 2
		if span != 0 {
			y = height - ((v-minV)/span)*height
		}
		g.Points[i] = Point{X: float64(i) * dx, Y: y}
	}
	return g
}

// Path returns the polyline as "M x,y L x,y ...".
func (g SparklineGeometry) Path() string {
	if len(g.Points) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range g.Points {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteByte('L')
		} else {
			b.WriteByte('M')
		}
		b.WriteString(num(p.X))
		b.WriteByte(',')
		b.WriteString(num(p.Y))
	}
	return b.String()
}

// AreaPath closes the polyline down to the baseline for the filled variant.
func (g SparklineGeometry) AreaPath() string {
	p := g.Path()
	if p == "" {
		return ""
	}
	return p + " L " + num(g.Width) + "," + num(g.Height) + " L 0," + num(g.Height) + " Z"
}

func num(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
