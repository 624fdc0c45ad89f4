package chart

import (
	"fmt"
	"html"
	"io"
)

const (
	DefaultStroke = "#3b82f6"
	svgNS         = "http://www.w3.org/2000/svg"
)

type SparklineStyle struct {
	Color       string
	StrokeWidth float64
	Fill        string // "" or "none" disables the area
}

// svgWriter remembers the first write error so callers check once.
type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *svgWriter) open(width, height float64) {
	s.printf(`<svg xmlns="%s" width="%s" height="%s" viewBox="0 0 %s %s">`, svgNS, num(width), num(height), num(width), num(height))
}

func (s *svgWriter) close() error {
	s.printf("</svg>\n")
	return s.err
}

func SparklineSVG(w io.Writer, g SparklineGeometry, st SparklineStyle) error {
	color := NormalizeColor(st.Color, DefaultStroke)
	stroke := st.StrokeWidth
	if stroke <= 0 {
		stroke = 2
	}

	sw := &svgWriter{w: w}
	sw.open(g.Width, g.Height)
	if st.Fill != "" && st.Fill != "none" && len(g.Points) > 0 {
		sw.printf(`<path d="%s" fill="%s" opacity="0.15"/>`, g.AreaPath(), NormalizeColor(st.Fill, color))
	}
	sw.printf(`<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linejoin="round" stroke-linecap="round"/>`,
		g.Path(), color, num(stroke))
	return sw.close()
}

func BarChartSVG(w io.Writer, g BarGeometry) error {
	sw := &svgWriter{w: w}
	sw.open(g.Options.Width, g.Options.Height)
	for _, l := range g.Labels {
		sw.printf(`<text x="%s" y="%s" font-size="10" text-anchor="middle" fill="#6b7280">%s</text>`,
			num(l.X), num(l.Y), html.EscapeString(l.Text))
	}
	for _, r := range g.Rects {
		sw.printf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s" rx="%s" ry="%s"/>`,
			num(r.X), num(r.Y), num(r.Width), num(r.Height), NormalizeColor(r.Color, DefaultStroke), num(r.Rx), num(r.Ry))
	}
	return sw.close()
}

// DonutSVG draws the ring followed by a legend column to its right.
func DonutSVG(w io.Writer, g DonutGeometry) error {
	const legendW, rowH = 120, 18

	width := g.Size
	if len(g.Legend) > 0 {
		width += legendW
	}
	height := max(g.Size, float64(len(g.Legend)*rowH))

	sw := &svgWriter{w: w}
	sw.open(width, height)
	for _, a := range g.Arcs {
		sw.printf(`<circle r="%s" cx="%s" cy="%s" fill="transparent" stroke="%s" stroke-width="%s" stroke-dasharray="%s %s" stroke-dashoffset="%s" transform="rotate(-90 %s %s)"/>`,
			num(g.Radius), num(g.CX), num(g.CY), NormalizeColor(a.Color, DefaultStroke), num(g.Thickness),
			num(a.Dash), num(a.Gap), num(-a.Offset), num(g.CX), num(g.CY))
	}
	for i, e := range g.Legend {
		y := float64(i*rowH) + rowH/2
		sw.printf(`<circle cx="%s" cy="%s" r="4" fill="%s"/>`, num(g.Size+12), num(y), NormalizeColor(e.Color, DefaultStroke))
		sw.printf(`<text x="%s" y="%s" font-size="12" dominant-baseline="middle" fill="#374151">%s</text>`,
			num(g.Size+22), num(y), html.EscapeString(e.Label))
	}
	return sw.close()
}
