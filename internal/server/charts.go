package server

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexusriot/anacreon/internal/chart"
	"github.com/nexusriot/anacreon/internal/probe"
	"github.com/nexusriot/anacreon/internal/theme"
)

const svgContentType = "image/svg+xml"

type barRequest struct {
	Labels  []string          `json:"labels"`
	Series  []chart.Series    `json:"series"`
	Options *chart.BarOptions `json:"options"`
}

type donutRequest struct {
	Slices    []chart.Slice `json:"slices"`
	Size      float64       `json:"size"`
	Thickness float64       `json:"thickness"`
}

func (s *Server) sparkline(c *gin.Context) {
	values, err := parseValues(c.Query("values"))
	if err != nil {
		abortJSON(c, http.StatusBadRequest, err)
		return
	}
	width, err1 := queryFloat(c, "width", 120)
	height, err2 := queryFloat(c, "height", 36)
	stroke, err3 := queryFloat(c, "stroke_width", 2)
	if err := errors.Join(err1, err2, err3); err != nil {
		abortJSON(c, http.StatusBadRequest, err)
		return
	}

	g := s.sparklineGeometry(values, width, height)
	s.writeSVG(c, func(b *bytes.Buffer) error {
		return chart.SparklineSVG(b, g, chart.SparklineStyle{
			Color:       c.DefaultQuery("color", chart.DefaultStroke),
			StrokeWidth: stroke,
			Fill:        c.DefaultQuery("fill", "none"),
		})
	})
}

func (s *Server) barChart(c *gin.Context) {
	var req barRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortJSON(c, http.StatusBadRequest, err)
		return
	}
	opts := chart.DefaultBarOptions()
	if req.Options != nil {
		opts = *req.Options
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		abortJSON(c, http.StatusBadRequest, errors.New("options.width and options.height must be positive"))
		return
	}

	g := s.barGeometry(req.Labels, req.Series, opts)
	s.writeSVG(c, func(b *bytes.Buffer) error { return chart.BarChartSVG(b, g) })
}

func (s *Server) donut(c *gin.Context) {
	var req donutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortJSON(c, http.StatusBadRequest, err)
		return
	}
	if req.Size == 0 {
		req.Size = chart.DefaultDonutSize
	}
	if req.Thickness == 0 {
		req.Thickness = chart.DefaultDonutThickness
	}
	if req.Size < 0 || req.Thickness < 0 || req.Thickness > req.Size {
		abortJSON(c, http.StatusBadRequest, errors.New("size and thickness must be positive and thickness <= size"))
		return
	}

	g := s.donutGeometry(req.Slices, req.Size, req.Thickness)
	s.writeSVG(c, func(b *bytes.Buffer) error { return chart.DonutSVG(b, g) })
}

func (s *Server) snapshot(c *gin.Context) (probe.Snapshot, bool) {
	rng, err := probe.ParseRange(c.DefaultQuery("range", string(probe.Range7d)))
	if err != nil {
		abortJSON(c, http.StatusBadRequest, err)
		return probe.Snapshot{}, false
	}
	snap, err := s.deps.Sampler.Sample(c.Request.Context(), rng)
	if err != nil {
		s.log.Warn("dashboard sample failed", zap.Error(err))
		abortJSON(c, http.StatusBadGateway, err)
		return probe.Snapshot{}, false
	}
	return snap, true
}

func (s *Server) dashboardRevenue(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	opts := chart.DefaultBarOptions()
	opts.Width, opts.Height = 760, 240
	pal := s.palette()
	g := s.barGeometry(snap.Months, snap.MonthlySeries(pal.Revenue, pal.Expense), opts)
	s.writeSVG(c, func(b *bytes.Buffer) error { return chart.BarChartSVG(b, g) })
}

func (s *Server) dashboardOrders(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	g := s.donutGeometry(snap.OrderStatus, chart.DefaultDonutSize, chart.DefaultDonutThickness)
	s.writeSVG(c, func(b *bytes.Buffer) error { return chart.DonutSVG(b, g) })
}

func (s *Server) dashboardKPI(c *gin.Context) {
	idx, err := strconv.Atoi(strings.TrimSuffix(c.Param("index"), ".svg"))
	if err != nil {
		abortJSON(c, http.StatusBadRequest, fmt.Errorf("invalid kpi index %q", c.Param("index")))
		return
	}
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	if idx < 0 || idx >= len(snap.KPIs) {
		abortJSON(c, http.StatusNotFound, fmt.Errorf("no kpi %d", idx))
		return
	}

	kpi := snap.KPIs[idx]
	color := s.palette().KPIColor(kpi.Label)
	g := s.sparklineGeometry(kpi.Series, 160, 36)
	s.writeSVG(c, func(b *bytes.Buffer) error {
		return chart.SparklineSVG(b, g, chart.SparklineStyle{Color: color})
	})
}

func (s *Server) dashboardSummary(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"range":     snap.Range,
		"kpis":      snap.KPIs,
		"low_stock": snap.LowStock,
		"taken_at":  snap.TakenAt,
	})
}

// palette follows the shared theme so served charts match the terminal.
func (s *Server) palette() theme.Palette {
	if s.deps.Theme == nil {
		return theme.PaletteFor(theme.Light)
	}
	return theme.PaletteFor(s.deps.Theme.Get())
}

func (s *Server) writeSVG(c *gin.Context, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		abortJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, svgContentType, buf.Bytes())
}

func (s *Server) sparklineGeometry(values []float64, w, h float64) chart.SparklineGeometry {
	if s.deps.Memo != nil {
		return s.deps.Memo.Sparkline(values, w, h)
	}
	return chart.Sparkline(values, w, h)
}

func (s *Server) barGeometry(labels []string, series []chart.Series, opts chart.BarOptions) chart.BarGeometry {
	if s.deps.Memo != nil {
		return s.deps.Memo.Bars(labels, series, opts)
	}
	return chart.Bars(labels, series, opts)
}

func (s *Server) donutGeometry(slices []chart.Slice, size, thickness float64) chart.DonutGeometry {
	if s.deps.Memo != nil {
		return s.deps.Memo.Donut(slices, size, thickness)
	}
	return chart.Donut(slices, size, thickness)
}

func parseValues(raw string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("values: %q is not a number", p)
		}
		out = append(out, v)
	}
	return out, nil
}

func queryFloat(c *gin.Context, key string, def float64) (float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", key)
	}
	return v, nil
}
