package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexusriot/anacreon/internal/chart"
	"github.com/nexusriot/anacreon/internal/probe"
	"github.com/nexusriot/anacreon/internal/theme"
)

var (
	renderOut    string
	renderRange  string
	renderKPI    int
	renderWidth  float64
	renderHeight float64
	renderTheme  string
	renderLive   bool
)

var renderCmd = &cobra.Command{
	Use:       "render <sparkline|bar|donut>",
	Short:     "Write a dashboard chart as SVG",
	Long:      "Render one of the dashboard charts from the demo figures (or the backend with --live) to stdout or a file.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"sparkline", "bar", "donut"},
	RunE: func(cmd *cobra.Command, args []string) error {
		rng, err := probe.ParseRange(renderRange)
		if err != nil {
			return err
		}
		t, err := theme.Parse(renderTheme)
		if err != nil {
			return err
		}

		var sampler probe.Sampler = probe.NewDemoSampler()
		if renderLive {
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			sampler = probe.NewAPISampler(newClient(cfg, log), cfg.Dashboard.LowStockThreshold, log)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout)
		defer cancel()
		snap, err := sampler.Sample(ctx, rng)
		if err != nil {
			return fmt.Errorf("sampling dashboard: %w", err)
		}

		pal := theme.PaletteFor(t)
		render := func(w io.Writer) error { return renderChart(w, args[0], snap, pal) }
		if renderOut == "" || renderOut == "-" {
			return render(cmd.OutOrStdout())
		}
		return writeFile(renderOut, render)
	},
}

// createFile is swapped in tests.
var createFile = func(path string) (io.WriteCloser, error) { return os.Create(path) }

// writeFile runs render against path and reports a failed Close when the
// render itself went fine.
func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return render(f)
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOut, "output", "o", "-", "output file, - for stdout")
	f.StringVar(&renderRange, "range", "7d", "7d, 30d or 90d")
	f.IntVar(&renderKPI, "kpi", 0, "KPI card index for sparkline")
	f.Float64Var(&renderWidth, "width", 0, "override chart width")
	f.Float64Var(&renderHeight, "height", 0, "override chart height")
	f.StringVar(&renderTheme, "theme", string(theme.Light), "light or dark colors")
	f.BoolVar(&renderLive, "live", false, "sample the backend instead of demo figures")
}

func renderChart(w io.Writer, kind string, snap probe.Snapshot, pal theme.Palette) error {
	switch kind {
	case "sparkline":
		if renderKPI < 0 || renderKPI >= len(snap.KPIs) {
			return fmt.Errorf("no kpi %d (have %d)", renderKPI, len(snap.KPIs))
		}
		width, height := orDefault(renderWidth, 160), orDefault(renderHeight, 36)
		kpi := snap.KPIs[renderKPI]
		color := pal.KPIColor(kpi.Label)
		g := chart.Sparkline(kpi.Series, width, height)
		return chart.SparklineSVG(w, g, chart.SparklineStyle{Color: color, Fill: color})

	case "bar":
		opts := chart.DefaultBarOptions()
		opts.Width, opts.Height = orDefault(renderWidth, opts.Width), orDefault(renderHeight, opts.Height)
		g := chart.Bars(snap.Months, snap.MonthlySeries(pal.Revenue, pal.Expense), opts)
		return chart.BarChartSVG(w, g)

	case "donut":
		g := chart.Donut(snap.OrderStatus, orDefault(renderWidth, chart.DefaultDonutSize), chart.DefaultDonutThickness)
		return chart.DonutSVG(w, g)
	}
	return fmt.Errorf("unknown chart %q", kind)
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
