package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexusriot/anacreon/internal/chart"
	"github.com/nexusriot/anacreon/internal/server"
	"github.com/nexusriot/anacreon/internal/settings"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve SVG charts, settings and the theme over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		memo, err := chart.NewMemo(cfg.Server.MemoSize)
		if err != nil {
			return err
		}

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		srv := server.New(server.Deps{
			Stores:     settings.NewSeededStores(),
			Theme:      newThemeProvider(cfg, log),
			Sampler:    newSampler(cfg, log),
			Memo:       memo,
			Logger:     log,
			RenderRate: cfg.Server.RenderRate,
			Release:    cfg.Server.ReleaseUI,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Info("starting",
			zap.String("version", version),
			zap.Bool("demo", cfg.Dashboard.Demo),
			zap.String("backend", cfg.API.BaseURL),
		)
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}
