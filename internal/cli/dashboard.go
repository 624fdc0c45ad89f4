package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nexusriot/anacreon/internal/probe"
	"github.com/nexusriot/anacreon/internal/settings"
	"github.com/nexusriot/anacreon/internal/ui"
)

func runDashboard(cmd *cobra.Command, _ []string) error {
	// stderr belongs to the terminal UI; log to a file or nowhere
	if cfg.Logging.File == "" {
		cfg.Logging.File = "-"
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	rng, err := probe.ParseRange(cfg.Dashboard.Range)
	if err != nil {
		return err
	}

	m := ui.NewModel(ui.Options{
		Sampler: newSampler(cfg, log),
		Stores:  settings.NewSeededStores(),
		Theme:   newThemeProvider(cfg, log),
		Refresh: cfg.Dashboard.Refresh,
		Range:   rng,
		Logger:  log,
		Version: version,
	})
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		log.Error("dashboard exited", zap.Error(err))
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
