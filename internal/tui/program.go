package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/pullfight/internal/config"
	"github.com/ensigniasec/pullfight/internal/physics"
)

// Run starts the Bubble Tea TUI program and blocks until it exits.
// Logs go to logOut while the program owns the terminal; nil discards them.
func Run(ctx context.Context, cfg config.Config, engine *physics.Engine, logOut io.Writer) error {
	model := NewModel(engine, cfg, nil)

	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Keep log lines from corrupting the view.
	if logOut == nil {
		logOut = io.Discard
	}
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(logOut)
	defer logrus.SetOutput(prevOut)

	logrus.Debugf("starting feed at %d fps, pull span %.0f, at least %.0f px per row", cfg.FPS, cfg.PullSpan, cfg.CellPixels)
	_, err := p.Run()
	return err
}
