package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoPredictor is returned when Run is called without a prediction backend.
var ErrNoPredictor = errors.New("predictor is required")

// Run starts the interactive prediction view and blocks until the user
// quits or ctx is cancelled. Any submission still in flight is abandoned.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Predictor == nil {
		return ErrNoPredictor
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newModel(ctx, cfg)
	defer m.ctrl.Close()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	slog.Debug("Starting TUI", "dark", cfg.Dark, "export_dir", cfg.ExportDir)

	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
