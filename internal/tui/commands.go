package tui

import (
	"context"

	"github.com/Veraticus/basket-insights/internal/controller"
	tea "github.com/charmbracelet/bubbletea"
)

// submitCmd performs the network half of a submission off the event loop.
func (m Model) submitCmd(sub controller.Submission) tea.Cmd {
	ctx := m.ctx
	predictor := m.config.Predictor
	open := m.config.Opener
	timeout := m.config.Timeout

	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		result, err := controller.Run(ctx, predictor, open, sub)
		return predictionSettledMsg{
			sub:    sub,
			result: result,
			err:    err,
		}
	}
}

// exportCmd runs an export task captured at key press time.
func exportCmd(task func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		path, err := task()
		return exportDoneMsg{
			path: path,
			err:  err,
		}
	}
}
