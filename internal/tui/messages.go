package tui

import (
	"github.com/Veraticus/basket-insights/internal/controller"
	"github.com/Veraticus/basket-insights/internal/model"
)

// predictionSettledMsg carries the outcome of one submission back to the
// event loop.
type predictionSettledMsg struct {
	err    error
	result *model.PredictionResult
	sub    controller.Submission
}

// exportDoneMsg reports where the association export was written.
type exportDoneMsg struct {
	err  error
	path string
}
