// Package controller owns the prediction view state: the upload state
// machine, the active filters and the last successful result.
package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/basket-insights/internal/export"
	"github.com/Veraticus/basket-insights/internal/model"
	"github.com/Veraticus/basket-insights/internal/predict"
	"github.com/Veraticus/basket-insights/internal/tui/viewmodel"
)

// RequiredFileName is the only file name accepted for submission.
const RequiredFileName = "test.csv"

// ExportThreshold is the association count that must be exceeded before
// export is offered.
const ExportThreshold = 10

// SelectedFile identifies the file picked by the user.
type SelectedFile struct {
	Name string
	Path string
}

// Submission is a ticket for one in-flight prediction request.
type Submission struct {
	File       SelectedFile
	generation uint64
}

// Opener opens a selected file for upload.
type Opener func(path string) (io.ReadCloser, error)

// OpenFile is the default Opener backed by the local filesystem.
func OpenFile(path string) (io.ReadCloser, error) {
	return os.Open(path) //nolint:gosec // path is chosen by the user
}

// Controller is the single state record behind the prediction view.
// It is not safe for concurrent use: every mutation happens on the event
// loop that owns it.
type Controller struct {
	result     *model.PredictionResult
	file       *SelectedFile
	errMsg     string
	filter     model.FilterCriteria
	generation uint64
	state      model.UploadState
	dark       bool
	closed     bool
}

// New returns a controller in the Idle state.
func New() *Controller {
	return &Controller{state: model.UploadIdle}
}

// Select records the file picked by the user and clears any error.
// The last successful result stays visible until a new one replaces it.
func (c *Controller) Select(name, path string) error {
	if c.closed {
		return ErrClosed
	}
	if c.state == model.UploadSubmitting {
		return ErrBusy
	}

	if name == "" && path != "" {
		name = filepath.Base(path)
	}
	c.file = &SelectedFile{Name: name, Path: path}
	c.errMsg = ""
	c.state = model.UploadSelected

	slog.Debug("File selected", "name", name, "path", path)
	return nil
}

// BeginSubmit validates the selection and moves to Submitting.
// A missing file or one not named exactly test.csv moves the controller to
// Failed with UploadPrompt and returns a *ValidationError.
func (c *Controller) BeginSubmit() (Submission, error) {
	if c.closed {
		return Submission{}, ErrClosed
	}
	if c.state == model.UploadSubmitting {
		return Submission{}, ErrBusy
	}

	if c.file == nil || c.file.Name != RequiredFileName {
		verr := &ValidationError{}
		if c.file != nil {
			verr.FileName = c.file.Name
		}
		c.state = model.UploadFailed
		c.errMsg = verr.Error()
		slog.Debug("Submission rejected", "file", verr.FileName)
		return Submission{}, verr
	}

	c.generation++
	c.state = model.UploadSubmitting
	c.errMsg = ""

	return Submission{File: *c.file, generation: c.generation}, nil
}

// Settle commits the outcome of a submission. Outcomes for submissions that
// are no longer current, or that arrive after Close, are dropped and Settle
// returns false. A failure keeps the previous successful result.
func (c *Controller) Settle(sub Submission, result *model.PredictionResult, err error) bool {
	if c.closed || sub.generation != c.generation || c.state != model.UploadSubmitting {
		slog.Debug("Ignoring stale prediction outcome", "generation", sub.generation)
		return false
	}

	if err != nil {
		c.state = model.UploadFailed
		c.errMsg = err.Error()
		return true
	}

	if result == nil {
		result = &model.PredictionResult{Score: model.DefaultScore}
	}
	if result.Associations == nil {
		result.Associations = []model.Association{}
	}
	c.result = result
	c.state = model.UploadSucceeded
	c.errMsg = ""
	return true
}

// Submit runs a complete submission synchronously: validate, open the file,
// call the predictor and settle.
func (c *Controller) Submit(ctx context.Context, p predict.Predictor, open Opener) error {
	sub, err := c.BeginSubmit()
	if err != nil {
		return err
	}

	result, err := Run(ctx, p, open, sub)
	c.Settle(sub, result, err)
	return err
}

// Run performs the network half of a submission without touching
// controller state, so it can execute off the event loop.
func Run(ctx context.Context, p predict.Predictor, open Opener, sub Submission) (*model.PredictionResult, error) {
	if open == nil {
		open = OpenFile
	}

	f, err := open(sub.File.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", sub.File.Name, err)
	}
	defer func() { _ = f.Close() }()

	return p.Predict(ctx, f)
}

// Close tears the controller down; in-flight outcomes are ignored afterwards.
func (c *Controller) Close() {
	c.closed = true
	c.generation++
}

// State returns the current upload state.
func (c *Controller) State() model.UploadState {
	return c.state
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	return c.state == model.UploadSubmitting
}

// CanSubmit reports whether the submit control is enabled.
func (c *Controller) CanSubmit() bool {
	return !c.closed && c.file != nil && c.state != model.UploadSubmitting
}

// File returns the selected file, if any.
func (c *Controller) File() (SelectedFile, bool) {
	if c.file == nil {
		return SelectedFile{}, false
	}
	return *c.file, true
}

// Error returns the user-visible error message, empty when there is none.
func (c *Controller) Error() string {
	return c.errMsg
}

// Result returns the last successful prediction, or nil.
func (c *Controller) Result() *model.PredictionResult {
	return c.result
}

// HasResult reports whether there are associations to render.
func (c *Controller) HasResult() bool {
	return c.result.Count() > 0
}

// Score returns the model score of the last successful prediction.
func (c *Controller) Score() float64 {
	if c.result == nil {
		return 0
	}
	return c.result.Score
}

// Filter returns the active filter criteria.
func (c *Controller) Filter() model.FilterCriteria {
	return c.filter
}

// SetFilter replaces the filter criteria.
func (c *Controller) SetFilter(criteria model.FilterCriteria) {
	c.filter = criteria
}

// SetCustomerFilter updates the customer ID substring.
func (c *Controller) SetCustomerFilter(s string) {
	c.filter.CustomerIDSubstring = s
}

// SetMinConfidence updates the confidence threshold.
func (c *Controller) SetMinConfidence(f float64) {
	c.filter.MinConfidence = f
}

// associations returns the unfiltered list of the current result.
func (c *Controller) associations() []model.Association {
	if c.result == nil {
		return nil
	}
	return c.result.Associations
}

// Filtered computes the filtered view from the current result and filters.
func (c *Controller) Filtered() []model.Association {
	return viewmodel.Filter(c.associations(), c.filter)
}

// ListView returns the first ListLimit filtered associations, formatted.
func (c *Controller) ListView() []viewmodel.ListItem {
	return viewmodel.List(c.Filtered())
}

// ChartView returns chart data for the full filtered view.
func (c *Controller) ChartView() viewmodel.ChartView {
	return viewmodel.Chart(c.Filtered())
}

// Stats summarises the filtered view against the full result.
func (c *Controller) Stats() viewmodel.StatsView {
	return viewmodel.Stats(c.associations(), c.Filtered())
}

// CanExport reports whether the export control is visible.
func (c *Controller) CanExport() bool {
	return c.result.Count() > ExportThreshold
}

// ExportTask captures the full, unfiltered association list and returns a
// function that writes it to dir. The capture happens now; the write may run
// on another goroutine.
func (c *Controller) ExportTask(dir string, format export.Format) (func() (string, error), error) {
	if !c.CanExport() {
		return nil, ErrExportUnavailable
	}

	assocs := c.associations()
	return func() (string, error) {
		path, err := export.WriteFile(dir, format, assocs)
		if err != nil {
			return "", err
		}
		slog.Info("Associations exported", "path", path, "count", len(assocs))
		return path, nil
	}, nil
}

// Export writes the full, unfiltered association list to dir.
func (c *Controller) Export(dir string, format export.Format) (string, error) {
	task, err := c.ExportTask(dir, format)
	if err != nil {
		return "", err
	}
	return task()
}

// Dark reports whether the dark theme is active.
func (c *Controller) Dark() bool {
	return c.dark
}

// SetDark selects the dark or light theme.
func (c *Controller) SetDark(dark bool) {
	c.dark = dark
}

// ToggleTheme flips between light and dark themes.
func (c *Controller) ToggleTheme() {
	c.dark = !c.dark
}
