package tui

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/basket-insights/internal/common"
	"github.com/Veraticus/basket-insights/internal/controller"
	"github.com/Veraticus/basket-insights/internal/export"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field identifies the focused input.
type Field int

const (
	FieldFile Field = iota
	FieldCustomer
	FieldConfidence
)

const maxInputWidth = 60

// Model holds the main TUI state. All prediction state lives in the
// controller; the model only owns widgets and layout.
type Model struct {
	ctx             context.Context
	ctrl            *controller.Controller
	status          string
	statusErr       bool
	config          Config
	keymap          KeyMap
	help            help.Model
	fileInput       textinput.Model
	customerInput   textinput.Model
	confidenceInput textinput.Model
	spinner         spinner.Model
	width           int
	height          int
	focus           Field
	quitting        bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	ctrl := controller.New()
	ctrl.SetDark(cfg.Dark)

	keymap := DefaultKeyMap()
	keymap.Export.SetHelp(keymap.Export.Help().Key, "download all as "+formatName(cfg.ExportFormat))

	fileInput := textinput.New()
	fileInput.Placeholder = "path/to/test.csv"
	fileInput.Prompt = ""
	fileInput.SetValue(cfg.InitialFile)
	fileInput.Focus()

	customerInput := textinput.New()
	customerInput.Placeholder = "Filter by Customer ID"
	customerInput.Prompt = ""

	confidenceInput := textinput.New()
	confidenceInput.Placeholder = "Min Confidence (0-1)"
	confidenceInput.Prompt = ""
	confidenceInput.CharLimit = 8

	m := Model{
		ctx:             ctx,
		ctrl:            ctrl,
		config:          cfg,
		keymap:          keymap,
		help:            help.New(),
		fileInput:       fileInput,
		customerInput:   customerInput,
		confidenceInput: confidenceInput,
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:           cfg.Width,
		height:          cfg.Height,
		focus:           FieldFile,
	}
	m.handleResize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case predictionSettledMsg:
		m.handleSettled(msg)
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			common.LogError(msg.err, "Export failed", common.Fields{
				"dir":    m.config.ExportDir,
				"format": string(m.config.ExportFormat),
			})
			m.setStatus("Export failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.setStatus("Saved "+msg.path, false)
		return m, nil
	}

	return m.updateFocused(msg)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// Controller exposes the state record behind the view.
func (m Model) Controller() *controller.Controller {
	return m.ctrl
}

// Focus returns the focused input.
func (m Model) Focus() Field {
	return m.focus
}

// handleKey routes key presses to actions or the focused input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.ctrl.Close()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.ToggleTheme):
		m.ctrl.ToggleTheme()
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case m.focus == FieldFile && key.Matches(msg, m.keymap.Submit):
		return m.submit()

	case key.Matches(msg, m.keymap.Export):
		return m.export()

	case key.Matches(msg, m.keymap.NextField):
		return m.cycleFocus(1)

	case key.Matches(msg, m.keymap.PrevField):
		return m.cycleFocus(-1)
	}

	return m.updateFocused(msg)
}

// submit selects the typed path and starts a submission.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.canSubmit() {
		return m, nil
	}

	path := strings.TrimSpace(m.fileInput.Value())
	if err := m.ctrl.Select(filepath.Base(path), path); err != nil {
		return m, nil
	}

	sub, err := m.ctrl.BeginSubmit()
	if err != nil {
		if !controller.IsValidationError(err) {
			common.LogDebug("Submit ignored", common.Fields{"error": err.Error()})
		}
		return m, nil
	}

	m.status = ""
	slog.Info("Submitting file", "path", sub.File.Path)
	return m, tea.Batch(m.spinner.Tick, m.submitCmd(sub))
}

// canSubmit mirrors the enabled state of the upload button.
func (m Model) canSubmit() bool {
	return !m.ctrl.Busy() && strings.TrimSpace(m.fileInput.Value()) != ""
}

func (m *Model) handleSettled(msg predictionSettledMsg) {
	if !m.ctrl.Settle(msg.sub, msg.result, msg.err) {
		return
	}

	if msg.err != nil {
		slog.Warn("Prediction failed", "error", msg.err)
		return
	}
	common.LogInfo("Prediction received", common.Fields{
		"associations": m.ctrl.Result().Count(),
		"score":        m.ctrl.Score(),
	})
}

// export writes every association, regardless of filters.
func (m Model) export() (tea.Model, tea.Cmd) {
	task, err := m.ctrl.ExportTask(m.config.ExportDir, m.config.ExportFormat)
	if err != nil {
		return m, nil
	}
	m.setStatus("Exporting...", false)
	return m, exportCmd(task)
}

// fields lists the inputs reachable with tab. Filters only exist once
// there are associations to filter.
func (m Model) fields() []Field {
	if !m.ctrl.HasResult() {
		return []Field{FieldFile}
	}
	return []Field{FieldFile, FieldCustomer, FieldConfidence}
}

func (m Model) cycleFocus(step int) (tea.Model, tea.Cmd) {
	fields := m.fields()
	idx := 0
	for i, f := range fields {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + step + len(fields)) % len(fields)
	cmd := m.setFocus(fields[idx])
	return m, cmd
}

func (m *Model) setFocus(f Field) tea.Cmd {
	m.focus = f
	m.fileInput.Blur()
	m.customerInput.Blur()
	m.confidenceInput.Blur()

	switch f {
	case FieldCustomer:
		return m.customerInput.Focus()
	case FieldConfidence:
		return m.confidenceInput.Focus()
	default:
		return m.fileInput.Focus()
	}
}

// updateFocused forwards a message to the focused input and keeps the
// controller filters in sync with what was typed.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus {
	case FieldFile:
		m.fileInput, cmd = m.fileInput.Update(msg)
	case FieldCustomer:
		m.customerInput, cmd = m.customerInput.Update(msg)
		m.ctrl.SetCustomerFilter(m.customerInput.Value())
	case FieldConfidence:
		m.confidenceInput, cmd = m.confidenceInput.Update(msg)
		m.ctrl.SetMinConfidence(parseConfidence(m.confidenceInput.Value()))
	}

	return m, cmd
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	w := min(max(m.width-10, 20), maxInputWidth)
	m.fileInput.Width = w
	m.customerInput.Width = (w - 6) / 2
	m.confidenceInput.Width = (w - 6) / 2
	m.help.Width = m.width
}

// parseConfidence reads the threshold input. Empty or unparsable text
// means no threshold.
func parseConfidence(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// exportLabel names the export action after the configured format.
func exportLabel(format export.Format) string {
	return "Download All Associations as " + formatName(format)
}

func formatName(format export.Format) string {
	if format == "" {
		format = export.FormatCSV
	}
	return strings.ToUpper(string(format))
}

// helpKeys returns the key map with actions that cannot run right now
// disabled, so the help line only lists working keys.
func (m Model) helpKeys() KeyMap {
	km := m.keymap
	km.Export.SetEnabled(m.ctrl.CanExport())
	km.PrevField.SetEnabled(m.ctrl.HasResult())
	km.NextField.SetEnabled(m.ctrl.HasResult())
	return km
}
