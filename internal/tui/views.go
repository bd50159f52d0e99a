package tui

import (
	"strings"

	"github.com/Veraticus/basket-insights/internal/tui/components"
	"github.com/Veraticus/basket-insights/internal/tui/themes"
	"github.com/Veraticus/basket-insights/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// Title is the heading shown at the top of the screen.
const Title = "Grocery Basket Insights Challenge Demo"

// Intro is the line shown below the title.
const Intro = "Upload test.csv to predict product bundles for cross-selling."

func (m Model) render() string {
	theme := themes.For(m.ctrl.Dark())

	sections := []string{
		m.renderHeader(theme),
		theme.Normal.Width(max(m.width, 20)).Render(Intro),
		theme.Link.Render("Download test.csv") + " " + theme.Muted.Render(m.config.SampleURL),
		"",
		m.renderUpload(theme),
	}

	if m.ctrl.Busy() {
		sections = append(sections, theme.Normal.Render("Loading..."))
	}

	if m.ctrl.HasResult() {
		sections = append(sections, m.renderResults(theme))
	}

	if m.status != "" {
		style := theme.StatusSuccess
		if m.statusErr {
			style = theme.StatusError
		}
		sections = append(sections, style.Render(m.status))
	}

	sections = append(sections,
		lipgloss.NewStyle().MaxWidth(max(m.width, 20)).Render(m.help.View(m.helpKeys())))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title and the theme toggle.
func (m Model) renderHeader(theme themes.Theme) string {
	title := theme.Title.Render(Title)
	toggle := theme.ButtonOff.Render(themes.ToggleLabel(m.ctrl.Dark()))

	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(toggle), 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Repeat(" ", gap), toggle)
}

// renderUpload renders the upload form.
func (m Model) renderUpload(theme themes.Theme) string {
	input := theme.BlurredInput.Render(m.fileInput.View())
	if m.focus == FieldFile {
		input = theme.FocusedInput.Render(m.fileInput.View())
	}

	button := theme.Button.Render("Upload")
	switch {
	case m.ctrl.Busy():
		button = m.spinner.View() + " " + theme.ButtonOff.Render("Processing...")
	case !m.canSubmit():
		button = theme.ButtonOff.Render("Upload")
	}

	lines := []string{
		theme.Subtitle.Render("Upload Predictions"),
		input,
		button,
	}
	if msg := m.ctrl.Error(); msg != "" {
		lines = append(lines, theme.StatusError.Render(msg))
	}

	return m.panel(theme).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderResults renders filters, the top associations, the score and the chart.
func (m Model) renderResults(theme themes.Theme) string {
	inner := max(m.width-6, 20)

	list := components.NewAssociationList(m.ctrl.ListView(), theme)
	list.Resize(inner)

	chart := components.NewBarChart(m.ctrl.ChartView(), theme)
	chart.Resize(inner)

	stats := components.NewStatsPanelModel(m.ctrl.Stats(), theme)
	stats.Resize(inner)
	stats.SetCompact(m.width < 80)

	lines := []string{
		theme.Subtitle.Render("Top Associations"),
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.inputBox(theme, FieldCustomer, m.customerInput.View()),
			" ",
			m.inputBox(theme, FieldConfidence, m.confidenceInput.View()),
		),
		list.View(),
		"",
	}

	if m.ctrl.CanExport() {
		lines = append(lines,
			theme.ExportButton.Render(exportLabel(m.config.ExportFormat))+" "+
				theme.Muted.Render(m.keymap.Export.Help().Key),
			"",
		)
	}

	lines = append(lines,
		theme.Normal.Render("Model Score: "+viewmodel.FormatScore(m.ctrl.Score())),
		"",
		stats.View(),
		"",
		theme.Subtitle.Render("Confidence Chart"),
		chart.View(),
	)

	return m.panel(theme).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) inputBox(theme themes.Theme, f Field, content string) string {
	if m.focus == f {
		return theme.FocusedInput.Render(content)
	}
	return theme.BlurredInput.Render(content)
}

func (m Model) panel(theme themes.Theme) lipgloss.Style {
	return theme.Panel.Width(max(m.width-2, 20))
}
