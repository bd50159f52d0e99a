package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/basket-insights/internal/tui/themes"
	"github.com/Veraticus/basket-insights/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

const (
	minBarWidth = 10
	valueWidth  = 5
)

// BarChartModel draws confidence values as horizontal bars on a 0-1 scale.
type BarChartModel struct {
	theme themes.Theme
	chart viewmodel.ChartView
	width int
}

// NewBarChart creates a chart for the given data.
func NewBarChart(chart viewmodel.ChartView, theme themes.Theme) BarChartModel {
	return BarChartModel{
		chart: chart,
		theme: theme,
		width: 60,
	}
}

// Resize updates the component width.
func (m *BarChartModel) Resize(width int) {
	m.width = width
}

// View renders the chart.
func (m BarChartModel) View() string {
	title := m.theme.Subtitle.Render(m.chart.Title)
	legend := m.theme.ChartBar.Render("█") + " " + m.theme.Muted.Render(m.chart.DatasetLabel)

	if !m.chart.HasBars() {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			legend,
			m.theme.Muted.Render("No associations match the current filters."),
		)
	}

	labelWidth := 0
	for _, b := range m.chart.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
	}

	barWidth := max(m.width-labelWidth-valueWidth-2, minBarWidth)

	lines := make([]string, 0, len(m.chart.Bars)+2)
	lines = append(lines, title, legend)
	for _, b := range m.chart.Bars {
		filled := int(clamp(b.Value, 0, 1)*float64(barWidth) + 0.5)
		bar := m.theme.ChartBar.Render(strings.Repeat("█", filled)) +
			m.theme.ChartTrack.Render(strings.Repeat("░", barWidth-filled))

		lines = append(lines, fmt.Sprintf("%-*s %s %s",
			labelWidth,
			b.Label,
			bar,
			m.theme.Normal.Render(fmt.Sprintf("%.2f", b.Value)),
		))
	}

	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
