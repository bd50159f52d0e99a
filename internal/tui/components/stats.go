package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/basket-insights/internal/tui/themes"
	"github.com/Veraticus/basket-insights/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const bundleNameWidth = 24

// StatsPanelModel displays a summary of the filtered associations.
type StatsPanelModel struct {
	theme       themes.Theme
	stats       viewmodel.StatsView
	progressBar progress.Model
	width       int
	compact     bool
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(stats viewmodel.StatsView, theme themes.Theme) StatsPanelModel {
	prog := progress.New(
		progress.WithSolidFill(string(theme.Primary)),
		progress.WithoutPercentage(),
	)
	prog.Width = 30

	return StatsPanelModel{
		stats:       stats,
		progressBar: prog,
		theme:       theme,
		width:       60,
	}
}

// View renders the stats panel.
func (m StatsPanelModel) View() string {
	if m.compact {
		return m.renderCompact()
	}
	return m.renderFull()
}

// renderFull renders the full stats view.
func (m StatsPanelModel) renderFull() string {
	sections := []string{
		m.renderCoverage(),
		m.renderLevels(),
	}

	if m.stats.HasBundles() {
		sections = append(sections, m.renderBundles())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCompact renders a one-line summary.
func (m StatsPanelModel) renderCompact() string {
	return m.theme.Muted.Render(fmt.Sprintf(
		"Shown: %d/%d | Avg confidence: %.2f | High: %d",
		m.stats.Filtered,
		m.stats.Total,
		m.stats.AverageConfidence,
		m.stats.Levels[0].Count,
	))
}

// renderCoverage shows how many associations pass the filters.
func (m StatsPanelModel) renderCoverage() string {
	title := m.theme.Subtitle.Render("Summary")

	bar := m.progressBar.ViewAs(m.stats.FilteredFraction())

	stats := fmt.Sprintf("%d of %d associations match (%.0f%%)",
		m.stats.Filtered,
		m.stats.Total,
		m.stats.FilteredFraction()*100,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		bar,
		m.theme.Normal.Render(stats),
		m.theme.Normal.Render(fmt.Sprintf("Average confidence: %.2f", m.stats.AverageConfidence)),
	)
}

// renderLevels renders the confidence level breakdown.
func (m StatsPanelModel) renderLevels() string {
	styles := map[string]lipgloss.Style{
		viewmodel.LevelHigh:   m.theme.StatusSuccess,
		viewmodel.LevelMedium: m.theme.StatusInfo,
		viewmodel.LevelLow:    m.theme.Muted,
	}

	lines := make([]string, 0, len(m.stats.Levels))
	for _, level := range m.stats.Levels {
		lines = append(lines, fmt.Sprintf("%-8s %s",
			level.Level+":",
			styles[level.Level].Render(fmt.Sprintf("%d", level.Count)),
		))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		m.theme.Subtitle.Render("Confidence Breakdown"),
		m.theme.Normal.Render(strings.Join(lines, "\n")),
	)
}

// renderBundles renders the most frequent bundles.
func (m StatsPanelModel) renderBundles() string {
	maxCount := m.stats.TopBundles[0].Count
	barWidth := max(min(m.width-bundleNameWidth-8, 15), 1)

	lines := make([]string, 0, len(m.stats.TopBundles))
	for _, b := range m.stats.TopBundles {
		barLen := max(b.Count*barWidth/maxCount, 1)
		lines = append(lines, fmt.Sprintf("%-*s %s %d",
			bundleNameWidth,
			viewmodel.TruncateString(b.Bundle, bundleNameWidth),
			m.theme.ChartBar.Render(strings.Repeat("█", barLen)),
			b.Count,
		))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		m.theme.Subtitle.Render("Top Bundles"),
		m.theme.Normal.Render(strings.Join(lines, "\n")),
	)
}

// SetCompact sets compact mode.
func (m *StatsPanelModel) SetCompact(compact bool) {
	m.compact = compact
}

// Resize updates the component width.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
	m.progressBar.Width = max(min(width-4, 40), 10)
}
