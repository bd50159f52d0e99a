package components

import (
	"strings"

	"github.com/Veraticus/basket-insights/internal/tui/themes"
	"github.com/Veraticus/basket-insights/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// AssociationListModel renders the truncated association list.
type AssociationListModel struct {
	theme themes.Theme
	items []viewmodel.ListItem
	width int
}

// NewAssociationList creates a list for the given items.
func NewAssociationList(items []viewmodel.ListItem, theme themes.Theme) AssociationListModel {
	return AssociationListModel{
		items: items,
		theme: theme,
		width: 80,
	}
}

// Resize updates the component width.
func (m *AssociationListModel) Resize(width int) {
	m.width = width
}

// View renders one bullet per association with its description underneath.
func (m AssociationListModel) View() string {
	if len(m.items) == 0 {
		return m.theme.Muted.Render("No associations match the current filters.")
	}

	wrap := lipgloss.NewStyle().Width(max(m.width-4, 20))

	lines := make([]string, 0, len(m.items)*2)
	for _, item := range m.items {
		lines = append(lines, m.theme.Normal.Render("• "+wrap.Render(item.Headline)))
		if item.Description != "" {
			lines = append(lines, "  "+m.theme.Muted.Render(wrap.Render(item.Description)))
		}
	}
	return strings.Join(lines, "\n")
}

// Len returns the number of rendered items.
func (m AssociationListModel) Len() int {
	return len(m.items)
}
