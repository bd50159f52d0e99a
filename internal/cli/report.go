package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/basket-insights/internal/controller"
	"github.com/Veraticus/basket-insights/internal/sample"
	"github.com/Veraticus/basket-insights/internal/tui/components"
	"github.com/Veraticus/basket-insights/internal/tui/themes"
	"github.com/Veraticus/basket-insights/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// RenderPrediction renders the controller's current result the way the
// interactive view does, for non-interactive output.
func RenderPrediction(ctrl *controller.Controller, width int) string {
	theme := themes.For(ctrl.Dark())
	total := ctrl.Result().Count()

	if total == 0 {
		return FormatInfo("No associations returned") + "\n" +
			"Model Score: " + viewmodel.FormatScore(ctrl.Score())
	}

	items := ctrl.ListView()
	list := components.NewAssociationList(items, theme)
	list.Resize(width)

	chart := components.NewBarChart(ctrl.ChartView(), theme)
	chart.Resize(width)

	stats := components.NewStatsPanelModel(ctrl.Stats(), theme)
	stats.Resize(width)

	filtered := len(ctrl.Filtered())
	heading := fmt.Sprintf("Top Associations (showing %d of %d", len(items), filtered)
	if filtered != total {
		heading += fmt.Sprintf(", %d before filters", total)
	}
	heading += ")"

	return lipgloss.JoinVertical(lipgloss.Left,
		FormatTitle(heading),
		list.View(),
		"",
		BoldStyle.Render("Model Score: ")+viewmodel.FormatScore(ctrl.Score()),
		"",
		stats.View(),
		"",
		TitleStyle.Render(ChartIcon+" Confidence Chart"),
		chart.View(),
	)
}

// RenderSummary describes an inspected transactions file.
func RenderSummary(path string, s sample.Summary) string {
	lines := []string{
		fmt.Sprintf("Rows:      %d", s.Rows),
		fmt.Sprintf("Customers: %d", s.Customers),
		fmt.Sprintf("Products:  %d", len(s.Products)),
	}
	if s.OK() {
		lines = append(lines, FormatSuccess("All required columns present"))
	} else {
		lines = append(lines, FormatError("Missing columns: "+strings.Join(s.Missing, ", ")))
	}
	return RenderBox(path, strings.Join(lines, "\n"))
}
