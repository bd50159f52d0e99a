package components

import (
	"strings"
	"testing"

	"github.com/Veraticus/basket-insights/internal/model"
	tuitesting "github.com/Veraticus/basket-insights/internal/tui/testing"
	"github.com/Veraticus/basket-insights/internal/tui/themes"
	"github.com/Veraticus/basket-insights/internal/tui/viewmodel"
	"github.com/stretchr/testify/assert"
)

func TestBarChartModel_View(t *testing.T) {
	chart := viewmodel.Chart([]model.Association{
		{CustomerID: "1", Confidence: 1.0},
		{CustomerID: "22", Confidence: 0.5},
		{CustomerID: "333", Confidence: 0},
	})

	m := NewBarChart(chart, themes.Light)
	m.Resize(40)
	out := tuitesting.StripANSI(m.View())

	assert.Contains(t, out, viewmodel.ChartTitle)
	assert.Contains(t, out, viewmodel.ChartDatasetLabel)
	assert.Contains(t, out, "Customer 1 ")
	assert.Contains(t, out, "Customer 333")
	assert.Contains(t, out, "1.00")
	assert.Contains(t, out, "0.50")

	lines := strings.Split(out, "\n")
	full := strings.Count(lines[2], "█")
	half := strings.Count(lines[3], "█")
	empty := strings.Count(lines[4], "█")
	assert.Greater(t, full, half)
	assert.Greater(t, half, empty)
	assert.Zero(t, empty)
}

func TestBarChartModel_Empty(t *testing.T) {
	m := NewBarChart(viewmodel.Chart(nil), themes.Dark)
	out := tuitesting.StripANSI(m.View())
	assert.Contains(t, out, "No associations match the current filters.")
}

func TestAssociationListModel_View(t *testing.T) {
	items := viewmodel.List([]model.Association{
		{CustomerID: "7", Products: []string{"Milk", "Bread"}, Confidence: 0.8, Description: "milk and bread"},
	})

	m := NewAssociationList(items, themes.Light)
	out := tuitesting.StripANSI(m.View())

	assert.Equal(t, 1, m.Len())
	assert.Contains(t, out, "Customer 7: Milk, Bread (Confidence: 0.80)")
	assert.Contains(t, out, "milk and bread")
}

func TestAssociationListModel_Empty(t *testing.T) {
	m := NewAssociationList(nil, themes.Light)
	assert.Contains(t, tuitesting.StripANSI(m.View()), "No associations")
}

func TestStatsPanelModel_View(t *testing.T) {
	all := []model.Association{
		{CustomerID: "1", Products: []string{"Milk", "Bread"}, Confidence: 0.9},
		{CustomerID: "2", Products: []string{"Milk", "Bread"}, Confidence: 0.4},
	}

	m := NewStatsPanelModel(viewmodel.Stats(all, all[:1]), themes.Light)
	m.Resize(60)
	out := tuitesting.Plain(m.View())

	assert.True(t, tuitesting.ContainsInOrder(out,
		"Summary",
		"1 of 2 associations match (50%)",
		"Average confidence: 0.90",
		"Confidence Breakdown",
		"High: 1",
		"Top Bundles",
		"Milk + Bread",
	))

	m.SetCompact(true)
	assert.Equal(t, "Shown: 1/2 | Avg confidence: 0.90 | High: 1", tuitesting.Plain(m.View()))
}
