package viewmodel

import (
	"fmt"
	"strings"

	"github.com/Veraticus/basket-insights/internal/model"
)

// ListLimit is the number of associations shown in the textual list.
const ListLimit = 10

// Chart titles shown above the confidence bars.
const (
	ChartTitle        = "Association Confidence Levels"
	ChartDatasetLabel = "Confidence"
)

// Filter returns the associations matching the criteria, in source order.
// The customer ID match is a case-sensitive substring test; an empty
// substring matches every record.
func Filter(associations []model.Association, criteria model.FilterCriteria) []model.Association {
	filtered := make([]model.Association, 0, len(associations))
	for _, a := range associations {
		if !strings.Contains(a.CustomerID.String(), criteria.CustomerIDSubstring) {
			continue
		}
		if a.Confidence < criteria.MinConfidence {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered
}

// ListItem is one rendered row of the association list.
type ListItem struct {
	Headline    string
	Description string
}

// List formats the first ListLimit filtered associations for display.
func List(filtered []model.Association) []ListItem {
	n := min(len(filtered), ListLimit)
	items := make([]ListItem, 0, n)
	for _, a := range filtered[:n] {
		items = append(items, ListItem{
			Headline:    FormatAssociation(a),
			Description: SanitizeForDisplay(a.Description),
		})
	}
	return items
}

// FormatAssociation renders an association the way the list shows it,
// with confidence rounded to two decimals.
func FormatAssociation(a model.Association) string {
	return fmt.Sprintf("Customer %s: %s (Confidence: %.2f)",
		a.CustomerID,
		strings.Join(a.Products, ", "),
		a.Confidence,
	)
}

// Bar is one entry of the confidence chart.
type Bar struct {
	Label string
	Value float64
}

// ChartView holds chart-ready data for the full filtered sequence.
type ChartView struct {
	Title        string
	DatasetLabel string
	Bars         []Bar
}

// Chart builds chart data from every filtered association; it is not
// truncated to ListLimit.
func Chart(filtered []model.Association) ChartView {
	bars := make([]Bar, 0, len(filtered))
	for _, a := range filtered {
		bars = append(bars, Bar{
			Label: "Customer " + a.CustomerID.String(),
			Value: a.Confidence,
		})
	}
	return ChartView{
		Title:        ChartTitle,
		DatasetLabel: ChartDatasetLabel,
		Bars:         bars,
	}
}

// HasBars reports whether the chart has anything to draw.
func (c ChartView) HasBars() bool {
	return len(c.Bars) > 0
}

// FormatScore renders the model score with two decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}
