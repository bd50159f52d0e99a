package viewmodel

import (
	"slices"
	"strings"

	"github.com/Veraticus/basket-insights/internal/model"
)

// TopBundleLimit caps the bundle breakdown.
const TopBundleLimit = 5

// Confidence levels, highest first.
const (
	LevelHigh   = "High"
	LevelMedium = "Medium"
	LevelLow    = "Low"
)

// StatsView summarises the filtered view against the full result.
type StatsView struct {
	Levels            []LevelStat
	TopBundles        []BundleStat
	AverageConfidence float64
	Total             int
	Filtered          int
}

// LevelStat counts filtered associations per confidence level.
type LevelStat struct {
	Level string
	Count int
}

// BundleStat counts how often a product bundle was predicted.
type BundleStat struct {
	Bundle string
	Count  int
}

// Stats computes summary data. Totals come from all; everything else from
// filtered.
func Stats(all, filtered []model.Association) StatsView {
	sv := StatsView{
		Total:    len(all),
		Filtered: len(filtered),
		Levels: []LevelStat{
			{Level: LevelHigh},
			{Level: LevelMedium},
			{Level: LevelLow},
		},
	}

	if len(filtered) == 0 {
		return sv
	}

	bundles := make(map[string]int)
	var sum float64
	for _, a := range filtered {
		sum += a.Confidence
		switch ConfidenceLevel(a.Confidence) {
		case LevelHigh:
			sv.Levels[0].Count++
		case LevelMedium:
			sv.Levels[1].Count++
		default:
			sv.Levels[2].Count++
		}
		if len(a.Products) > 0 {
			bundles[strings.Join(a.Products, " + ")]++
		}
	}
	sv.AverageConfidence = sum / float64(len(filtered))

	for name, count := range bundles {
		sv.TopBundles = append(sv.TopBundles, BundleStat{Bundle: name, Count: count})
	}
	slices.SortFunc(sv.TopBundles, func(a, b BundleStat) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Bundle, b.Bundle)
	})
	if len(sv.TopBundles) > TopBundleLimit {
		sv.TopBundles = sv.TopBundles[:TopBundleLimit]
	}

	return sv
}

// FilteredFraction returns the share of associations passing the filters.
func (sv StatsView) FilteredFraction() float64 {
	if sv.Total == 0 {
		return 0
	}
	return float64(sv.Filtered) / float64(sv.Total)
}

// HasBundles returns true if there are bundle statistics to display.
func (sv StatsView) HasBundles() bool {
	return len(sv.TopBundles) > 0
}

// ConfidenceLevel returns a human-readable confidence level.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return LevelHigh
	case confidence >= 0.5:
		return LevelMedium
	default:
		return LevelLow
	}
}
