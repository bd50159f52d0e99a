package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Link          lipgloss.Style
	Button        lipgloss.Style
	ButtonOff     lipgloss.Style
	ExportButton  lipgloss.Style
	Panel         lipgloss.Style
	FocusedInput  lipgloss.Style
	BlurredInput  lipgloss.Style
	ChartBar      lipgloss.Style
	ChartTrack    lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusSuccess lipgloss.Style
	Name          string
	Primary       lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Background    lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
}

func build(name string, fg, bg, panel, border, muted, primary, link lipgloss.Color) Theme {
	const (
		errColor     = lipgloss.Color("#ef4444")
		successColor = lipgloss.Color("#22c55e")
		chartColor   = lipgloss.Color("#4bc0c0")
	)

	return Theme{
		Name:       name,
		Primary:    primary,
		Border:     border,
		Foreground: fg,
		Background: bg,
		Error:      errColor,
		Success:    successColor,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Link: lipgloss.NewStyle().
			Underline(true).
			Foreground(link),
		Button: lipgloss.NewStyle().
			Background(primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2),
		ButtonOff: lipgloss.NewStyle().
			Background(lipgloss.Color("#9ca3af")).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2),
		ExportButton: lipgloss.NewStyle().
			Background(successColor).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Background(panel).
			Padding(0, 1).
			MarginBottom(1),
		FocusedInput: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		BlurredInput: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
		ChartBar: lipgloss.NewStyle().
			Foreground(chartColor),
		ChartTrack: lipgloss.NewStyle().
			Foreground(border),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor),
		StatusInfo: lipgloss.NewStyle().
			Foreground(link),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true),
	}
}

// Light is the default theme.
var Light = build("light",
	lipgloss.Color("#1f2937"), // foreground
	lipgloss.Color("#f3f4f6"), // background
	lipgloss.Color("#ffffff"), // panel
	lipgloss.Color("#d1d5db"), // border
	lipgloss.Color("#4b5563"), // muted
	lipgloss.Color("#3b82f6"), // primary
	lipgloss.Color("#2563eb"), // link
)

// Dark is the dark mode theme.
var Dark = build("dark",
	lipgloss.Color("#ffffff"),
	lipgloss.Color("#111827"),
	lipgloss.Color("#1f2937"),
	lipgloss.Color("#4b5563"),
	lipgloss.Color("#9ca3af"),
	lipgloss.Color("#2563eb"),
	lipgloss.Color("#60a5fa"),
)

// For returns the dark or light theme.
func For(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// ToggleLabel is the caption of the theme toggle for the current mode.
func ToggleLabel(dark bool) string {
	if dark {
		return "Light Mode"
	}
	return "Dark Mode"
}
