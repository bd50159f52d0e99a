package tui

import (
	"time"

	"github.com/Veraticus/basket-insights/internal/controller"
	"github.com/Veraticus/basket-insights/internal/export"
	"github.com/Veraticus/basket-insights/internal/predict"
)

// Config holds TUI configuration.
type Config struct {
	Predictor    predict.Predictor
	Opener       controller.Opener
	ExportDir    string
	ExportFormat export.Format
	InitialFile  string
	SampleURL    string
	Width        int
	Height       int
	Timeout      time.Duration
	Dark         bool
	AltScreen    bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Opener:       controller.OpenFile,
		ExportDir:    ".",
		ExportFormat: export.FormatCSV,
		SampleURL:    predict.SamplePath,
		Width:        80,
		Height:       24,
		AltScreen:    true,
	}
}

// WithPredictor sets the prediction backend.
func WithPredictor(p predict.Predictor) Option {
	return func(c *Config) {
		c.Predictor = p
	}
}

// WithOpener overrides how selected files are opened.
func WithOpener(open controller.Opener) Option {
	return func(c *Config) {
		c.Opener = open
	}
}

// WithDark starts the TUI in dark mode.
func WithDark(dark bool) Option {
	return func(c *Config) {
		c.Dark = dark
	}
}

// WithExport sets where and in which format associations are exported.
func WithExport(dir string, format export.Format) Option {
	return func(c *Config) {
		c.ExportDir = dir
		c.ExportFormat = format
	}
}

// WithInitialFile pre-fills the file path input.
func WithInitialFile(path string) Option {
	return func(c *Config) {
		c.InitialFile = path
	}
}

// WithSampleURL sets the link shown for the reference input file.
func WithSampleURL(url string) Option {
	return func(c *Config) {
		c.SampleURL = url
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTimeout bounds each prediction request. Zero means no extra bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
