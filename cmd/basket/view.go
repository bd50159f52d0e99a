package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/basket-insights/internal/common"
	"github.com/Veraticus/basket-insights/internal/config"
	"github.com/Veraticus/basket-insights/internal/predict"
	"github.com/Veraticus/basket-insights/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	debugLogFile = "basket-debug.log"
	demoDelay    = 800 * time.Millisecond
)

func viewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Open the interactive prediction view",
		Long: `Open the interactive prediction view.

Type the path of your test.csv, press Enter to upload it and browse the
returned associations. Filters, the confidence chart and export are
available once a prediction has been received.

Examples:
  basket view                   # Start with an empty file input
  basket view ./data/test.csv   # Pre-fill the file input
  basket view --demo            # Use generated predictions, no backend needed
  basket view --theme dark      # Start in dark mode`,
		Args: cobra.MaximumNArgs(1),
		RunE: runView,
	}

	// Flags
	cmd.Flags().Bool("demo", false, "Use generated predictions instead of the backend")
	cmd.Flags().Int("demo-count", 25, "Number of generated associations in demo mode")
	cmd.Flags().String("theme", "", "Color theme (light, dark)")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("view.demo", cmd.Flags().Lookup("demo"))
	_ = viper.BindPFlag("view.demo_count", cmd.Flags().Lookup("demo-count"))
	_ = viper.BindPFlag(config.KeyUITheme, cmd.Flags().Lookup("theme"))

	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := redirectLogs(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer func() { _ = logFile.Close() }()
	}

	var predictor predict.Predictor
	sampleURL := predict.SamplePath
	if viper.GetBool("view.demo") {
		fake := predict.NewFake(predict.DemoResult(viper.GetInt("view.demo_count"), 42))
		fake.Delay = demoDelay
		predictor = fake
		slog.Info("Running in demo mode", "associations", viper.GetInt("view.demo_count"))
	} else {
		client, clientErr := newClient(cfg)
		if clientErr != nil {
			return clientErr
		}
		predictor = client
		sampleURL = client.BaseURL() + predict.SamplePath
	}

	opts := []tui.Option{
		tui.WithPredictor(predictor),
		tui.WithDark(cfg.Dark()),
		tui.WithExport(cfg.ExportDir, cfg.ExportFormat),
		tui.WithSampleURL(sampleURL),
		tui.WithTimeout(cfg.BackendTimeout),
	}
	if len(args) == 1 {
		opts = append(opts, tui.WithInitialFile(config.ExpandPath(args[0])))
	}

	if err := tui.Run(ctx, opts...); err != nil {
		return fmt.Errorf("view failed: %w", err)
	}
	return nil
}

// redirectLogs keeps log records off the alternate screen. They go to the
// configured log file, to a debug log in debug mode, or nowhere.
func redirectLogs(cfg *config.Config) (io.Closer, error) {
	level, err := common.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var f *os.File
	switch {
	case cfg.LogFile != "":
		f, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // user configured path
	case level == slog.LevelDebug:
		f, err = tea.LogToFile(debugLogFile, "basket")
	default:
		return nil, common.SetupLoggerTo(io.Discard, level, cfg.LogFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	if err := common.SetupLoggerTo(f, level, cfg.LogFormat); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}
