package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/basket-insights/internal/cli"
	"github.com/Veraticus/basket-insights/internal/common"
	"github.com/Veraticus/basket-insights/internal/config"
	"github.com/Veraticus/basket-insights/internal/controller"
	"github.com/Veraticus/basket-insights/internal/export"
	"github.com/Veraticus/basket-insights/internal/model"
	"github.com/Veraticus/basket-insights/internal/predict"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict <file>",
		Short: "Upload a file and print the predicted associations",
		Long: `Upload a transactions file to the prediction service and print the top
associations, the model score and the confidence chart.

The service only accepts a file named test.csv.

Examples:
  basket predict test.csv
  basket predict test.csv --customer 10 --min-confidence 0.6
  basket predict test.csv --export --format xlsx --out ./reports`,
		Args: cobra.ExactArgs(1),
		RunE: runPredict,
	}

	// Flags
	cmd.Flags().String("customer", "", "Only show customers whose ID contains this text")
	cmd.Flags().Float64("min-confidence", 0, "Only show associations at or above this confidence")
	cmd.Flags().Bool("export", false, "Export all associations (requires more than 10)")
	cmd.Flags().String("format", "", "Export format (csv, json, xlsx)")
	cmd.Flags().String("out", "", "Export directory")
	cmd.Flags().Bool("no-progress", false, "Hide the upload progress bar")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("predict.customer", cmd.Flags().Lookup("customer"))
	_ = viper.BindPFlag("predict.min_confidence", cmd.Flags().Lookup("min-confidence"))
	_ = viper.BindPFlag("predict.export", cmd.Flags().Lookup("export"))
	_ = viper.BindPFlag("predict.no_progress", cmd.Flags().Lookup("no-progress"))
	_ = viper.BindPFlag(config.KeyExportFormat, cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag(config.KeyExportDir, cmd.Flags().Lookup("out"))

	return cmd
}

// predictRequest is everything one headless prediction needs.
type predictRequest struct {
	Predictor    predict.Predictor
	Open         controller.Opener
	Path         string
	ExportDir    string
	ExportFormat export.Format
	Filter       model.FilterCriteria
	Width        int
	Export       bool
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var clientOpts []predict.Option
	if !viper.GetBool("predict.no_progress") {
		clientOpts = append(clientOpts, predict.WithProgress(os.Stderr))
	}
	client, err := newClient(cfg, clientOpts...)
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(os.Stderr, "Upload interrupted!")
	ctx := interrupts.HandleInterrupts(cmd.Context())
	defer interrupts.Stop()

	return predictFile(ctx, cmd.OutOrStdout(), predictRequest{
		Predictor: client,
		Open:      controller.OpenFile,
		Path:      config.ExpandPath(args[0]),
		Filter: model.FilterCriteria{
			CustomerIDSubstring: viper.GetString("predict.customer"),
			MinConfidence:       viper.GetFloat64("predict.min_confidence"),
		},
		Export:       viper.GetBool("predict.export"),
		ExportDir:    cfg.ExportDir,
		ExportFormat: cfg.ExportFormat,
		Width:        terminalWidth(80),
	})
}

// predictFile runs one submission through the controller and prints the
// result to out.
func predictFile(ctx context.Context, out io.Writer, req predictRequest) error {
	ctrl := controller.New()
	defer ctrl.Close()

	if err := ctrl.Select("", req.Path); err != nil {
		return err
	}
	ctrl.SetFilter(req.Filter)

	slog.Debug("Submitting file", "path", req.Path)
	if err := ctrl.Submit(ctx, req.Predictor, req.Open); err != nil {
		if controller.IsValidationError(err) {
			return err
		}
		if predict.IsTransportError(err) {
			return common.NewUserError("Could not reach the prediction backend", err)
		}
		return fmt.Errorf("prediction failed: %w", err)
	}

	if _, err := fmt.Fprintln(out, cli.RenderPrediction(ctrl, req.Width)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !req.Export {
		return nil
	}

	path, err := ctrl.Export(req.ExportDir, req.ExportFormat)
	if errors.Is(err, controller.ErrExportUnavailable) {
		_, _ = fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf(
			"Export skipped: %d associations, more than %d needed",
			ctrl.Result().Count(), controller.ExportThreshold)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	_, _ = fmt.Fprintln(out, cli.FormatSuccess("Exported all associations to "+path))
	return nil
}
