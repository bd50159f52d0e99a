package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/basket-insights/internal/cli"
	"github.com/Veraticus/basket-insights/internal/config"
	"github.com/Veraticus/basket-insights/internal/sample"
	"github.com/spf13/cobra"
)

func sampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Get input files for the prediction service",
		Long: `Download the reference test.csv from the prediction service, generate a
synthetic transactions file, or check a file before uploading it.`,
	}

	cmd.AddCommand(sampleFetchCmd())
	cmd.AddCommand(sampleGenerateCmd())
	cmd.AddCommand(sampleInspectCmd())

	return cmd
}

func sampleFetchCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the reference test.csv served by the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			path := config.ExpandPath(out)
			f, err := os.Create(path) //nolint:gosec // user chosen output path
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}

			n, err := client.FetchSample(cmd.Context(), f)
			if closeErr := f.Close(); err == nil && closeErr != nil {
				err = fmt.Errorf("failed to close %s: %w", path, closeErr)
			}
			if err != nil {
				_ = os.Remove(path)
				return err
			}

			slog.Info("Sample downloaded", "path", path, "bytes", n)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved %s (%d bytes)", path, n)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "test.csv", "Where to save the file")
	return cmd
}

func sampleGenerateCmd() *cobra.Command {
	var (
		out          string
		transactions int
		seed         int64
		train        bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic transactions file",
		Long: `Write a synthetic transactions file in the format the prediction service
expects. Output is deterministic for a given seed.

Examples:
  basket sample generate                      # 500 transactions to test.csv
  basket sample generate -n 2000 --seed 7     # bigger file, different data
  basket sample generate --train -o train.csv # include the bundle label column
  basket sample generate -o -                 # write to stdout`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var w io.Writer = cmd.OutOrStdout()
			var f *os.File
			if out != "-" {
				var err error
				f, err = os.Create(config.ExpandPath(out)) //nolint:gosec // user chosen output path
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				w = f
			}

			rows, err := sample.Generate(w, sample.Options{
				Transactions: transactions,
				Seed:         seed,
				Train:        train,
				End:          time.Now(),
			})
			if f != nil {
				if closeErr := f.Close(); err == nil && closeErr != nil {
					err = closeErr
				}
			}
			if err != nil {
				return fmt.Errorf("failed to generate sample: %w", err)
			}

			slog.Info("Sample generated", "rows", rows, "transactions", transactions, "seed", seed)
			if f != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Wrote %d rows to %s", rows, out)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "test.csv", "Output file, - for stdout")
	cmd.Flags().IntVarP(&transactions, "transactions", "n", 500, "Number of transactions")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().BoolVar(&train, "train", false, "Include the bundle target column")
	return cmd
}

func sampleInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Check that a transactions file has the columns the service needs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ExpandPath(args[0])
			f, err := os.Open(path) //nolint:gosec // user chosen input path
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			summary, err := sample.Inspect(f)
			if err != nil {
				return fmt.Errorf("failed to inspect %s: %w", path, err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSummary(path, summary))
			if !summary.OK() {
				return fmt.Errorf("%s is missing required columns", path)
			}
			return nil
		},
	}
}
