// Package main contains the basket CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Veraticus/basket-insights/internal/common"
	"github.com/Veraticus/basket-insights/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "basket",
		Short: "🧺 Grocery basket association predictions in your terminal",
		Long: `basket-insights: upload a transactions file to the basket prediction
service and explore the product bundles it suggests for cross-selling.

Start with 'basket view' for the interactive view, or 'basket predict test.csv'
for plain output.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/basket/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("backend", "", "prediction service base URL")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyBackendURL, rootCmd.PersistentFlags().Lookup("backend"))

	// Add commands
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(predictCmd())
	rootCmd.AddCommand(sampleCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, common.UserMessage(err))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	config.SetDefaults(viper.GetViper())

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(config.ExpandPath(cfgFile))
	} else {
		dir, err := config.DefaultDir()
		if err != nil {
			return err
		}

		// Search for config in standard locations
		viper.AddConfigPath(dir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables: BASKET_BACKEND_URL and friends
	viper.SetEnvPrefix("BASKET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}
	return common.SetupLogger(level, viper.GetString(config.KeyLogFormat))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			slog.Info("basket version", "version", version)
		},
	}
}
