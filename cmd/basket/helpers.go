package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/basket-insights/internal/config"
	"github.com/Veraticus/basket-insights/internal/predict"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// loadConfig resolves the typed configuration from viper.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newClient builds the prediction client for the configured backend.
func newClient(cfg *config.Config, opts ...predict.Option) (*predict.Client, error) {
	opts = append([]predict.Option{predict.WithTimeout(cfg.BackendTimeout)}, opts...)
	client, err := predict.NewClient(cfg.BackendURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction client: %w", err)
	}
	return client, nil
}

// terminalWidth returns the width of stdout, or fallback when stdout is
// not a terminal.
func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return fallback
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
