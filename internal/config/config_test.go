package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/basket-insights/internal/common"
	"github.com/Veraticus/basket-insights/internal/export"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.BackendTimeout)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, export.FormatCSV, cfg.ExportFormat)
	assert.Equal(t, ThemeLight, cfg.Theme)
	assert.False(t, cfg.Dark())
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `backend:
  url: https://insights.example.com
  timeout: 5s
export:
  format: xlsx
ui:
  theme: dark
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://insights.example.com", cfg.BackendURL)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout)
	assert.Equal(t, export.FormatExcel, cfg.ExportFormat)
	assert.True(t, cfg.Dark())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr error
	}{
		{name: "empty url", key: KeyBackendURL, value: "", wantErr: common.ErrMissingConfig},
		{name: "bad scheme", key: KeyBackendURL, value: "ftp://example.com", wantErr: common.ErrInvalidConfig},
		{name: "no host", key: KeyBackendURL, value: "http://", wantErr: common.ErrInvalidConfig},
		{name: "bad theme", key: KeyUITheme, value: "neon", wantErr: common.ErrInvalidConfig},
		{name: "bad format", key: KeyExportFormat, value: "pdf", wantErr: common.ErrInvalidConfig},
		{name: "negative timeout", key: KeyBackendTimeout, value: "-1s", wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("BASKET_TEST_DIR", "/srv/exports")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/exports", want: filepath.Join(home, "exports")},
		{in: "$BASKET_TEST_DIR/out", want: "/srv/exports/out"},
		{in: "/abs/path", want: "/abs/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
