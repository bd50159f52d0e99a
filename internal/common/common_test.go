package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLoggerTo(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	require.NoError(t, SetupLoggerTo(&buf, slog.LevelInfo, "json"))

	LogInfo("prediction received", Fields{"associations": 3})
	LogDebug("hidden", nil)
	LogError(errors.New("boom"), "request failed", Fields{"status": 500})

	out := buf.String()
	assert.Contains(t, out, `"msg":"prediction received"`)
	assert.Contains(t, out, `"associations":3`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.NotContains(t, out, "hidden")

	assert.ErrorIs(t, SetupLoggerTo(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}

func TestUserError(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	err := NewUserError("Could not reach the prediction backend", inner)

	assert.Equal(t, "Could not reach the prediction backend: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "Could not reach the prediction backend", UserMessage(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))

	bare := NewUserError("only message", nil)
	assert.Equal(t, "only message", bare.Error())
}
