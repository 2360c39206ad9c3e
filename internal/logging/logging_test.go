package logging

import (
	"log/slog"
	"os"
	"path/filepath"
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
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srvmon.log")
	log, closer, err := New(path, "info")
	require.NoError(t, err)

	log.Debug("hidden detail")
	log.Info("profile selected", "platform", "desktop-linux")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "profile selected")
	assert.Contains(t, string(b), "platform=desktop-linux")
	assert.NotContains(t, string(b), "hidden detail")
}

func TestNewWithoutFileDiscards(t *testing.T) {
	log, closer, err := New("", "debug")
	require.NoError(t, err)
	assert.False(t, log.Enabled(t.Context(), slog.LevelError))
	assert.NoError(t, closer.Close())
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New("", "verbose")
	assert.Error(t, err)
}
