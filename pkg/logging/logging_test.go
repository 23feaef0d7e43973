package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerLevels(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	tests := []struct {
		name      string
		verbosity int
		want      zerolog.Level
	}{
		{name: "default_warn", verbosity: 0, want: zerolog.WarnLevel},
		{name: "v_info", verbosity: 1, want: zerolog.InfoLevel},
		{name: "vv_debug", verbosity: 2, want: zerolog.DebugLevel},
		{name: "vvv_trace", verbosity: 3, want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupLogger(tt.verbosity)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestGetLogFilePath(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	got := getLogFilePath()
	assert.Equal(t, filepath.Join(stateHome, "cronset", "cronset.log"), got)
}

func TestSetupLogFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "nested", "cronset.log")

	f, err := setupLogFile(logPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	_, err = os.Stat(logPath)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(f.Name(), "cronset.log"))
}

func TestGetLoggerComponent(t *testing.T) {
	logger := GetLogger("crontab")
	// Smoke check only; field wiring is zerolog's concern
	logger.Debug().Msg("component logger works")
}
