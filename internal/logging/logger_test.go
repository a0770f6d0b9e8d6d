package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amosWeiskopf/wordsmith/internal/config"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wordsmith.log")

	closer, err := Setup(config.LoggingConfig{Level: "info", Format: "json", OutputPath: path}, false)
	require.NoError(t, err)

	logger := GetLogger("fetcher")
	logger.Info().Str("url", "http://example.test").Msg("fetched")
	logger.Debug().Msg("hidden at info level")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"fetcher"`)
	assert.Contains(t, string(data), `"message":"fetched"`)
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestSetupVerboseForcesDebug(t *testing.T) {
	closer, err := Setup(config.LoggingConfig{Level: "warn", Format: "json", OutputPath: "stderr"}, true)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetupRejectsBadLevel(t *testing.T) {
	_, err := Setup(config.LoggingConfig{Level: "loud", Format: "json"}, false)
	assert.Error(t, err)
}
