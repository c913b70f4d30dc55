package telemetry

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_OptionsOverrideEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "pretty")

	var buf bytes.Buffer
	tel, err := New(Options{ServiceName: "sparsebench", LogLevel: "debug", LogFormat: LogFormatJSON, Output: &buf})
	require.NoError(t, err)

	logger := tel.GetLogger("runner")
	logger.Debug().Int("size", 10).Msg("workload done")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "sparsebench.runner", line["component"])
	assert.Equal(t, "workload done", line["message"])
	assert.InDelta(t, 10, line["size"], 0)
}

func TestNew_EnvDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	tel, err := New(Options{ServiceName: "sparsebench", Output: &buf})
	require.NoError(t, err)

	tel.Logger.Info().Msg("filtered")
	assert.Empty(t, buf.String())

	tel.Logger.Warn().Msg("kept")
	assert.Contains(t, buf.String(), `"message":"kept"`)
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
		opts   Options
	}{
		{name: "bad level", level: "loud", format: "json", opts: Options{ServiceName: "x"}},
		{name: "bad format", level: "info", format: "xml", opts: Options{ServiceName: "x"}},
		{name: "missing service name", level: "info", format: "json", opts: Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			t.Setenv("LOG_FORMAT", tt.format)

			_, err := New(tt.opts)
			require.Error(t, err)
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LogFormatJSON, ParseLogFormat("JSON"))
	assert.Equal(t, LogFormatPretty, ParseLogFormat("pretty"))
	assert.Equal(t, LogFormatUndefined, ParseLogFormat("yaml"))
	assert.Equal(t, "json", LogFormatJSON.String())
	assert.Equal(t, "undefined", LogFormat(42).String())
}
