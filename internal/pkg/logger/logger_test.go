package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureJSON(t *testing.T) {
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf, Service: "learnhub"})

	Info().Msg("dropped")
	Warn().Str("courseID", "c1").Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "learnhub", entry["service"])
	assert.Equal(t, "c1", entry["courseID"])
	assert.Equal(t, "warn", entry["level"])
}

func TestConfigureUnknownLevel(t *testing.T) {
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	Configure(Config{Level: "verbose", Output: &bytes.Buffer{}})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
