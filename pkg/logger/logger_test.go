package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "debug", Service: "clinica", Out: &buf})

	log := l.Component("billing")
	log.Info().Str("sale_id", "v1").Msg("venta registrada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "clinica", line["service"])
	assert.Equal(t, "billing", line["component"])
	assert.Equal(t, "v1", line["sale_id"])
	assert.Equal(t, "info", line["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
}
