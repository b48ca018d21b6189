package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { InitWithWriter("test", &bytes.Buffer{}) })

	Info("server starting", "address", ":8000")
	Debug("hidden at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "server starting", entry["msg"])
	assert.Equal(t, ":8000", entry["address"])
}

func TestInitDevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("development", &buf)
	t.Cleanup(func() { InitWithWriter("test", &bytes.Buffer{}) })

	Debug("resolver", "field", "totalRevenue")

	assert.Contains(t, buf.String(), "field=totalRevenue")
	assert.Contains(t, buf.String(), "level=DEBUG")
}
