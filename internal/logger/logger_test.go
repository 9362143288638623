package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, 0, "text")

	l.Info("upload stored", "key", "abc_report.pdf")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, `msg="upload stored"`)
	assert.Contains(t, out, "key=abc_report.pdf")
	assert.NotContains(t, out, "hidden")
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, -4, "json").With("component", "test")

	l.Debug("visible", "n", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "visible", rec["msg"])
	assert.Equal(t, "test", rec["component"])
	assert.Equal(t, float64(1), rec["n"])
}
