package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"WARN", LevelWarn, true},
		{"warning", LevelWarn, true},
		{"", LevelInfo, true},
		{"loud", LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown %d", 7)
	assert.Contains(t, buf.String(), "shown 7")

	buf.Reset()
	l.SetLevel(LevelDebug)
	l.WithComponent("child").Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
	assert.Contains(t, buf.String(), "component=child")
}

func TestJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf, Format: FormatJSON, Prefix: "test"})
	l.WithFields(map[string]any{"mode": "normal"}).Error("boom")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "boom", rec["msg"])
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "normal", rec["mode"])
	assert.Equal(t, "test", rec["app"])
}

func TestNop(t *testing.T) {
	l := OrNop(nil)
	assert.False(t, l.Enabled(LevelError))
	l.Error("nothing happens")
	assert.Same(t, Nop(), l)
}
