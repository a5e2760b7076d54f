package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_FormatFollowsEnvironment(t *testing.T) {
	var prod, dev bytes.Buffer

	New(Config{Environment: "production", Writer: &prod}).Info("hello")
	New(Config{Environment: "development", Writer: &dev}).Info("hello")

	assert.Contains(t, prod.String(), `"msg":"hello"`)
	assert.Contains(t, dev.String(), "INF")
	assert.Contains(t, dev.String(), "hello")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Format: FormatPretty, Level: slog.LevelWarn, Writer: &buf})

	l.Info("quiet")
	l.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "WRN")
	assert.Contains(t, buf.String(), "loud")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestPrettyHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Format: FormatPretty, Writer: &buf}).WithComponent("listing")

	l.WithGroup("req").Info("served", "kind", "quote", "note", "two words")

	out := buf.String()
	assert.Contains(t, out, "component=listing")
	assert.Contains(t, out, "req.kind=quote")
	assert.Contains(t, out, `req.note="two words"`)
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Format: FormatJSON, Writer: &buf}).WithError(errors.New("boom")).Error("failed")

	assert.Contains(t, buf.String(), `"error":"boom"`)
}
