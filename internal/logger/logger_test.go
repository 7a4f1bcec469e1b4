package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_NotNil verifies that NewLogger returns a non-nil *Logger.
func TestNewLogger_NotNil(t *testing.T) {
	l := NewLogger("test")
	require.NotNil(t, l)
}

// TestNew_RoleField verifies that every log entry contains the expected
// "role" field.
func TestNew_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "test-role")

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "test-role", entry["role"])
	assert.Equal(t, "hello", entry["message"])
}

// TestNew_TimestampFieldName verifies that log entries carry the timestamp
// under "ts".
func TestNew_TimestampFieldName(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "ts-role")
	assert.Equal(t, "ts", zerolog.TimestampFieldName)

	l.Info().Msg("ts check")

	entry := decodeEntry(t, &buf)
	assert.Contains(t, entry, "ts")
	assert.NotContains(t, entry, "time")
}

// TestNew_CallerFieldName verifies that the caller field is named "func" and
// holds a function name.
func TestNew_CallerFieldName(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "caller-role")
	assert.Equal(t, "func", zerolog.CallerFieldName)

	l.Info().Msg("caller")

	entry := decodeEntry(t, &buf)
	assert.Contains(t, entry["func"], "TestNew_CallerFieldName")
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

// TestWithLevel_Filters verifies that entries below the level are dropped.
func TestWithLevel_Filters(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "lvl").WithLevel("warn")
	require.NoError(t, err)

	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	l.Warn().Msg("kept")
	entry := decodeEntry(t, &buf)
	assert.Equal(t, "warn", entry["level"])
}

// TestWithLevel_Invalid verifies that an unknown level name is rejected.
func TestWithLevel_Invalid(t *testing.T) {
	l, err := Nop().WithLevel("loud")
	assert.Nil(t, l)
	require.Error(t, err)
}

// TestComponent_AddsField verifies that a component logger tags entries and
// leaves its parent untouched.
func TestComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "parent")
	child := parent.Component("scanner")

	child.Info().Msg("child")
	entry := decodeEntry(t, &buf)
	assert.Equal(t, "scanner", entry["component"])
	assert.Equal(t, "parent", entry["role"])

	buf.Reset()
	parent.Info().Msg("parent")
	entry = decodeEntry(t, &buf)
	_, has := entry["component"]
	assert.False(t, has)
}
