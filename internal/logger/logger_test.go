package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		"info":   zapcore.InfoLevel,
		" WARN ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
		"panic":  zapcore.PanicLevel,
		"fatal":  zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestParseFormat checks accepted format names.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, ok := ParseFormat("JSON")
	require.True(t, ok)
	require.Equal(t, FormatJSON, f)

	f, ok = ParseFormat("")
	require.True(t, ok)
	require.Equal(t, FormatConsole, f)

	_, ok = ParseFormat("xml")
	require.False(t, ok)
}

// TestContextLogger verifies names and key-values travel with the context.
func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := New(zap.NewAtomicLevelAt(zap.DebugLevel), FormatJSON, &buf)

	ctx := ToContext(context.Background(), l)
	ctx = WithName(ctx, "store")
	ctx = WithKV(ctx, "alarm_id", "42")
	ctx = WithFields(ctx, zap.Bool("enabled", true))

	InfoKV(ctx, "Alarm updated", "time", "10:30")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "store", line["logger"])
	require.Equal(t, "42", line["alarm_id"])
	require.Equal(t, true, line["enabled"])
	require.Equal(t, "10:30", line["time"])
	require.Equal(t, "Alarm updated", line["message"])

	// Without a stored logger the global one is returned.
	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestConfigure checks that settings reach the shared level.
// Not parallel: it changes the global logger.
//
//nolint:paralleltest // Mutates package-level state.
func TestConfigure(t *testing.T) {
	previousLevel := Level()
	previousLogger := Logger()

	t.Cleanup(func() {
		SetLevel(previousLevel)
		SetLogger(previousLogger)
	})

	Configure("debug", "json")
	require.Equal(t, zap.DebugLevel, Level())

	Configure("bogus", "bogus")
	require.Equal(t, zap.DebugLevel, Level())

	Configure("warn", "")
	require.Equal(t, zap.WarnLevel, Level())
}
