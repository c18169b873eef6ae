package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scerr "github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestZerologLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.Info("fit started", SamplesKey, 100, MethodKey, "LBFGS")
	logger.Warn("fit did not converge", ConvergedKey, false)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "fit started", lines[0]["message"])
	assert.Equal(t, 100.0, lines[0][SamplesKey])
	assert.Equal(t, "LBFGS", lines[0][MethodKey])
	assert.Equal(t, "warn", lines[1]["level"])
	assert.Equal(t, false, lines[1][ConvergedKey])

	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), LevelWarn))
}

func TestZerologLogger_WithAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug).With(ModelNameKey, "LogisticRegression")

	logger.Error("fit failed", errors.New("boom"), StatusKey, "Failure")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "LogisticRegression", lines[0][ModelNameKey])
	assert.Equal(t, "boom", lines[0]["error"])
	assert.Equal(t, "Failure", lines[0][StatusKey])
}

func TestZerologLogger_ObjectMarshaler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)

	logger.Warn("warning", "warning", scerr.NewConvergenceWarning("LBFGS", 7, "limit"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	obj, ok := lines[0]["warning"].(map[string]any)
	require.True(t, ok, "expected nested object, got %T", lines[0]["warning"])
	assert.Equal(t, "LBFGS", obj["algorithm"])
	assert.Equal(t, 7.0, obj["iterations"])
}

func TestRouteWarnings(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)
	RouteWarnings(testLogger)
	defer scerr.SetZerologWarnFunc(nil)

	scerr.Warn(scerr.NewConvergenceWarning("LBFGS", 3, ""))

	assert.True(t, testLogger.ContainsMessage("LBFGS failed to converge after 3 iterations"))
	assert.True(t, testLogger.ContainsField(ErrorTypeKey, "*errors.ConvergenceWarning"))
}

func TestDefaultLogger(t *testing.T) {
	prev := GetLogger()
	defer SetLogger(prev)

	testLogger, _ := NewTestLogger(LevelDebug)
	SetLogger(testLogger)
	SetLogger(nil)

	GetLoggerWithName("metrics").Info("hello")
	assert.True(t, testLogger.ContainsField(ComponentKey, "metrics"))
}

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLoggerStacktrace(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	require.NoError(t, SetupLoggerTo(&buf, "info"))

	NewSlogLogger(nil).Error("fit failed", errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "ERROR", lines[0]["severity"])
	assert.Equal(t, "fit failed", lines[0]["message"])
	assert.NotEmpty(t, lines[0][StacktraceAttrKey])
}
