package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_Info(t *testing.T) {
	// Setup
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelInfo, nil)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("compiles", "suite", "passed")

	// Verify global log
	content, err := os.ReadFile(GlobalLogPath(logDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[compiles]")
	assert.Contains(t, string(content), "[suite]")
	assert.Contains(t, string(content), "passed")

	// Verify check log
	checkContent, err := os.ReadFile(CheckLogPath(logDir, "compiles"))
	require.NoError(t, err)
	assert.Contains(t, string(checkContent), "[compiles]")
	assert.Contains(t, string(checkContent), "passed")
}

func TestLogger_GlobalLogOnly(t *testing.T) {
	// Setup
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelInfo, nil)
	defer func() { _ = logger.Close() }()

	// Execute without a check name
	logger.Info("", "system", "global message")

	// Verify global log
	content, err := os.ReadFile(GlobalLogPath(logDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[global]")
	assert.Contains(t, string(content), "global message")

	// Verify only the global file was created
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLogger_LevelFiltering(t *testing.T) {
	// Setup
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelWarn, nil) // Only warn and above
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Debug("c", "cat", "debug message")
	logger.Info("c", "cat", "info message")
	logger.Warn("c", "cat", "warn message")
	logger.Error("c", "cat", "error message")

	// Verify
	content, err := os.ReadFile(GlobalLogPath(logDir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
	assert.Contains(t, string(content), "error message")
}

func TestLogger_DisabledWhenEmptyLogDir(t *testing.T) {
	// Setup with empty logDir
	logger := New("", slog.LevelInfo, nil)
	defer func() { _ = logger.Close() }()

	// Execute - should not panic
	logger.Info("c", "cat", "test message")
	logger.Debug("c", "cat", "debug message")
	logger.Warn("c", "cat", "warn message")
	logger.Error("c", "cat", "error message")
}

func TestLogger_ForwardsToSlog(t *testing.T) {
	var buf bytes.Buffer
	sl := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger := New("", slog.LevelInfo, sl)

	logger.Info("compiles", "compile", "compiling: rustc hello.rs")

	out := buf.String()
	assert.Contains(t, out, "compiling: rustc hello.rs")
	assert.Contains(t, out, "check=compiles")
	assert.Contains(t, out, "category=compile")
}

func TestLogger_LogFormat(t *testing.T) {
	// Setup
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelInfo, nil)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("waits", "run_and_wait", `started "./hello"`)

	// Verify format: [timestamp] [INFO] [waits] [run_and_wait] message
	content, err := os.ReadFile(GlobalLogPath(logDir))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)

	line := lines[0]
	assert.Contains(t, line, "[INFO]")
	assert.Contains(t, line, "[waits]")
	assert.Contains(t, line, "[run_and_wait]")
	assert.Contains(t, line, `started "./hello"`)
}

func TestLogger_MultipleCheckFiles(t *testing.T) {
	// Setup
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelInfo, nil)
	defer func() { _ = logger.Close() }()

	// Log to multiple checks
	logger.Info("one", "suite", "message for one")
	logger.Info("two", "suite", "message for two")

	// Verify check logs are separate
	oneContent, err := os.ReadFile(CheckLogPath(logDir, "one"))
	require.NoError(t, err)
	assert.Contains(t, string(oneContent), "message for one")
	assert.NotContains(t, string(oneContent), "message for two")

	twoContent, err := os.ReadFile(CheckLogPath(logDir, "two"))
	require.NoError(t, err)
	assert.Contains(t, string(twoContent), "message for two")
}

func TestLogger_CreateLogDir(t *testing.T) {
	// Setup - parent exists but log dir doesn't
	logDir := filepath.Join(t.TempDir(), "logs")

	logger := New(logDir, slog.LevelInfo, nil)
	defer func() { _ = logger.Close() }()
	logger.Info("c", "cat", "test message")

	// Verify log dir was created
	stat, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestCheckLogPath_SanitizesName(t *testing.T) {
	path := CheckLogPath("/logs", "waits for/input")
	assert.Equal(t, filepath.Join("/logs", "check-waits_for_input.log"), path)
}

func TestCheckLog_Lines(t *testing.T) {
	// Setup: check lines are mirrored to files at debug level
	logDir := t.TempDir()
	logger := New(logDir, slog.LevelDebug, nil)
	defer func() { _ = logger.Close() }()

	checkLog := logger.ForCheck("compiles")
	checkLog.Log("error[E0425]: cannot find value `x`")
	checkLog.Log("aborting due to previous error")

	assert.Equal(t, []string{
		"error[E0425]: cannot find value `x`",
		"aborting due to previous error",
	}, checkLog.Lines())

	content, err := os.ReadFile(CheckLogPath(logDir, "compiles"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[DEBUG]")
	assert.Contains(t, string(content), "aborting due to previous error")
}

func TestCheckLog_LinesReturnsCopy(t *testing.T) {
	checkLog := New("", slog.LevelInfo, nil).ForCheck("c")
	checkLog.Log("first")

	lines := checkLog.Lines()
	lines[0] = "changed"

	assert.Equal(t, []string{"first"}, checkLog.Lines())
}
