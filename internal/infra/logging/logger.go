// Package logging provides check logs and file-based logging for rscheck.
// When a log directory is configured, entries go to both a global log file
// (<dir>/rscheck.log) and check-specific files (<dir>/check-<name>.log).
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/runoshun/rscheck/internal/domain"
)

// Log file names.
const (
	GlobalLogFileName = "rscheck.log"
	checkLogPrefix    = "check-"
)

// unsafeFileChars matches characters not kept in check log file names.
var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Ensure Logger implements domain.Logger and domain.CheckLogFactory.
var (
	_ domain.Logger          = (*Logger)(nil)
	_ domain.CheckLogFactory = (*Logger)(nil)
)

// Logger writes log entries to files and to an optional slog.Logger.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile *os.File
	checkFiles map[string]*os.File
	slog       *slog.Logger
	logDir     string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger that writes to logDir.
// If logDir is empty, file logging is disabled. If sl is non-nil, entries are
// also sent to it.
func New(logDir string, level slog.Level, sl *slog.Logger) *Logger {
	return &Logger{
		logDir:     logDir,
		level:      level,
		slog:       sl,
		checkFiles: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GlobalLogPath returns the global log file path in logDir.
func GlobalLogPath(logDir string) string {
	return filepath.Join(logDir, GlobalLogFileName)
}

// CheckLogPath returns the log file path of a check in logDir.
func CheckLogPath(logDir, check string) string {
	return filepath.Join(logDir, checkLogPrefix+unsafeFileChars.ReplaceAllString(check, "_")+".log")
}

// ensureGlobalFile opens or returns the global log file.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}

	if err := os.MkdirAll(l.logDir, 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(GlobalLogPath(l.logDir), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open global log file: %w", err)
	}
	l.globalFile = f
	return f, nil
}

// ensureCheckFile opens or returns the check log file.
func (l *Logger) ensureCheckFile(check string) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.checkFiles[check]; ok {
		return f, nil
	}

	if err := os.MkdirAll(l.logDir, 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(CheckLogPath(l.logDir, check), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open check log file: %w", err)
	}
	l.checkFiles[check] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for name, f := range l.checkFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.checkFiles, name)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [compiles] [category] message
func formatLog(t time.Time, level slog.Level, check, category, msg string) string {
	checkStr := check
	if checkStr == "" {
		checkStr = "global"
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		checkStr,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes an entry to the global log and, for a named check, its own log.
func (l *Logger) log(level slog.Level, check, category, msg string) {
	if level < l.level {
		return
	}

	if l.slog != nil {
		l.slog.Log(context.Background(), level, msg, "check", check, "category", category)
	}

	if l.logDir == "" {
		return
	}

	entry := formatLog(time.Now(), level, check, category, msg)

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}

	if check != "" {
		if cf, err := l.ensureCheckFile(check); err == nil {
			_, _ = io.WriteString(cf, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(check, category, msg string) {
	l.log(slog.LevelInfo, check, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(check, category, msg string) {
	l.log(slog.LevelDebug, check, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(check, category, msg string) {
	l.log(slog.LevelWarn, check, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(check, category, msg string) {
	l.log(slog.LevelError, check, category, msg)
}

// ForCheck returns the visible log of a check.
func (l *Logger) ForCheck(name string) domain.CheckRecorder {
	return &CheckLog{logger: l, check: name}
}

// CheckLog collects the lines shown in a check's report and mirrors them
// to the check log file.
type CheckLog struct {
	logger *Logger
	check  string
	lines  []string
	mu     sync.Mutex
}

// Log appends one line to the check log.
func (c *CheckLog) Log(line string) {
	c.mu.Lock()
	c.lines = append(c.lines, line)
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Debug(c.check, "log", line)
	}
}

// Lines returns a copy of the logged lines.
func (c *CheckLog) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}
