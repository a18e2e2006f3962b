// Package logger provides logging for testforge generation runs.
//
// The logger offers structured logging of pipeline progress plus diagnostics
// reporting. Implementations are thread-safe. Color output is automatically
// enabled for terminal output and respects NO_COLOR.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/testforge/internal/diag"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs pipeline progress to a writer with timestamps and
// thread safety. All output is prefixed with [HH:MM:SS] timestamps. It
// supports log level filtering to control message verbosity.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer. If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive);
// empty or invalid defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok && (f == os.Stdout || f == os.Stderr) {
		// color.NoColor already folds in NO_COLOR and TTY detection
		return isatty.IsTerminal(f.Fd()) && !color.NoColor
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates
// it. Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// LogDiagnostics reports every recorded diagnostic at its matching level.
func (cl *ConsoleLogger) LogDiagnostics(diags *diag.List) {
	if diags == nil {
		return
	}
	for _, d := range diags.All() {
		switch d.Level {
		case diag.LevelError:
			cl.LogError(d.String())
		default:
			cl.LogWarn(d.String())
		}
	}
}

// LogJobSummary reports the outcome of one generation job at INFO level.
// Format:
//
//	Generation Summary:
//	  Scenarios: N
//	  Test cases: N
//	  Files written: N
//	  Warnings: N
//	  Duration: Ns
func (cl *ConsoleLogger) LogJobSummary(scenarios, tests, files, warnings int, duration time.Duration) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	fmt.Fprintf(cl.writer, "\nGeneration Summary:\n")
	fmt.Fprintf(cl.writer, "  Scenarios: %d\n", scenarios)
	fmt.Fprintf(cl.writer, "  Test cases: %d\n", tests)
	fmt.Fprintf(cl.writer, "  Files written: %d\n", files)
	if cl.colorOutput && warnings > 0 {
		fmt.Fprintf(cl.writer, "  Warnings: %s\n", color.New(color.FgYellow).Sprintf("%d", warnings))
	} else {
		fmt.Fprintf(cl.writer, "  Warnings: %d\n", warnings)
	}
	fmt.Fprintf(cl.writer, "  Duration: %s\n", duration.Round(time.Second))
}

// logWithLevel logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := time.Now().Format("15:04:05")
	if cl.colorOutput {
		cl.writer.Write([]byte(fmt.Sprintf("[%s] [%s] %s\n", ts, colorizeLevel(level), message)))
		return
	}
	cl.writer.Write([]byte(fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)))
}

// colorizeLevel formats a level tag with ANSI color codes.
func colorizeLevel(level string) string {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}
