package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the level of logging verbosity
type LogLevel int

const (
	// LevelQuiet suppresses all output except errors
	LevelQuiet LogLevel = iota
	// LevelNormal shows stage progress and degraded upstream calls
	LevelNormal
	// LevelVerbose shows every page and batch
	LevelVerbose
	// LevelDebug shows all debugging information
	LevelDebug
)

var (
	// CurrentLogLevel is the global log level setting
	CurrentLogLevel LogLevel = LevelNormal

	logMu     sync.Mutex
	stdoutLog io.Writer = os.Stdout
	stderrLog io.Writer = os.Stderr
)

// SetLogLevel sets the global logging level
func SetLogLevel(level LogLevel) {
	logMu.Lock()
	defer logMu.Unlock()
	CurrentLogLevel = level
}

// SetLogOutput redirects log output. A nil writer leaves the stream unchanged.
func SetLogOutput(stdout, stderr io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	if stdout != nil {
		stdoutLog = stdout
	}
	if stderr != nil {
		stderrLog = stderr
	}
}

// LogLevelFromString converts a string level name to LogLevel
func LogLevelFromString(level string) LogLevel {
	switch strings.ToLower(level) {
	case "quiet", "q":
		return LevelQuiet
	case "normal", "n":
		return LevelNormal
	case "verbose", "v":
		return LevelVerbose
	case "debug", "d":
		return LevelDebug
	default:
		return LevelNormal
	}
}

// logf writes one line when the current level is at least minLevel.
// Caption workers log concurrently, so writes are serialized.
func logf(minLevel LogLevel, toStderr bool, prefix string, colorize func(string) string, format string, args ...interface{}) {
	logMu.Lock()
	defer logMu.Unlock()
	if CurrentLogLevel < minLevel {
		return
	}
	w := stdoutLog
	if toStderr {
		w = stderrLog
	}
	_, _ = fmt.Fprintf(w, "%s%s\n", prefix, colorize(fmt.Sprintf(format, args...)))
}

// LogError logs an error message (always shown)
func LogError(format string, args ...interface{}) {
	logf(LevelQuiet, true, "", Error, format, args...)
}

// LogInfo logs an informational message at Normal+ level
func LogInfo(format string, args ...interface{}) {
	logf(LevelNormal, false, "", Info, format, args...)
}

// LogSuccess logs a success message at Normal+ level
func LogSuccess(format string, args ...interface{}) {
	logf(LevelNormal, false, "", Success, format, args...)
}

// LogVerbose logs a message at Verbose+ level
func LogVerbose(format string, args ...interface{}) {
	logf(LevelVerbose, false, "\t", Info, format, args...)
}

// LogDebug logs a debug message at Debug level
func LogDebug(format string, args ...interface{}) {
	logf(LevelDebug, false, "\t", Debug, format, args...)
}

// LogWarning logs a warning message at Normal+ level
func LogWarning(format string, args ...interface{}) {
	logf(LevelNormal, false, "", Warning, format, args...)
}
