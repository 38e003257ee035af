package logging

import (
	"io"
	"time"
)

// Initialize initializes the global logger with the provided log level
func Initialize(out io.Writer, loglevelname string) {
	logger = newLogger(out, LogLevelFromName(loglevelname))
}

// LogLevelFromName converts a log level name into its enumerated value.
func LogLevelFromName(loglevelname string) int {
	switch loglevelname {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		return LogLevelVerbose
	}
}

// ShouldProceed indicates whether or not the logger has encountered any errors.
func ShouldProceed() bool {
	logger.m.Lock()
	defer logger.m.Unlock()

	return logger.errorCount == 0
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// LogScriptError logs a fault raised while loading or running a script.
// Errors that are not faults are displayed as resource faults.  Faults raised
// in another file (eg. an import) are displayed against that file.
func LogScriptError(lctx *LogContext, err error) {
	f := AsFault(err, LMKResource)
	if f.FilePath != "" && (lctx == nil || lctx.FilePath != f.FilePath) {
		lctx = &LogContext{FilePath: f.FilePath}
	}

	logger.handleMsg(&ScriptMessage{
		Context: lctx,
		Fault:   f,
		IsError: true,
	})
}

// LogConfigError logs an error related to project or CLI configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigMessage{Kind: kind, Message: message, IsError: true})
}

// LogConfigWarning logs a warning related to project configuration
func LogConfigWarning(kind, message string) {
	logger.handleMsg(&ConfigMessage{Kind: kind, Message: message, IsError: false})
}

// LogInfo displays an informational message (verbose only).
func LogInfo(tag, message string) {
	logger.m.Lock()
	defer logger.m.Unlock()

	if logger.LogLevel == LogLevelVerbose {
		displayInfoMessage(logger.out, tag, message)
	}
}

// LogRunFinished displays all held warnings followed by (at verbose level) the
// concluding summary of a run.
func LogRunFinished() {
	logger.m.Lock()
	defer logger.m.Unlock()

	if logger.LogLevel >= LogLevelWarning {
		for _, warning := range logger.warnings {
			warning.display(logger.out)
		}
	}
	logger.warnings = nil

	if logger.LogLevel == LogLevelVerbose {
		displayRunFinished(logger.out, logger.errorCount == 0, logger.errorCount, time.Since(logger.startTime))
	}
}
