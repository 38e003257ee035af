package logging

import (
	"io"
	"os"
	"sync"
	"time"
)

// Logger is a type that is responsible for storing and logging output from the
// interpreter as necessary
type Logger struct {
	errorCount int // Total encountered errors
	LogLevel   int

	// warnings is a list of all warnings to be logged at the end of a run
	warnings []LogMessage

	// out is where all messages are written
	out io.Writer

	// startTime is the time at which the logger was initialized
	startTime time.Time

	// m is the mutex used to synchonize the printing of messages
	m *sync.Mutex
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors
	LogLevelWarning        // errors and warnings
	LogLevelVerbose        // errors, warnings, import/load progress and closing summary
)

// LogContext identifies the source a message refers to.  Source may be left
// empty in which case the text is read back from FilePath when needed.
type LogContext struct {
	FilePath string
	Source   string
}

// LogMessage is a message the logger can process
type LogMessage interface {
	isError() bool
	display(out io.Writer)
}

// ScriptMessage is a fault reported against a script
type ScriptMessage struct {
	Context *LogContext
	Fault   *Fault
	IsError bool
}

func (sm *ScriptMessage) isError() bool {
	return sm.IsError
}

// ConfigMessage is an error or warning about CLI or project configuration
type ConfigMessage struct {
	Kind    string
	Message string
	IsError bool
}

func (cm *ConfigMessage) isError() bool {
	return cm.IsError
}

// newLogger creates a new logger struct
func newLogger(out io.Writer, loglevel int) Logger {
	return Logger{
		LogLevel:  loglevel,
		out:       out,
		startTime: time.Now(),
		m:         &sync.Mutex{},
	}
}

// handleMsg prompts to logger to process a message.  Errors are displayed
// immediately while warnings are held until the end of the run.
func (l *Logger) handleMsg(lm LogMessage) {
	l.m.Lock()
	defer l.m.Unlock()

	if lm.isError() {
		l.errorCount++

		if l.LogLevel > LogLevelSilent {
			lm.display(l.out)
		}
	} else if l.LogLevel >= LogLevelWarning {
		l.warnings = append(l.warnings, lm)
	}
}

// the logger is usable before Initialize is called: it only reports errors
var logger = newLogger(os.Stdout, LogLevelError)
