package logging

import "sync"

// Logger is responsible for collecting and printing diagnostics produced
// while loading and decoding NIR files.
type Logger struct {
	errorCount   int
	warningCount int
	LogLevel     int

	// m synchronizes access to the logger: decoding of multiple files in a
	// project may be dispatched concurrently.
	m *sync.Mutex
}

// Enumeration of the log levels recognized by Initialize.
const (
	LogLevelSilent  = iota // no error or warning messages
	LogLevelError          // error messages only
	LogLevelWarning        // error and warning messages
	LogLevelVerbose        // error and warning messages (default)
)

// The log level gates only error and warning messages. The tool banner, the
// phase spinners and the closing summary are printed at every level.

func newLogger(loglevel int) Logger {
	return Logger{LogLevel: loglevel, m: &sync.Mutex{}}
}

// handleMsg dispatches lm to the appropriate counter and, if the current log
// level allows it, to the screen.
func (l *Logger) handleMsg(lm logMessage) {
	l.m.Lock()
	defer l.m.Unlock()

	if lm.isError() {
		l.errorCount++
		if l.LogLevel > LogLevelSilent {
			displayEndPhase(false)
			lm.display()
		}
	} else {
		l.warningCount++
		if l.LogLevel >= LogLevelWarning {
			lm.display()
		}
	}
}
