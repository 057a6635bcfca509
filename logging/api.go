package logging

// logger is a global reference to a shared Logger.
var logger Logger

// Initialize sets up the global logger with the given log level name.
func Initialize(loglevelname string) {
	var loglevel int
	switch loglevelname {
	case "silent":
		loglevel = LogLevelSilent
	case "error":
		loglevel = LogLevelError
	case "warning":
		loglevel = LogLevelWarning
	default:
		loglevel = LogLevelVerbose
	}

	logger = newLogger(loglevel)
}

// ShouldProceed reports whether decoding should continue: it is false once
// any file has produced a decode or configuration error.
func ShouldProceed() bool {
	return logger.errorCount == 0
}

// ErrorCount returns the number of errors logged so far.
func ErrorCount() int {
	return logger.errorCount
}

// WarningCount returns the number of warnings logged so far.
func WarningCount() int {
	return logger.warningCount
}

// LogDecodeError logs a malformed-file error encountered while decoding path.
func LogDecodeError(path string, offset int, diagnostic string) {
	logger.handleMsg(&DecodeError{Path: path, Offset: offset, Diagnostic: diagnostic})
}

// LogConfigError logs an error related to project or profile configuration.
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogSkipWarning logs a file that was skipped rather than decoded.
func LogSkipWarning(path, reason string) {
	logger.handleMsg(&SkipWarning{Path: path, Reason: reason})
}

// LogFatal reports an invariant violation in nirc itself, as opposed to a
// malformed input file, and terminates the process.
func LogFatal(message string) {
	displayFatalError(message)
	panic(message)
}
