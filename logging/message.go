package logging

import "fmt"

// logMessage is the interface implemented by every kind of diagnostic the
// logger knows how to print.
type logMessage interface {
	isError() bool
	display()
}

// DecodeError reports a malformed NIR file: an out-of-range tag, a truncated
// buffer, or a LEB128 value that overflows its target width.
type DecodeError struct {
	// Path is the file being decoded when the error occurred.
	Path string

	// Offset is the byte offset in Path at which the error occurred.
	Offset int

	// Diagnostic describes what went wrong.
	Diagnostic string
}

func (de *DecodeError) isError() bool { return true }

func (de *DecodeError) display() {
	PrintErrorMessage("Decode Error", fmt.Errorf("%s:%d: %s", de.Path, de.Offset, de.Diagnostic))
}

// ConfigError reports a malformed project or profile configuration.
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool { return true }

func (ce *ConfigError) display() {
	PrintErrorMessage(ce.Kind+" Error", fmt.Errorf("%s", ce.Message))
}

// SkipWarning reports a file that was skipped rather than decoded.
type SkipWarning struct {
	Path   string
	Reason string
}

func (sw *SkipWarning) isError() bool { return false }

func (sw *SkipWarning) display() {
	PrintWarningMessage("Skipped", fmt.Sprintf("%s: %s", sw.Path, sw.Reason))
}
