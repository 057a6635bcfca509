package config

import "time"

// Project is the configuration of a set of NIR files to decode.
type Project struct {
	// Name is the name of the project.
	Name string

	// ProjectRoot is the directory enclosing the project file.
	ProjectRoot string

	// Files is the list of NIR files (or glob patterns, relative to
	// ProjectRoot) to decode.
	Files []string

	// LastRunTime is the `last-run` timestamp of the selected profile, as
	// read from the project file; nirc does not update it.
	LastRunTime *time.Time
}

// Profile describes how a decode run should behave: what to log and what, if
// anything, to emit once decoding succeeds.
type Profile struct {
	// Name identifies the profile within its project.
	Name string

	// LogLevel controls the verbosity of the run; one of the log level names
	// recognized by logging.Initialize.
	LogLevel string

	// EmitTarget is the kind of output the run should produce. One of the
	// enumerated emit targets below.
	EmitTarget int

	// OutputPath is where the LLVM module is written, and is required, when
	// EmitTarget is EmitLLVM. A text dump is printed to standard output and
	// does not use it.
	OutputPath string

	// TargetTriple is the LLVM target triple passed to the code generator
	// when EmitTarget is EmitLLVM.
	TargetTriple string
}

// Enumeration of emit targets.
const (
	EmitNone  = iota // decode only; report diagnostics
	EmitText         // dump the decoded IR as text
	EmitLLVM         // emit LLVM IR via the code generator
)

// IsValidIdentifier reports whether idstr would be a valid project or profile
// name.
func IsValidIdentifier(idstr string) bool {
	if len(idstr) == 0 {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
