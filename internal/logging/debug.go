package logging

import (
	"fmt"
	"io"
	"os"
)

// DebugEnv enables debug output when set to any non-empty value.
const DebugEnv = "TODO_DEBUG"

var debugOutput io.Writer = os.Stderr

// DebugEnabled returns true if debug mode is enabled via TODO_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(debugOutput, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(debugOutput, args...)
	}
}
