package config

import (
	"fmt"
	"io"
	"os"
)

// Exit and Stderr back Exitf and Fatal. They are exposed for tests.
var (
	Exit             = os.Exit
	Stderr io.Writer = os.Stderr
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	fmt.Fprintf(Stderr, format+"\n", args...)
	Exit(1)
}

// Fatal reports err as "Error: <err>" and exits with code 1. A nil error is
// ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	Exitf("Error: %v", err)
}
