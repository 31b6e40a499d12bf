package logger

import (
	"os"

	"github.com/fatih/color" // Colored console output
)

// Colorized printing functions for the different log levels.
// Each behaves like fmt.Printf with the text colored for its level.

// infoColor backs both Info and InfoTo.
var infoColor = color.New(color.FgGreen)

// Info logs informational messages in green.
var Info = infoColor.PrintfFunc()

// InfoTo is Info for an explicit writer, used when stdout carries data.
var InfoTo = infoColor.FprintfFunc()

// Warn logs warnings in bright magenta.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// errorColor is kept separate so Error can target stderr.
var errorColor = color.New(color.FgRed)

// Error logs error messages in red on stderr, so they stay visible when
// stdout is redirected (for example a dry run piped into a file).
var Error = func(format string, a ...any) {
	_, _ = errorColor.Fprintf(os.Stderr, format, a...)
}

// Success prints the final confirmation line in bold green.
var Success = color.New(color.FgGreen, color.Bold).PrintlnFunc()

// Debug logs debug messages in cyan when enabled, otherwise it is a no-op.
// It starts out disabled so packages can log before Init runs (tests do).
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging.
// When enabled, Debug prints cyan messages; when disabled it silently
// drops them.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
