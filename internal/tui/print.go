package tui

import (
	"fmt"
	"io"
	"os"
)

var (
	osStdout io.Writer = os.Stdout
	osStderr io.Writer = os.Stderr

	stdout = osStdout
	stderr = osStderr
)

// SetOutput redirects the Print helpers. Nil leaves a stream unchanged.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// PrintSuccess prints a styled success message with the [cardinal] prefix.
func PrintSuccess(msg string) {
	if IsPlainMode() {
		fmt.Fprintf(stdout, "[cardinal] OK: %s\n", msg)
		return
	}
	fmt.Fprintf(stdout, "%s %s %s\n", Prefix(), StyleSuccess.Render(IconCheck), msg)
}

// PrintError prints a styled error message with the [cardinal] prefix.
func PrintError(msg string) {
	if IsPlainMode() {
		fmt.Fprintf(stderr, "[cardinal] ERROR: %s\n", msg)
		return
	}
	fmt.Fprintf(stderr, "%s %s %s\n", Prefix(), StyleError.Render(IconCross), msg)
}

// PrintWarning prints a styled warning message with the [cardinal] prefix.
func PrintWarning(msg string) {
	if IsPlainMode() {
		fmt.Fprintf(stdout, "[cardinal] WARNING: %s\n", msg)
		return
	}
	fmt.Fprintf(stdout, "%s %s %s\n", Prefix(), StyleWarning.Render(IconWarning), msg)
}

// PrintInfo prints a styled info message with the [cardinal] prefix.
func PrintInfo(msg string) {
	if IsPlainMode() {
		fmt.Fprintf(stdout, "[cardinal] %s\n", msg)
		return
	}
	fmt.Fprintf(stdout, "%s %s %s\n", Prefix(), StyleInfo.Render(IconInfo), msg)
}
