package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

// Enabled reports whether the style helpers emit escape codes. It is off when
// NO_COLOR is set or stdout is not a terminal, so piped results stay plain.
var Enabled = os.Getenv("NO_COLOR") == "" &&
	(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))

// Style wraps s in code when colors are enabled
func Style(code, s string) string {
	if !Enabled {
		return s
	}
	return code + s + ColorReset
}

func Bold(s string) string {
	return Style(ColorBold, s)
}

func Dim(s string) string {
	return Style(ColorDim, s)
}

func Link(s string) string {
	return Style(ColorCyan, s)
}

func Success(s string) string {
	return Style(ColorGreen, s)
}

func Info(s string) string {
	return Style(ColorDim+ColorYellow, s)
}

func Error(s string) string {
	return Style(ColorRed, s)
}
