package main

import (
	"os"
	"regexp"

	"golang.org/x/sys/unix"
)

// useColor resolves the color setting.
func useColor(setting string) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty()
}

// isatty reports whether diagnostics go to a terminal. If it is true, we can
// use ANSI color codes.
func isatty() bool {
	_, err := unix.IoctlGetWinsize(int(os.Stderr.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

var rePos = regexp.MustCompile(`(?m)^([^\s:]+:\d+:\d+:)(.*)$`)

// colorize adds ANSI color codes to the message. Positions are dimmed and
// messages are red.
func colorize(message string) string {
	const (
		red   = "\033[31m"
		dim   = "\033[2m"
		reset = "\033[0m"
	)
	return rePos.ReplaceAllString(message, dim+"$1"+reset+red+"$2"+reset)
}
