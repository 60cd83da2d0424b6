package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// ANSI color codes, disabled automatically when stdout is not a terminal.
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorBold   = "\033[1m"
)

var useColor = isatty.IsTerminal(os.Stdout.Fd())

func paint(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

func stamp() string {
	return paint(colorGray, time.Now().Format("15:04:05"))
}

func logLine(level, tag, msg string) {
	fmt.Printf("%s %s %s %s\n", stamp(), level, paint(colorBold, fmt.Sprintf("[%s]", tag)), msg)
}

// Info logs an informational message under a component tag.
func Info(tag, msg string) {
	logLine(paint(colorCyan, "INFO"), tag, msg)
}

// Success logs a completed-operation message under a component tag.
func Success(tag, msg string) {
	logLine(paint(colorGreen, " OK "), tag, msg)
}

// Warn logs a warning under a component tag.
func Warn(tag, msg string) {
	logLine(paint(colorYellow, "WARN"), tag, msg)
}

// Error logs an error under a component tag.
func Error(tag, msg string) {
	logLine(paint(colorRed, "FAIL"), tag, msg)
}

// Section prints a visual divider with a title, used before stats blocks.
func Section(title string) {
	fmt.Printf("\n%s\n", paint(colorBold, "── "+title+" ──"))
}

// Stats prints a single aligned name/count line inside a Section.
func Stats(name string, count int) {
	fmt.Printf("   %-18s %d\n", name, count)
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Println(paint(colorCyan, `
  ┌─────────────────────────────┐
  │  gw2-arbitrage  ·  `+fmt.Sprintf("%-8s", version)+` │
  └─────────────────────────────┘`))
}
