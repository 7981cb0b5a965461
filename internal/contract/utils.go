package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/tpmplot/schema"
)

// Color variables for console output.
var (
	EndColor        = color.New(color.FgGreen)               // series kept every sample
	ZeroStreakColor = color.New(color.FgYellow)              // trailing idle samples were cut
	TimeCapColor    = color.New(color.FgMagenta, color.Bold) // series hit the elapsed-minutes ceiling
)

// GetPlainStopLabel returns the stop reason as plain text. This is the label used for
// CSV, JSON, and table printing without colors.
func GetPlainStopLabel(reason schema.StopReason) string {
	if reason == "" {
		return string(schema.StopEnd)
	}
	return string(reason)
}

// GetColorStopLabel returns a colored stop reason for console output (table).
func GetColorStopLabel(reason schema.StopReason) string {
	text := GetPlainStopLabel(reason)

	switch schema.StopReason(text) {
	case schema.StopZeroStreak:
		return ZeroStreakColor.Sprint(text)
	case schema.StopTimeCap:
		return TimeCapColor.Sprint(text)
	default:
		return EndColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogInfo prints a status line to stderr, prefixed with an emoji when enabled.
func LogInfo(useEmojis bool, emoji, msg string) {
	if useEmojis {
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", emoji, msg)
		return
	}
	_, _ = fmt.Fprintln(os.Stderr, msg)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tpmplot_history.db"
	}
	return filepath.Join(homeDir, ".tpmplot_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for the "..." prefix and one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
