package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/taxdeedflow/deedscore/schema"
)

// Verdict label constants.
const (
	StrongBuyValue = "Strong Buy"
	BuyValue       = "Buy"
	HoldValue      = "Hold"
	WeakValue      = "Weak"
	AvoidValue     = "Avoid"
)

// Color variables for console output.
var (
	StrongBuyColor = color.New(color.FgGreen, color.Bold)
	BuyColor       = color.New(color.FgGreen)
	HoldColor      = color.New(color.FgYellow)
	WeakColor      = color.New(color.FgMagenta)
	AvoidColor     = color.New(color.FgRed, color.Bold)
)

// GetPlainLabel returns a plain text verdict label for a letter grade.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(letter string) string {
	switch letter {
	case "A":
		return StrongBuyValue
	case "B":
		return BuyValue
	case "C":
		return HoldValue
	case "D":
		return WeakValue
	default:
		return AvoidValue
	}
}

// GetColorLabel returns a colored verdict label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(letter string) string {
	text := GetPlainLabel(letter)

	switch text {
	case StrongBuyValue:
		return StrongBuyColor.Sprint(text)
	case BuyValue:
		return BuyColor.Sprint(text)
	case HoldValue:
		return HoldColor.Sprint(text)
	case WeakValue:
		return WeakColor.Sprint(text)
	default: // "Avoid"
		return AvoidColor.Sprint(text)
	}
}

// GetSeverityLabel returns a colored severity label for edge-case output.
func GetSeverityLabel(sev schema.Severity, useColors bool) string {
	text := string(sev)
	if !useColors {
		return text
	}
	switch sev {
	case schema.HighSeverity:
		return AvoidColor.Sprint(text)
	case schema.MediumSeverity:
		return HoldColor.Sprint(text)
	default:
		return BuyColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
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

// GetStoreDBFilePath returns the path to the SQLite DB file for the property store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".deedscore.db"
	}
	return filepath.Join(homeDir, ".deedscore.db")
}

// TruncateText truncates a string to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for both content and the ellipsis.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
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
