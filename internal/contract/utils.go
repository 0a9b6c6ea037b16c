package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Health label constants.
const (
	StrongValue  = "Strong"
	HealthyValue = "Healthy"
	WatchValue   = "Watch"
	WeakValue    = "Weak"
)

// Anomaly severity label constants.
const (
	SevereValue   = "Severe"
	HighValue     = "High"
	ModerateValue = "Moderate"
)

// Color variables for console output.
var (
	strongColor   = color.New(color.FgGreen, color.Bold)
	healthyColor  = color.New(color.FgCyan)
	watchColor    = color.New(color.FgYellow)
	weakColor     = color.New(color.FgRed, color.Bold)
	severeColor   = color.New(color.FgRed, color.Bold)
	highColor     = color.New(color.FgMagenta, color.Bold)
	moderateColor = color.New(color.FgYellow)
)

// GetPlainHealthLabel returns a plain text label for a health indicator
// score. Display-only: the underlying score is never clamped here.
func GetPlainHealthLabel(score int) string {
	switch {
	case score >= 80:
		return StrongValue
	case score >= 60:
		return HealthyValue
	case score >= 40:
		return WatchValue
	default:
		return WeakValue
	}
}

// GetColorHealthLabel returns a colored health label for table output.
func GetColorHealthLabel(score int) string {
	text := GetPlainHealthLabel(score)
	switch text {
	case StrongValue:
		return strongColor.Sprint(text)
	case HealthyValue:
		return healthyColor.Sprint(text)
	case WatchValue:
		return watchColor.Sprint(text)
	default:
		return weakColor.Sprint(text)
	}
}

// GetPlainAnomalyLabel grades an anomaly by its deviation ratio.
func GetPlainAnomalyLabel(ratio float64) string {
	abs := ratio
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 5:
		return SevereValue
	case abs >= 3:
		return HighValue
	default:
		return ModerateValue
	}
}

// GetColorAnomalyLabel returns a colored severity label for table output.
func GetColorAnomalyLabel(ratio float64) string {
	text := GetPlainAnomalyLabel(ratio)
	switch text {
	case SevereValue:
		return severeColor.Sprint(text)
	case HighValue:
		return highColor.Sprint(text)
	default:
		return moderateColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output based on
// the provided file path. An empty path selects stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateText shortens a cell value for table display, keeping the tail
// visible since identifiers tend to differ at the end.
func TruncateText(s string, maxWidth int) string {
	if maxWidth <= 0 || len(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return s[:maxWidth]
	}
	return "..." + s[len(s)-(maxWidth-3):]
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

// GetCacheDBFilePath returns the path to the SQLite DB file for the ingest
// cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".finsight_cache.db"
	}
	return filepath.Join(homeDir, ".finsight_cache.db")
}
