package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Expertise label constants.
const (
	ExpertValue      = "Expert"
	ProficientValue  = "Proficient"
	ContributorValue = "Contributor"
	OccasionalValue  = "Occasional"
)

// Color variables for console output.
var (
	ExpertColor      = color.New(color.FgGreen, color.Bold) // top-of-field signal
	ProficientColor  = color.New(color.FgCyan, color.Bold)
	ContributorColor = color.New(color.FgYellow)
	OccasionalColor  = color.New(color.FgWhite)
)

// GetPlainLabel returns a plain text label for an expertise score.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score int) string {
	switch {
	case score >= 80:
		return ExpertValue
	case score >= 60:
		return ProficientValue
	case score >= 40:
		return ContributorValue
	default:
		return OccasionalValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(score int) string {
	text := GetPlainLabel(score)
	switch text {
	case ExpertValue:
		return ExpertColor.Sprint(text)
	case ProficientValue:
		return ProficientColor.Sprint(text)
	case ContributorValue:
		return ContributorColor.Sprint(text)
	default:
		return OccasionalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output.
// An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncatePath shortens a path to maxLen runes, keeping the tail visible.
func TruncatePath(path string, maxLen int) string {
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return string(runes[len(runes)-maxLen:])
	}
	return "..." + string(runes[len(runes)-(maxLen-3):])
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

// GetCacheDBFilePath returns the path to the SQLite DB file for the result cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".teamlens_cache.db"
	}
	return filepath.Join(homeDir, ".teamlens_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".teamlens_history.db"
	}
	return filepath.Join(homeDir, ".teamlens_history.db")
}
