package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"teamlens/internal/contract"
	"teamlens/schema"
)

// WriteStatsResults outputs repository statistics, dispatching based on the output format configured.
func WriteStatsResults(stats *schema.RepositoryStats, repoPath string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeStatsCSV(csvWriter, stats, repoPath)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsText(w, stats, repoPath)
		}, "Wrote stats")
	}
	return nil
}

// writeStatsText writes human-readable repository statistics.
func writeStatsText(w io.Writer, stats *schema.RepositoryStats, repoPath string) error {
	lines := []string{
		fmt.Sprintf("Repository: %s", repoPath),
		fmt.Sprintf("Size Tier: %s", stats.SizeTier),
		fmt.Sprintf("Activity Level: %s", stats.ActivityLevel),
		fmt.Sprintf("Total Files: %d", stats.TotalFiles),
		fmt.Sprintf("Total Commits: %d", stats.TotalCommits),
		fmt.Sprintf("Total Contributors: %d", stats.TotalContributors),
		fmt.Sprintf("Commits (last 30 days): %d", stats.RecentActivity),
		fmt.Sprintf("Languages: %s", joinOrDash(stats.Languages)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeStatsCSV writes repository statistics as a single CSV record.
func writeStatsCSV(w *csv.Writer, stats *schema.RepositoryStats, repoPath string) error {
	header := []string{
		"repository",
		"size_tier",
		"activity_level",
		"total_files",
		"total_commits",
		"total_contributors",
		"recent_activity",
		"languages",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	rec := []string{
		repoPath,
		string(stats.SizeTier),
		string(stats.ActivityLevel),
		strconv.Itoa(stats.TotalFiles),
		strconv.Itoa(stats.TotalCommits),
		strconv.Itoa(stats.TotalContributors),
		strconv.Itoa(stats.RecentActivity),
		joinOrDash(stats.Languages),
	}
	return w.Write(rec)
}
