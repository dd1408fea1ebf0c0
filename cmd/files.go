package cmd

import (
	"github.com/spf13/cobra"

	"teamlens/internal/contract"
	"teamlens/internal/outwriter"
)

// filesCmd shows per-file expertise rankings.
var filesCmd = &cobra.Command{
	Use:   "files [repo-path]",
	Short: "Show the most changed files with their top experts.",
	Long: `Rank files by change frequency and list the contributors who know them best.

Use this to:
- Find the right reviewer for a change
- Spot files owned by a single person (bus-factor risk)
- See where the team's activity concentrates

Reuses the last persisted analysis when available; otherwise a fresh
analysis runs first.

Examples:
  # Show the 20 most changed files
  teamlens files --limit 20

  # Export file ownership to CSV
  teamlens files --output csv --output-file ownership.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		analysis := resolveAnalysis(false)
		if err := outwriter.NewOutWriter().WriteFileExpertise(analysis, cfg); err != nil {
			contract.LogFatal("Cannot write file expertise results", err)
		}
	},
}
