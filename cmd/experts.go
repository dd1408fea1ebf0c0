package cmd

import (
	"github.com/spf13/cobra"

	"teamlens/internal/contract"
	"teamlens/internal/outwriter"
)

// expertsCmd shows the ranked expert list.
var expertsCmd = &cobra.Command{
	Use:   "experts [repo-path]",
	Short: "Show the top contributors ranked by expertise score.",
	Long: `Rank contributors by their derived expertise score (0-100).

Each expert row carries:
- Expertise score and label (Expert, Proficient, Contributor, Occasional)
- Commit count and inferred team role
- Specializations derived from their work

Reuses the last persisted analysis when available; otherwise a fresh
analysis runs first.

Examples:
  # Show the top 10 experts
  teamlens experts --limit 10

  # Export the full ranking to CSV
  teamlens experts --output csv --output-file experts.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		analysis := resolveAnalysis(false)
		if err := outwriter.NewOutWriter().WriteExperts(analysis, cfg); err != nil {
			contract.LogFatal("Cannot write expert results", err)
		}
	},
}
