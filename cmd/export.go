package cmd

import (
	"github.com/spf13/cobra"

	"teamlens/internal/contract"
	"teamlens/internal/outwriter"
)

// exportCmd writes the analysis to a file in the selected format.
var exportCmd = &cobra.Command{
	Use:   "export [repo-path]",
	Short: "Export the analysis to a file for sharing or BI tools.",
	Long: `Export the full expertise analysis to a file.

Formats:
- json    - complete analysis, lossless
- csv     - expert rows for spreadsheets
- html    - standalone shareable report
- parquet - columnar data for DuckDB, Spark or pandas

Requires: --output-file parameter

Examples:
  # Shareable HTML report
  teamlens export --output html --output-file report.html

  # Columnar export for analytics
  teamlens export --output parquet --output-file experts.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Cannot export analysis", contract.NewValidationError("export requires --output-file"))
		}
		analysis := resolveAnalysis(false)
		if err := outwriter.NewOutWriter().WriteExperts(analysis, cfg); err != nil {
			contract.LogFatal("Cannot export analysis", err)
		}
	},
}
