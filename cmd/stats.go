package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"teamlens/core"
	"teamlens/internal/contract"
	"teamlens/internal/outwriter"
)

// statsCmd summarizes repository scale without any model call.
var statsCmd = &cobra.Command{
	Use:   "stats [repo-path]",
	Short: "Summarize repository scale and activity.",
	Long: `Read the repository and report its raw scale:

- File, commit and contributor counts
- Top languages by file extension
- Commits in the last 30 days
- Size tier (small, medium, large, enterprise) and activity level

This never calls the model; it is a fast local read of Git history.

Examples:
  # Summarize the current repository
  teamlens stats

  # Machine-readable output
  teamlens stats --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		files, err := gitClient.ListFiles(rootCtx, cfg.RepoPath)
		if err != nil {
			contract.LogFatal("Cannot list repository files", err)
		}
		commits, err := gitClient.ListCommits(rootCtx, cfg.RepoPath, contract.DefaultCommitDepth)
		if err != nil {
			contract.LogFatal("Cannot read commit log", err)
		}
		contributors, err := gitClient.ListContributors(rootCtx, cfg.RepoPath)
		if err != nil {
			contract.LogFatal("Cannot read contributors", err)
		}

		stats := core.BuildRepositoryStats(files, commits, contributors, time.Now())
		if err := outwriter.NewOutWriter().WriteStats(&stats, cfg.RepoPath, cfg); err != nil {
			contract.LogFatal("Cannot write repository stats", err)
		}
	},
}
