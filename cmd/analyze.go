package cmd

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"teamlens/core"
	"teamlens/internal/contract"
	"teamlens/internal/outwriter"
	"teamlens/schema"
)

// resultVersion is bumped whenever the persisted analysis format changes.
const resultVersion = 1

// loadCachedAnalysis returns the persisted last analysis for the current
// repository, or nil when no compatible entry exists.
func loadCachedAnalysis() *schema.ExpertiseAnalysis {
	store := cacheManager.GetResultStore()
	if store == nil {
		return nil
	}
	data, version, _, err := store.Get(cfg.RepoPath)
	if err != nil || version != resultVersion {
		return nil
	}
	var analysis schema.ExpertiseAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil
	}
	return &analysis
}

// persistAnalysis stores the analysis as the last-analysis slot for the
// repository. Persistence failures degrade to a warning.
func persistAnalysis(analysis *schema.ExpertiseAnalysis) {
	store := cacheManager.GetResultStore()
	if store == nil {
		return
	}
	data, err := json.Marshal(analysis)
	if err != nil {
		contract.LogWarn("Could not serialize analysis for caching", err)
		return
	}
	if err := store.Set(cfg.RepoPath, data, resultVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Could not persist analysis result", err)
	}
}

// resolveAnalysis returns the cached analysis unless a refresh is requested,
// running and persisting a fresh one as needed.
func resolveAnalysis(refresh bool) *schema.ExpertiseAnalysis {
	if !refresh {
		if cached := loadCachedAnalysis(); cached != nil {
			return cached
		}
	}
	analyzer := core.NewAnalyzer(cfg, gitClient, buildCompletionClient(), cacheManager)
	analysis := analyzer.Analyze(rootCtx)
	persistAnalysis(analysis)
	return analysis
}

// analyzeCmd runs the full expertise analysis.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-path]",
	Short: "Run the full team expertise analysis.",
	Long: `Analyze the repository's Git history and produce a complete expertise report.

The analysis adapts to repository scale:
- Small repositories are analyzed in a single pass
- Larger repositories are sampled before the model call
- Very large teams are analyzed in contributor groups
- Without a model, scores come from local commit statistics

The result is persisted per repository, so follow-up commands like
'teamlens experts' and 'teamlens files' reuse it instead of re-analyzing.

Examples:
  # Analyze the current repository
  teamlens analyze

  # Analyze another repository and export JSON
  teamlens analyze ~/src/backend --output json --output-file report.json

  # Skip the model call entirely
  teamlens analyze --no-ai

  # Ignore the cached result
  teamlens analyze --refresh`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		analysis := resolveAnalysis(viper.GetBool("refresh"))
		if err := outwriter.NewOutWriter().WriteExperts(analysis, cfg); err != nil {
			contract.LogFatal("Cannot write analysis results", err)
		}
	},
}
