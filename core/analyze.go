package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teamlens/internal/contract"
	"teamlens/schema"
)

// Payload estimation constants. When the serialized repository data exceeds
// the threshold, a single model call would blow the context window, so the
// orchestrator goes straight to the chunked strategy.
const (
	estimateOverheadChars = 2000
	chunkedThresholdChars = 100_000
)

// Analyzer owns the full analysis pipeline. All collaborators are injected
// at construction time so tests can swap in fakes; there is no package-level
// state behind it.
type Analyzer struct {
	cfg        *contract.Config
	git        contract.GitClient
	completion contract.CompletionClient
	mgr        contract.CacheManager

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewAnalyzer wires an Analyzer. completion may be nil, which forces the
// local fallback path (no token configured, or --no-ai).
func NewAnalyzer(cfg *contract.Config, git contract.GitClient, completion contract.CompletionClient, mgr contract.CacheManager) *Analyzer {
	return &Analyzer{
		cfg:        cfg,
		git:        git,
		completion: completion,
		mgr:        mgr,
		now:        time.Now,
	}
}

// gatheredData carries everything read from the repository before sampling.
type gatheredData struct {
	Files        []string
	Commits      []schema.GitCommit
	Contributors []schema.GitContributor
	Stats        schema.RepositoryStats
}

// Analyze runs the full pipeline and always terminates with a complete
// ExpertiseAnalysis. No code path propagates an exception to the caller:
// every failure degrades to a simpler strategy and ultimately to the local
// fallback heuristic.
func (a *Analyzer) Analyze(ctx context.Context) *schema.ExpertiseAnalysis {
	var runID int64
	if store := a.mgr.GetHistoryStore(); store != nil {
		var err error
		runID, err = store.BeginRun(a.now(), a.cfg.RepoPath, map[string]any{
			"model":        a.cfg.Model,
			"result_limit": a.cfg.ResultLimit,
			"no_ai":        a.cfg.NoAI,
		})
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		}
	}

	data := a.gather(ctx)
	analysis := a.analyzeGathered(ctx, data)

	if store := a.mgr.GetHistoryStore(); store != nil && runID > 0 {
		if err := store.EndRun(runID, a.now(), analysis.SizeTier, analysis.Strategy, analysis.TotalExperts); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}
	return analysis
}

// gather reads raw repository data. Any failure yields empty slices and a
// zeroed small/low stats object rather than an error.
func (a *Analyzer) gather(ctx context.Context) gatheredData {
	var data gatheredData

	files, err := a.git.ListFiles(ctx, a.cfg.RepoPath)
	if err != nil {
		contract.LogWarn("Could not list repository files", err)
	} else {
		data.Files = files
	}

	commits, err := a.git.ListCommits(ctx, a.cfg.RepoPath, contract.DefaultCommitDepth)
	if err != nil {
		contract.LogWarn("Could not read commit log", err)
	} else {
		data.Commits = commits
	}

	contributors, err := a.git.ListContributors(ctx, a.cfg.RepoPath)
	if err != nil {
		contract.LogWarn("Could not read contributors", err)
	} else {
		data.Contributors = contributors
	}

	data.Stats = BuildRepositoryStats(data.Files, data.Commits, data.Contributors, a.now())
	return data
}

// analyzeGathered runs the sampling, strategy selection and enrichment steps
// for already-gathered data.
func (a *Analyzer) analyzeGathered(ctx context.Context, data gatheredData) *schema.ExpertiseAnalysis {
	limits := schema.LimitsForTier(data.Stats.SizeTier)
	sampledFiles := SampleFiles(data.Files, limits.Files)
	sampledCommits := SampleCommits(data.Commits, limits.Commits)
	sampledContributors := SampleContributors(data.Contributors, limits.Contributors)

	var (
		parsed   *parsedAnalysis
		strategy schema.AnalysisStrategy
	)

	switch {
	case a.completion == nil || a.cfg.NoAI:
		strategy = schema.FallbackStrategy

	case estimatePayloadSize(sampledContributors, sampledCommits, sampledFiles) > chunkedThresholdChars:
		parsed, strategy = a.runChunked(ctx, data.Stats, sampledContributors, sampledCommits, sampledFiles)

	default:
		parsed, strategy = a.runStandard(ctx, data.Stats, sampledContributors, sampledCommits, sampledFiles)
	}

	if strategy == schema.FallbackStrategy || parsed == nil {
		parsed = fallbackAnalysis(data.Stats, sampledContributors, sampledCommits)
		strategy = schema.FallbackStrategy
	}

	return a.finalize(data, parsed, strategy)
}

// runStandard performs a single model call with the full optimized prompt.
// HTTP 413 transitions to the chunked strategy; any other failure, including
// an unparseable reply, transitions to fallback.
func (a *Analyzer) runStandard(ctx context.Context, stats schema.RepositoryStats, contributors []schema.GitContributor, commits []schema.GitCommit, files []string) (*parsedAnalysis, schema.AnalysisStrategy) {
	prompt := BuildPrompt(stats, contributors, commits, files)
	reply, err := a.completion.Complete(ctx, contract.CompletionRequest{System: systemPrompt, User: prompt})
	if err != nil {
		if errors.Is(err, contract.ErrPayloadTooLarge) {
			return a.runChunked(ctx, stats, contributors, commits, files)
		}
		contract.LogWarn("Model call failed, using local fallback", err)
		return nil, schema.FallbackStrategy
	}

	parsed, err := parseModelResponse(reply)
	if err != nil {
		contract.LogWarn("Model reply had no usable JSON, using local fallback", err)
		return nil, schema.FallbackStrategy
	}
	return parsed, schema.StandardStrategy
}

// finalize derives file expertise, enforces the result invariants and stamps
// the analysis metadata. Totals always reflect the original pre-sampling
// counts; sampling is a strategy detail, not a reported fact.
func (a *Analyzer) finalize(data gatheredData, parsed *parsedAnalysis, strategy schema.AnalysisStrategy) *schema.ExpertiseAnalysis {
	experts := dedupeExperts(parsed.Experts)

	analysis := &schema.ExpertiseAnalysis{
		Repository:        a.cfg.RepoPath,
		GeneratedAt:       a.now(),
		TotalCommits:      data.Stats.TotalCommits,
		TotalContributors: data.Stats.TotalContributors,
		TotalFiles:        data.Stats.TotalFiles,
		TotalExperts:      len(experts),
		Experts:           experts,
		FileExpertise:     buildFileExpertise(data.Commits, experts, a.cfg.ResultLimit),
		Insights:          parsed.Insights,
		Strategy:          strategy,
		SizeTier:          data.Stats.SizeTier,
	}
	if parsed.TeamDynamics != "" || parsed.ChallengeMatching != "" {
		analysis.ManagementInsights = &schema.ManagementInsights{
			TeamDynamics:      parsed.TeamDynamics,
			ChallengeMatching: parsed.ChallengeMatching,
		}
	}
	analysis.TeamHealth = parsed.TeamHealth
	return analysis
}

// dedupeExperts enforces email uniqueness within a single analysis, merging
// duplicates the same way the chunk merge does.
func dedupeExperts(experts []schema.Expert) []schema.Expert {
	byEmail := make(map[string]int)
	out := make([]schema.Expert, 0, len(experts))
	for _, e := range experts {
		key := e.Email
		if key == "" {
			key = e.Name
		}
		if idx, ok := byEmail[key]; ok {
			out[idx] = mergeExpert(out[idx], e)
			continue
		}
		byEmail[key] = len(out)
		out = append(out, e)
	}
	return out
}

// estimatePayloadSize sums the serialized character lengths of the sampled
// data plus a fixed overhead for the prompt scaffolding.
func estimatePayloadSize(contributors []schema.GitContributor, commits []schema.GitCommit, files []string) int {
	size := estimateOverheadChars
	for _, c := range contributors {
		size += len(c.Name) + len(c.Email) + len(fmt.Sprint(c.Commits)) + 16
	}
	for _, c := range commits {
		size += len(c.Author) + len(c.Message) + 8
	}
	for _, f := range files {
		size += len(f) + 4
	}
	return size
}
