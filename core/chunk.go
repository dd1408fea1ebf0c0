package core

import (
	"context"
	"fmt"
	"time"

	"teamlens/internal/contract"
	"teamlens/schema"
)

// Chunked analysis constraints. Groups run sequentially with a fixed delay
// between calls to respect external rate limits.
const (
	chunkContributorSize = 10
	chunkCommitCap       = 20
	chunkFileCap         = 15
	chunkDelay           = time.Second
)

// runChunked splits contributors into fixed-size groups and analyzes each
// group independently with a reduced data slice. A failing group is skipped,
// not fatal; only when every group fails does the orchestrator fall back.
func (a *Analyzer) runChunked(ctx context.Context, stats schema.RepositoryStats, contributors []schema.GitContributor, commits []schema.GitCommit, files []string) (*parsedAnalysis, schema.AnalysisStrategy) {
	if len(commits) > chunkCommitCap {
		commits = commits[:chunkCommitCap]
	}
	if len(files) > chunkFileCap {
		files = files[:chunkFileCap]
	}

	groups := chunkContributors(contributors, chunkContributorSize)
	results := make([]*parsedAnalysis, 0, len(groups))

	for i, group := range groups {
		if i > 0 {
			select {
			case <-time.After(chunkDelay):
			case <-ctx.Done():
				// Cancellation ends the run; already-gathered groups are
				// discarded with it.
				return nil, schema.FallbackStrategy
			}
		}

		prompt := BuildPrompt(stats, group, commits, files)
		reply, err := a.completion.Complete(ctx, contract.CompletionRequest{System: systemPrompt, User: prompt})
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Contributor group %d/%d failed, skipping", i+1, len(groups)), err)
			continue
		}
		parsed, err := parseModelResponse(reply)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Contributor group %d/%d returned no usable JSON, skipping", i+1, len(groups)), err)
			continue
		}
		results = append(results, parsed)
	}

	if len(results) == 0 {
		return nil, schema.FallbackStrategy
	}

	merged := mergeChunkResults(results)
	merged.Insights = append(merged.Insights,
		fmt.Sprintf("Large team: analysis ran in %d contributor groups of up to %d.", len(groups), chunkContributorSize),
		fmt.Sprintf("Merged results from %d of %d groups.", len(results), len(groups)),
	)
	return merged, schema.ChunkedStrategy
}

// chunkContributors splits contributors into groups of at most size.
func chunkContributors(contributors []schema.GitContributor, size int) [][]schema.GitContributor {
	var groups [][]schema.GitContributor
	for start := 0; start < len(contributors); start += size {
		end := min(start+size, len(contributors))
		groups = append(groups, contributors[start:end])
	}
	return groups
}

// mergeChunkResults combines per-group results into one. Experts are
// deduplicated by email: contributions sum, expertise takes the max, and
// specializations union. Insights are deduplicated verbatim. Team dynamics
// and challenge matching keep only the first group's values.
func mergeChunkResults(results []*parsedAnalysis) *parsedAnalysis {
	merged := &parsedAnalysis{}
	expertIdx := make(map[string]int)
	seenInsights := make(map[string]bool)

	for _, r := range results {
		for _, e := range r.Experts {
			key := e.Email
			if key == "" {
				key = e.Name
			}
			if idx, ok := expertIdx[key]; ok {
				merged.Experts[idx] = mergeExpert(merged.Experts[idx], e)
				continue
			}
			expertIdx[key] = len(merged.Experts)
			merged.Experts = append(merged.Experts, e)
		}
		for _, insight := range r.Insights {
			if seenInsights[insight] {
				continue
			}
			seenInsights[insight] = true
			merged.Insights = append(merged.Insights, insight)
		}
		if merged.TeamDynamics == "" {
			merged.TeamDynamics = r.TeamDynamics
		}
		if merged.ChallengeMatching == "" {
			merged.ChallengeMatching = r.ChallengeMatching
		}
		if merged.TeamHealth == nil {
			merged.TeamHealth = r.TeamHealth
		}
	}
	return merged
}

// mergeExpert combines two records for the same email: contributions sum,
// expertise takes the max, specializations union preserving first-seen order.
func mergeExpert(a, b schema.Expert) schema.Expert {
	a.Contributions += b.Contributions
	if b.Expertise > a.Expertise {
		a.Expertise = b.Expertise
	}
	seen := make(map[string]bool, len(a.Specializations))
	for _, s := range a.Specializations {
		seen[s] = true
	}
	for _, s := range b.Specializations {
		if !seen[s] {
			seen[s] = true
			a.Specializations = append(a.Specializations, s)
		}
	}
	if a.CommunicationStyle == "" {
		a.CommunicationStyle = b.CommunicationStyle
	}
	if a.TeamRole == "" {
		a.TeamRole = b.TeamRole
	}
	return a
}
