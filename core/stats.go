// Package core implements the expertise analysis pipeline: repository
// assessment, size-adaptive sampling, prompt construction, orchestration
// across standard/chunked/fallback strategies, and response parsing.
package core

import (
	"time"

	"teamlens/internal/contract"
	"teamlens/schema"
)

// Activity classification thresholds over the recent window.
const (
	highActivityCommits   = 50
	mediumActivityCommits = 20
)

// BuildRepositoryStats classifies the repository into a size tier and
// activity level from raw pre-sampling counts. It never fails: callers that
// could not gather data pass empty slices and get a zeroed small/low result.
func BuildRepositoryStats(files []string, commits []schema.GitCommit, contributors []schema.GitContributor, now time.Time) schema.RepositoryStats {
	langs, counts := schema.TopLanguages(files, 5)

	recent := 0
	cutoff := now.Add(-contract.RecentActivityWindow)
	for _, c := range commits {
		if c.Date.After(cutoff) {
			recent++
		}
	}

	return schema.RepositoryStats{
		TotalFiles:        len(files),
		TotalCommits:      len(commits),
		TotalContributors: len(contributors),
		Languages:         langs,
		LanguageCounts:    counts,
		RecentActivity:    recent,
		SizeTier:          classifyTier(len(files), len(contributors)),
		ActivityLevel:     classifyActivity(recent),
	}
}

// classifyTier evaluates thresholds in descending order so growth in either
// dimension can only raise the tier.
func classifyTier(fileCount, contributorCount int) schema.SizeTier {
	switch {
	case fileCount > 1000 || contributorCount > 50:
		return schema.EnterpriseTier
	case fileCount > 500 || contributorCount > 30:
		return schema.LargeTier
	case fileCount > 200 || contributorCount > 20:
		return schema.MediumTier
	default:
		return schema.SmallTier
	}
}

// classifyActivity maps the recent commit count to an activity level.
func classifyActivity(recentCommits int) schema.ActivityLevel {
	switch {
	case recentCommits > highActivityCommits:
		return schema.HighActivity
	case recentCommits > mediumActivityCommits:
		return schema.MediumActivity
	default:
		return schema.LowActivity
	}
}
