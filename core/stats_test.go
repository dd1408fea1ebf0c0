package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"teamlens/schema"
)

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		files        int
		contributors int
		want         schema.SizeTier
	}{
		{0, 0, schema.SmallTier},
		{200, 20, schema.SmallTier}, // thresholds are exclusive
		{201, 0, schema.MediumTier},
		{0, 21, schema.MediumTier},
		{500, 30, schema.MediumTier},
		{501, 0, schema.LargeTier},
		{0, 31, schema.LargeTier},
		{1000, 50, schema.LargeTier},
		{1001, 0, schema.EnterpriseTier},
		{0, 51, schema.EnterpriseTier},
		{1200, 60, schema.EnterpriseTier},
		{100, 60, schema.EnterpriseTier}, // either dimension alone is enough
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("files=%d_contributors=%d", tt.files, tt.contributors), func(t *testing.T) {
			assert.Equal(t, tt.want, classifyTier(tt.files, tt.contributors))
		})
	}
}

func TestClassifyTierMonotonic(t *testing.T) {
	// Growing either dimension can never lower the tier.
	rank := map[schema.SizeTier]int{
		schema.SmallTier:      0,
		schema.MediumTier:     1,
		schema.LargeTier:      2,
		schema.EnterpriseTier: 3,
	}
	for files := 0; files <= 1100; files += 100 {
		prev := classifyTier(files, 0)
		for contributors := 0; contributors <= 60; contributors += 5 {
			cur := classifyTier(files, contributors)
			assert.GreaterOrEqual(t, rank[cur], rank[prev],
				"tier dropped at files=%d contributors=%d", files, contributors)
			prev = cur
		}
	}
}

func TestClassifyActivity(t *testing.T) {
	assert.Equal(t, schema.LowActivity, classifyActivity(0))
	assert.Equal(t, schema.LowActivity, classifyActivity(20))
	assert.Equal(t, schema.MediumActivity, classifyActivity(21))
	assert.Equal(t, schema.MediumActivity, classifyActivity(50))
	assert.Equal(t, schema.HighActivity, classifyActivity(51))
}

func TestBuildRepositoryStats(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	commits := []schema.GitCommit{
		{Hash: "a", Date: now.Add(-24 * time.Hour)},       // recent
		{Hash: "b", Date: now.Add(-29 * 24 * time.Hour)},  // recent, inside 30d window
		{Hash: "c", Date: now.Add(-31 * 24 * time.Hour)},  // too old
		{Hash: "d", Date: now.Add(-365 * 24 * time.Hour)}, // too old
	}
	contributors := []schema.GitContributor{
		{Name: "Alice", Email: "alice@example.com", Commits: 3},
		{Name: "Bob", Email: "bob@example.com", Commits: 1},
	}
	files := []string{"main.go", "core/agg.go", "docs/readme.md"}

	stats := BuildRepositoryStats(files, commits, contributors, now)

	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, 4, stats.TotalCommits)
	assert.Equal(t, 2, stats.TotalContributors)
	assert.Equal(t, 2, stats.RecentActivity)
	assert.Equal(t, schema.SmallTier, stats.SizeTier)
	assert.Equal(t, schema.LowActivity, stats.ActivityLevel)
	assert.Equal(t, []string{"Go", "Markdown"}, stats.Languages)
}

func TestBuildRepositoryStatsEmpty(t *testing.T) {
	stats := BuildRepositoryStats(nil, nil, nil, time.Now())

	assert.Zero(t, stats.TotalFiles)
	assert.Zero(t, stats.TotalCommits)
	assert.Zero(t, stats.TotalContributors)
	assert.Equal(t, schema.SmallTier, stats.SizeTier)
	assert.Equal(t, schema.LowActivity, stats.ActivityLevel)
}
