package core

import (
	"sort"
	"strings"

	"teamlens/schema"
)

// Filename substrings that mark a path as high or medium sampling priority.
var (
	highPriorityNames   = []string{"readme", "package.json", "main", "index", "app", "server"}
	mediumPriorityNames = []string{"test", "spec", "config", "util"}
)

// SampleFiles reduces an oversized file list to at most limit entries while
// keeping the paths most likely to matter. Files are partitioned into three
// priority buckets by filename substring; the output takes 30% of the limit
// from the high bucket, 30% from the medium bucket and the remainder from the
// low bucket, each capped by bucket size. Input order is preserved within
// each bucket, so sampling is deterministic. A no-op when already within the
// limit.
func SampleFiles(files []string, limit int) []string {
	if len(files) <= limit {
		return files
	}

	var high, medium, low []string
	for _, f := range files {
		switch filePriority(f) {
		case 2:
			high = append(high, f)
		case 1:
			medium = append(medium, f)
		default:
			low = append(low, f)
		}
	}

	highQuota := min(limit*30/100, len(high))
	mediumQuota := min(limit*30/100, len(medium))
	lowQuota := min(limit-highQuota-mediumQuota, len(low))

	sampled := make([]string, 0, limit)
	sampled = append(sampled, high[:highQuota]...)
	sampled = append(sampled, medium[:mediumQuota]...)
	sampled = append(sampled, low[:lowQuota]...)

	// Bucket shortfalls leave spare quota; refill from the largest bucket
	// remainders so the result stays as close to the limit as possible.
	for _, rest := range [][]string{high[highQuota:], medium[mediumQuota:], low[lowQuota:]} {
		for _, f := range rest {
			if len(sampled) >= limit {
				return sampled
			}
			sampled = append(sampled, f)
		}
	}
	return sampled
}

// filePriority scores a path: 2 high, 1 medium, 0 low.
func filePriority(path string) int {
	name := strings.ToLower(path)
	for _, marker := range highPriorityNames {
		if strings.Contains(name, marker) {
			return 2
		}
	}
	for _, marker := range mediumPriorityNames {
		if strings.Contains(name, marker) {
			return 1
		}
	}
	return 0
}

// SampleCommits returns exactly min(limit, len(commits)) commits: the newest
// 70% of the limit, then a fixed-stride walk through the older remainder to
// preserve historical spread. Ties keep their original order.
func SampleCommits(commits []schema.GitCommit, limit int) []schema.GitCommit {
	if len(commits) <= limit {
		return commits
	}

	sorted := make([]schema.GitCommit, len(commits))
	copy(sorted, commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	recentCount := (limit*7 + 9) / 10 // ceil(limit*0.7)
	if recentCount > limit {
		recentCount = limit
	}
	sampled := make([]schema.GitCommit, 0, limit)
	sampled = append(sampled, sorted[:recentCount]...)

	historical := limit - recentCount
	remainder := sorted[recentCount:]
	if historical > 0 && len(remainder) > 0 {
		stride := len(remainder) / historical
		if stride < 1 {
			stride = 1
		}
		for i := 0; i < len(remainder) && len(sampled) < limit; i += stride {
			sampled = append(sampled, remainder[i])
		}
	}
	return sampled
}

// SampleContributors keeps the top limit contributors by commit count.
func SampleContributors(contributors []schema.GitContributor, limit int) []schema.GitContributor {
	if len(contributors) <= limit {
		return contributors
	}
	sorted := make([]schema.GitContributor, len(contributors))
	copy(sorted, contributors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Commits > sorted[j].Commits
	})
	return sorted[:limit]
}
