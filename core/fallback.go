package core

import (
	"fmt"
	"strings"

	"teamlens/schema"
)

// Fallback heuristic constants.
const (
	fallbackBaseScore      = 30
	fallbackScorePerCommit = 2
	fallbackMaxScore       = 90
)

// fallbackAnalysis derives experts purely from local contributor and commit
// data when the model cannot be called. It never touches the network and
// never fails: an empty repository still produces a result with insights
// explaining the absence of data.
func fallbackAnalysis(stats schema.RepositoryStats, contributors []schema.GitContributor, commits []schema.GitCommit) *parsedAnalysis {
	parsed := &parsedAnalysis{}

	messagesByEmail := make(map[string][]string)
	for _, c := range commits {
		messagesByEmail[c.Email] = append(messagesByEmail[c.Email], c.Message)
	}

	for _, c := range contributors {
		parsed.Experts = append(parsed.Experts, schema.Expert{
			Name:               c.Name,
			Email:              c.Email,
			Expertise:          fallbackScore(c.Commits),
			Contributions:      c.Commits,
			Specializations:    fallbackSpecializations(stats, messagesByEmail[c.Email]),
			CommunicationStyle: "Not assessed (local analysis)",
			TeamRole:           fallbackRole(c.Commits, stats.TotalCommits),
			Workload:           "Unknown",
			CollaborationStyle: "Not assessed (local analysis)",
		})
	}

	parsed.Insights = fallbackInsights(stats, contributors)
	return parsed
}

// fallbackScore is the deterministic heuristic: min(90, 30 + commits*2).
func fallbackScore(commits int) int {
	score := fallbackBaseScore + commits*fallbackScorePerCommit
	if score > fallbackMaxScore {
		return fallbackMaxScore
	}
	return score
}

// fallbackRole assigns a coarse role from the contributor's share of commits.
func fallbackRole(commits, total int) string {
	if total == 0 {
		return "Contributor"
	}
	share := float64(commits) / float64(total)
	switch {
	case share >= 0.4:
		return "Core maintainer"
	case share >= 0.1:
		return "Regular contributor"
	default:
		return "Occasional contributor"
	}
}

// fallbackSpecializations guesses specializations from the repository's
// primary languages and the contributor's commit subjects.
func fallbackSpecializations(stats schema.RepositoryStats, messages []string) []string {
	specs := make([]string, 0, 3)
	if len(stats.Languages) > 0 {
		specs = append(specs, stats.Languages[0])
	}
	for _, m := range messages {
		lower := strings.ToLower(m)
		switch {
		case strings.Contains(lower, "test"):
			specs = appendUnique(specs, "Testing")
		case strings.Contains(lower, "doc"):
			specs = appendUnique(specs, "Documentation")
		case strings.Contains(lower, "fix"):
			specs = appendUnique(specs, "Bug fixing")
		}
		if len(specs) >= 3 {
			break
		}
	}
	return specs
}

// appendUnique appends s when absent.
func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// fallbackInsights synthesizes descriptive insights from the data actually
// available. The list is never empty.
func fallbackInsights(stats schema.RepositoryStats, contributors []schema.GitContributor) []string {
	insights := []string{
		"AI analysis was unavailable; expertise scores come from local commit statistics.",
	}
	if len(contributors) == 0 {
		insights = append(insights, "No contributors were found in the commit history.")
		return insights
	}

	top := contributors[0]
	for _, c := range contributors[1:] {
		if c.Commits > top.Commits {
			top = c
		}
	}
	insights = append(insights, fmt.Sprintf("%s is the most active contributor with %d commits.", top.Name, top.Commits))
	insights = append(insights, fmt.Sprintf("Repository size tier is %s with %s recent activity.", stats.SizeTier, stats.ActivityLevel))
	if stats.SizeTier != schema.SmallTier {
		insights = append(insights, "Data was sampled to stay within analysis limits; totals reflect the full repository.")
	}
	if len(stats.Languages) > 0 {
		insights = append(insights, fmt.Sprintf("Primary languages: %s.", strings.Join(stats.Languages, ", ")))
	}
	return insights
}
