package core

import (
	"fmt"
	"strings"

	"teamlens/schema"
)

// Hard caps applied at prompt-building time regardless of sampler output.
const (
	promptContributorCap = 15
	promptCommitCap      = 10
	promptFileCap        = 15
)

// systemPrompt frames the model as a team-analytics assistant and pins the
// reply to raw JSON.
const systemPrompt = `You are an engineering-team analyst. You receive git repository data ` +
	`and derive team expertise insights. Respond with a single JSON object and nothing else: ` +
	`no prose, no markdown fences.`

// responseShape is appended to every prompt so the model knows the exact
// JSON contract the parser expects.
const responseShape = `Respond with JSON of this exact shape:
{
  "experts": [
    {
      "name": "string",
      "email": "string",
      "expertise": 0,
      "contributions": 0,
      "specializations": ["string"],
      "communicationStyle": "string",
      "teamRole": "string",
      "hiddenStrengths": ["string"],
      "idealChallenges": ["string"],
      "workload": "string",
      "collaborationStyle": "string",
      "riskFactors": ["string"]
    }
  ],
  "insights": ["string"],
  "teamDynamics": "string",
  "challengeMatching": "string",
  "teamHealth": {"busFactor": 0, "knowledgeSpread": 0, "collaborationScore": 0, "summary": "string"}
}`

// BuildPrompt serializes the sampled repository data into a deterministic
// natural-language prompt. Inputs are further capped to 15 contributors,
// 10 commits and 15 files regardless of what the sampler produced.
func BuildPrompt(stats schema.RepositoryStats, contributors []schema.GitContributor, commits []schema.GitCommit, files []string) string {
	if len(contributors) > promptContributorCap {
		contributors = contributors[:promptContributorCap]
	}
	if len(commits) > promptCommitCap {
		commits = commits[:promptCommitCap]
	}
	if len(files) > promptFileCap {
		files = files[:promptFileCap]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this git repository and identify team expertise.\n\n")
	fmt.Fprintf(&b, "Repository: %d files, %d commits, %d contributors. Size tier: %s. Activity: %s.\n",
		stats.TotalFiles, stats.TotalCommits, stats.TotalContributors, stats.SizeTier, stats.ActivityLevel)
	if len(stats.Languages) > 0 {
		fmt.Fprintf(&b, "Primary languages: %s.\n", strings.Join(stats.Languages, ", "))
	}

	b.WriteString("\nContributors (name, email, commits):\n")
	for _, c := range contributors {
		fmt.Fprintf(&b, "- %s <%s>: %d commits\n", c.Name, c.Email, c.Commits)
	}

	b.WriteString("\nRecent commits (author: message):\n")
	for _, c := range commits {
		fmt.Fprintf(&b, "- %s: %s\n", c.Author, c.Message)
	}

	b.WriteString("\nRepresentative files:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "- %s\n", f)
	}

	b.WriteString("\n")
	b.WriteString(responseShape)
	return b.String()
}
