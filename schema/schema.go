// Package schema has configs, models and shared constants for all parts of teamlens.
package schema

import "time"

// RepositoryStats summarizes the raw scale of a repository before any sampling.
// It is computed once per analysis run and is immutable afterwards.
type RepositoryStats struct {
	TotalFiles        int            `json:"totalFiles"`        // Number of tracked files at HEAD
	TotalCommits      int            `json:"totalCommits"`      // Number of commits gathered
	TotalContributors int            `json:"totalContributors"` // Number of unique author emails
	Languages         []string       `json:"languages"`         // Top 5 languages by file extension frequency
	LanguageCounts    map[string]int `json:"-"`                 // Raw extension histogram behind Languages
	RecentActivity    int            `json:"recentActivity"`    // Commits within the last 30 days
	SizeTier          SizeTier       `json:"sizeTier"`          // small, medium, large or enterprise
	ActivityLevel     ActivityLevel  `json:"activityLevel"`     // low, medium or high
}

// GitCommit is a single commit as read from the git log.
type GitCommit struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	Email   string    `json:"email"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
	Files   []string  `json:"files,omitempty"` // Changed paths, may be empty
}

// GitContributor aggregates commits by author email. Email is the unique key.
type GitContributor struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Commits     int       `json:"commits"`
	FirstCommit time.Time `json:"firstCommit,omitzero"`
	LastCommit  time.Time `json:"lastCommit,omitzero"`
	Additions   int       `json:"additions,omitempty"`
	Deletions   int       `json:"deletions,omitempty"`
}

// Expert is a contributor enriched with derived expertise and behavioral
// attributes, produced either by the model response or the local heuristic.
type Expert struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Expertise          int      `json:"expertise"` // 0-100
	Contributions      int      `json:"contributions"`
	Specializations    []string `json:"specializations"`
	CommunicationStyle string   `json:"communicationStyle,omitempty"`
	TeamRole           string   `json:"teamRole,omitempty"`
	HiddenStrengths    []string `json:"hiddenStrengths,omitempty"`
	IdealChallenges    []string `json:"idealChallenges,omitempty"`
	Workload           string   `json:"workload,omitempty"`
	CollaborationStyle string   `json:"collaborationStyle,omitempty"`
	RiskFactors        []string `json:"riskFactors,omitempty"`
}

// FileExpertise pairs a path with its top-ranked experts and how often it changes.
type FileExpertise struct {
	Path            string   `json:"path"`
	TopExperts      []string `json:"topExperts"`
	ChangeFrequency int      `json:"changeFrequency"`
}

// TeamHealth carries aggregate team-level metrics derived from the analysis.
type TeamHealth struct {
	BusFactor          int     `json:"busFactor,omitempty"`
	KnowledgeSpread    float64 `json:"knowledgeSpread,omitempty"`
	CollaborationScore float64 `json:"collaborationScore,omitempty"`
	Summary            string  `json:"summary,omitempty"`
}

// ManagementInsights carries management-facing observations such as
// bus-factor risks and team dynamics.
type ManagementInsights struct {
	TeamDynamics      string   `json:"teamDynamics,omitempty"`
	ChallengeMatching string   `json:"challengeMatching,omitempty"`
	RiskFlags         []string `json:"riskFlags,omitempty"`
}

// ExpertiseAnalysis is the aggregate result of a single analysis run. It is
// the unit persisted to the cache store and rendered by every output surface.
type ExpertiseAnalysis struct {
	Repository         string              `json:"repository"`
	GeneratedAt        time.Time           `json:"generatedAt"`
	TotalCommits       int                 `json:"totalCommits"`
	TotalContributors  int                 `json:"totalContributors"`
	TotalFiles         int                 `json:"totalFiles"` // Pre-sampling count, not the sampled subset
	TotalExperts       int                 `json:"totalExperts"`
	Experts            []Expert            `json:"experts"`
	FileExpertise      []FileExpertise     `json:"fileExpertise"`
	Insights           []string            `json:"insights"`
	ManagementInsights *ManagementInsights `json:"managementInsights,omitempty"`
	TeamHealth         *TeamHealth         `json:"teamHealth,omitempty"`
	Strategy           AnalysisStrategy    `json:"strategy"`
	SizeTier           SizeTier            `json:"sizeTier"`
}

// CacheStatus holds status information for the result cache store.
type CacheStatus struct {
	Backend         string
	Connected       bool
	TotalEntries    int
	LastEntryTime   time.Time
	OldestEntryTime time.Time
	TableSizeBytes  int64
}

// HistoryStatus holds status information for the run history store.
type HistoryStatus struct {
	Backend       string
	Connected     bool
	TotalRuns     int
	LastRunID     int64
	LastRunTime   time.Time
	OldestRunTime time.Time
}
