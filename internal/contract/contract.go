// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"teamlens/schema"
)

// GitClient defines the necessary operations for reading repository history.
// This allows the analysis pipeline to be tested without a real git executable.
type GitClient interface {
	// IsRepository reports whether path is inside a Git work tree.
	IsRepository(ctx context.Context, path string) bool

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// ListCommits returns up to limit commits, newest first, with changed files.
	ListCommits(ctx context.Context, repoPath string, limit int) ([]schema.GitCommit, error)

	// ListContributors returns contributors aggregated by email, sorted
	// descending by commit count.
	ListContributors(ctx context.Context, repoPath string) ([]schema.GitContributor, error)

	// ListFiles returns all tracked files at HEAD.
	ListFiles(ctx context.Context, repoPath string) ([]string, error)
}

// CompletionRequest is the payload for a single model call.
type CompletionRequest struct {
	System string
	User   string
}

// CompletionClient performs a chat-completions call and returns the raw
// content of the first choice. Implementations must return
// ErrPayloadTooLarge when the endpoint rejects the request with HTTP 413.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CacheManager defines the interface for accessing persistence stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() ResultStore
	GetHistoryStore() HistoryStore
}

// ResultStore persists the single last-analysis slot per repository.
type ResultStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore tracks analysis runs for reporting and export.
type HistoryStore interface {
	// BeginRun creates a new run record and returns its unique ID.
	BeginRun(startTime time.Time, repoPath string, configParams map[string]any) (int64, error)

	// EndRun updates the run record with completion data.
	EndRun(runID int64, endTime time.Time, tier schema.SizeTier, strategy schema.AnalysisStrategy, totalExperts int) error

	// ListRuns returns up to limit completed runs, newest first.
	ListRuns(limit int) ([]RunRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// RunRecord is a single completed analysis run as stored in history.
type RunRecord struct {
	RunID        int64
	StartedAt    time.Time
	EndedAt      time.Time
	RepoPath     string
	SizeTier     string
	Strategy     string
	TotalExperts int
}
