// Package outwriter has output and writer logic.
package outwriter

import (
	"teamlens/internal/contract"
	"teamlens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteExperts prints expert results using the configured output format.
func (ow *OutWriter) WriteExperts(analysis *schema.ExpertiseAnalysis, cfg *contract.Config) error {
	return WriteExpertResults(analysis, cfg)
}

// WriteFileExpertise prints per-file expertise using the configured output format.
func (ow *OutWriter) WriteFileExpertise(analysis *schema.ExpertiseAnalysis, cfg *contract.Config) error {
	return WriteFileExpertiseResults(analysis, cfg)
}

// WriteStats prints repository statistics using the configured output format.
func (ow *OutWriter) WriteStats(stats *schema.RepositoryStats, repoPath string, cfg *contract.Config) error {
	return WriteStatsResults(stats, repoPath, cfg)
}

// WriteHistory prints completed analysis runs using the configured output format.
func (ow *OutWriter) WriteHistory(runs []contract.RunRecord, cfg *contract.Config) error {
	return WriteHistoryResults(runs, cfg)
}
