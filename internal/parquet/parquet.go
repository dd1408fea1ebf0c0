// Package parquet provides data structures and functions for exporting
// expertise analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"teamlens/internal/contract"
	"teamlens/schema"
)

// ExpertRecord is a single expert row for Parquet export.
type ExpertRecord struct {
	// Repository is the absolute path of the analyzed repository
	Repository string `parquet:"repository,snappy"`

	// GeneratedAt is when the analysis was produced (TIMESTAMP with nanosecond precision)
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// Name is the contributor's display name
	Name string `parquet:"name,snappy"`

	// Email is the contributor's unique key
	Email string `parquet:"email,snappy"`

	// Expertise is the 0-100 score
	Expertise int32 `parquet:"expertise,snappy"`

	// Contributions is the contributor's commit count
	Contributions int32 `parquet:"contributions,snappy"`

	// Specializations is a comma-joined list of focus areas (nullable)
	Specializations *string `parquet:"specializations,optional,snappy"`

	// TeamRole is the derived role label (nullable)
	TeamRole *string `parquet:"team_role,optional,snappy"`

	// Strategy records which analysis path produced this row
	Strategy string `parquet:"strategy,snappy"`
}

// RunExport is a single completed analysis run for Parquet export.
// This struct maps to the teamlens_runs database table.
type RunExport struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartedAt is when the run began (TIMESTAMP with nanosecond precision)
	StartedAt time.Time `parquet:"started_at,snappy"`

	// EndedAt is when the run completed (TIMESTAMP with nanosecond precision)
	EndedAt time.Time `parquet:"ended_at,snappy"`

	// RepoPath is the analyzed repository path
	RepoPath string `parquet:"repo_path,snappy"`

	// SizeTier is the repository size classification for the run
	SizeTier string `parquet:"size_tier,snappy"`

	// Strategy records which analysis path the run took
	Strategy string `parquet:"strategy,snappy"`

	// TotalExperts is the number of experts the run produced
	TotalExperts int32 `parquet:"total_experts,snappy"`
}

// WriteExpertsParquet writes expert rows derived from an analysis to a Parquet file.
func WriteExpertsParquet(analysis *schema.ExpertiseAnalysis, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is derived from the ExpertRecord struct tags
	writer := parquet.NewGenericWriter[ExpertRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(ConvertExperts(analysis)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteRunsParquet writes run history records to a Parquet file.
func WriteRunsParquet(records []contract.RunRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is derived from the RunExport struct tags
	writer := parquet.NewGenericWriter[RunExport](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(ConvertRunRecords(records)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertExperts flattens an analysis into ExpertRecord rows for Parquet export.
func ConvertExperts(analysis *schema.ExpertiseAnalysis) []ExpertRecord {
	result := make([]ExpertRecord, len(analysis.Experts))
	for i, expert := range analysis.Experts {
		record := ExpertRecord{
			Repository:    analysis.Repository,
			GeneratedAt:   analysis.GeneratedAt,
			Name:          expert.Name,
			Email:         expert.Email,
			Expertise:     int32(expert.Expertise),
			Contributions: int32(expert.Contributions),
			Strategy:      string(analysis.Strategy),
		}
		if len(expert.Specializations) > 0 {
			specs := strings.Join(expert.Specializations, ", ")
			record.Specializations = &specs
		}
		if expert.TeamRole != "" {
			role := expert.TeamRole
			record.TeamRole = &role
		}
		result[i] = record
	}
	return result
}

// ConvertRunRecords converts contract.RunRecord to RunExport for Parquet export.
func ConvertRunRecords(records []contract.RunRecord) []RunExport {
	result := make([]RunExport, len(records))
	for i, record := range records {
		result[i] = RunExport{
			RunID:        record.RunID,
			StartedAt:    record.StartedAt,
			EndedAt:      record.EndedAt,
			RepoPath:     record.RepoPath,
			SizeTier:     record.SizeTier,
			Strategy:     record.Strategy,
			TotalExperts: int32(record.TotalExperts),
		}
	}
	return result
}
