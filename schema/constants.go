package schema

// Custom string types for type safety.
type (
	// SizeTier classifies repository scale and drives sampling limits.
	SizeTier string

	// ActivityLevel classifies recent commit activity.
	ActivityLevel string

	// AnalysisStrategy records which path the orchestrator took.
	AnalysisStrategy string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All size tiers supported, smallest first.
const (
	SmallTier      SizeTier = "small"
	MediumTier     SizeTier = "medium"
	LargeTier      SizeTier = "large"
	EnterpriseTier SizeTier = "enterprise"
)

// All activity levels supported.
const (
	LowActivity    ActivityLevel = "low"
	MediumActivity ActivityLevel = "medium"
	HighActivity   ActivityLevel = "high"
)

// All analysis strategies the orchestrator can terminate with.
const (
	StandardStrategy AnalysisStrategy = "standard"
	ChunkedStrategy  AnalysisStrategy = "chunked"
	FallbackStrategy AnalysisStrategy = "fallback"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	HTMLOut    OutputMode = "html"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// SamplingLimits bounds how much raw data a single analysis run may carry
// into the prompt-building stage for a given size tier.
type SamplingLimits struct {
	Files        int
	Commits      int
	Contributors int
}

// tierLimits maps each size tier to its sampling limits. Enterprise limits
// match the upper classification thresholds so the sampler output is exact
// when the originals exceed them.
var tierLimits = map[SizeTier]SamplingLimits{
	SmallTier:      {Files: 200, Commits: 100, Contributors: 20},
	MediumTier:     {Files: 400, Commits: 200, Contributors: 30},
	LargeTier:      {Files: 700, Commits: 300, Contributors: 40},
	EnterpriseTier: {Files: 1000, Commits: 400, Contributors: 50},
}

// LimitsForTier returns the sampling limits for a tier, defaulting to the
// small tier for unknown values.
func LimitsForTier(tier SizeTier) SamplingLimits {
	if limits, ok := tierLimits[tier]; ok {
		return limits
	}
	return tierLimits[SmallTier]
}
