package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, ExpertValue},
		{80, ExpertValue}, // boundary
		{79, ProficientValue},
		{60, ProficientValue}, // boundary
		{59, ContributorValue},
		{40, ContributorValue}, // boundary
		{39, OccasionalValue},
		{0, OccasionalValue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetPlainLabel(tt.score), "score=%d", tt.score)
	}
}

func TestGetColorLabelContainsPlainText(t *testing.T) {
	for _, score := range []int{90, 70, 50, 10} {
		colored := GetColorLabel(score)
		assert.Contains(t, colored, GetPlainLabel(score))
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path   string
		maxLen int
		want   string
	}{
		{"short.go", 20, "short.go"},
		{"exactly-ten-ch.go", 17, "exactly-ten-ch.go"},
		{"internal/outwriter/output_experts.go", 20, "...output_experts.go"},
		{"abcdef", 3, "def"},              // too narrow for the ellipsis
		{"src/α/βγδ.go", 9, "...βγδ.go"}, // multibyte paths cut on rune boundaries
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := TruncatePath(tt.path, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), tt.maxLen)
		})
	}
}

func TestGetDBFilePaths(t *testing.T) {
	cache := GetCacheDBFilePath()
	history := GetHistoryDBFilePath()

	assert.True(t, strings.HasSuffix(cache, ".teamlens_cache.db"))
	assert.True(t, strings.HasSuffix(history, ".teamlens_history.db"))
	assert.NotEqual(t, cache, history)
}
