package contract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamlens/schema"
)

// validInput returns a raw input that passes every validation step.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		RepoPathStr:  "/repo",
		Limit:        25,
		Precision:    1,
		Output:       "text",
		Color:        "yes",
		Temperature:  0.3,
		MaxTokens:    4000,
		CacheBackend: "sqlite",
	}
}

func TestProcessAndValidateHappyPath(t *testing.T) {
	cfg := &Config{}
	git := &FakeGitClient{Repo: true, Root: "/repo"}

	err := ProcessAndValidate(context.Background(), cfg, git, validInput())

	require.NoError(t, err)
	assert.Equal(t, "/repo", cfg.RepoPath)
	assert.Equal(t, 25, cfg.ResultLimit)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
}

func TestProcessAndValidateResolvesRepoRoot(t *testing.T) {
	cfg := &Config{}
	git := &FakeGitClient{Repo: true, Root: "/repo"}
	input := validInput()
	input.RepoPathStr = "/repo/sub/dir"

	err := ProcessAndValidate(context.Background(), cfg, git, input)

	require.NoError(t, err)
	assert.Equal(t, "/repo", cfg.RepoPath, "nested paths resolve to the repository root")
}

func TestProcessAndValidateNotARepository(t *testing.T) {
	cfg := &Config{}
	git := &FakeGitClient{Repo: false}

	err := ProcessAndValidate(context.Background(), cfg, git, validInput())

	require.Error(t, err)
	assert.Equal(t, RepositoryNotFoundError, KindOf(err))
}

func TestProcessAndValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"zero limit", func(in *ConfigRawInput) { in.Limit = 0 }},
		{"limit above max", func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{"unknown output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"negative precision", func(in *ConfigRawInput) { in.Precision = -1 }},
		{"precision too high", func(in *ConfigRawInput) { in.Precision = 7 }},
		{"temperature too high", func(in *ConfigRawInput) { in.Temperature = 2.5 }},
		{"negative temperature", func(in *ConfigRawInput) { in.Temperature = -0.1 }},
		{"unknown cache backend", func(in *ConfigRawInput) { in.CacheBackend = "redis" }},
		{"mysql without connection", func(in *ConfigRawInput) { in.CacheBackend = "mysql" }},
		{"postgres history without connection", func(in *ConfigRawInput) { in.HistoryBackend = "postgresql" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			git := &FakeGitClient{Repo: true, Root: "/repo"}
			input := validInput()
			tt.mutate(input)

			err := ProcessAndValidate(context.Background(), cfg, git, input)

			require.Error(t, err)
			assert.Equal(t, ValidationError, KindOf(err))
		})
	}
}

func TestProcessAndValidateDefaultsMaxTokens(t *testing.T) {
	cfg := &Config{}
	git := &FakeGitClient{Repo: true, Root: "/repo"}
	input := validInput()
	input.MaxTokens = 0

	require.NoError(t, ProcessAndValidate(context.Background(), cfg, git, input))
	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString("", ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "root:pw@tcp(localhost:3306)/teamlens"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost user=postgres"))

	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString("oracle", ""))
}

func TestParseBoolish(t *testing.T) {
	assert.True(t, parseBoolish("yes", false))
	assert.True(t, parseBoolish("TRUE", false))
	assert.True(t, parseBoolish(" 1 ", false))
	assert.False(t, parseBoolish("no", true))
	assert.False(t, parseBoolish("off", true))
	assert.True(t, parseBoolish("whatever", true)) // unknown keeps the default
	assert.False(t, parseBoolish("", false))
}

func TestConfigClone(t *testing.T) {
	original := &Config{RepoPath: "/repo", ResultLimit: 5}
	clone := original.Clone()
	clone.RepoPath = "/other"

	assert.Equal(t, "/repo", original.RepoPath)
	assert.Equal(t, "/other", clone.RepoPath)
}
