package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamlens/internal/contract"
	"teamlens/internal/iocache"
	mcp_internal "teamlens/internal/mcp"
	"teamlens/schema"
)

func newTestServer() *server.MCPServer {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetHistoryStore").Return(nil)

	git := &contract.FakeGitClient{
		Repo: true,
		Root: "/repo",
		Commits: []schema.GitCommit{
			{Hash: "a1", Author: "Alice", Email: "alice@example.com", Date: time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC), Message: "add parser", Files: []string{"parse.go"}},
			{Hash: "b2", Author: "Alice", Email: "alice@example.com", Date: time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC), Message: "fix parser", Files: []string{"parse.go"}},
		},
		Contributors: []schema.GitContributor{
			{Name: "Alice", Email: "alice@example.com", Commits: 2},
		},
		Files: []string{"parse.go", "main.go", "README.md"},
	}

	baseCfg := &contract.Config{RepoPath: "/repo", ResultLimit: 10, NoAI: true}
	return mcp_internal.NewMCPServer(baseCfg, git, nil, mgr)
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServerAnalyzeExperts(t *testing.T) {
	s := newTestServer()

	res := callTool(t, s, "analyze_experts", map[string]any{"no_ai": true})
	require.False(t, res.IsError)

	var analysis schema.ExpertiseAnalysis
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &analysis))
	assert.Equal(t, "/repo", analysis.Repository)
	require.Len(t, analysis.Experts, 1)
	assert.Equal(t, "Alice", analysis.Experts[0].Name)
	assert.Equal(t, schema.FallbackStrategy, analysis.Strategy)
}

func TestMCPServerRepositoryStats(t *testing.T) {
	s := newTestServer()

	res := callTool(t, s, "repository_stats", nil)
	require.False(t, res.IsError)

	var stats schema.RepositoryStats
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &stats))
	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, 2, stats.TotalCommits)
	assert.Equal(t, schema.SmallTier, stats.SizeTier)
}

func TestMCPServerFileExpertise(t *testing.T) {
	s := newTestServer()

	res := callTool(t, s, "file_expertise", map[string]any{"limit": 5.0})
	require.False(t, res.IsError)

	var files []schema.FileExpertise
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &files))
	require.NotEmpty(t, files)
	assert.Equal(t, "parse.go", files[0].Path)
	assert.Equal(t, 2, files[0].ChangeFrequency)
}

func TestMCPServerRejectsNonRepository(t *testing.T) {
	mgr := &iocache.MockCacheManager{}
	git := &contract.FakeGitClient{Repo: false}
	baseCfg := &contract.Config{RepoPath: "/repo", ResultLimit: 10, NoAI: true}
	s := mcp_internal.NewMCPServer(baseCfg, git, nil, mgr)

	res := callTool(t, s, "repository_stats", map[string]any{"repo_path": "/nowhere"})
	assert.True(t, res.IsError, "The response should indicate an error state")
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "not a git repository")
}
