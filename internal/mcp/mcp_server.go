// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"teamlens/internal/contract"
)

// NewMCPServer initializes and configures the Teamlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, git contract.GitClient, completion contract.CompletionClient, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Teamlens Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:    baseCfg,
		git:        git,
		completion: completion,
		mgr:        mgr,
	}

	// --- 1. Tool: analyze_experts ---
	s.AddTool(mcp.NewTool("analyze_experts",
		mcp.WithDescription("Analyze git history to identify team experts, their expertise scores, roles and specializations."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of experts returned.")),
		mcp.WithBoolean("no_ai", mcp.Description("Skip the AI call and use local commit statistics only.")),
	), h.handleAnalyzeExperts)

	// --- 2. Tool: repository_stats ---
	s.AddTool(mcp.NewTool("repository_stats",
		mcp.WithDescription("Summarize repository scale: file, commit and contributor counts, languages, size tier and activity level."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
	), h.handleRepositoryStats)

	// --- 3. Tool: file_expertise ---
	s.AddTool(mcp.NewTool("file_expertise",
		mcp.WithDescription("Rank the most frequently changed files with their top experts."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of files returned.")),
	), h.handleFileExpertise)

	return s
}

// StartMCPServer starts the Teamlens MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, git contract.GitClient, completion contract.CompletionClient, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, git, completion, mgr)
	return server.ServeStdio(s)
}
