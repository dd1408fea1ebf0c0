package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"teamlens/core"
	"teamlens/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg    *contract.Config
	git        contract.GitClient
	completion contract.CompletionClient
	mgr        contract.CacheManager
}

// resolveRepo returns a config clone with the repo path override applied and
// validated against the git client.
func (h *toolHandler) resolveRepo(ctx context.Context, request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	p := request.GetString("repo_path", "")
	if p == "" {
		return cfg, nil
	}
	if !h.git.IsRepository(ctx, p) {
		return nil, fmt.Errorf("not a git repository: %s", p)
	}
	root, err := h.git.GetRepoRoot(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("could not resolve repository root: %w", err)
	}
	cfg.RepoPath = root
	return cfg, nil
}

func (h *toolHandler) handleAnalyzeExperts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.resolveRepo(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	if request.GetBool("no_ai", false) {
		cfg.NoAI = true
	}

	analysis := core.NewAnalyzer(cfg, h.git, h.completion, h.mgr).Analyze(ctx)
	if len(analysis.Experts) > cfg.ResultLimit {
		analysis.Experts = analysis.Experts[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(analysis, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRepositoryStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.resolveRepo(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	files, err := h.git.ListFiles(ctx, cfg.RepoPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not list files: %v", err)), nil
	}
	commits, err := h.git.ListCommits(ctx, cfg.RepoPath, contract.DefaultCommitDepth)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not read commit log: %v", err)), nil
	}
	contributors, err := h.git.ListContributors(ctx, cfg.RepoPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not read contributors: %v", err)), nil
	}

	stats := core.BuildRepositoryStats(files, commits, contributors, time.Now())
	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleFileExpertise(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.resolveRepo(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	// Local statistics are enough for file rankings, skip the model call
	cfg.NoAI = true

	analysis := core.NewAnalyzer(cfg, h.git, h.completion, h.mgr).Analyze(ctx)
	jsonData, _ := json.MarshalIndent(analysis.FileExpertise, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
