package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teamlens/internal/contract"
	"teamlens/internal/iocache"
	"teamlens/schema"
)

// testNow pins the clock for deterministic analysis output.
func testNow() time.Time {
	return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
}

// stubCompletion replays canned replies and errors in order and records the
// prompts it was called with.
type stubCompletion struct {
	replies []string
	errs    []error
	calls   int
	prompts []string
}

func (s *stubCompletion) Complete(_ context.Context, req contract.CompletionRequest) (string, error) {
	idx := s.calls
	s.calls++
	s.prompts = append(s.prompts, req.User)
	var err error
	if idx < len(s.errs) {
		err = s.errs[idx]
	}
	var reply string
	if idx < len(s.replies) {
		reply = s.replies[idx]
	}
	return reply, err
}

// newTestAnalyzer wires an Analyzer with a no-op history store and a fixed clock.
func newTestAnalyzer(cfg *contract.Config, git contract.GitClient, completion contract.CompletionClient) (*Analyzer, *iocache.MockCacheManager) {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetHistoryStore").Return(nil)
	a := NewAnalyzer(cfg, git, completion, mgr)
	a.now = testNow
	return a, mgr
}

func TestAnalyzeFallbackEndToEnd(t *testing.T) {
	git := &contract.FakeGitClient{
		Repo: true,
		Files: []string{
			"main.go", "core/a.go", "core/b.go", "core/c.go", "core/d.go",
			"web/e.ts", "web/f.ts", "docs/g.md", "docs/h.md", "i.yaml",
		},
		Commits: []schema.GitCommit{
			{Hash: "1", Author: "Alice", Email: "alice@example.com", Date: testNow(), Message: "Fix parser", Files: []string{"core/a.go"}},
			{Hash: "2", Author: "Bob", Email: "bob@example.com", Date: testNow(), Message: "Add docs", Files: []string{"docs/g.md"}},
		},
		Contributors: []schema.GitContributor{
			{Name: "Alice", Email: "alice@example.com", Commits: 50},
			{Name: "Bob", Email: "bob@example.com", Commits: 30},
			{Name: "Carol", Email: "carol@example.com", Commits: 20},
		},
	}
	cfg := &contract.Config{RepoPath: "/repo", ResultLimit: 10, NoAI: true}
	analyzer, mgr := newTestAnalyzer(cfg, git, nil)

	analysis := analyzer.Analyze(context.Background())

	require.NotNil(t, analysis)
	assert.Equal(t, schema.FallbackStrategy, analysis.Strategy)
	assert.Equal(t, schema.SmallTier, analysis.SizeTier)
	assert.Equal(t, 10, analysis.TotalFiles)
	assert.Equal(t, 3, analysis.TotalExperts)
	require.Len(t, analysis.Experts, 3)

	// Heuristic scoring: min(90, 30 + commits*2).
	assert.Equal(t, "Alice", analysis.Experts[0].Name)
	assert.Equal(t, 90, analysis.Experts[0].Expertise)
	assert.Equal(t, 70, analysis.Experts[2].Expertise)

	assert.NotEmpty(t, analysis.Insights)
	assert.NotEmpty(t, analysis.FileExpertise)
	mgr.AssertExpectations(t)
}

func TestAnalyzeEnterpriseSampling(t *testing.T) {
	files := make([]string, 1200)
	for i := range files {
		files[i] = fmt.Sprintf("src/area%02d/pkg%04d.go", i%20, i)
	}
	contributors := make([]schema.GitContributor, 60)
	for i := range contributors {
		contributors[i] = schema.GitContributor{
			Name:    fmt.Sprintf("Dev%02d", i),
			Email:   fmt.Sprintf("dev%02d@example.com", i),
			Commits: 60 - i, // descending so the sampler keeps the first 50
		}
	}
	git := &contract.FakeGitClient{Repo: true, Files: files, Contributors: contributors}
	cfg := &contract.Config{RepoPath: "/big", ResultLimit: 10, NoAI: true}
	analyzer, _ := newTestAnalyzer(cfg, git, nil)

	analysis := analyzer.Analyze(context.Background())

	assert.Equal(t, schema.EnterpriseTier, analysis.SizeTier)
	assert.Equal(t, 1200, analysis.TotalFiles, "totals reflect pre-sampling counts")
	assert.Equal(t, 60, analysis.TotalContributors)
	assert.Equal(t, 50, analysis.TotalExperts, "experts come from the 50 sampled contributors")
}

func TestAnalyzeStandardSuccess(t *testing.T) {
	git := smallFakeRepo()
	reply := `{
		"experts": [{"name": "Alice", "email": "alice@example.com", "expertise": 88, "contributions": 50, "specializations": ["Go"]}],
		"insights": ["Alice carries the core."],
		"teamDynamics": "Tight-knit pair.",
		"challengeMatching": "Pair juniors with Alice."
	}`
	completion := &stubCompletion{replies: []string{reply}}
	cfg := &contract.Config{RepoPath: "/repo", ResultLimit: 10}
	analyzer, _ := newTestAnalyzer(cfg, git, completion)

	analysis := analyzer.Analyze(context.Background())

	assert.Equal(t, schema.StandardStrategy, analysis.Strategy)
	assert.Equal(t, 1, completion.calls)
	require.Len(t, analysis.Experts, 1)
	assert.Equal(t, 88, analysis.Experts[0].Expertise)
	require.NotNil(t, analysis.ManagementInsights)
	assert.Equal(t, "Tight-knit pair.", analysis.ManagementInsights.TeamDynamics)
}

func TestAnalyzePayloadTooLargeSwitchesToChunked(t *testing.T) {
	git := smallFakeRepo()
	reply := `{"experts": [{"name": "Alice", "email": "alice@example.com", "expertise": 75, "contributions": 50}], "insights": ["From the chunk."]}`
	completion := &stubCompletion{
		errs:    []error{fmt.Errorf("endpoint rejected request size: %w", contract.ErrPayloadTooLarge)},
		replies: []string{"", reply},
	}
	cfg := &contract.Config{RepoPath: "/repo", ResultLimit: 10}
	analyzer, _ := newTestAnalyzer(cfg, git, completion)

	analysis := analyzer.Analyze(context.Background())

	assert.Equal(t, schema.ChunkedStrategy, analysis.Strategy)
	assert.Equal(t, 2, completion.calls, "standard attempt plus one chunk group")
	require.Len(t, analysis.Experts, 1)

	// Chunked runs append synthetic insights describing the grouping.
	joined := strings.Join(analysis.Insights, "\n")
	assert.Contains(t, joined, "contributor groups")
	assert.Contains(t, joined, "Merged results from 1 of 1 groups")
}

func TestAnalyzeGarbageReplyFallsBack(t *testing.T) {
	git := smallFakeRepo()
	completion := &stubCompletion{replies: []string{"Sorry, I cannot do that."}}
	cfg := &contract.Config{RepoPath: "/repo", ResultLimit: 10}
	analyzer, _ := newTestAnalyzer(cfg, git, completion)

	analysis := analyzer.Analyze(context.Background())

	assert.Equal(t, schema.FallbackStrategy, analysis.Strategy)
	assert.NotEmpty(t, analysis.Experts, "fallback still derives experts from contributors")
}

func TestAnalyzeNetworkErrorFallsBack(t *testing.T) {
	git := smallFakeRepo()
	completion := &stubCompletion{errs: []error{contract.NewNetworkError(errors.New("connection refused"))}}
	cfg := &contract.Config{RepoPath: "/repo", ResultLimit: 10}
	analyzer, _ := newTestAnalyzer(cfg, git, completion)

	analysis := analyzer.Analyze(context.Background())

	assert.Equal(t, schema.FallbackStrategy, analysis.Strategy)
	assert.Equal(t, 1, completion.calls)
}

func TestAnalyzeGitFailureDegradesToEmptyResult(t *testing.T) {
	git := &contract.FakeGitClient{Repo: true, Err: errors.New("git blew up")}
	cfg := &contract.Config{RepoPath: "/broken", ResultLimit: 10, NoAI: true}
	analyzer, _ := newTestAnalyzer(cfg, git, nil)

	analysis := analyzer.Analyze(context.Background())

	require.NotNil(t, analysis, "analysis never fails outright")
	assert.Equal(t, schema.FallbackStrategy, analysis.Strategy)
	assert.Zero(t, analysis.TotalExperts)
	assert.NotEmpty(t, analysis.Insights, "insights must explain the empty result")
}

func TestAnalyzeChunkedOverLargePayload(t *testing.T) {
	// A payload estimate above the threshold skips the standard attempt entirely.
	longName := strings.Repeat("d", 200)
	files := make([]string, 1500)
	for i := range files {
		files[i] = fmt.Sprintf("%s/%04d.go", longName, i)
	}
	git := &contract.FakeGitClient{
		Repo:  true,
		Files: files,
		Contributors: []schema.GitContributor{
			{Name: "Alice", Email: "alice@example.com", Commits: 9},
		},
	}
	reply := `{"experts": [{"name": "Alice", "email": "alice@example.com", "expertise": 70, "contributions": 9}]}`
	completion := &stubCompletion{replies: []string{reply}}
	cfg := &contract.Config{RepoPath: "/huge", ResultLimit: 10}
	analyzer, _ := newTestAnalyzer(cfg, git, completion)

	analysis := analyzer.Analyze(context.Background())

	assert.Equal(t, schema.ChunkedStrategy, analysis.Strategy)
	assert.Equal(t, 1, completion.calls, "one contributor group, no standard attempt")
}

func TestAnalyzeTracksRunHistory(t *testing.T) {
	git := smallFakeRepo()
	mgr := &iocache.MockCacheManager{}
	history := &iocache.MockHistoryStore{}
	mgr.On("GetHistoryStore").Return(history)
	history.On("BeginRun", testNow(), "/repo", mock.Anything).Return(int64(7), nil)
	history.On("EndRun", int64(7), testNow(), schema.SmallTier, schema.FallbackStrategy, 2).Return(nil)

	cfg := &contract.Config{RepoPath: "/repo", ResultLimit: 10, NoAI: true}
	analyzer := NewAnalyzer(cfg, git, nil, mgr)
	analyzer.now = testNow

	analyzer.Analyze(context.Background())

	mgr.AssertExpectations(t)
	history.AssertExpectations(t)
}

func TestDedupeExperts(t *testing.T) {
	experts := []schema.Expert{
		{Name: "Alice", Email: "alice@example.com", Expertise: 60, Contributions: 10},
		{Name: "Alice A.", Email: "alice@example.com", Expertise: 80, Contributions: 5},
		{Name: "Bob", Email: "bob@example.com", Expertise: 40, Contributions: 3},
	}

	deduped := dedupeExperts(experts)

	require.Len(t, deduped, 2)
	assert.Equal(t, "Alice", deduped[0].Name, "first occurrence wins the identity fields")
	assert.Equal(t, 15, deduped[0].Contributions)
	assert.Equal(t, 80, deduped[0].Expertise)
}

func TestEstimatePayloadSize(t *testing.T) {
	small := estimatePayloadSize(nil, nil, nil)
	assert.Equal(t, estimateOverheadChars, small)

	contributors := []schema.GitContributor{{Name: "Alice", Email: "alice@example.com", Commits: 10}}
	larger := estimatePayloadSize(contributors, nil, []string{"main.go"})
	assert.Greater(t, larger, small)
}

// smallFakeRepo builds a two-contributor repository for orchestration tests.
func smallFakeRepo() *contract.FakeGitClient {
	return &contract.FakeGitClient{
		Repo:  true,
		Files: []string{"main.go", "core/a.go", "docs/b.md"},
		Commits: []schema.GitCommit{
			{Hash: "1", Author: "Alice", Email: "alice@example.com", Date: testNow(), Message: "Refactor parser", Files: []string{"core/a.go"}},
			{Hash: "2", Author: "Bob", Email: "bob@example.com", Date: testNow(), Message: "Write docs", Files: []string{"docs/b.md"}},
		},
		Contributors: []schema.GitContributor{
			{Name: "Alice", Email: "alice@example.com", Commits: 30},
			{Name: "Bob", Email: "bob@example.com", Commits: 12},
		},
	}
}
