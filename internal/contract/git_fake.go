package contract

import (
	"context"
	"errors"

	"teamlens/schema"
)

// FakeGitClient implements GitClient with canned data for tests.
// Zero value behaves like an empty repository.
type FakeGitClient struct {
	Repo         bool
	Root         string
	Commits      []schema.GitCommit
	Contributors []schema.GitContributor
	Files        []string
	Err          error
}

var _ GitClient = &FakeGitClient{} // Compile-time check

// IsRepository implements the GitClient interface.
func (f *FakeGitClient) IsRepository(_ context.Context, _ string) bool {
	return f.Repo
}

// GetRepoRoot implements the GitClient interface.
func (f *FakeGitClient) GetRepoRoot(_ context.Context, contextPath string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	if f.Root != "" {
		return f.Root, nil
	}
	if !f.Repo {
		return "", errors.New("not a git repository")
	}
	return contextPath, nil
}

// ListCommits implements the GitClient interface.
func (f *FakeGitClient) ListCommits(_ context.Context, _ string, limit int) ([]schema.GitCommit, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if limit < len(f.Commits) {
		return f.Commits[:limit], nil
	}
	return f.Commits, nil
}

// ListContributors implements the GitClient interface.
func (f *FakeGitClient) ListContributors(_ context.Context, _ string) ([]schema.GitContributor, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Contributors, nil
}

// ListFiles implements the GitClient interface.
func (f *FakeGitClient) ListFiles(_ context.Context, _ string) ([]string, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Files, nil
}
