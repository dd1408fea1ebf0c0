package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"teamlens/schema"
)

// Subprocess limits. A hung git invocation is terminated gracefully first,
// then force-killed if it ignores the signal.
const (
	gitTimeout   = 45 * time.Second
	gitKillDelay = 5 * time.Second
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// run executes a git command with a wall-clock timeout and returns its stdout.
// Arguments are always passed as an array, never shell-interpolated.
func (c *LocalGitClient) run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = gitKillDelay

	out, err := cmd.Output()
	if ctx.Err() != nil {
		return nil, NewResourceError(fmt.Sprintf("git %s timed out after %s", args[0], gitTimeout), ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// IsRepository implements the GitClient interface.
func (c *LocalGitClient) IsRepository(ctx context.Context, path string) bool {
	out, err := c.run(ctx, path, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ListCommits implements the GitClient interface. Commits come back newest
// first in the pipe-delimited format hash|author|email|date|subject, each
// followed by the changed file paths of that commit.
func (c *LocalGitClient) ListCommits(ctx context.Context, repoPath string, limit int) ([]schema.GitCommit, error) {
	args := []string{
		"log",
		fmt.Sprintf("-n%d", limit),
		"--pretty=format:%H|%an|%ae|%aI|%s",
		"--name-only",
	}
	out, err := c.run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	return parseCommitLog(string(out)), nil
}

// ListContributors implements the GitClient interface using git shortlog.
func (c *LocalGitClient) ListContributors(ctx context.Context, repoPath string) ([]schema.GitContributor, error) {
	out, err := c.run(ctx, repoPath, "shortlog", "-sne", "HEAD")
	if err != nil {
		return nil, err
	}
	return parseShortlog(string(out)), nil
}

// ListFiles implements the GitClient interface.
func (c *LocalGitClient) ListFiles(ctx context.Context, repoPath string) ([]string, error) {
	out, err := c.run(ctx, repoPath, "ls-files")
	if err != nil {
		return nil, err
	}
	files := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(files) == 1 && files[0] == "" {
		return []string{}, nil
	}
	return files, nil
}

// parseCommitLog parses `git log --pretty=format:%H|%an|%ae|%aI|%s --name-only`
// output. Fields are positional; malformed lines are skipped rather than
// failing the whole read.
func parseCommitLog(out string) []schema.GitCommit {
	var commits []schema.GitCommit
	var current *schema.GitCommit

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 5)
		if len(parts) == 5 && len(parts[0]) == 40 && !strings.Contains(parts[0], " ") {
			if current != nil {
				commits = append(commits, *current)
			}
			date, _ := time.Parse(time.RFC3339, parts[3])
			current = &schema.GitCommit{
				Hash:    parts[0],
				Author:  parts[1],
				Email:   parts[2],
				Date:    date,
				Message: parts[4],
			}
			continue
		}
		if current != nil {
			current.Files = append(current.Files, line)
		}
	}
	if current != nil {
		commits = append(commits, *current)
	}
	return commits
}

// parseShortlog parses `git shortlog -sne` output, one contributor per line
// in the format "  count\tName <email>". Output is sorted descending by
// commit count with entries deduplicated by email.
func parseShortlog(out string) []schema.GitContributor {
	byEmail := make(map[string]*schema.GitContributor)
	var order []string

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		countStr, rest, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil {
			continue
		}
		open := strings.LastIndex(rest, "<")
		end := strings.LastIndex(rest, ">")
		if open < 0 || end < open {
			continue
		}
		name := strings.TrimSpace(rest[:open])
		email := rest[open+1 : end]

		if existing, ok := byEmail[email]; ok {
			existing.Commits += count
			continue
		}
		byEmail[email] = &schema.GitContributor{Name: name, Email: email, Commits: count}
		order = append(order, email)
	}

	contributors := make([]schema.GitContributor, 0, len(order))
	for _, email := range order {
		contributors = append(contributors, *byEmail[email])
	}
	sort.SliceStable(contributors, func(i, j int) bool {
		return contributors[i].Commits > contributors[j].Commits
	})
	return contributors
}
