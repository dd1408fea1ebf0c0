//go:build basic

package integration

import (
	"bytes"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTeamlensVersion checks the version command output.
func TestTeamlensVersion(t *testing.T) {
	out := runTeamlensOutput(t, "version")
	assert.Contains(t, out, "teamlens CLI")
	assert.Contains(t, out, "Runtime:")
}

// TestTeamlensStats runs stats on the project repo itself.
func TestTeamlensStats(t *testing.T) {
	out := runTeamlensOutput(t, "stats")
	assert.Contains(t, out, "Size Tier:")
	assert.Contains(t, out, "Total Commits:")
}

// TestTeamlensAnalyzeNoAI runs a full local analysis without a model call.
func TestTeamlensAnalyzeNoAI(t *testing.T) {
	out := runTeamlensOutput(t, "analyze", "--no-ai", "--limit", "5", "--refresh")
	assert.True(t, strings.Contains(out, "RANK") || strings.Contains(out, "Rank"),
		"expected a ranked expert table, got: %s", out)
}

func runTeamlensOutput(t *testing.T, args ...string) string {
	binaryPath := getTeamlensBinary()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = "../" // Run from project root
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	require.NoError(t, err, "command failed: %s\noutput: %s", cmd.String(), buf.String())
	return buf.String()
}
