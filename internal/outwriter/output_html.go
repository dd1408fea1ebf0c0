package outwriter

import (
	"html/template"
	"io"
	"strings"

	"teamlens/internal/contract"
	"teamlens/schema"
)

// expertReportTemplate renders a self-contained HTML report for sharing.
var expertReportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"join":  func(items []string) string { return strings.Join(items, ", ") },
	"label": contract.GetPlainLabel,
	"inc":   func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Team Expertise Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; font-size: 0.9rem; }
th { background: #f4f4f4; }
.meta { color: #555; font-size: 0.85rem; }
.insight { margin: 0.2rem 0; }
</style>
</head>
<body>
<h1>Team Expertise Report</h1>
<p class="meta">
Repository: {{.Repository}}<br>
Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}<br>
Strategy: {{.Strategy}} | Size tier: {{.SizeTier}}<br>
Commits: {{.TotalCommits}} | Contributors: {{.TotalContributors}} | Files: {{.TotalFiles}}
</p>

<h2>Experts</h2>
<table>
<tr><th>#</th><th>Name</th><th>Email</th><th>Score</th><th>Label</th><th>Commits</th><th>Role</th><th>Specializations</th></tr>
{{range $i, $e := .Experts}}
<tr>
<td>{{inc $i}}</td>
<td>{{$e.Name}}</td>
<td>{{$e.Email}}</td>
<td>{{$e.Expertise}}</td>
<td>{{label $e.Expertise}}</td>
<td>{{$e.Contributions}}</td>
<td>{{$e.TeamRole}}</td>
<td>{{join $e.Specializations}}</td>
</tr>
{{end}}
</table>

{{if .FileExpertise}}
<h2>File Expertise</h2>
<table>
<tr><th>#</th><th>Path</th><th>Changes</th><th>Top Experts</th></tr>
{{range $i, $f := .FileExpertise}}
<tr>
<td>{{inc $i}}</td>
<td>{{$f.Path}}</td>
<td>{{$f.ChangeFrequency}}</td>
<td>{{join $f.TopExperts}}</td>
</tr>
{{end}}
</table>
{{end}}

{{if .Insights}}
<h2>Insights</h2>
{{range .Insights}}<p class="insight">&bull; {{.}}</p>
{{end}}
{{end}}

{{if .ManagementInsights}}
<h2>Management Insights</h2>
{{if .ManagementInsights.TeamDynamics}}<p class="insight">Team dynamics: {{.ManagementInsights.TeamDynamics}}</p>{{end}}
{{if .ManagementInsights.ChallengeMatching}}<p class="insight">Challenge matching: {{.ManagementInsights.ChallengeMatching}}</p>{{end}}
{{range .ManagementInsights.RiskFlags}}<p class="insight">Risk: {{.}}</p>
{{end}}
{{end}}
</body>
</html>
`))

// writeExpertHTML renders the full analysis as a standalone HTML page.
func writeExpertHTML(w io.Writer, analysis *schema.ExpertiseAnalysis) error {
	return expertReportTemplate.Execute(w, analysis)
}
