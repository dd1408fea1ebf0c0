package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"teamlens/internal/contract"
	"teamlens/internal/parquet"
	"teamlens/schema"
)

// WriteExpertResults outputs the expert rankings, dispatching based on the output format configured.
func WriteExpertResults(analysis *schema.ExpertiseAnalysis, cfg *contract.Config) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, analysis)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeExpertCSV(csvWriter, analysis)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.HTMLOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeExpertHTML(w, analysis)
		}, "Wrote HTML"); err != nil {
			return fmt.Errorf("error writing HTML output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return contract.NewValidationError("parquet output requires --output-file")
		}
		if err := parquet.WriteExpertsParquet(analysis, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeExpertTable(analysis, cfg, w)
		}, "Wrote table")
	}
	return nil
}

// writeExpertTable generates and writes the human-readable table.
func writeExpertTable(analysis *schema.ExpertiseAnalysis, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Rank", "Name", "Email", "Score", "Label", "Commits", "Role", "Specializations"})

	// 2. Configure alignment for a compact numeric look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	limit := min(len(analysis.Experts), cfg.ResultLimit)
	var data [][]string
	for i, e := range analysis.Experts[:limit] {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			e.Name,
			e.Email,
			strconv.Itoa(e.Expertise),
			labelFor(e.Expertise, cfg),
			strconv.Itoa(e.Contributions),
			e.TeamRole,
			joinOrDash(e.Specializations),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 5. Summary footer
	if _, err := fmt.Fprintf(writer, "Showing %d of %d experts (commits: %d, contributors: %d, files: %d)\n",
		limit, analysis.TotalExperts, analysis.TotalCommits, analysis.TotalContributors, analysis.TotalFiles); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Strategy: %s. Size tier: %s.\n", analysis.Strategy, analysis.SizeTier); err != nil {
		return err
	}
	for _, insight := range analysis.Insights {
		if _, err := fmt.Fprintf(writer, "  - %s\n", insight); err != nil {
			return err
		}
	}
	return nil
}

// writeExpertCSV writes the expert rankings in CSV format.
func writeExpertCSV(w *csv.Writer, analysis *schema.ExpertiseAnalysis) error {
	header := []string{
		"rank",
		"name",
		"email",
		"expertise",
		"label",
		"contributions",
		"team_role",
		"specializations",
		"strategy",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, e := range analysis.Experts {
		rec := []string{
			strconv.Itoa(i + 1),
			e.Name,
			e.Email,
			strconv.Itoa(e.Expertise),
			contract.GetPlainLabel(e.Expertise),
			strconv.Itoa(e.Contributions),
			e.TeamRole,
			joinOrDash(e.Specializations),
			string(analysis.Strategy),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
