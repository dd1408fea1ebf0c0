package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"teamlens/internal/contract"
	"teamlens/schema"
)

// WriteFileExpertiseResults outputs per-file expertise, dispatching based on the output format configured.
func WriteFileExpertiseResults(analysis *schema.ExpertiseAnalysis, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, analysis.FileExpertise)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeFileExpertiseCSV(csvWriter, analysis.FileExpertise)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFileExpertiseTable(analysis, cfg, w)
		}, "Wrote table")
	}
	return nil
}

// writeFileExpertiseTable generates and writes the human-readable table.
func writeFileExpertiseTable(analysis *schema.ExpertiseAnalysis, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Path", "Changes", "Top Experts"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	limit := min(len(analysis.FileExpertise), cfg.ResultLimit)
	var data [][]string
	for i, f := range analysis.FileExpertise[:limit] {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(f.Path, getMaxTablePathWidth(cfg)),
			strconv.Itoa(f.ChangeFrequency),
			joinOrDash(f.TopExperts),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Showing %d of %d tracked paths by change frequency\n", limit, len(analysis.FileExpertise))
	return err
}

// writeFileExpertiseCSV writes per-file expertise in CSV format.
func writeFileExpertiseCSV(w *csv.Writer, files []schema.FileExpertise) error {
	header := []string{"rank", "path", "change_frequency", "top_experts"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, f := range files {
		rec := []string{
			strconv.Itoa(i + 1),
			f.Path,
			strconv.Itoa(f.ChangeFrequency),
			joinOrDash(f.TopExperts),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
