package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"teamlens/internal/contract"
	"teamlens/schema"
)

// WriteHistoryResults outputs completed runs, dispatching based on the output format configured.
func WriteHistoryResults(runs []contract.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeHistoryCSV(csvWriter, runs)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(runs, cfg, w)
		}, "Wrote table")
	}
	return nil
}

// writeHistoryTable generates and writes the human-readable run table.
func writeHistoryTable(runs []contract.RunRecord, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Run", "Started", "Duration", "Repository", "Tier", "Strategy", "Experts"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range runs {
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.EndedAt.Sub(r.StartedAt).Round(time.Millisecond).String(),
			contract.TruncatePath(r.RepoPath, getMaxTablePathWidth(cfg)),
			r.SizeTier,
			r.Strategy,
			strconv.Itoa(r.TotalExperts),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Showing %d completed runs\n", len(runs))
	return err
}

// writeHistoryCSV writes completed runs in CSV format.
func writeHistoryCSV(w *csv.Writer, runs []contract.RunRecord) error {
	header := []string{"run_id", "started_at", "ended_at", "repo_path", "size_tier", "strategy", "total_experts"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range runs {
		rec := []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartedAt.Format(contract.DateTimeFormat),
			r.EndedAt.Format(contract.DateTimeFormat),
			r.RepoPath,
			r.SizeTier,
			r.Strategy,
			strconv.Itoa(r.TotalExperts),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
