package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteBatchResults outputs batch scoring results, dispatching based on the output format configured.
func WriteBatchResults(results []schema.PropertyScoreResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeBatchJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeBatchCSVResults(results, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchTable(results, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeBatchJSONResults handles opening the file and calling the JSON writer.
func writeBatchJSONResults(results []schema.PropertyScoreResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForBatch(w, results)
	}, "Wrote JSON")
}

// writeBatchCSVResults handles opening the file and calling the CSV writer.
func writeBatchCSVResults(results []schema.PropertyScoreResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, batchCSVHeader(), func(csvWriter *csv.Writer) error {
			for i := range results {
				if err := writeBatchCSVRow(csvWriter, i+1, &results[i], fmtFloat); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeBatchTable generates and writes the human-readable table.
func writeBatchTable(results []schema.PropertyScoreResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Property", "Score", "Grade", "Verdict", "Confidence"}
	if cfg.Detail {
		headers = append(headers, "Location", "Risk", "Financial", "Market", "Profit")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i := range results {
		r := &results[i]
		label := contract.GetPlainLabel(r.Grade.Letter)
		if cfg.UseColors {
			label = contract.GetColorLabel(r.Grade.Letter)
		}
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncateText(r.PropertyID, getMaxTableIDWidth(cfg)),
			fmtFloat(r.TotalScore),
			r.Grade.Grade,
			label,
			fmtFloat(r.ConfidenceLevel.Overall),
		}
		if cfg.Detail {
			row = append(
				row,
				fmtFloat(r.Location.Score),
				fmtFloat(r.Risk.Score),
				fmtFloat(r.Financial.Score),
				fmtFloat(r.Market.Score),
				fmtFloat(r.Profit.Score),
			)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// Compute summary stats
	rejected := 0
	flagged := 0
	for i := range results {
		if results[i].EdgeCases.Handling == schema.AutoReject || results[i].EdgeCases.Handling == schema.RejectUnbuildable {
			rejected++
		} else if results[i].EdgeCases.IsEdgeCase {
			flagged++
		}
	}
	if _, err := fmt.Fprintf(writer, "Scored %d properties (%d flagged, %d rejected)\n", len(results), flagged, rejected); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Batch completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// batchCSVHeader returns the column names shared by score and batch CSV output.
func batchCSVHeader() []string {
	return []string{
		"rank",
		"property_id",
		"total_score",
		"percentage",
		"grade",
		"verdict",
		"confidence",
		"location",
		"risk",
		"financial",
		"market",
		"profit",
		"property_type",
		"edge_cases",
		"handling",
		"calculated_at",
	}
}

// writeBatchCSVRow writes one result as a CSV record.
func writeBatchCSVRow(w *csv.Writer, rank int, r *schema.PropertyScoreResult, fmtFloat func(float64) string) error {
	types := make([]string, len(r.EdgeCases.EdgeCaseTypes))
	for i, t := range r.EdgeCases.EdgeCaseTypes {
		types[i] = string(t)
	}
	rec := []string{
		strconv.Itoa(rank),
		r.PropertyID,
		fmtFloat(r.TotalScore),
		fmtFloat(r.Grade.Percentage),
		r.Grade.Grade,
		contract.GetPlainLabel(r.Grade.Letter),
		fmtFloat(r.ConfidenceLevel.Overall),
		fmtFloat(r.Location.Score),
		fmtFloat(r.Risk.Score),
		fmtFloat(r.Financial.Score),
		fmtFloat(r.Market.Score),
		fmtFloat(r.Profit.Score),
		string(r.PropertyType),
		strings.Join(types, "|"),
		string(r.EdgeCases.Handling),
		r.CalculatedAt.Format(contract.DateTimeFormat),
	}
	return w.Write(rec)
}

// writeJSONResultsForBatch writes the batch results in JSON format.
func writeJSONResultsForBatch(w io.Writer, results []schema.PropertyScoreResult) error {
	// 1. Prepare the data structure for JSON with rank and verdict added
	type JSONScoreResult struct {
		Rank    int    `json:"rank"`
		Verdict string `json:"verdict"`
		schema.PropertyScoreResult
	}

	output := make([]JSONScoreResult, len(results))
	for i := range results {
		output[i] = JSONScoreResult{
			Rank:                i + 1,
			Verdict:             contract.GetPlainLabel(results[i].Grade.Letter),
			PropertyScoreResult: results[i],
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
