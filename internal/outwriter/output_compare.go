package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteComparisonResults outputs a two-property comparison, dispatching based on the output format configured.
func WriteComparisonResults(cmp *schema.ScoreComparison, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeCompareJSONResults(cmp, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCompareCSVResults(cmp, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCompareTable(cmp, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeCompareJSONResults handles opening the file and calling the JSON writer.
func writeCompareJSONResults(cmp *schema.ScoreComparison, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, cmp)
	}, "Wrote JSON")
}

// writeCompareCSVResults handles opening the file and calling the CSV writer.
func writeCompareCSVResults(cmp *schema.ScoreComparison, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"category", "delta", "winner"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, cat := range cmp.Categories {
				rec := []string{
					string(cat.Category),
					signedFloat(cat.Delta, fmtFloat),
					cat.Winner,
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return csvWriter.Write([]string{"total", signedFloat(cmp.ScoreDelta, fmtFloat), cmp.Winner})
		})
	}, "Wrote CSV")
}

// writeCompareTable generates and writes the human-readable table.
func writeCompareTable(cmp *schema.ScoreComparison, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Comparing %s vs %s\n\n", cmp.PropertyA, cmp.PropertyB); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Category", "Delta", "Winner"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, cat := range cmp.Categories {
		data = append(data, []string{
			string(cat.Category),
			signedFloat(cat.Delta, fmtFloat),
			cat.Winner,
		})
	}
	data = append(data, []string{"total", signedFloat(cmp.ScoreDelta, fmtFloat), cmp.Winner})

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "%s\n", cmp.Summary); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Comparison completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// signedFloat keeps the explicit plus sign so deltas read as B relative to A.
func signedFloat(v float64, fmtFloat func(float64) string) string {
	if v > 0 {
		return "+" + fmtFloat(v)
	}
	return fmtFloat(v)
}

// writeEdgeCaseJSON is the JSON shape for a standalone edge case screen.
type edgeCaseJSONResult struct {
	PropertyID string `json:"property_id"`
	schema.EdgeCaseResult
}

// WriteEdgeCaseResults outputs a standalone edge case screen without running the full scorer.
func WriteEdgeCaseResults(propertyID string, result *schema.EdgeCaseResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, edgeCaseJSONResult{PropertyID: propertyID, EdgeCaseResult: *result})
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"property_id", "type", "severity", "reason"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, det := range result.Detections {
					rec := []string{propertyID, string(det.Type), string(det.Severity), det.Reason}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEdgeCaseText(propertyID, result, cfg, w)
		}, "Wrote report")
	}
}

// writeEdgeCaseText generates the human-readable edge case report.
func writeEdgeCaseText(propertyID string, result *schema.EdgeCaseResult, cfg *contract.Config, writer io.Writer) error {
	if !result.IsEdgeCase {
		_, err := fmt.Fprintf(writer, "Property %s: no edge cases detected\n", propertyID)
		return err
	}

	sev := contract.GetSeverityLabel(result.CombinedSeverity, cfg.UseColors)
	if _, err := fmt.Fprintf(writer, "Property %s: %d edge case(s), severity %s, handling %s\n",
		propertyID, len(result.Detections), sev, result.Handling); err != nil {
		return err
	}
	for _, det := range result.Detections {
		if _, err := fmt.Fprintf(writer, "  [%s] %s: %s\n", det.Severity, det.Type, det.Reason); err != nil {
			return err
		}
	}
	for _, warning := range result.Warnings {
		if _, err := fmt.Fprintf(writer, "Warning: %s\n", warning); err != nil {
			return err
		}
	}
	for _, rec := range result.Recommendations {
		if _, err := fmt.Fprintf(writer, "Recommendation: %s\n", rec); err != nil {
			return err
		}
	}
	if result.RejectReason != "" {
		if _, err := fmt.Fprintf(writer, "Rejected: %s\n", result.RejectReason); err != nil {
			return err
		}
	}
	return nil
}
