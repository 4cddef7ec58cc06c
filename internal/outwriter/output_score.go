package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteScoreResult outputs a single scoring result, dispatching based on the output format configured.
func WriteScoreResult(result *schema.PropertyScoreResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeScoreJSONResult(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeScoreCSVResult(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable report
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreReport(result, cfg, fmtFloat, duration, w)
		}, "Wrote report")
	}
	return nil
}

// writeScoreJSONResult handles opening the file and calling the JSON writer.
func writeScoreJSONResult(result *schema.PropertyScoreResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writeScoreCSVResult handles opening the file and calling the CSV writer.
func writeScoreCSVResult(result *schema.PropertyScoreResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, batchCSVHeader(), func(csvWriter *csv.Writer) error {
			return writeBatchCSVRow(csvWriter, 1, result, fmtFloat)
		})
	}, "Wrote CSV")
}

// writeScoreReport generates the human-readable single-property report.
func writeScoreReport(result *schema.PropertyScoreResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	label := contract.GetPlainLabel(result.Grade.Letter)
	if cfg.UseColors {
		label = contract.GetColorLabel(result.Grade.Letter)
	}

	if _, err := fmt.Fprintf(writer, "Property: %s (%s)\n", result.PropertyID, result.PropertyType); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Score: %s / 125 (%s%%)  Grade: %s  Verdict: %s\n",
		fmtFloat(result.TotalScore), fmtFloat(result.Grade.Percentage), result.Grade.Grade, label); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Confidence: %s (%s)\n\n",
		fmtFloat(result.ConfidenceLevel.Overall), result.ConfidenceLevel.Label); err != nil {
		return err
	}

	if err := writeCategoryTable(result, cfg, fmtFloat, writer); err != nil {
		return err
	}

	if cfg.Detail {
		if err := writeComponentTables(result, fmtFloat, writer); err != nil {
			return err
		}
	}

	if err := writeScoreNotes(result, cfg, writer); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Scored in %v (engine %s)\n", duration, result.ScoringVersion); err != nil {
		return err
	}
	return nil
}

// writeCategoryTable renders the five category scores as a table.
func writeCategoryTable(result *schema.PropertyScoreResult, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Category", "Score", "Max", "Confidence", "Complete"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, cat := range result.Categories() {
		name := cat.Name
		if cat.Placeholder {
			name += " *"
		}
		data = append(data, []string{
			name,
			fmtFloat(cat.Score),
			fmtFloat(cat.MaxScore),
			fmtFloat(cat.Confidence),
			fmtFloat(cat.DataCompleteness) + "%",
		})
	}
	data = append(data, []string{
		"Total",
		fmtFloat(result.TotalScore),
		fmtFloat(schema.MaxTotalScore),
		fmtFloat(result.ConfidenceLevel.Overall),
		"",
	})

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, cat := range result.Categories() {
		if cat.Placeholder {
			if _, err := fmt.Fprintln(writer, "* placeholder category, fixed neutral value"); err != nil {
				return err
			}
			break
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// writeComponentTables renders per-component breakdowns for each category.
func writeComponentTables(result *schema.PropertyScoreResult, fmtFloat func(float64) string, writer io.Writer) error {
	for _, cat := range result.Categories() {
		if len(cat.Components) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(writer, "%s components:\n", cat.Name); err != nil {
			return err
		}

		table := tablewriter.NewWriter(writer)
		table.Header([]string{"Component", "Score", "Normalized", "Confidence", "Source"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, comp := range cat.Components {
			source := comp.DataSource
			if comp.Skipped {
				source = "skipped"
			} else if comp.MissingDataStrategy != "" {
				source = string(comp.MissingDataStrategy)
			}
			data = append(data, []string{
				comp.Name,
				fmtFloat(comp.Score),
				fmtFloat(comp.NormalizedValue),
				fmtFloat(comp.Confidence),
				source,
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(writer); err != nil {
			return err
		}
	}
	return nil
}

// writeScoreNotes prints edge cases, adjustments and warnings beneath the tables.
func writeScoreNotes(result *schema.PropertyScoreResult, cfg *contract.Config, writer io.Writer) error {
	if result.EdgeCases.IsEdgeCase {
		sev := contract.GetSeverityLabel(result.EdgeCases.CombinedSeverity, cfg.UseColors)
		types := make([]string, len(result.EdgeCases.EdgeCaseTypes))
		for i, t := range result.EdgeCases.EdgeCaseTypes {
			types[i] = string(t)
		}
		if _, err := fmt.Fprintf(writer, "Edge cases (%s): %s -> %s\n",
			sev, strings.Join(types, ", "), result.EdgeCases.Handling); err != nil {
			return err
		}
	}

	for _, adj := range result.RegionAdjustments {
		if _, err := fmt.Fprintf(writer, "Adjustment: %+.1f on %s (%s)\n", adj.Factor, adj.AppliedTo, adj.Reason); err != nil {
			return err
		}
	}
	for _, adj := range result.Calibration.AdjustmentsApplied {
		if _, err := fmt.Fprintf(writer, "Calibration: x%.2f (%s)\n", adj.Factor, adj.Reason); err != nil {
			return err
		}
	}

	for _, warning := range result.Warnings {
		if _, err := fmt.Fprintf(writer, "Warning: %s\n", warning); err != nil {
			return err
		}
	}
	for _, rec := range result.ConfidenceLevel.Recommendations {
		if _, err := fmt.Fprintf(writer, "Recommendation: %s\n", rec); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(writer)
	return err
}
