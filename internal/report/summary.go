// Package report renders the human-readable summary of a consolidation
// run: per-source counts, duplicate-collapse ratios, null rates, and every
// recorded warning, so silent data loss stays observable.
package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"foreclosed/internal/models"
	"foreclosed/pkg/utils"
)

// maxDetailLength keeps a single runaway warning from flooding the report.
const maxDetailLength = 200

// Render produces the full summary report for a dataset.
func Render(ds *models.ConsolidatedDataset) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Consolidation Summary - %s\n\n", ds.Run.String())

	rows := make([][]string, 0, len(ds.Sources))

	for _, s := range ds.Sources {
		status := "ok"
		if s.Failed {
			status = "failed: " + s.Error
		}

		rows = append(rows, []string{
			s.Source,
			fmt.Sprintf("%d", s.RawCount),
			fmt.Sprintf("%d", s.UniqueCount),
			fmt.Sprintf("%.1f%%", s.DuplicateRatio*100),
			fmt.Sprintf("%d", s.SkippedBlobs),
			fmt.Sprintf("%d", len(s.Warnings)),
			status,
		})
	}

	sb.WriteString(renderTable(
		[]string{"Source", "Raw", "Unique", "Dup", "Skipped", "Warnings", "Status"},
		rows,
	))

	fmt.Fprintf(&sb, "\nTotal records: %d\n", ds.Total)

	if ds.PriceRange != nil {
		fmt.Fprintf(&sb, "Price range: %s %.2f - %.2f\n",
			ds.PriceRange.Currency, ds.PriceRange.Min, ds.PriceRange.Max)
	}

	sb.WriteString("\nNull counts per field:\n")

	nullRows := make([][]string, 0, len(models.CanonicalFields))

	for _, field := range models.CanonicalFields {
		count := ds.NullCounts[field]
		rate := 0.0

		if ds.Total > 0 {
			rate = float64(count) / float64(ds.Total) * 100
		}

		nullRows = append(nullRows, []string{
			field,
			fmt.Sprintf("%d/%d", count, ds.Total),
			fmt.Sprintf("%.1f%%", rate),
		})
	}

	sb.WriteString(renderTable([]string{"Field", "Null", "Rate"}, nullRows))

	warnings := ds.AllWarnings()
	if len(warnings) > 0 {
		fmt.Fprintf(&sb, "\nWarnings (%d):\n", len(warnings))

		for _, w := range warnings {
			detail := utils.Truncate(w.Detail, maxDetailLength)

			if w.Field != "" {
				fmt.Fprintf(&sb, "  [%s] %s %s: %s\n", w.Source, w.Kind, w.Field, detail)
			} else {
				fmt.Fprintf(&sb, "  [%s] %s: %s\n", w.Source, w.Kind, detail)
			}
		}
	}

	return sb.String()
}

// renderTable lays out rows as a pipe-delimited text table, padding cells
// by display width so wide runes stay aligned.
func renderTable(header []string, rows [][]string) string {
	table := make([][]string, 0, len(rows)+1)
	table = append(table, header)
	table = append(table, rows...)

	colCount := len(header)
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for _, row := range table {
		for i := 0; i < len(row) && i < colCount; i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	var sb strings.Builder

	for rowIdx, row := range table {
		sb.WriteString("|")

		for i := 0; i < colCount; i++ {
			content := ""
			if i < len(row) {
				content = row[i]
			}

			sb.WriteString(" ")
			sb.WriteString(content)

			padding := colWidths[i] - runewidth.StringWidth(content)
			if padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		sb.WriteString("\n")

		if rowIdx == 0 {
			sb.WriteString("|")

			for i := 0; i < colCount; i++ {
				sb.WriteString(" ")
				sb.WriteString(strings.Repeat("-", colWidths[i]))
				sb.WriteString(" |")
			}

			sb.WriteString("\n")
		}
	}

	return sb.String()
}
