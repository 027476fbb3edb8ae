package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"foreclosed/internal/models"
)

const (
	propertiesSheet = "Properties"
	summarySheet    = "Summary"
)

// WriteXLSX writes the dataset as a workbook: one sheet with all records,
// one with per-source statistics.
func WriteXLSX(ds *models.ConsolidatedDataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", propertiesSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := writeSheetRow(f, propertiesSheet, 1, toAny(columnNames)); err != nil {
		return err
	}

	for i := range ds.Records {
		if err := writeSheetRow(f, propertiesSheet, i+2, toAny(recordStrings(&ds.Records[i]))); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	header := []any{"source", "raw_count", "unique_count", "duplicate_ratio", "skipped_blobs", "warnings", "failed"}
	if err := writeSheetRow(f, summarySheet, 1, header); err != nil {
		return err
	}

	for i, s := range ds.Sources {
		row := []any{s.Source, s.RawCount, s.UniqueCount, s.DuplicateRatio, s.SkippedBlobs, len(s.Warnings), s.Failed}
		if err := writeSheetRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}

		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}

	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}
