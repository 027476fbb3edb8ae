package sink

import (
	"encoding/csv"
	"fmt"
	"os"

	"foreclosed/internal/models"
)

// WriteCSV writes the dataset as a flat CSV with the unpacked column
// layout.
func WriteCSV(ds *models.ConsolidatedDataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(columnNames); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range ds.Records {
		if err := w.Write(recordStrings(&ds.Records[i])); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return f.Close()
}
