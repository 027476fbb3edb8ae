// Package extract turns collaborator-supplied media (parsed JSON arrays,
// PDF table grids, saved HTML pages) into raw records for the schema mapper.
package extract

import (
	"encoding/json"
	"fmt"
	"os"

	"foreclosed/internal/models"
)

// MalformedSourceError reports a single blob that could not be interpreted
// as key-value data. The blob is skipped; the source keeps processing.
type MalformedSourceError struct {
	SourceID string
	Origin   string
	Reason   string
}

func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("malformed blob from %s (%s): %s", e.SourceID, e.Origin, e.Reason)
}

// ReadRecords converts opaque structured blobs into RawRecords. Each blob
// must be a key-value object; anything else is skipped with a warning.
//
// One level of nesting is flattened automatically: when a top-level value is
// itself an object (e.g. a "details" sub-object), its entries are promoted
// to the top level unless the key already exists there. The nested object is
// kept as well so mapper path expressions can still traverse it.
func ReadRecords(sourceID, origin string, blobs []any) ([]models.RawRecord, []models.Warning) {
	records := make([]models.RawRecord, 0, len(blobs))

	var warnings []models.Warning

	for i, blob := range blobs {
		obj, ok := blob.(map[string]any)
		if !ok {
			err := &MalformedSourceError{
				SourceID: sourceID,
				Origin:   fmt.Sprintf("%s#%d", origin, i),
				Reason:   fmt.Sprintf("expected object, got %T", blob),
			}
			warnings = append(warnings, models.Warning{
				Source: sourceID,
				Kind:   models.WarnMalformedBlob,
				Detail: err.Error(),
			})

			continue
		}

		records = append(records, models.RawRecord{
			Fields:   flattenOneLevel(obj),
			SourceID: sourceID,
			Origin:   fmt.Sprintf("%s#%d", origin, i),
		})
	}

	return records, warnings
}

func flattenOneLevel(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}

	for _, v := range obj {
		nested, ok := v.(map[string]any)
		if !ok {
			continue
		}

		for nk, nv := range nested {
			if _, exists := out[nk]; !exists {
				out[nk] = nv
			}
		}
	}

	return out
}

// LoadJSONBlobs reads a collaborator-produced JSON array from disk. The
// elements stay opaque; ReadRecords decides per blob whether it is usable.
func LoadJSONBlobs(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}

	var blobs []any
	if err := json.Unmarshal(data, &blobs); err != nil {
		return nil, fmt.Errorf("failed to parse source JSON: %w", err)
	}

	return blobs, nil
}

// LoadGrids reads a sequence of extracted PDF table grids from disk.
func LoadGrids(path string) ([]models.TableGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grids file: %w", err)
	}

	var grids []models.TableGrid
	if err := json.Unmarshal(data, &grids); err != nil {
		return nil, fmt.Errorf("failed to parse grids JSON: %w", err)
	}

	return grids, nil
}
