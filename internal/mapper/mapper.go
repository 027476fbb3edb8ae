// Package mapper reconciles each source's raw field vocabulary into the
// fixed canonical schema via declarative per-source field mappings.
package mapper

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"foreclosed/internal/models"
	"foreclosed/pkg/utils"
)

// ErrUnknownSource indicates a source identifier with no registered mapping.
var ErrUnknownSource = errors.New("no field mapping registered for source")

// IncompleteMappingError reports a mapping that does not cover the full
// canonical field set. It is a configuration defect: raised at validation
// time, before any record is processed, never per record.
type IncompleteMappingError struct {
	Source  string
	Missing []string
}

func (e *IncompleteMappingError) Error() string {
	return fmt.Sprintf("field mapping for %s missing canonical fields: %s",
		e.Source, strings.Join(e.Missing, ", "))
}

// Rule maps one canonical field to an ordered list of raw paths. Paths are
// tried in order; the first non-null value wins. A path may traverse nested
// objects with dots ("details.price"). Default applies when every path is
// null.
type Rule struct {
	Canonical string
	Paths     []string
	Default   any
}

// FieldMapping is one source's complete declaration.
type FieldMapping struct {
	Source string
	Rules  []Rule
}

// Validate checks exhaustiveness over the canonical field set.
func (m *FieldMapping) Validate() error {
	covered := make(map[string]bool, len(m.Rules))
	for _, rule := range m.Rules {
		covered[rule.Canonical] = true
	}

	var missing []string

	for _, field := range models.CanonicalFields {
		if !covered[field] {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)

		return &IncompleteMappingError{Source: m.Source, Missing: missing}
	}

	return nil
}

// Map resolves a raw record into the canonical vocabulary. Values stay
// unnormalized; the normalizer runs afterwards. Missing canonical fields
// take the rule's default, never an error.
func (m *FieldMapping) Map(raw models.RawRecord) models.MappedRecord {
	fields := make(map[string]any, len(m.Rules))
	explicitID := false

	for _, rule := range m.Rules {
		value := rule.Default

		for _, path := range rule.Paths {
			if v := resolvePath(raw.Fields, path); !isNullish(v) {
				value = v

				if rule.Canonical == "property_id" {
					explicitID = true
				}

				break
			}
		}

		if isNullish(value) {
			value = nil
		}

		fields[rule.Canonical] = value
	}

	return models.MappedRecord{
		Fields:        fields,
		SourceID:      raw.SourceID,
		Origin:        raw.Origin,
		HasExplicitID: explicitID,
	}
}

// resolvePath looks a path up in raw fields: first as a literal key, then as
// a dotted traversal into nested objects, then by normalized key so casing
// and spacing variations ("Lot Area" vs "lot_area") still resolve. A missing
// intermediate node yields nil, never an error.
func resolvePath(fields map[string]any, path string) any {
	if v, ok := fields[path]; ok {
		return v
	}

	parts := strings.Split(path, ".")
	if len(parts) > 1 {
		var current any = fields

		for i, part := range parts {
			obj, ok := current.(map[string]any)
			if !ok {
				current = nil

				break
			}

			current, ok = obj[part]
			if !ok {
				current = nil

				break
			}

			if i == len(parts)-1 {
				return current
			}
		}
	}

	want := utils.NormalizeKey(path)
	for k, v := range fields {
		if utils.NormalizeKey(k) == want {
			return v
		}
	}

	return nil
}

// isNullish treats the placeholder vocabulary the sources actually emit
// ("NA", "N/A", "-") the same as a genuinely missing value.
func isNullish(v any) bool {
	if v == nil {
		return true
	}

	s, ok := v.(string)
	if !ok {
		return false
	}

	switch strings.TrimSpace(strings.ToUpper(s)) {
	case "", "NA", "N/A", "-":
		return true
	default:
		return false
	}
}
