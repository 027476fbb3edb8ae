// Package dedup collapses records that represent the same physical property
// within one source. Pagination re-scrapes can emit the same page of records
// dozens of times, so a source with hundreds of raw records may hold only a
// handful of unique properties.
package dedup

import (
	"fmt"
	"strings"

	"foreclosed/internal/models"
)

// DefaultCollapseWarnRatio flags sources whose duplicate ratio exceeds 90%
// for operator review instead of silently hiding the collapse.
const DefaultCollapseWarnRatio = 0.9

// Result carries the collapsed records plus collapse bookkeeping for the
// summary report.
type Result struct {
	Records        []models.CanonicalRecord
	InputCount     int
	UniqueCount    int
	DuplicateRatio float64
	Warnings       []models.Warning
}

// Deduplicate groups records by identity and keeps one representative per
// group, preserving first-appearance order.
//
// Records whose property_id came from the source group on that id; the most
// complete record (most non-null fields) represents the group, with a
// warning when members disagree on a field. Records with synthesized ids
// group on the exact (title, address, price) tuple instead: all three must
// agree, so distinct properties that merely share a price never merge.
func Deduplicate(sourceID string, records []models.CanonicalRecord, collapseWarnRatio float64) Result {
	if collapseWarnRatio <= 0 {
		collapseWarnRatio = DefaultCollapseWarnRatio
	}

	res := Result{InputCount: len(records)}

	type group struct {
		representative models.CanonicalRecord
		order          int
	}

	groups := make(map[string]*group)
	conflictSeen := make(map[string]bool)

	for _, rec := range records {
		key := groupKey(&rec)

		g, exists := groups[key]
		if !exists {
			groups[key] = &group{representative: rec, order: len(groups)}

			continue
		}

		for _, field := range models.CanonicalFields {
			existing, existingNull := g.representative.Field(field)
			incoming, incomingNull := rec.Field(field)

			if existingNull || incomingNull {
				continue
			}

			if fmt.Sprintf("%v", existing) != fmt.Sprintf("%v", incoming) {
				mark := key + "|" + field
				if !conflictSeen[mark] {
					conflictSeen[mark] = true
					res.Warnings = append(res.Warnings, models.Warning{
						Source: sourceID,
						Kind:   models.WarnFieldConflict,
						Field:  field,
						Detail: fmt.Sprintf("duplicate group %s has conflicting values %v / %v", g.representative.PropertyID, existing, incoming),
					})
				}
			}
		}

		if rec.NonNullCount() > g.representative.NonNullCount() {
			order := g.order
			g.representative = rec
			g.order = order
		}
	}

	res.Records = make([]models.CanonicalRecord, len(groups))
	for _, g := range groups {
		res.Records[g.order] = g.representative
	}

	res.UniqueCount = len(res.Records)

	if res.InputCount > 0 {
		res.DuplicateRatio = 1 - float64(res.UniqueCount)/float64(res.InputCount)
	}

	if res.DuplicateRatio > collapseWarnRatio {
		res.Warnings = append(res.Warnings, models.Warning{
			Source: sourceID,
			Kind:   models.WarnDuplicateRatio,
			Detail: fmt.Sprintf("%d of %d records were duplicates (%.1f%% collapse); review source pagination",
				res.InputCount-res.UniqueCount, res.InputCount, res.DuplicateRatio*100),
		})
	}

	return res
}

func groupKey(rec *models.CanonicalRecord) string {
	if !rec.IDSynthesized {
		return "id\x00" + rec.PropertyID
	}

	var sb strings.Builder

	sb.WriteString("tuple\x00")
	writeNullable(&sb, rec.Title)
	writeNullable(&sb, rec.Address)

	if rec.Price != nil {
		fmt.Fprintf(&sb, "%v %s", rec.Price.Amount, rec.Price.Currency)
	}

	sb.WriteByte(0)

	return sb.String()
}

func writeNullable(sb *strings.Builder, s *string) {
	if s != nil {
		sb.WriteString(*s)
	}

	sb.WriteByte(0)
}
