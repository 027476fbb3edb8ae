package extract

import (
	"fmt"
	"strings"

	"foreclosed/internal/models"
	"foreclosed/pkg/utils"
)

// headerLookaheadPages bounds how many pages may pass before a header must
// be found. Rows buffered while searching are discarded past this limit so
// a malformed PDF cannot grow memory without bound.
const headerLookaheadPages = 3

// headerKeywords are tokens that identify a column-name row in bank
// property PDFs.
var headerKeywords = []string{
	"property", "location", "price", "area", "description",
	"type", "classification", "title", "status",
}

// disclaimerKeywords mark legal boilerplate rows that must never become
// records.
var disclaimerKeywords = []string{
	"disclaimer", "as-is", "where-is", "no recourse", "warranties", "buybacks",
}

// TableExtractorOptions tune extraction for source-specific PDF layouts.
type TableExtractorOptions struct {
	// SectionFields, when set, enables PNB-style group rows: a row with a
	// single non-empty cell is split on "|" and its parts are attached to
	// every following record under these field names.
	SectionFields []string
}

// TableExtractor turns multi-page table grids into raw records. Header
// state carries across pages, so one extractor processes one document
// sequentially.
type TableExtractor struct {
	sourceID string
	opts     TableExtractorOptions

	header    []string
	buffered  []bufferedRow
	pagesSeen int
	gaveUp    bool
	section   map[string]any
	warnings  []models.Warning
}

type bufferedRow struct {
	page  int
	cells []string
}

// NewTableExtractor creates an extractor for one source document.
func NewTableExtractor(sourceID string, opts TableExtractorOptions) *TableExtractor {
	return &TableExtractor{
		sourceID: sourceID,
		opts:     opts,
		section:  make(map[string]any),
	}
}

// Extract processes grids in page order and returns records in exactly the
// input row order, plus every warning recorded along the way.
func (e *TableExtractor) Extract(grids []models.TableGrid) ([]models.RawRecord, []models.Warning) {
	var records []models.RawRecord

	for _, grid := range grids {
		records = append(records, e.extractPage(grid)...)
	}

	if e.header == nil && len(e.buffered) > 0 {
		e.warn(models.WarnHeaderNotFound, "",
			fmt.Sprintf("no header row found in %d pages; %d buffered rows discarded", e.pagesSeen, len(e.buffered)))
		e.buffered = nil
	}

	return records, e.warnings
}

func (e *TableExtractor) extractPage(grid models.TableGrid) []models.RawRecord {
	e.pagesSeen++

	rows := cleanRows(grid.Rows)
	if len(rows) == 0 {
		return nil
	}

	// A page whose leading rows are all prose is a disclaimer/legal page
	// with table-like formatting; it contributes nothing.
	if e.isDisclaimerPage(rows) {
		return nil
	}

	var records []models.RawRecord

	for _, cells := range rows {
		if countNonEmpty(cells) == 0 {
			continue
		}

		if isDisclaimerRow(cells) {
			continue
		}

		if e.header == nil {
			e.consumeHeaderless(grid.Page, cells, &records)

			continue
		}

		if e.isRepeatedHeader(cells) {
			continue
		}

		if isHeaderRow(cells) && !e.isRepeatedHeader(cells) {
			// Column layout changed mid-document; adopt the new header.
			e.header = cells

			continue
		}

		if rec, ok := e.sectionOrRecord(grid.Page, cells); ok {
			records = append(records, rec)
		}
	}

	return records
}

// consumeHeaderless handles rows seen before any header has been confirmed.
func (e *TableExtractor) consumeHeaderless(page int, cells []string, records *[]models.RawRecord) {
	if isHeaderRow(cells) {
		e.header = cells

		// Rows buffered ahead of the header are replayed against it.
		for _, buf := range e.buffered {
			if rec, ok := e.sectionOrRecord(buf.page, buf.cells); ok {
				*records = append(*records, rec)
			}
		}

		e.buffered = nil

		return
	}

	if e.gaveUp {
		return
	}

	if e.pagesSeen > headerLookaheadPages {
		e.warn(models.WarnHeaderNotFound, "",
			fmt.Sprintf("header search exceeded %d pages; discarding %d buffered rows", headerLookaheadPages, len(e.buffered)))
		e.buffered = nil
		e.gaveUp = true

		return
	}

	e.buffered = append(e.buffered, bufferedRow{page: page, cells: cells})
}

// sectionOrRecord classifies a confirmed-header row as either a group
// metadata row or a data row.
func (e *TableExtractor) sectionOrRecord(page int, cells []string) (models.RawRecord, bool) {
	if len(e.opts.SectionFields) > 0 && countNonEmpty(cells) == 1 {
		e.updateSection(cells)

		return models.RawRecord{}, false
	}

	return e.buildRecord(page, cells), true
}

func (e *TableExtractor) updateSection(cells []string) {
	var text string

	for _, c := range cells {
		if c != "" {
			text = c

			break
		}
	}

	parts := strings.Split(text, "|")
	e.section = make(map[string]any, len(e.opts.SectionFields))

	for i, field := range e.opts.SectionFields {
		if i < len(parts) {
			if v := strings.TrimSpace(parts[i]); v != "" {
				e.section[field] = v
			}
		}
	}
}

func (e *TableExtractor) buildRecord(page int, cells []string) models.RawRecord {
	if len(cells) != len(e.header) {
		e.warn(models.WarnColumnDrift, "",
			fmt.Sprintf("page %d: row has %d cells, header has %d", page, len(cells), len(e.header)))
	}

	fields := make(map[string]any, len(e.header)+len(e.section))

	for i, name := range e.header {
		if name == "" {
			continue
		}

		if i < len(cells) && cells[i] != "" {
			fields[name] = cells[i]
		} else {
			// Missing trailing cells pad with null rather than dropping
			// the whole row.
			fields[name] = nil
		}
	}

	for k, v := range e.section {
		if _, exists := fields[k]; !exists || fields[k] == nil {
			fields[k] = v
		}
	}

	return models.RawRecord{
		Fields:   fields,
		SourceID: e.sourceID,
		Origin:   fmt.Sprintf("page %d", page),
	}
}

func (e *TableExtractor) isRepeatedHeader(cells []string) bool {
	if len(cells) != len(e.header) {
		return false
	}

	for i, c := range cells {
		if !strings.EqualFold(c, e.header[i]) {
			return false
		}
	}

	return true
}

// isDisclaimerPage reports whether the page's first three rows are all
// disclaimer-shaped.
func (e *TableExtractor) isDisclaimerPage(rows [][]string) bool {
	checked := 0

	for _, cells := range rows {
		if countNonEmpty(cells) == 0 {
			continue
		}

		if !isDisclaimerRow(cells) {
			return false
		}

		checked++
		if checked == 3 {
			return true
		}
	}

	return false
}

func (e *TableExtractor) warn(kind models.WarningKind, field, detail string) {
	e.warnings = append(e.warnings, models.Warning{
		Source: e.sourceID,
		Kind:   kind,
		Field:  field,
		Detail: detail,
	})
}

// isHeaderRow reports whether a row defines column names: several short
// non-numeric cells, at least one of them a known column keyword.
func isHeaderRow(cells []string) bool {
	if countNonEmpty(cells) < 3 {
		return false
	}

	if isDisclaimerRow(cells) {
		return false
	}

	keywordHit := false

	for _, c := range cells {
		if c == "" {
			continue
		}

		if utils.CountDigits(c) > 0 {
			return false
		}

		lower := strings.ToLower(c)
		for _, kw := range headerKeywords {
			if strings.Contains(lower, kw) {
				keywordHit = true

				break
			}
		}
	}

	return keywordHit
}

// isDisclaimerRow recognizes legal/explanatory prose: either known
// boilerplate keywords, or long sentence-punctuated text with no numbers.
func isDisclaimerRow(cells []string) bool {
	text := strings.ToLower(strings.Join(cells, " "))

	for _, kw := range disclaimerKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	return len(text) > 60 && strings.Count(text, ".") >= 2 && utils.CountDigits(text) == 0
}

func cleanRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = utils.CleanCell(c)
		}

		out = append(out, cells)
	}

	return out
}

func countNonEmpty(cells []string) int {
	count := 0

	for _, c := range cells {
		if c != "" {
			count++
		}
	}

	return count
}
