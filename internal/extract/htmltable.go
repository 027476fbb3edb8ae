package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"foreclosed/internal/models"
	"foreclosed/pkg/utils"
)

// labelled paragraph prefixes seen on Buena Mano property pages.
var cardLabels = map[string]string{
	"Location:":          "location",
	"Location :":         "location",
	"Price:":             "price",
	"Price (Php) :":      "price_php",
	"Lot Area (sqm) :":   "lot_area_sqm",
	"Floor Area (sqm) :": "floor_area_sqm",
	"Address:":           "address",
	"Address :":          "address",
}

// ParseListingCards extracts property blobs from a manually saved listing
// page. Each card is an h4 link to a /property/ detail page, optionally
// followed by labelled paragraphs (Location:, Price:, ...).
func ParseListingCards(r io.Reader) ([]any, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var blobs []any

	doc.Find("h4 a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || !strings.Contains(href, "/property/") {
			return
		}

		blob := map[string]any{
			"title":      utils.CleanCell(link.Text()),
			"detail_url": href,
		}

		// The card's paragraphs live alongside the h4 inside the same
		// container element.
		link.Closest("h4").Parent().Find("p").Each(func(_ int, p *goquery.Selection) {
			text := utils.CleanCell(p.Text())

			for prefix, field := range cardLabels {
				if strings.HasPrefix(text, prefix) {
					value := strings.TrimSpace(strings.TrimPrefix(text, prefix))
					if value != "" {
						blob[field] = value
					}

					return
				}
			}
		})

		blobs = append(blobs, blob)
	})

	return blobs, nil
}

// ParseHTMLTables converts every <table> in the document into a TableGrid,
// numbered in document order, so saved HTML tables flow through the same
// extractor as PDF grids.
func ParseHTMLTables(r io.Reader) ([]models.TableGrid, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var grids []models.TableGrid

	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		grid := models.TableGrid{Page: i + 1}

		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string

			tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, utils.CleanCell(cell.Text()))
			})

			if len(cells) > 0 {
				grid.Rows = append(grid.Rows, cells)
			}
		})

		if len(grid.Rows) > 0 {
			grids = append(grids, grid)
		}
	})

	return grids, nil
}

// LoadHTMLBlobs reads a saved HTML file and extracts listing-card blobs,
// falling back to table extraction when the page carries no cards.
func LoadHTMLBlobs(sourceID, path string) ([]any, []models.Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer f.Close()

	blobs, err := ParseListingCards(f)
	if err != nil {
		return nil, nil, err
	}

	if len(blobs) > 0 {
		return blobs, nil, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("failed to rewind HTML file: %w", err)
	}

	grids, err := ParseHTMLTables(f)
	if err != nil {
		return nil, nil, err
	}

	extractor := NewTableExtractor(sourceID, TableExtractorOptions{})
	records, warnings := extractor.Extract(grids)

	blobs = make([]any, 0, len(records))
	for _, rec := range records {
		blobs = append(blobs, rec.Fields)
	}

	return blobs, warnings, nil
}
