package models

// TableGrid is one page worth of table cells as handed over by a PDF (or
// HTML) parsing collaborator. Row and cell order is exactly the order on the
// page; the grid is never persisted, only consumed by the table extractor.
type TableGrid struct {
	Page int        `json:"page"`
	Rows [][]string `json:"rows"`
}
