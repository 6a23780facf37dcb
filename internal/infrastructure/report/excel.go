// Package report renders document lists as downloadable registers.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
)

const registerSheet = "Documents"

var registerHeaders = []string{
	"Document No", "Title", "Status", "Drafter", "Created", "Submitted", "Completed",
}

// WriteDocumentRegister writes an .xlsx register of the given documents:
// one header row, one row per document, in the order given.
func WriteDocumentRegister(w io.Writer, docs []domain.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range registerHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(registerSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, doc := range docs {
		values := []any{
			displayNumber(doc),
			doc.Title,
			string(doc.Status),
			doc.DrafterID,
			doc.CreatedAt.Format("2006-01-02"),
			optionalDate(doc.SubmittedAt),
			optionalDate(doc.CompletedAt),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(registerSheet, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func displayNumber(doc domain.Document) string {
	if doc.DocumentNumber != "" {
		return doc.DocumentNumber
	}
	return "(draft)"
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
