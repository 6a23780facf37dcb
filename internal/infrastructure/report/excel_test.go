package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
)

func TestWriteDocumentRegister(t *testing.T) {
	created := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	submitted := time.Date(2026, 2, 11, 14, 30, 0, 0, time.UTC)

	docs := []domain.Document{
		{
			ID:             "d-1",
			DocumentNumber: "EXP-000042",
			Title:          "February expenses",
			Status:         domain.StatusPending,
			DrafterID:      "u-7",
			CreatedAt:      created,
			SubmittedAt:    &submitted,
		},
		{
			ID:        "d-2",
			Title:     "untitled draft",
			Status:    domain.StatusDraft,
			DrafterID: "u-7",
			CreatedAt: created,
		},
	}

	var buf bytes.Buffer
	if err := WriteDocumentRegister(&buf, docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(registerSheet)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Document No" || rows[0][2] != "Status" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "EXP-000042" || rows[1][4] != "2026-02-10" || rows[1][5] != "2026-02-11" {
		t.Errorf("unexpected first data row: %v", rows[1])
	}
	if rows[2][0] != "(draft)" {
		t.Errorf("expected draft placeholder, got %q", rows[2][0])
	}
}

func TestWriteDocumentRegisterEmptyList(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDocumentRegister(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(registerSheet)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
