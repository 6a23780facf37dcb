// Package pdfimport extracts plain text from uploaded PDFs so a user can
// start a draft from an existing file.
package pdfimport

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText reads the whole PDF and returns its plain text. Inputs that
// are not parseable PDFs fail with a validation error so the caller can
// answer 400 rather than 500.
func (e *Extractor) ExtractText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", domain.WrapError(domain.ErrValidation, "pdf import", fmt.Errorf("not a readable pdf: %w", err))
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", domain.WrapError(domain.ErrValidation, "pdf import", fmt.Errorf("extract text: %w", err))
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
