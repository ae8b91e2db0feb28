package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"volunteerhub/internal/domain"
)

// PDFText extracts plain text page by page. Pages are joined in order, each
// preceded by a "--- Page N ---" marker.
func PDFText(data []byte) (text string, err error) {
	// the reader panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: reading pdf: %v", domain.ErrUnprocessable, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: opening pdf: %v", domain.ErrUnprocessable, err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", domain.ErrUnprocessable, i, err)
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		pages = append(pages, fmt.Sprintf("--- Page %d ---\n%s", i, content))
	}
	return strings.Join(pages, "\n\n"), nil
}
