// Package pdfsniff extracts identifying signals (property identity,
// statement period) from a PDF's first page. Extraction is best-effort: any
// failure, including unreadable or corrupt content, yields an empty signal
// rather than an error that could abort a batch.
package pdfsniff

import (
	"bytes"
	"context"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

type Sniffer struct{}

func New() *Sniffer {
	return &Sniffer{}
}

// Sniff pulls the first page's text and runs the property and period
// heuristics over it. The returned error is always nil; it exists to
// satisfy the port for sniffer implementations that can fail harder.
func (s *Sniffer) Sniff(_ context.Context, data []byte) (domain.ContentSignal, error) {
	text := firstPageText(data)
	if text == "" {
		return domain.ContentSignal{}, nil
	}
	return ExtractSignal(text), nil
}

// firstPageText extracts the first page's text, preferring row-based
// extraction for layout fidelity. The pdf library panics on some malformed
// inputs, so the whole extraction is recover-guarded.
func firstPageText(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	if len(data) == 0 {
		return ""
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil || reader.NumPage() == 0 {
		return ""
	}
	page := reader.Page(1)
	if page.V.IsNull() {
		return ""
	}

	if rows, err := page.GetTextByRow(); err == nil && len(rows) > 0 {
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
	}

	plain, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return plain
}
