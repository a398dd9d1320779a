package extract

import (
	"bytes"
	"io"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
	rscpdf "rsc.io/pdf"
)

// pdfUnavailable is the fixed degraded result when every PDF strategy fails.
const pdfUnavailable = "PDF text extraction not available. The file may be scanned, encrypted, or malformed."

// extractPDF tries the plain-text reader first and falls back to a per-page
// content walk. Both parsers panic on some malformed files, so each attempt
// is isolated.
func extractPDF(data []byte) string {
	if text, ok := pdfPlainText(data); ok {
		return text
	}
	if text, ok := pdfPageWalk(data); ok {
		return text
	}
	return pdfUnavailable
}

func pdfPlainText(data []byte) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			text, ok = "", false
		}
	}()

	reader, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", false
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", false
	}
	var buf strings.Builder
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", false
	}
	if strings.TrimSpace(buf.String()) == "" {
		return "", false
	}
	return buf.String(), true
}

func pdfPageWalk(data []byte) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			text, ok = "", false
		}
	}()

	reader, err := rscpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", false
	}

	var buf strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		for _, fragment := range content.Text {
			if strings.TrimSpace(fragment.S) == "" {
				continue
			}
			buf.WriteString(fragment.S)
			buf.WriteByte(' ')
		}
		buf.WriteByte('\n')
	}
	if strings.TrimSpace(buf.String()) == "" {
		return "", false
	}
	return buf.String(), true
}
