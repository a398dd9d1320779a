package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxDocument mirrors the parts of word/document.xml needed for text
// extraction: body-level paragraphs and tables. encoding/xml matches the
// elements by local name, which covers the w: namespace.
type docxDocument struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
		Tables     []docxTable     `xml:"tbl"`
	} `xml:"body"`
}

type docxParagraph struct {
	Runs []struct {
		Text string `xml:"t"`
	} `xml:"r"`
}

func (p docxParagraph) text() string {
	var buf strings.Builder
	for _, run := range p.Runs {
		buf.WriteString(run.Text)
	}
	return buf.String()
}

type docxTable struct {
	Rows []struct {
		Cells []struct {
			Paragraphs []docxParagraph `xml:"p"`
		} `xml:"tc"`
	} `xml:"tr"`
}

// extractDocx concatenates paragraph text, then table cell text row-major:
// cells space-joined within a row, rows newline-joined.
func extractDocx(data []byte) string {
	doc, err := parseDocx(data)
	if err != nil {
		return fmt.Sprintf("Error extracting DOCX text: %v", err)
	}

	var buf strings.Builder
	for _, paragraph := range doc.Body.Paragraphs {
		buf.WriteString(paragraph.text())
		buf.WriteByte('\n')
	}
	for _, table := range doc.Body.Tables {
		for _, row := range table.Rows {
			for _, cell := range row.Cells {
				for _, paragraph := range cell.Paragraphs {
					buf.WriteString(paragraph.text())
					buf.WriteByte(' ')
				}
			}
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

func parseDocx(data []byte) (*docxDocument, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	file, err := archive.Open("word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("open document part: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read document part: %w", err)
	}

	var doc docxDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse document part: %w", err)
	}
	return &doc, nil
}
