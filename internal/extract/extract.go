package extract

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Supported upload MIME types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
)

// FileInfo is the processed record for one uploaded file. Err carries the
// descriptive rejection reason for unsupported types; extraction failures
// for supported types degrade into the Content string instead.
type FileInfo struct {
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`
	CharCount int    `json:"charCount"`
	Err       string `json:"error,omitempty"`
}

// Extract maps raw file bytes plus a declared MIME type to plain text. It
// never fails; unsupported or unreadable input degrades to a placeholder
// message.
func Extract(data []byte, declaredType string) string {
	switch declaredType {
	case MIMEPDF:
		return extractPDF(data)
	case MIMEDocx:
		return extractDocx(data)
	case MIMEText:
		return extractText(data)
	default:
		return fmt.Sprintf("Unsupported file type: %s", declaredType)
	}
}

// Process extracts, cleans, and counts an uploaded file in one pass.
func Process(name string, data []byte, declaredType string) FileInfo {
	info := FileInfo{
		Name: name,
		Size: int64(len(data)),
		Type: declaredType,
	}

	switch declaredType {
	case MIMEPDF, MIMEDocx, MIMEText:
	default:
		info.Err = "Unsupported file type"
	}

	cleaned := Clean(Extract(data, declaredType))
	info.Content = cleaned
	info.WordCount = countWords(cleaned)
	info.CharCount = utf8.RuneCountInString(cleaned)
	return info
}

func extractText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return fmt.Sprintf("Error reading text file: %v", err)
	}
	return string(decoded)
}
