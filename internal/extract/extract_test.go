package extract_test

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"lockin/internal/extract"
)

func TestCleanIdempotent(t *testing.T) {
	cases := []string{
		"",
		"plain text",
		"  leading and trailing  ",
		"tabs\tand\nnewlines\r\neverywhere\r",
		"emoji \U0001F389 stripped, punctuation (kept): [yes]!",
		"multiple     spaces",
	}
	for _, input := range cases {
		once := extract.Clean(input)
		twice := extract.Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestCleanNormalizesWhitespaceAndCharset(t *testing.T) {
	got := extract.Clean("Hello\t\tworld\r\n© 2026")
	if got != "Hello world 2026" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}
}

func TestAnalyzeEmptyReturnsNil(t *testing.T) {
	if m := extract.Analyze(""); m != nil {
		t.Fatalf("expected nil metrics for empty input, got %+v", m)
	}
}

func TestAnalyzeSingleWordCountsOneSentence(t *testing.T) {
	m := extract.Analyze("Hello")
	if m == nil {
		t.Fatal("expected metrics")
	}
	if m.WordCount != 1 || m.SentenceCount != 1 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if m.AvgSentenceLength != float64(m.WordCount) {
		t.Fatalf("avg sentence length should equal word count, got %+v", m)
	}
}

func TestAnalyzeSentencesAndScore(t *testing.T) {
	m := extract.Analyze("Hello world. Bye.")
	if m == nil {
		t.Fatal("expected metrics")
	}
	if m.WordCount != 3 {
		t.Fatalf("word count: got %d want 3", m.WordCount)
	}
	if m.SentenceCount != 2 {
		t.Fatalf("sentence count: got %d want 2", m.SentenceCount)
	}
	if m.ParagraphCount != 1 {
		t.Fatalf("paragraph count: got %d want 1", m.ParagraphCount)
	}
	if m.AvgSentenceLength != 1.5 {
		t.Fatalf("avg sentence length: got %v want 1.5", m.AvgSentenceLength)
	}
	if m.ComplexityScore < 0 || m.ComplexityScore > 100 {
		t.Fatalf("score out of range: %d", m.ComplexityScore)
	}
}

func TestAnalyzeScoreClamped(t *testing.T) {
	// Many long words with no sentence breaks push the raw score past 100.
	text := strings.Repeat("extraordinarily ", 40)
	m := extract.Analyze(strings.TrimSpace(text))
	if m == nil {
		t.Fatal("expected metrics")
	}
	if m.ComplexityScore != 100 {
		t.Fatalf("score not clamped: %d", m.ComplexityScore)
	}
}

func TestExtractPlainTextUTF8(t *testing.T) {
	got := extract.Extract([]byte("Hello world. Bye."), extract.MIMEText)
	if got != "Hello world. Bye." {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractPlainTextLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 and invalid as a standalone UTF-8 byte.
	got := extract.Extract([]byte{'c', 'a', 'f', 0xE9}, extract.MIMEText)
	if got != "café" {
		t.Fatalf("unexpected decoded text: %q", got)
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	got := extract.Extract([]byte("x"), "image/png")
	if !strings.Contains(got, "Unsupported file type: image/png") {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestExtractPDFMalformedDegrades(t *testing.T) {
	got := extract.Extract([]byte("definitely not a pdf"), extract.MIMEPDF)
	if !strings.Contains(got, "PDF text extraction not available") {
		t.Fatalf("expected degraded message, got %q", got)
	}
}

func TestExtractDocxParagraphsThenTables(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>A1</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>B1</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>A2</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>B2</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`)

	got := extract.Extract(data, extract.MIMEDocx)
	want := "First paragraph.\nSecond paragraph.\nA1 B1 \nA2 B2 \n"
	if got != want {
		t.Fatalf("unexpected docx text:\ngot  %q\nwant %q", got, want)
	}
}

func TestExtractDocxMalformedDegrades(t *testing.T) {
	got := extract.Extract([]byte("not a zip"), extract.MIMEDocx)
	if !strings.Contains(got, "Error extracting DOCX text") {
		t.Fatalf("expected degraded message, got %q", got)
	}
}

func TestProcessTxtScenario(t *testing.T) {
	info := extract.Process("notes.txt", []byte("Hello world. Bye."), extract.MIMEText)
	if info.Err != "" {
		t.Fatalf("unexpected error: %q", info.Err)
	}
	if info.Content != "Hello world. Bye." {
		t.Fatalf("unexpected content: %q", info.Content)
	}
	if info.WordCount != 3 {
		t.Fatalf("word count: got %d want 3", info.WordCount)
	}
	m := extract.Analyze(info.Content)
	if m == nil || m.SentenceCount != 2 {
		t.Fatalf("expected 2 sentences, got %+v", m)
	}
}

func TestProcessUnsupportedTypeSetsError(t *testing.T) {
	info := extract.Process("img.png", []byte{1, 2, 3}, "image/png")
	if info.Err != "Unsupported file type" {
		t.Fatalf("unexpected error field: %q", info.Err)
	}
	if !strings.Contains(info.Content, "Unsupported file type") {
		t.Fatalf("unexpected content: %q", info.Content)
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	part, err := writer.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document part: %v", err)
	}
	if _, err := part.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}
