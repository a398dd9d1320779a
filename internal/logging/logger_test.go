package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.With(slog.String(FieldComponent, "store")).Info("session recorded", slog.Int("minutes", 25))

	out := buf.String()
	if !strings.Contains(out, "[store]") {
		t.Fatalf("expected component marker in output, got %q", out)
	}
	if !strings.Contains(out, "session recorded") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "- minutes: 25") {
		t.Fatalf("expected field line in output, got %q", out)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("ignored")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "ignored") {
		t.Fatalf("info record should have been dropped: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	ctx := WithRequestID(context.Background(), "req-123")
	WithContext(ctx, logger).Info("handled")

	if !strings.Contains(buf.String(), "req-123") {
		t.Fatalf("expected request id in output, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
