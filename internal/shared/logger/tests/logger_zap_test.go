package tests

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/shared/logger"
)

func TestNewClientLogger_CreatesLogFileAndWrites(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, logger.LogFileName)

	l := logger.NewClientLogger(dir)
	// пишем лог
	l.Info("test message")
	// закрываем буферы zap
	_ = l.Sync()

	// проверяем, что файл создан
	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("expected log file to exist at %q, got error: %v", logPath, err)
	}

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	if len(s) == 0 {
		t.Fatalf("expected non-empty log file")
	}
	if !regexp.MustCompile(`\btest message\b`).MatchString(s) {
		t.Fatalf("expected log to contain message, got: %q", s)
	}

	// проверяем формат времени: "HH:MM:SS DD.MM.YYYY"
	timeRe := regexp.MustCompile(`\b\d{2}:\d{2}:\d{2} \d{2}\.\d{2}\.\d{4}\b`)
	if !timeRe.MatchString(s) {
		t.Fatalf("expected custom time format (HH:MM:SS DD.MM.YYYY), got: %q", s)
	}
}

func TestClientLogger_LogRequest_WritesStructuredFields(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, logger.LogFileName)

	l := logger.NewClientLogger(dir)
	l.LogRequest("POST", "/auth/login", "req-1", 401, 158.5463)
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	// проверяем наличие ключевых полей
	mustContain := []string{
		"HTTP request",
		"method", "POST",
		"uri", "/auth/login",
		"request_id", "req-1",
		"status", "401",
		"duration_ms",
	}
	for _, sub := range mustContain {
		if !regexp.MustCompile(regexp.QuoteMeta(sub)).MatchString(s) {
			t.Fatalf("expected log to contain %q, got: %q", sub, s)
		}
	}
}

func TestNewNop_DoesNotPanic(t *testing.T) {
	l := logger.NewNop()
	l.Info("nothing")
	l.LogRequest("GET", "/products", "", 200, 1)
}
