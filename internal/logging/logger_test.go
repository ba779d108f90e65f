package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shortwave/internal/logging"
)

func TestNewWritesConsoleLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tagged := logging.WithComponent(logger, "pipeline")
	tagged.Info("stage started", logging.Args(logging.String("stage", "mix"))...)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO pipeline: stage started") {
		t.Errorf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "stage=mix") {
		t.Errorf("missing attr in line: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("info line should have been filtered")
	}
	if !strings.Contains(string(data), "visible") {
		t.Error("warn line missing")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should not panic", logging.Args(logging.Error(nil))...)
}
