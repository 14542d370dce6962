package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "starfield.log")
	logger, flush, err := New(path, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("scene mounted")
	logger.Debug("hidden at info level")
	flush()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1:\n%s", len(lines), data)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "scene mounted" {
		t.Errorf("msg = %v, want scene mounted", rec["msg"])
	}
}

func TestNewVerboseIncludesDebug(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "starfield.log")
	logger, flush, err := New(path, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("frame skipped")
	flush()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "frame skipped") {
		t.Errorf("debug line missing from verbose log:\n%s", data)
	}
}

func TestNewEmptyPathIsNop(t *testing.T) {
	t.Parallel()

	logger, flush, err := New("", true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("dropped")
	flush()
}
