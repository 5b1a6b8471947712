package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l, err := New(path, "debug")
	if err != nil {
		t.Fatal(err)
	}
	l.Named("records").Debug("record added")
	l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if entry["msg"] != "record added" {
		t.Fatalf("msg = %v", entry["msg"])
	}
	if entry["logger"] != "records" {
		t.Fatalf("logger = %v, want records", entry["logger"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Fatal("expected timestamp key")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := New(path, "warn")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("shown")
	l.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Fatal("info should be filtered at warn level")
	}
	if !strings.Contains(string(data), "shown") {
		t.Fatal("warn should be written")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "app.log"), "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNamedNil(t *testing.T) {
	if Named(nil, "x") == nil {
		t.Fatal("Named(nil) should return a no-op logger")
	}
}
