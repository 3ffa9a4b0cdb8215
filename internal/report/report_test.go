package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/sitesweep/internal/domain"
)

func sampleOutcomes() []domain.Outcome {
	at := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	return []domain.Outcome{
		{URL: "https://ok.example.com", Up: true, HTTPStatus: 200, LatencyMS: 52.4, CheckedAt: at},
		{URL: "https://down.example.com", Up: false, Reason: "connection refused", LatencyMS: 2001.0, CheckedAt: at},
	}
}

func TestWriteJSON_StatusIsNumberOrString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	if err := WriteJSON(path, sampleOutcomes()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var records []map[string]any
	if err := json.Unmarshal(b, &records); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("want 2 records, got %d", len(records))
	}

	if _, ok := records[0]["status"].(float64); !ok {
		t.Fatalf("success status should be a number, got %T", records[0]["status"])
	}
	if s, ok := records[1]["status"].(string); !ok || s != "connection refused" {
		t.Fatalf("failure status should be the error string, got %v", records[1]["status"])
	}
	if records[1]["time_ms"].(float64) != 2001 {
		t.Fatalf("time_ms wrong: %v", records[1]["time_ms"])
	}
	if records[0]["url"] != "https://ok.example.com" {
		t.Fatalf("url wrong: %v", records[0]["url"])
	}
}

func TestWriteJSON_ReplacesExistingWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "status.json")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteJSON(path, sampleOutcomes()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var records []map[string]any
	if err := json.Unmarshal(b, &records); err != nil {
		t.Fatalf("replaced report is not valid JSON: %v", err)
	}

	// The staging file must have been renamed away, not left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "status.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("stray files after write: %v", names)
	}
}

func TestPrinter_Lines(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{W: &buf}
	for _, o := range sampleOutcomes() {
		p.Print(o)
	}
	out := buf.String()
	if !strings.Contains(out, "[200] OK https://ok.example.com") {
		t.Fatalf("success line missing: %q", out)
	}
	if !strings.Contains(out, "[ERROR] https://down.example.com failed: connection refused") {
		t.Fatalf("failure line missing: %q", out)
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, sampleOutcomes())
	if got := buf.String(); got != "2 checked, 1 responded, 1 unreachable\n" {
		t.Fatalf("summary wrong: %q", got)
	}
}
