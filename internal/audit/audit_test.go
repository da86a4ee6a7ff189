package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenAndLogWritesJSONLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	logger, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer logger.Close()

	logger.Log(Event{SessionID: "s1", ToolName: "Bash", Decision: "ask", Reason: "risky"})
	logger.Log(Event{SessionID: "s2", ToolName: "Write", Decision: "allow"})

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open log file: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %v", len(lines), lines)
	}

	var evt Event
	if err := json.Unmarshal([]byte(lines[0]), &evt); err != nil {
		t.Fatalf("unmarshal line: %v", err)
	}
	if evt.SessionID != "s1" || evt.Decision != "ask" {
		t.Errorf("Event = %+v", evt)
	}
}

func TestOpenEmptyPathDiscardsLogs(t *testing.T) {
	logger, err := Open("")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	// Must not panic even though there's no backing file.
	logger.Log(Event{SessionID: "s1"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
}

func TestNilLoggerLogIsSafe(t *testing.T) {
	var logger *Logger
	logger.Log(Event{SessionID: "s1"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close on nil logger: %v", err)
	}
}
