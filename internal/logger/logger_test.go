package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func resetLogger() {
	Init(Options{})
}

func TestInit_DefaultLevel_Info(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Info("test info")
	if !strings.Contains(buf.String(), "test info") {
		t.Error("Info message should be logged at default level")
	}

	buf.Reset()
	Debug("test debug")
	if strings.Contains(buf.String(), "test debug") {
		t.Error("Debug message should not be logged at default level")
	}
}

func TestInit_DebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Output: buf})
	defer resetLogger()

	Debug("span ran to end of document")
	if !strings.Contains(buf.String(), "span ran to end of document") {
		t.Error("Debug message should be logged when Debug=true")
	}
}

func TestInit_QuietLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Quiet: true, Output: buf})
	defer resetLogger()

	Info("optimized")
	Warn("fallback")
	if buf.Len() != 0 {
		t.Errorf("Info and Warn should be suppressed when Quiet=true, got %q", buf.String())
	}

	Error("write failed")
	if !strings.Contains(buf.String(), "write failed") {
		t.Error("Error message should be logged when Quiet=true")
	}
}

func TestInit_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("optimized", "path", "a.py", "bytes_saved", 12)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if entry["path"] != "a.py" || entry["bytes_saved"] != float64(12) {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestInit_CustomLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Logger: slog.New(slog.NewTextHandler(buf, nil)), Debug: true})
	defer resetLogger()

	Debug("hidden")
	Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("custom logger should be used as is, got %q", buf.String())
	}
}

func TestWith(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	With("path", "x.md").Info("copied")
	if !strings.Contains(buf.String(), "path=x.md") {
		t.Errorf("With attributes missing: %q", buf.String())
	}
}
