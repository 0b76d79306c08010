package output

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/abemedia/tokentrim/internal/runner"
)

var stats = &runner.Stats{
	FilesProcessed:    3,
	FilesCopied:       2,
	FilesFailed:       1,
	BlankLinesRemoved: 40,
	WhitespaceRemoved: 1200,
	BytesSaved:        2048,
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"text": FormatText,
		"JSON": FormatJSON,
		"yaml": FormatYAML,
		"yml":  FormatYAML,
		"":     FormatText,
		"xml":  FormatText,
	}
	for in, want := range tests {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteSummaryText(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatText).WriteSummary(stats); err != nil {
		t.Fatal(err)
	}

	want := `
Optimization Summary:
Files processed: 3
Files copied: 2
Files failed: 1
Blank lines removed: 40
Whitespace characters removed: 1200
Total bytes saved: 2048 (2.00 KB)
`
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Error(diff)
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatJSON).WriteSummary(stats); err != nil {
		t.Fatal(err)
	}

	var got map[string]int
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	want := map[string]int{
		"files_processed":          3,
		"files_copied":             2,
		"files_failed":             1,
		"blank_lines_removed":      40,
		"whitespace_chars_removed": 1200,
		"bytes_saved":              2048,
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error(diff)
	}
}

func TestWriteSummaryYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatYAML).WriteSummary(stats); err != nil {
		t.Fatal(err)
	}

	var got runner.Stats
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML %q: %v", buf.String(), err)
	}
	if diff := cmp.Diff(&got, stats); diff != "" {
		t.Error(diff)
	}
}

func TestNoColorForNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "summary")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if New(f, FormatText).color {
		t.Error("a regular file should not be treated as a terminal")
	}
	if New(&bytes.Buffer{}, FormatText).color {
		t.Error("a buffer should not be treated as a terminal")
	}
}
