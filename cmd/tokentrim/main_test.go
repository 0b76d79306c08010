package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/abemedia/tokentrim/internal/runner"
)

// execute runs the root command with args and stdin and returns what it
// wrote to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStdin(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{
			name:  "generic_by_default",
			input: "a  \n\n\n\nb\t\n",
			want:  "a\n\nb\n",
		},
		{
			name:  "code_dialect",
			args:  []string{"--ext", "py"},
			input: "x = 1   # keep   \ny = 'a  '  \n",
			want:  "x = 1   # keep\ny = 'a  '\n",
		},
		{
			name:  "data_dialect",
			args:  []string{"--ext", ".json"},
			input: `{ "a" : [ 1, 2 ] }`,
			want:  `{"a":[1,2]}`,
		},
		{
			name:  "undecodable_written_unchanged",
			input: "a  \xff\n\n\n\n",
			want:  "a  \xff\n\n\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.input, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(got, tt.want); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestTreeSummaryJSON(t *testing.T) {
	in, out := t.TempDir(), filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(in, "a.py"), "x = 1  \n")
	writeFile(t, filepath.Join(in, "b.bin"), "raw  \n")

	got, err := execute(t, "", "--format", "json", in, out)
	if err != nil {
		t.Fatal(err)
	}

	var stats runner.Stats
	if err := json.Unmarshal([]byte(got), &stats); err != nil {
		t.Fatalf("summary %q is not JSON: %v", got, err)
	}
	want := runner.Stats{FilesProcessed: 1, FilesCopied: 1, WhitespaceRemoved: 2, BytesSaved: 2}
	if diff := cmp.Diff(stats, want); diff != "" {
		t.Error(diff)
	}

	data, err := os.ReadFile(filepath.Join(out, "a.py"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x = 1\n" {
		t.Errorf("a.py = %q", data)
	}
}

func TestTreeSummaryText(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(in, "a.py"), "x\n")

	got, err := execute(t, "", in, out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Optimization Summary:") || !strings.Contains(got, "Files processed: 1") {
		t.Errorf("unexpected summary:\n%s", got)
	}
}

func TestEnvironmentConfig(t *testing.T) {
	t.Setenv("TOKENTRIM_FORMAT", "yaml")
	t.Setenv("TOKENTRIM_EXTENSIONS", "txt")

	in, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(in, "notes.txt"), "a   \n")

	got, err := execute(t, "", in, out)
	if err != nil {
		t.Fatal(err)
	}

	var stats runner.Stats
	if err := yaml.Unmarshal([]byte(got), &stats); err != nil {
		t.Fatalf("summary %q is not YAML: %v", got, err)
	}
	if stats.FilesProcessed != 1 || stats.BytesSaved != 3 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tokentrim.yaml")
	writeFile(t, file, "preserve_md: true\nformat: json\n")

	in, out := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(in, "README.md"), "a   \n\n\n\n\n")

	got, err := execute(t, "", "--config", file, in, out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `"files_copied": 1`) {
		t.Errorf("markdown should be copied through, summary:\n%s", got)
	}
	data, err := os.ReadFile(filepath.Join(out, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a   \n\n\n\n\n" {
		t.Errorf("README.md = %q", data)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tokentrim.yaml")
	writeFile(t, file, "format: json\n")

	in, out := t.TempDir(), t.TempDir()
	got, err := execute(t, "", "--config", file, "--format", "text", in, out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Optimization Summary:") {
		t.Errorf("expected text summary, got:\n%s", got)
	}
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{name: "one_argument", args: []string{dir}},
		{name: "three_arguments", args: []string{dir, dir, dir}},
		{name: "unknown_format", args: []string{"--format", "xml", dir, filepath.Join(dir, "out")}},
		{name: "negative_workers", args: []string{"--workers", "-1", dir, filepath.Join(dir, "out")}},
		{name: "same_directory", args: []string{dir, dir}},
		{name: "missing_input", args: []string{filepath.Join(dir, "missing"), filepath.Join(dir, "out")}},
		{name: "missing_config_file", args: []string{"--config", filepath.Join(dir, "nope.yaml")}},
		{name: "watch_needs_two_arguments", args: []string{"watch", dir}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, "", tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestVersion(t *testing.T) {
	got, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "tokentrim ") {
		t.Errorf("unexpected version output %q", got)
	}
}
