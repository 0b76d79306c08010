// Package output renders the run summary in text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/abemedia/tokentrim/internal/runner"
)

// Format represents a summary format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	default:
		return FormatText
	}
}

const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
)

// Writer writes summaries to an underlying writer.
type Writer struct {
	w      io.Writer
	format Format
	color  bool
}

// New creates a Writer. Text headers are bold only when w is a terminal.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format, color: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// WriteSummary writes stats in the configured format.
func (wr *Writer) WriteSummary(stats *runner.Stats) error {
	switch wr.format {
	case FormatJSON:
		enc := json.NewEncoder(wr.w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	case FormatYAML:
		enc := yaml.NewEncoder(wr.w)
		enc.SetIndent(2)
		if err := enc.Encode(stats); err != nil {
			return err
		}
		return enc.Close()
	default:
		return wr.writeText(stats)
	}
}

func (wr *Writer) writeText(s *runner.Stats) error {
	header := "Optimization Summary:"
	if wr.color {
		header = colorBold + header + colorReset
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", header)
	fmt.Fprintf(&b, "Files processed: %d\n", s.FilesProcessed)
	fmt.Fprintf(&b, "Files copied: %d\n", s.FilesCopied)
	fmt.Fprintf(&b, "Files failed: %d\n", s.FilesFailed)
	fmt.Fprintf(&b, "Blank lines removed: %d\n", s.BlankLinesRemoved)
	fmt.Fprintf(&b, "Whitespace characters removed: %d\n", s.WhitespaceRemoved)
	fmt.Fprintf(&b, "Total bytes saved: %d (%.2f KB)\n", s.BytesSaved, float64(s.BytesSaved)/1024)

	_, err := io.WriteString(wr.w, b.String())
	return err
}
