package runner

import "github.com/abemedia/tokentrim"

// Action describes what happened to one input file.
type Action uint8

const (
	// Optimized files were trimmed and the result written.
	Optimized Action = iota
	// Copied files were not eligible and were copied through.
	Copied
	// Fallback files were eligible but could not be trimmed, so the
	// original was copied through.
	Fallback
	// Failed files could not be written to the output tree at all.
	Failed
)

func (a Action) String() string {
	switch a {
	case Optimized:
		return "optimized"
	case Copied:
		return "copied"
	case Fallback:
		return "fallback"
	default:
		return "failed"
	}
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	Path    string // relative to the input root
	Action  Action
	Dialect tokentrim.Dialect
	Spans   int

	BlankLinesRemoved int
	WhitespaceRemoved int
	BytesSaved        int

	Err error
}

// Stats aggregates the results of a run.
type Stats struct {
	FilesProcessed    int `json:"files_processed" yaml:"files_processed"`
	FilesCopied       int `json:"files_copied" yaml:"files_copied"`
	FilesFailed       int `json:"files_failed" yaml:"files_failed"`
	BlankLinesRemoved int `json:"blank_lines_removed" yaml:"blank_lines_removed"`
	WhitespaceRemoved int `json:"whitespace_chars_removed" yaml:"whitespace_chars_removed"`
	BytesSaved        int `json:"bytes_saved" yaml:"bytes_saved"`
}

// Add folds r into the totals. Eligible files count as processed even when
// they fell back to a plain copy, with zero savings.
func (s *Stats) Add(r FileResult) {
	switch r.Action {
	case Optimized, Fallback:
		s.FilesProcessed++
	case Copied:
		s.FilesCopied++
	}
	if r.Err != nil {
		s.FilesFailed++
	}
	s.BlankLinesRemoved += r.BlankLinesRemoved
	s.WhitespaceRemoved += r.WhitespaceRemoved
	s.BytesSaved += r.BytesSaved
}
