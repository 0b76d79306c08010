package tokentrim

import "strings"

// Result is the outcome of trimming one document.
type Result struct {
	// Content is the trimmed text.
	Content []byte

	// Dialect is the strategy that produced Content. A Data document that
	// failed to parse reports Generic.
	Dialect Dialect

	// Spans is the number of protected spans restored verbatim.
	Spans int

	// BlankLinesRemoved is the drop in "\n\n" occurrences.
	BlankLinesRemoved int

	// WhitespaceRemoved is the drop in space and tab characters.
	WhitespaceRemoved int

	// BytesSaved is the drop in length. It is negative if trimming grew
	// the document.
	BytesSaved int
}

// newResult compares the original and final text. The counters are
// diagnostic and may be negative.
func newResult(original, final string) *Result {
	return &Result{
		Content:           []byte(final),
		BlankLinesRemoved: strings.Count(original, "\n\n") - strings.Count(final, "\n\n"),
		WhitespaceRemoved: countBlanks(original) - countBlanks(final),
		BytesSaved:        len(original) - len(final),
	}
}

func countBlanks(s string) int {
	return strings.Count(s, " ") + strings.Count(s, "\t")
}
