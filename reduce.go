package tokentrim

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// Runs of three or more line breaks, capturing the first so the
	// replacement keeps the document's line ending.
	newlineRun3 = regexp.MustCompile(`(\r?\n)(?:\r?\n){2,}`)
	// Runs of four or more line breaks.
	newlineRun4 = regexp.MustCompile(`(\r?\n)(?:\r?\n){3,}`)

	htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	cssComment  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	spaceRun    = regexp.MustCompile(` {2,}`)
	interTag    = regexp.MustCompile(`>\s+<`)
)

// stripTrailing removes trailing whitespace from every line of text except
// those for which keep reports true. A carriage return ending a line is
// kept so CRLF documents keep their line endings.
func stripTrailing(text string, keep func(line string) bool) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		body, crlf := strings.CutSuffix(line, "\r")
		if keep != nil && keep(body) {
			continue
		}
		body = strings.TrimRight(body, " \t\f\v\r")
		if crlf {
			body += "\r"
		}
		lines[i] = body
	}
	return strings.Join(lines, "\n")
}

// reduceGeneric strips trailing whitespace and leaves at most one blank
// line between content lines. Code uses the same rules on protected text.
func reduceGeneric(text string) string {
	return newlineRun3.ReplaceAllString(stripTrailing(text, nil), "${1}${1}")
}

// hardBreak reports whether a markdown line ends in a hard line break.
func hardBreak(line string) bool { return strings.HasSuffix(line, "  ") }

// reduceProse keeps hard line breaks and allows up to two blank lines,
// which markdown uses to separate headings and paragraphs.
func reduceProse(text string) string {
	return newlineRun4.ReplaceAllString(stripTrailing(text, hardBreak), "${1}${1}${1}")
}

// reduceMarkup deletes comments and whitespace that does not affect
// rendering. Comments are dropped, not protected.
func reduceMarkup(text string) string {
	text = htmlComment.ReplaceAllString(text, "")
	text = cssComment.ReplaceAllString(text, "")
	text = spaceRun.ReplaceAllString(text, " ")
	text = interTag.ReplaceAllString(text, "><")
	return newlineRun3.ReplaceAllString(text, "${1}${1}")
}

// compactJSON re-serializes text without insignificant whitespace. It
// reports false if text is not valid JSON.
func compactJSON(text string) (string, bool) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return "", false
	}
	return buf.String(), true
}
