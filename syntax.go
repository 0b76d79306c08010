package tokentrim

import (
	"regexp"
	"strings"
)

// Span is a region of the original text that survives trimming unchanged.
type Span struct {
	Start, End int
	Kind       SpanKind
	Text       string
}

// SpanKind classifies a protected span.
type SpanKind uint8

const (
	// BlockString is a triple-quoted or raw multi-line string literal.
	BlockString SpanKind = iota
	// String is a single or double quoted string literal.
	String
	// Comment is a line or block comment.
	Comment
	// Fence is a fenced code block in prose.
	Fence

	numKinds
)

var kindTags = [numKinds]string{
	BlockString: "BSTR",
	String:      "STR",
	Comment:     "CMT",
	Fence:       "FENCE",
}

func (k SpanKind) String() string {
	if k < numKinds {
		return strings.ToLower(kindTags[k])
	}
	return "unknown"
}

// scanner finds protected spans with a single leftmost-first pass. Each
// capture group of re corresponds to the kind at the same position in
// kinds, so the order of alternation decides which construct wins when two
// start at the same offset.
type scanner struct {
	re    *regexp.Regexp
	kinds []SpanKind
}

// scan returns the spans of text in order. Spans never overlap.
func (s *scanner) scan(text string) []Span {
	var spans []Span
	for _, m := range s.re.FindAllStringSubmatchIndex(text, -1) {
		for i, kind := range s.kinds {
			start, end := m[2*(i+1)], m[2*(i+1)+1]
			if start < 0 {
				continue
			}
			spans = append(spans, Span{Start: start, End: end, Kind: kind, Text: text[start:end]})
			break
		}
	}
	return spans
}

// Fragments of the code scanners. Every opener that has no closer runs to
// the end of the document.
const (
	pyBlockStrings = `"""[\s\S]*?(?:"""|\z)|'''[\s\S]*?(?:'''|\z)`
	tripleStrings  = `"""[\s\S]*?(?:"""|\z)`
	goRawStrings   = "`[^`]*(?:`|\\z)"
	jsTemplates    = "`(?:\\\\[\\s\\S]?|[^`\\\\])*(?:`|\\z)"
	quotedStrings  = `"(?:\\[\s\S]?|[^"\\])*(?:"|\z)|'(?:\\[\s\S]?|[^'\\])*(?:'|\z)`
	hashComments   = `#(?:[^\n]*\S)?`
	cComments      = `//(?:[^\n]*\S)?|/\*[\s\S]*?(?:\*/|\z)`
)

// newCodeScanner builds a scanner that prefers block strings, then quoted
// strings, then comments. An empty block fragment disables that group.
func newCodeScanner(block, comments string) *scanner {
	if block == "" {
		return &scanner{
			re:    regexp.MustCompile(`(` + quotedStrings + `)|(` + comments + `)`),
			kinds: []SpanKind{String, Comment},
		}
	}
	return &scanner{
		re:    regexp.MustCompile(`(` + block + `)|(` + quotedStrings + `)|(` + comments + `)`),
		kinds: []SpanKind{BlockString, String, Comment},
	}
}

var (
	pythonSyntax = newCodeScanner(pyBlockStrings, hashComments)
	goSyntax     = newCodeScanner(goRawStrings, cComments)
	jsSyntax     = newCodeScanner(jsTemplates, cComments)
	jvmSyntax    = newCodeScanner(tripleStrings, cComments)
	cSyntax      = newCodeScanner("", cComments)

	// syntaxes maps the extensions the Code dialect understands to their
	// scanner.
	syntaxes = map[string]*scanner{
		".py":    pythonSyntax,
		".go":    goSyntax,
		".c":     cSyntax,
		".h":     cSyntax,
		".cc":    cSyntax,
		".cpp":   cSyntax,
		".hpp":   cSyntax,
		".cs":    cSyntax,
		".java":  jvmSyntax,
		".js":    jsSyntax,
		".jsx":   jsSyntax,
		".ts":    jsSyntax,
		".tsx":   jsSyntax,
		".kt":    jvmSyntax,
		".swift": jvmSyntax,
		".rs":    cSyntax,
	}

	// fenceSyntax protects fenced blocks in prose, each running to the
	// nearest matching delimiter.
	fenceSyntax = &scanner{
		re:    regexp.MustCompile("(```[\\s\\S]*?(?:```|\\z)|~~~[\\s\\S]*?(?:~~~|\\z))"),
		kinds: []SpanKind{Fence},
	}
)

// Spans reports the regions of text that are protected from whitespace
// reduction when a file with extension ext is trimmed. Dialects without
// span protection return nil.
func (c *Config) Spans(ext, text string) []Span {
	if s := c.scannerFor(c.DialectFor(ext), NormalizeExt(ext)); s != nil {
		return s.scan(text)
	}
	return nil
}

func (c *Config) scannerFor(d Dialect, ext string) *scanner {
	switch d {
	case Code:
		return syntaxes[ext]
	case Prose:
		return fenceSyntax
	default:
		return nil
	}
}
