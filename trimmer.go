package tokentrim

import (
	"bytes"
	"fmt"
	"path/filepath"
	"unicode/utf8"
)

// DefaultExtensions lists the extensions eligible for trimming when a
// Config does not name any.
var DefaultExtensions = []string{
	".cs", ".py", ".js", ".ts", ".java", ".cpp", ".h", ".c", ".json", ".html", ".css",
}

// Config holds the settings consumed by the trimmer.
type Config struct {
	// Extensions lists the file extensions eligible for trimming. Code
	// dialect is only used for eligible extensions with a known syntax.
	// If empty, DefaultExtensions is used instead.
	Extensions []string

	// PreserveProse passes markdown documents through untouched instead of
	// trimming them.
	PreserveProse bool
}

// DefaultConfig trims the DefaultExtensions and markdown.
var DefaultConfig = &Config{Extensions: DefaultExtensions}

// Document is a file's content together with the extension that selects
// its dialect.
type Document struct {
	Name    string
	Ext     string
	Content []byte
}

// NewDocument returns a Document whose extension is taken from name.
func NewDocument(name string, content []byte) Document {
	return Document{Name: name, Ext: filepath.Ext(name), Content: content}
}

// Trim is a convenience function that trims content as a file with the
// given extension using the default configuration. This is equivalent to
// calling:
//
//	New(DefaultConfig).Trim(Document{Ext: ext, Content: content})
func Trim(ext string, content []byte) (*Result, error) {
	return New(DefaultConfig).Trim(Document{Ext: ext, Content: content})
}

// TrimString is like Trim for text already held as a string.
func TrimString(ext, text string) (*Result, error) {
	return New(DefaultConfig).TrimString(ext, text)
}

// Trimmer runs the protect, reduce and restore pipeline for one document at
// a time. It holds no mutable state and is safe for concurrent use.
type Trimmer struct {
	config *Config
}

// New creates a new trimmer with the given configuration.
// If config is nil, DefaultConfig will be used instead.
func New(config *Config) *Trimmer {
	if config == nil {
		config = DefaultConfig
	}
	return &Trimmer{config: config}
}

// Config returns the configuration the trimmer was created with.
func (t *Trimmer) Config() *Config { return t.config }

// TrimString trims text as a file with the given extension.
func (t *Trimmer) TrimString(ext, text string) (*Result, error) {
	return t.Trim(Document{Ext: ext, Content: []byte(text)})
}

// Trim selects the document's dialect, protects its literal spans, reduces
// whitespace in the rest and restores the spans.
//
// On error no partial result is returned and the caller should keep the
// original content.
func (t *Trimmer) Trim(doc Document) (*Result, error) {
	if !utf8.Valid(doc.Content) || bytes.IndexByte(doc.Content, 0) >= 0 {
		return nil, fmt.Errorf("failed to decode %s: %w", doc.label(), ErrUndecodable)
	}

	text := string(doc.Content)
	ext := NormalizeExt(doc.Ext)
	dialect := t.config.DialectFor(ext)

	var (
		out   string
		spans int
		err   error
	)

	switch dialect {
	case Verbatim:
		out = text
	case Data:
		var ok bool
		if out, ok = compactJSON(text); !ok {
			dialect = Generic
			out = reduceGeneric(text)
		}
	case Markup:
		out = reduceMarkup(text)
	case Code:
		out, spans, err = protectAndReduce(text, syntaxes[ext], reduceGeneric)
	case Prose:
		out, spans, err = protectAndReduce(text, fenceSyntax, reduceProse)
	default:
		out = reduceGeneric(text)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to trim %s: %w", doc.label(), err)
	}

	res := newResult(text, out)
	res.Dialect = dialect
	res.Spans = spans
	return res, nil
}

// protectAndReduce runs reduce over text with the spans found by s held
// out, then puts the spans back.
func protectAndReduce(text string, s *scanner, reduce func(string) string) (string, int, error) {
	working, tbl, err := protect(text, s)
	if err != nil {
		return "", 0, err
	}
	out, err := tbl.Restore(reduce(working))
	if err != nil {
		return "", 0, err
	}
	return out, tbl.Len(), nil
}

func (d Document) label() string {
	if d.Name != "" {
		return d.Name
	}
	if d.Ext != "" {
		return "<" + d.Ext + ">"
	}
	return "<input>"
}
