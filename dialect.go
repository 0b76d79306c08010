package tokentrim

import (
	"slices"
	"strings"
)

// Dialect selects the protect and reduce strategy applied to a document.
// The set is closed; every dialect is bound to a fixed strategy pair in
// [Trimmer.Trim].
type Dialect uint8

const (
	// Generic collapses blank lines and strips trailing whitespace without
	// any awareness of strings or comments.
	Generic Dialect = iota

	// Code protects string literals and comments, then applies the
	// generic line rules to the rest.
	Code

	// Data re-serializes JSON with the most compact separators. Documents
	// that fail to parse fall back to Generic.
	Data

	// Markup deletes HTML and CSS comments and removes inter-tag and
	// repeated whitespace.
	Markup

	// Prose protects fenced code blocks and keeps markdown hard line
	// breaks.
	Prose

	// Verbatim passes the document through untouched.
	Verbatim
)

var dialectNames = [...]string{
	Generic:  "generic",
	Code:     "code",
	Data:     "data",
	Markup:   "markup",
	Prose:    "prose",
	Verbatim: "verbatim",
}

func (d Dialect) String() string {
	if int(d) < len(dialectNames) {
		return dialectNames[d]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (d Dialect) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

var (
	dataExts   = []string{".json"}
	markupExts = []string{".html", ".htm", ".css"}
	proseExts  = []string{".md", ".markdown"}
)

// NormalizeExt lower-cases ext, trims surrounding space and adds a leading
// dot if it is missing. An empty string stays empty.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// DialectFor returns the dialect for a file extension. Code dialect is only
// selected for extensions that are both eligible and known to the syntax
// table; other eligible extensions are treated as Generic.
func (c *Config) DialectFor(ext string) Dialect {
	ext = NormalizeExt(ext)
	switch {
	case slices.Contains(proseExts, ext):
		if c.PreserveProse {
			return Verbatim
		}
		return Prose
	case slices.Contains(dataExts, ext):
		return Data
	case slices.Contains(markupExts, ext):
		return Markup
	}
	if _, ok := syntaxes[ext]; ok && c.hasExtension(ext) {
		return Code
	}
	return Generic
}

// Eligible reports whether files with the given extension should be run
// through the pipeline at all. Markdown is eligible unless prose is
// preserved, regardless of the extension list.
func (c *Config) Eligible(ext string) bool {
	ext = NormalizeExt(ext)
	if slices.Contains(proseExts, ext) {
		return !c.PreserveProse
	}
	return c.hasExtension(ext)
}

// hasExtension checks ext, already normalized, against the eligible set.
// An empty set means DefaultExtensions.
func (c *Config) hasExtension(ext string) bool {
	exts := c.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	return slices.ContainsFunc(exts, func(e string) bool { return NormalizeExt(e) == ext })
}
