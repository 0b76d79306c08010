package tokentrim

import (
	"strconv"
	"strings"
)

// Placeholders are wrapped in private-use runes. No reducer touches
// non-whitespace, so a placeholder reaches the restorer exactly as it was
// inserted.
const (
	sentinelOpen  = '\uE000'
	sentinelClose = '\uE001'
	sentinels     = string(sentinelOpen) + string(sentinelClose)
)

// table maps the placeholders inserted into one document's working text
// back to the spans they replaced. It is discarded after restoration.
type table struct {
	pairs []string // placeholder, original, placeholder, original, ...
	next  [numKinds]int
}

// add records span and returns its placeholder. Indexes count per kind.
func (t *table) add(span Span) string {
	key := string(sentinelOpen) + kindTags[span.Kind] + "_" + strconv.Itoa(t.next[span.Kind]) + string(sentinelClose)
	t.next[span.Kind]++
	t.pairs = append(t.pairs, key, span.Text)
	return key
}

// Len returns the number of protected spans.
func (t *table) Len() int { return len(t.pairs) / 2 }

// Restore replaces every placeholder in working with its original span in
// a single pass.
func (t *table) Restore(working string) (string, error) {
	if t.Len() == 0 {
		return working, nil
	}
	out := strings.NewReplacer(t.pairs...).Replace(working)
	if strings.ContainsAny(out, sentinels) {
		return "", ErrPlaceholderLeak
	}
	return out, nil
}

// protect substitutes every span found by s with a placeholder and returns
// the working text together with the table needed to undo it.
func protect(text string, s *scanner) (string, *table, error) {
	if strings.ContainsAny(text, sentinels) {
		return "", nil, ErrPlaceholderCollision
	}

	t := &table{}
	spans := s.scan(text)
	if len(spans) == 0 {
		return text, t, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, span := range spans {
		b.WriteString(text[last:span.Start])
		b.WriteString(t.add(span))
		last = span.End
	}
	b.WriteString(text[last:])

	return b.String(), t, nil
}
