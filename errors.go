package tokentrim

import "errors"

var (
	// ErrUndecodable is returned for content that is not UTF-8 text.
	// Callers are expected to copy such files through unchanged.
	ErrUndecodable = errors.New("content is not valid UTF-8 text")

	// ErrPlaceholderCollision is returned when a document already contains
	// the placeholder sentinel, so protected spans could not be restored
	// unambiguously.
	ErrPlaceholderCollision = errors.New("document contains placeholder sentinel")

	// ErrPlaceholderLeak is returned when a placeholder survives
	// restoration. It indicates a defect in a reducer.
	ErrPlaceholderLeak = errors.New("placeholder leaked into output")
)
