// Package tokentrim reduces the size of source-like files by stripping
// redundant whitespace and blank lines while leaving their meaning intact.
//
// Each document is trimmed by one of a closed set of dialects, chosen from
// its file extension:
//   - Code: string literals and comments are protected, then trailing
//     whitespace is stripped and blank lines are capped at one
//   - Data: JSON is re-serialized with the most compact separators
//   - Markup: HTML and CSS comments are deleted along with inter-tag and
//     repeated whitespace
//   - Prose: fenced code blocks are protected and markdown hard line
//     breaks are kept, with blank lines capped at two
//   - Generic: trailing whitespace and extra blank lines only
//
// Protected spans are swapped for placeholders before any whitespace rule
// runs and are restored byte-for-byte afterwards, so a comment marker in a
// string or blank lines in a block comment are never touched.
//
// Basic usage:
//
//	// Using default configuration
//	res, err := tokentrim.Trim(".py", source)
//
//	// Using custom configuration
//	config := &tokentrim.Config{
//		Extensions:    []string{".go", ".py"},
//		PreserveProse: true,
//	}
//	trimmer := tokentrim.New(config)
//	res, err := trimmer.Trim(tokentrim.NewDocument("main.go", source))
//
// The Result carries the trimmed content and diagnostic counters. When Trim
// returns an error the original content should be kept as is.
package tokentrim
