package search

// PatternKind tags which matcher a TextSearcher's current pattern uses.
type PatternKind uint8

const (
	// Literal compares code points directly via LiteralPattern.
	Literal PatternKind = iota
	// Regex compiles the pattern as a regular expression.
	Regex
	// Migemo is accepted for source compatibility but always behaves as
	// Regex: the MIGEMO transliteration plugin is out of scope here, so
	// per the resolved open question a MIGEMO pattern is treated as an
	// already-compiled regular expression.
	Migemo
)

// WholeMatch constrains which matches Search/ReplaceAll accept based on
// where the match's endpoints fall relative to a larger textual unit.
type WholeMatch uint8

const (
	// CodeUnit accepts any match; no boundary check is performed.
	CodeUnit WholeMatch = iota
	// GraphemeCluster requires both endpoints to sit on a UAX #29
	// grapheme-cluster boundary.
	GraphemeCluster
	// Word requires both endpoints to sit on a word boundary.
	Word
)
