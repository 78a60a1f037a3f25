// Package search implements the text-search engine (component H): a
// literal Boyer-Moore-Horspool matcher, a TextSearcher combining literal
// and regular-expression matching with bounded pattern/replacement
// history and whole-match boundary checks, and an IncrementalSearcher
// state machine driving a type-as-you-go search session.
package search
