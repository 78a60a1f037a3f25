package search

import "github.com/exeal/ascension/internal/document"

var (
	_ document.Listener         = (*IncrementalSearcher)(nil)
	_ document.BookmarkListener = (*IncrementalSearcher)(nil)
)
