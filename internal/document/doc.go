// Package document implements the editable text model: Position/Region
// arithmetic, a Line-granular gap-vector text store, change-tracked
// Points, a nestable compound-undo history, bookmarks, a pluggable
// Partitioner, and the Document type that ties them together behind a
// single replace primitive.
//
// Document combines a buffer, an undo history, and tracked positions
// behind one mutex, with a structured, per-line store so that each line
// can carry its own newline kind — required to round-trip files with
// mixed line endings — plus partitioner/narrowing/bookmark machinery.
package document
