// Package fileio binds a document.Document to a file on disk: decoding on
// read, atomic temp-then-rename writes, advisory locking, and a small JSON
// sidecar recording the state a caller needs to reopen a file exactly as
// it found it (component F).
package fileio
