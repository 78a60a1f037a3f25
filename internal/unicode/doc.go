// Package unicode provides the low-level code-unit and code-point primitives
// the rest of the editor core builds on: UTF-16 surrogate tests, scalar
// encode/decode, simple case folding, and bidirectional UTF-16<->UTF-32
// iterator adapters.
//
// Everything here is pure and allocation-free, except CaseFold, which caches
// each result in a package-level map. It deliberately does not use
// the standard library's unicode/utf16 package: that package silently
// substitutes the replacement character for unpaired surrogates, while the
// semantics pinned by this editor's text model require an unpaired high
// surrogate to decode to itself unchanged (see Decode).
package unicode
