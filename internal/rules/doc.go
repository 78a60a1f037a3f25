// Package rules implements the rule-based lexer primitives used by
// partitioners and presentation layers to tokenize a line of text:
// regions, numbers, URIs, word sets, and regular expressions (component
// G). Each Rule inspects the unconsumed text of the current line and
// either returns the Token it recognizes starting at the scanner's current
// position, or reports no match.
package rules
