package rules

import (
	"strings"
	"unicode/utf8"
)

// URIDetector recognizes an RFC 3987 IRI (generalized here to a plain
// string scanner; the core has no bidi/script-aware IRI normalization in
// scope) via a small descent recognizer: scheme, then hier-part, then an
// optional query and fragment. An optional scheme whitelist restricts
// which schemes Detect/Search will accept.
type URIDetector struct {
	validSchemes  map[string]struct{}
	caseSensitive bool
}

// NewURIDetector returns a detector that accepts any syntactically valid
// scheme.
func NewURIDetector() *URIDetector { return &URIDetector{} }

// SetValidSchemes restricts the detector to the given scheme names. If
// schemes has exactly one element containing separator, it is split on
// separator first (so callers can pass either a slice or one
// separator-joined string); separator defaults to ",".
func (d *URIDetector) SetValidSchemes(schemes []string, caseSensitive bool, separator string) {
	if separator == "" {
		separator = ","
	}
	list := schemes
	if len(schemes) == 1 && strings.Contains(schemes[0], separator) {
		list = strings.Split(schemes[0], separator)
	}
	d.caseSensitive = caseSensitive
	d.validSchemes = make(map[string]struct{}, len(list))
	for _, s := range list {
		key := strings.TrimSpace(s)
		if !caseSensitive {
			key = strings.ToLower(key)
		}
		if key != "" {
			d.validSchemes[key] = struct{}{}
		}
	}
}

var ianaInstance = func() *URIDetector {
	d := NewURIDetector()
	d.SetValidSchemes([]string{
		"http", "https", "ftp", "ftps", "file", "mailto", "gopher", "news",
		"nntp", "telnet", "ws", "wss", "urn", "data", "ldap", "ssh", "git",
	}, false, ",")
	return d
}()

// DefaultIANAInstance returns the package-wide detector pre-populated with
// IANA-registered schemes.
func DefaultIANAInstance() *URIDetector { return ianaInstance }

func isSchemeStartByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isSchemeCharByte(b byte) bool {
	return isSchemeStartByte(b) || (b >= '0' && b <= '9') || b == '+' || b == '-' || b == '.'
}

// stopRune reports whether r can never appear in a URI reference: ASCII
// whitespace/control characters and the delimiters RFC 3986 excludes from
// the generic URI character set.
func stopRune(r rune) bool {
	if r < 0x20 || r == ' ' {
		return true
	}
	switch r {
	case '<', '>', '"', '{', '}', '|', '\\', '^', '`':
		return true
	}
	return false
}

// handleScheme recognizes ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ) ":" at
// the start of s, returning the byte length consumed (including the
// colon) and whether the scheme passed the whitelist, if any.
func (d *URIDetector) handleScheme(s string) (length int, ok bool) {
	if len(s) == 0 || !isSchemeStartByte(s[0]) {
		return 0, false
	}
	i := 1
	for i < len(s) && isSchemeCharByte(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != ':' {
		return 0, false
	}
	if d.validSchemes != nil {
		key := s[:i]
		if !d.caseSensitive {
			key = strings.ToLower(key)
		}
		if _, found := d.validSchemes[key]; !found {
			return 0, false
		}
	}
	return i + 1, true
}

// handleHierPart consumes hier-part: everything up to the next '?', '#',
// or stopRune.
func (d *URIDetector) handleHierPart(s string) int {
	return scanUntil(s, func(r rune) bool { return r == '?' || r == '#' })
}

// handleQuery consumes a leading '?' followed by query content up to the
// next '#' or stopRune.
func (d *URIDetector) handleQuery(s string) int {
	if len(s) == 0 || s[0] != '?' {
		return 0
	}
	return 1 + scanUntil(s[1:], func(r rune) bool { return r == '#' })
}

// handleFragment consumes a leading '#' followed by fragment content up to
// the next stopRune.
func (d *URIDetector) handleFragment(s string) int {
	if len(s) == 0 || s[0] != '#' {
		return 0
	}
	return 1 + scanUntil(s[1:], func(rune) bool { return false })
}

func scanUntil(s string, extraStop func(rune) bool) int {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if stopRune(r) || extraStop(r) {
			break
		}
		i += size
	}
	return i
}

// Detect attempts to parse an IRI at the very start of s, returning the
// byte length of the match, or 0 if s does not begin with one.
func (d *URIDetector) Detect(s string) int {
	schemeLen, ok := d.handleScheme(s)
	if !ok {
		return 0
	}
	total := schemeLen
	total += d.handleHierPart(s[total:])
	total += d.handleQuery(s[total:])
	total += d.handleFragment(s[total:])
	return total
}

// Span is a byte-offset half-open range within the string Search was
// called on.
type Span struct {
	Start, End int
}

// Search scans s for the first position at which an IRI can be parsed,
// trying every ':'-terminated candidate scheme in turn (so "see
// http://x" finds the match starting at "http", not at "see").
func (d *URIDetector) Search(s string) (Span, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != ':' {
			continue
		}
		start := i
		for start > 0 && isSchemeCharByte(s[start-1]) {
			start--
		}
		for j := start; j <= i; j++ {
			if !isSchemeStartByte(s[j]) {
				continue
			}
			if n := d.Detect(s[j:]); n > 0 {
				return Span{Start: j, End: j + n}, true
			}
		}
	}
	return Span{}, false
}
