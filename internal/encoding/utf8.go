package encoding

import "github.com/exeal/ascension/internal/unicode"

// utf8Codec implements the UTF-8 transformation format with the exact
// malformed-input behavior the registry depends on: overlong sequences,
// isolated surrogates in the byte stream, and code points beyond
// U+10FFFF are all rejected rather than silently substituted, matching the
// strict decode table (not Go's stdlib unicode/utf8, which repairs bad
// sequences byte-by-byte instead of reporting exactly where they start).
type utf8Codec struct{}

func newUTF8Codec() *utf8Codec { return &utf8Codec{} }

func (c *utf8Codec) Properties() Properties {
	return Properties{
		Name:                      "UTF-8",
		MIBenum:                   106,
		Aliases:                   []string{"unicode-1-1-utf-8", "UTF8"},
		MaximumNativeBytesPerChar: 4,
		MaximumCharsPerNative:     1,
		SubstitutionByte:          '?',
		DisplayName:               "Unicode (UTF-8)",
	}
}

func (c *utf8Codec) ResetEncodingState() {}
func (c *utf8Codec) ResetDecodingState() {}

func (c *utf8Codec) FromUnicode(dst []byte, src []unicode.Char, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	si, di := 0, 0
	if flags.Has(BeginningOfBuffer) && flags.Has(UnicodeBOM) {
		if di+len(bomUTF8) > len(dst) {
			return 0, 0, InsufficientBuffer
		}
		copy(dst[di:], bomUTF8)
		di += len(bomUTF8)
	}
	for si < len(src) {
		c := unicode.CodePoint(src[si])
		width := 1
		if unicode.IsHighSurrogate(src[si]) {
			if si+1 >= len(src) {
				// Unpaired high surrogate at end of input: wait for more,
				// do not advance past it.
				break
			}
			if unicode.IsLowSurrogate(src[si+1]) {
				c = unicode.Decode(src[si], src[si+1])
				width = 2
			}
			// else: isolated high surrogate, fall through and encode as-is
			// (or substitute, per policy, below).
		}

		n := utf8EncodedLen(c)
		if n == 0 {
			switch policy {
			case Replace:
				c, n = 0xFFFD, 3
			case Ignore:
				si += width
				continue
			default:
				return si, di, UnmappableCharacter
			}
		}
		if di+n > len(dst) {
			return si, di, InsufficientBuffer
		}
		utf8Encode(dst[di:], c, n)
		di += n
		si += width
	}
	return si, di, Completed
}

func utf8EncodedLen(c unicode.CodePoint) int {
	switch {
	case c < 0x80:
		return 1
	case c < 0x800:
		return 2
	case c < 0x10000:
		if unicode.IsSurrogateCodePoint(c) {
			return 0
		}
		return 3
	case c <= unicode.MaxCodePoint:
		return 4
	default:
		return 0
	}
}

func utf8Encode(dst []byte, c unicode.CodePoint, n int) {
	switch n {
	case 1:
		dst[0] = byte(c)
	case 2:
		dst[0] = 0xC0 | byte(c>>6)
		dst[1] = 0x80 | byte(c&0x3F)
	case 3:
		dst[0] = 0xE0 | byte(c>>12)
		dst[1] = 0x80 | byte((c>>6)&0x3F)
		dst[2] = 0x80 | byte(c&0x3F)
	case 4:
		dst[0] = 0xF0 | byte(c>>18)
		dst[1] = 0x80 | byte((c>>12)&0x3F)
		dst[2] = 0x80 | byte((c>>6)&0x3F)
		dst[3] = 0x80 | byte(c&0x3F)
	}
}

// utf8Class describes the well-formed continuation-byte ranges for one of
// the eight first-byte classes recognized by the decoder, keyed by the
// first byte's high bits (RFC 3629 Table 3-7).
type utf8Class struct {
	length   int
	lo2, hi2 byte // valid range for the second byte; 0,0xFF means any continuation
}

func classifyUTF8Lead(b byte) (utf8Class, bool) {
	switch {
	case b < 0x80:
		return utf8Class{length: 1}, true
	case b>>5 == 0x6: // 110xxxxx
		if b < 0xC2 { // C0, C1: overlong
			return utf8Class{}, false
		}
		return utf8Class{length: 2, lo2: 0x80, hi2: 0xBF}, true
	case b == 0xE0:
		return utf8Class{length: 3, lo2: 0xA0, hi2: 0xBF}, true
	case b>>4 == 0xE && b != 0xE0 && b != 0xED:
		return utf8Class{length: 3, lo2: 0x80, hi2: 0xBF}, true
	case b == 0xED:
		return utf8Class{length: 3, lo2: 0x80, hi2: 0x9F}, true // excludes surrogates D800-DFFF
	case b == 0xF0:
		return utf8Class{length: 4, lo2: 0x90, hi2: 0xBF}, true
	case b == 0xF4:
		return utf8Class{length: 4, lo2: 0x80, hi2: 0x8F}, true // caps at 10FFFF
	case b>>3 == 0x1E && b != 0xF0 && b != 0xF4: // F1-F3
		return utf8Class{length: 4, lo2: 0x80, hi2: 0xBF}, true
	default:
		return utf8Class{}, false
	}
}

func (c *utf8Codec) ToUnicode(dst []unicode.Char, src []byte, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	si, di := 0, 0
	if flags.Has(BeginningOfBuffer) {
		if rest, ok := stripBOM(src, bomUTF8); ok {
			si = len(src) - len(rest)
		}
	}
	for si < len(src) {
		class, ok := classifyUTF8Lead(src[si])
		if !ok {
			if !malformed(&si, &di, dst, policy, 1) {
				return si, di, MalformedInput
			}
			continue
		}
		if class.length == 1 {
			if di >= len(dst) {
				return si, di, InsufficientBuffer
			}
			dst[di] = unicode.Char(src[si])
			di++
			si++
			continue
		}
		if si+class.length > len(src) {
			if flags.Has(EndOfBuffer) {
				if !malformed(&si, &di, dst, policy, len(src)-si) {
					return si, di, MalformedInput
				}
				continue
			}
			break // need more bytes
		}
		if src[si+1] < class.lo2 || src[si+1] > class.hi2 {
			if !malformed(&si, &di, dst, policy, 1) {
				return si, di, MalformedInput
			}
			continue
		}
		valid := true
		for k := 2; k < class.length; k++ {
			if src[si+k]&0xC0 != 0x80 {
				valid = false
				break
			}
		}
		if !valid {
			if !malformed(&si, &di, dst, policy, 1) {
				return si, di, MalformedInput
			}
			continue
		}
		cp := decodeUTF8(src[si : si+class.length])
		need := unicode.EncodedLen(cp)
		if di+need > len(dst) {
			return si, di, InsufficientBuffer
		}
		var buf [2]unicode.Char
		w, _ := unicode.Encode(cp, buf[:])
		copy(dst[di:], buf[:w])
		di += w
		si += class.length
	}
	return si, di, Completed
}

func decodeUTF8(b []byte) unicode.CodePoint {
	switch len(b) {
	case 1:
		return unicode.CodePoint(b[0])
	case 2:
		return unicode.CodePoint(b[0]&0x1F)<<6 | unicode.CodePoint(b[1]&0x3F)
	case 3:
		return unicode.CodePoint(b[0]&0x0F)<<12 | unicode.CodePoint(b[1]&0x3F)<<6 | unicode.CodePoint(b[2]&0x3F)
	case 4:
		return unicode.CodePoint(b[0]&0x07)<<18 | unicode.CodePoint(b[1]&0x3F)<<12 | unicode.CodePoint(b[2]&0x3F)<<6 | unicode.CodePoint(b[3]&0x3F)
	}
	return 0
}

// malformed applies policy to one malformed byte (or run, for IGNORE it
// skips exactly n bytes representing the bad lead sequence) and reports
// whether the caller should continue scanning.
func malformed(si, di *int, dst []unicode.Char, policy SubstitutionPolicy, n int) bool {
	switch policy {
	case Replace:
		if *di >= len(dst) {
			return false
		}
		dst[*di] = 0xFFFD
		*di++
		*si += n
		return true
	case Ignore:
		*si += n
		return true
	default:
		return false
	}
}
