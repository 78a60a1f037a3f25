package encoding

import (
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/exeal/ascension/internal/unicode"
)

// legacyCodec wraps an x/text/encoding.Encoding (a byte<->UTF-8 transform
// pair) as a Codec, routing through UTF-8 as the pivot since that's the
// format x/text speaks natively; a document's Char buffer is converted to
// and from UTF-8 at the boundary. This is the SBCS/DBCS family described as
// a "wire" table in the registered set: x/text already ships the 256-entry
// (or 16x16 DBCS) mapping tables for every codepage we need to support, so
// there is no reason to hand-roll them.
type legacyCodec struct {
	props Properties
	enc   xencoding.Encoding
}

func newLegacyCodec(props Properties, enc xencoding.Encoding) *legacyCodec {
	return &legacyCodec{props: props, enc: enc}
}

func (c *legacyCodec) Properties() Properties { return c.props }

func (c *legacyCodec) ResetEncodingState() {}
func (c *legacyCodec) ResetDecodingState() {}

func (c *legacyCodec) FromUnicode(dst []byte, src []unicode.Char, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	// Convert the Char slice to UTF-8 first (never fails: a lone surrogate
	// has no UTF-8 form, so it becomes U+FFFD).
	u8 := charsToUTF8(src)

	enc := c.enc.NewEncoder()
	if policy == Replace {
		enc = xencoding.ReplaceUnsupported(enc)
	}
	out, _, err := transformBytes(enc, u8)
	if err != nil {
		if policy == Ignore {
			// x/text has no native "ignore" mode; walk rune by rune and
			// drop whatever doesn't encode.
			return fromUnicodeIgnoring(c.enc, dst, src)
		}
		return 0, 0, UnmappableCharacter
	}
	if len(out) > len(dst) {
		return 0, 0, InsufficientBuffer
	}
	copy(dst, out)
	return len(src), len(out), Completed
}

func fromUnicodeIgnoring(enc xencoding.Encoding, dst []byte, src []unicode.Char) (int, int, Result) {
	di := 0
	si := 0
	for si < len(src) {
		width := 1
		cp := unicode.CodePoint(src[si])
		if unicode.IsHighSurrogate(src[si]) && si+1 < len(src) && unicode.IsLowSurrogate(src[si+1]) {
			cp = unicode.Decode(src[si], src[si+1])
			width = 2
		}
		var buf [4]byte
		n, err := enc.NewEncoder().Transform(buf[:], []byte(string(rune(cp))), true)
		if err == nil {
			if di+n > len(dst) {
				return si, di, InsufficientBuffer
			}
			copy(dst[di:], buf[:n])
			di += n
		}
		si += width
	}
	return si, di, Completed
}

func (c *legacyCodec) ToUnicode(dst []unicode.Char, src []byte, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	dec := c.enc.NewDecoder()
	out, _, err := transformBytes(dec, src)
	if err != nil {
		if policy != Abort {
			// Best effort: whatever the decoder salvaged is still usable;
			// x/text decoders already emit U+FFFD for unmappable bytes.
		} else {
			return 0, 0, MalformedInput
		}
	}
	chars := utf8ToChars(out)
	if len(chars) > len(dst) {
		return 0, 0, InsufficientBuffer
	}
	copy(dst, chars)
	return len(src), len(chars), Completed
}

func transformBytes(t transformer, src []byte) ([]byte, int, error) {
	dst := make([]byte, 0, len(src)*2+16)
	buf := make([]byte, 4096)
	total := 0
	for {
		nDst, nSrc, err := t.Transform(buf, src, true)
		dst = append(dst, buf[:nDst]...)
		total += nSrc
		src = src[nSrc:]
		if err == nil {
			return dst, total, nil
		}
		if err == transform.ErrShortDst {
			continue
		}
		return dst, total, err
	}
}

// transformer is the subset of golang.org/x/text/transform.Transformer this
// package relies on.
type transformer interface {
	Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error)
}

func charsToUTF8(src []unicode.Char) []byte {
	out := make([]byte, 0, len(src)*3)
	i := 0
	for i < len(src) {
		cp := unicode.CodePoint(src[i])
		width := 1
		if unicode.IsHighSurrogate(src[i]) && i+1 < len(src) && unicode.IsLowSurrogate(src[i+1]) {
			cp = unicode.Decode(src[i], src[i+1])
			width = 2
		}
		out = append(out, []byte(string(rune(cp)))...)
		i += width
	}
	return out
}

func utf8ToChars(src []byte) []unicode.Char {
	out := make([]unicode.Char, 0, len(src))
	for _, r := range string(src) {
		var buf [2]unicode.Char
		n, err := unicode.Encode(unicode.CodePoint(r), buf[:])
		if err != nil {
			continue
		}
		out = append(out, buf[:n]...)
	}
	return out
}
