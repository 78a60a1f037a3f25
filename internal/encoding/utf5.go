package encoding

import "github.com/exeal/ascension/internal/unicode"

// utf5Codec implements the project's own hex-nibble transport: the first
// nibble of a code point is written as a letter in G..V (value 0..15), and
// each continuation nibble as 0..9A..F, most significant nibble first. A
// code point occupies between 1 and 8 characters depending on its
// magnitude. There is no registered MIBenum for this scheme; it exists for
// round-tripping content through legacy 7-bit transports that reject UTF-7's
// BASE64 runs.
type utf5Codec struct{}

func newUTF5Codec() *utf5Codec { return &utf5Codec{} }

func (c *utf5Codec) Properties() Properties {
	return Properties{
		Name:                      "UTF-5",
		MIBenum:                   0,
		MaximumNativeBytesPerChar: 8,
		MaximumCharsPerNative:     1,
		DisplayName:               "Unicode (UTF-5)",
	}
}

func (c *utf5Codec) ResetEncodingState() {}
func (c *utf5Codec) ResetDecodingState() {}

// nibbles returns the minimal big-endian nibble sequence for cp: the fewest
// nibbles whose combined bit width can represent cp, at least 1.
func nibblesFor(cp unicode.CodePoint) []byte {
	if cp == 0 {
		return []byte{0}
	}
	var rev []byte
	v := cp
	for v > 0 {
		rev = append(rev, byte(v&0xF))
		v >>= 4
	}
	out := make([]byte, len(rev))
	for i, n := range rev {
		out[len(rev)-1-i] = n
	}
	return out
}

func (c *utf5Codec) FromUnicode(dst []byte, src []unicode.Char, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	si, di := 0, 0
	for si < len(src) {
		cp := unicode.CodePoint(src[si])
		width := 1
		if unicode.IsHighSurrogate(src[si]) && si+1 < len(src) && unicode.IsLowSurrogate(src[si+1]) {
			cp = unicode.Decode(src[si], src[si+1])
			width = 2
		}
		nb := nibblesFor(cp)
		if di+len(nb) > len(dst) {
			return si, di, InsufficientBuffer
		}
		dst[di] = 'G' + nb[0]
		for i := 1; i < len(nb); i++ {
			dst[di+i] = hexDigit(nb[i])
		}
		di += len(nb)
		si += width
	}
	return si, di, Completed
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + (n - 10)
}

func hexValue(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

func (c *utf5Codec) ToUnicode(dst []unicode.Char, src []byte, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	si, di := 0, 0
	for si < len(src) {
		lead := src[si]
		if lead < 'G' || lead > 'V' {
			switch policy {
			case Replace:
				if di >= len(dst) {
					return si, di, InsufficientBuffer
				}
				dst[di] = 0xFFFD
				di++
				si++
				continue
			case Ignore:
				si++
				continue
			default:
				return si, di, MalformedInput
			}
		}
		cp := unicode.CodePoint(lead - 'G')
		j := si + 1
		for j < len(src) {
			v, ok := hexValue(src[j])
			if !ok {
				break
			}
			cp = cp<<4 | unicode.CodePoint(v)
			j++
		}
		if !unicode.IsScalarValue(cp) {
			switch policy {
			case Replace:
				cp = 0xFFFD
			case Ignore:
				si = j
				continue
			default:
				return si, di, MalformedInput
			}
		}
		need := unicode.EncodedLen(cp)
		if need == 0 {
			need = 1
		}
		if di+need > len(dst) {
			return si, di, InsufficientBuffer
		}
		var buf [2]unicode.Char
		w, err := unicode.Encode(cp, buf[:])
		if err != nil {
			w = 1
			buf[0] = 0xFFFD
		}
		copy(dst[di:], buf[:w])
		di += w
		si = j
	}
	return si, di, Completed
}
