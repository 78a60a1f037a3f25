package encoding

import "github.com/exeal/ascension/internal/unicode"

// utf16Codec is a byte-for-byte reordering between the document's native
// Char sequence and little- or big-endian UTF-16 bytes.
type utf16Codec struct {
	bigEndian bool
}

func newUTF16Codec(bigEndian bool) *utf16Codec { return &utf16Codec{bigEndian: bigEndian} }

func (c *utf16Codec) Properties() Properties {
	if c.bigEndian {
		return Properties{Name: "UTF-16BE", MIBenum: 1013, Aliases: []string{"UTF-16BE"}, MaximumNativeBytesPerChar: 2, MaximumCharsPerNative: 1, DisplayName: "Unicode (UTF-16BE)"}
	}
	return Properties{Name: "UTF-16LE", MIBenum: 1014, Aliases: []string{"UTF-16LE"}, MaximumNativeBytesPerChar: 2, MaximumCharsPerNative: 1, DisplayName: "Unicode (UTF-16LE)"}
}

func (c *utf16Codec) ResetEncodingState() {}
func (c *utf16Codec) ResetDecodingState() {}

func (c *utf16Codec) putUnit(dst []byte, u unicode.Char) {
	if c.bigEndian {
		dst[0], dst[1] = byte(u>>8), byte(u)
	} else {
		dst[0], dst[1] = byte(u), byte(u>>8)
	}
}

func (c *utf16Codec) getUnit(src []byte) unicode.Char {
	if c.bigEndian {
		return unicode.Char(src[0])<<8 | unicode.Char(src[1])
	}
	return unicode.Char(src[1])<<8 | unicode.Char(src[0])
}

func (c *utf16Codec) bomBytes() []byte {
	if c.bigEndian {
		return bomUTF16BE
	}
	return bomUTF16LE
}

func (c *utf16Codec) FromUnicode(dst []byte, src []unicode.Char, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	si, di := 0, 0
	if flags.Has(BeginningOfBuffer) && flags.Has(UnicodeBOM) {
		mark := c.bomBytes()
		if di+len(mark) > len(dst) {
			return 0, 0, InsufficientBuffer
		}
		copy(dst[di:], mark)
		di += len(mark)
	}
	for si < len(src) {
		if di+2 > len(dst) {
			return si, di, InsufficientBuffer
		}
		c.putUnit(dst[di:], src[si])
		di += 2
		si++
	}
	return si, di, Completed
}

func (c *utf16Codec) ToUnicode(dst []unicode.Char, src []byte, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	si, di := 0, 0
	if flags.Has(BeginningOfBuffer) {
		if rest, ok := stripBOM(src, c.bomBytes()); ok {
			si = len(src) - len(rest)
		}
	}
	for si+2 <= len(src) {
		if di >= len(dst) {
			return si, di, InsufficientBuffer
		}
		dst[di] = c.getUnit(src[si:])
		di++
		si += 2
	}
	if si < len(src) {
		// Trailing odd byte: malformed unless more bytes may still arrive.
		if flags.Has(EndOfBuffer) {
			switch policy {
			case Replace:
				if di >= len(dst) {
					return si, di, InsufficientBuffer
				}
				dst[di] = 0xFFFD
				di++
				si = len(src)
			case Ignore:
				si = len(src)
			default:
				return si, di, MalformedInput
			}
		}
	}
	return si, di, Completed
}

// utf32Codec is a byte-for-byte reordering to/from 32-bit code units; it
// rejects surrogate and out-of-range scalar values per policy.
type utf32Codec struct {
	bigEndian bool
}

func newUTF32Codec(bigEndian bool) *utf32Codec { return &utf32Codec{bigEndian: bigEndian} }

func (c *utf32Codec) Properties() Properties {
	if c.bigEndian {
		return Properties{Name: "UTF-32BE", MIBenum: 1018, Aliases: []string{"UTF-32BE"}, MaximumNativeBytesPerChar: 4, MaximumCharsPerNative: 1, DisplayName: "Unicode (UTF-32BE)"}
	}
	return Properties{Name: "UTF-32LE", MIBenum: 1019, Aliases: []string{"UTF-32LE"}, MaximumNativeBytesPerChar: 4, MaximumCharsPerNative: 1, DisplayName: "Unicode (UTF-32LE)"}
}

func (c *utf32Codec) ResetEncodingState() {}
func (c *utf32Codec) ResetDecodingState() {}

func (c *utf32Codec) bomBytes() []byte {
	if c.bigEndian {
		return bomUTF32BE
	}
	return bomUTF32LE
}

func (c *utf32Codec) putScalar(dst []byte, cp unicode.CodePoint) {
	if c.bigEndian {
		dst[0], dst[1], dst[2], dst[3] = byte(cp>>24), byte(cp>>16), byte(cp>>8), byte(cp)
	} else {
		dst[0], dst[1], dst[2], dst[3] = byte(cp), byte(cp>>8), byte(cp>>16), byte(cp>>24)
	}
}

func (c *utf32Codec) getScalar(src []byte) unicode.CodePoint {
	if c.bigEndian {
		return unicode.CodePoint(src[0])<<24 | unicode.CodePoint(src[1])<<16 | unicode.CodePoint(src[2])<<8 | unicode.CodePoint(src[3])
	}
	return unicode.CodePoint(src[3])<<24 | unicode.CodePoint(src[2])<<16 | unicode.CodePoint(src[1])<<8 | unicode.CodePoint(src[0])
}

func (c *utf32Codec) FromUnicode(dst []byte, src []unicode.Char, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	si, di := 0, 0
	if flags.Has(BeginningOfBuffer) && flags.Has(UnicodeBOM) {
		mark := c.bomBytes()
		if di+len(mark) > len(dst) {
			return 0, 0, InsufficientBuffer
		}
		copy(dst[di:], mark)
		di += len(mark)
	}
	for si < len(src) {
		cp := unicode.CodePoint(src[si])
		width := 1
		if unicode.IsHighSurrogate(src[si]) && si+1 < len(src) && unicode.IsLowSurrogate(src[si+1]) {
			cp = unicode.Decode(src[si], src[si+1])
			width = 2
		} else if unicode.IsSurrogate(src[si]) {
			switch policy {
			case Replace:
				cp = 0xFFFD
			case Ignore:
				si++
				continue
			default:
				return si, di, UnmappableCharacter
			}
		}
		if di+4 > len(dst) {
			return si, di, InsufficientBuffer
		}
		c.putScalar(dst[di:], cp)
		di += 4
		si += width
	}
	return si, di, Completed
}

func (c *utf32Codec) ToUnicode(dst []unicode.Char, src []byte, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	si, di := 0, 0
	if flags.Has(BeginningOfBuffer) {
		if rest, ok := stripBOM(src, c.bomBytes()); ok {
			si = len(src) - len(rest)
		}
	}
	for si+4 <= len(src) {
		cp := c.getScalar(src[si:])
		if !unicode.IsScalarValue(cp) {
			switch policy {
			case Replace:
				cp = 0xFFFD
			case Ignore:
				si += 4
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
		si += 4
	}
	if si < len(src) && flags.Has(EndOfBuffer) {
		if policy == Abort {
			return si, di, MalformedInput
		}
		si = len(src)
	}
	return si, di, Completed
}
