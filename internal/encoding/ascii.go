package encoding

import "github.com/exeal/ascension/internal/unicode"

// asciiCodec implements US-ASCII directly rather than borrowing an x/text
// Latin-1 mapper: ASCII rejects every byte >= 0x80, which ISO-8859-1 (its
// nearest x/text neighbor) accepts, so reusing that encoder would silently
// widen the codec's mappable range.
type asciiCodec struct{}

func newASCIICodec() *asciiCodec { return &asciiCodec{} }

func (c *asciiCodec) Properties() Properties {
	return Properties{
		Name:                      "US-ASCII",
		MIBenum:                   3,
		Aliases:                   []string{"ANSI_X3.4-1968", "iso-ir-6", "ANSI_X3.4", "ascii", "us"},
		MaximumNativeBytesPerChar: 1,
		MaximumCharsPerNative:     1,
		SubstitutionByte:          '?',
		DisplayName:               "US-ASCII",
	}
}

func (c *asciiCodec) ResetEncodingState() {}
func (c *asciiCodec) ResetDecodingState() {}

func (c *asciiCodec) FromUnicode(dst []byte, src []unicode.Char, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	si, di := 0, 0
	for si < len(src) {
		u := src[si]
		if u >= 0x80 {
			switch policy {
			case Replace:
				if di >= len(dst) {
					return si, di, InsufficientBuffer
				}
				dst[di] = '?'
				di++
				si++
				continue
			case Ignore:
				si++
				continue
			default:
				return si, di, UnmappableCharacter
			}
		}
		if di >= len(dst) {
			return si, di, InsufficientBuffer
		}
		dst[di] = byte(u)
		di++
		si++
	}
	return si, di, Completed
}

func (c *asciiCodec) ToUnicode(dst []unicode.Char, src []byte, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	si, di := 0, 0
	for si < len(src) {
		b := src[si]
		if b >= 0x80 {
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
		if di >= len(dst) {
			return si, di, InsufficientBuffer
		}
		dst[di] = unicode.Char(b)
		di++
		si++
	}
	return si, di, Completed
}
