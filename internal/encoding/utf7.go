package encoding

import "github.com/exeal/ascension/internal/unicode"

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var base64Reverse [128]int8

func init() {
	for i := range base64Reverse {
		base64Reverse[i] = -1
	}
	for i, c := range base64Alphabet {
		base64Reverse[c] = int8(i)
	}
}

// isDirectD7 reports whether c is in UTF-7's "Set D" (RFC 2152): characters
// that are always passed through unencoded.
func isDirectD7(c unicode.Char) bool {
	if c > 0x7F {
		return false
	}
	b := byte(c)
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '\'', '(', ')', ',', '-', '.', '/', ':', '?',
		' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// utf7Codec implements RFC 2152 modified BASE64 Unicode transport. It
// carries shift state for each direction across FromUnicode/ToUnicode
// calls: whether the stream is inside a BASE64 shift sequence, plus the
// bits accumulated but not yet emitted.
type utf7Codec struct {
	encodingInB64 bool
	encBitBuf     uint32
	encBitCount   uint8
	// decoding state
	decodingInB64 bool
	bitBuf        uint32
	bitCount      uint8
}

func newUTF7Codec() *utf7Codec { return &utf7Codec{} }

func (c *utf7Codec) Properties() Properties {
	return Properties{
		Name:                      "UTF-7",
		MIBenum:                   1012,
		Aliases:                   []string{"csUnicode11UTF7"},
		MaximumNativeBytesPerChar: 8,
		MaximumCharsPerNative:     1,
		DisplayName:               "Unicode (UTF-7)",
	}
}

func (c *utf7Codec) ResetEncodingState() {
	c.encodingInB64 = false
	c.encBitBuf, c.encBitCount = 0, 0
}
func (c *utf7Codec) ResetDecodingState() {
	c.decodingInB64 = false
	c.bitBuf = 0
	c.bitCount = 0
}

func (c *utf7Codec) FromUnicode(dst []byte, src []unicode.Char, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	si, di := 0, 0
	bitBuf, bitCount := c.encBitBuf, c.encBitCount
	defer func() { c.encBitBuf, c.encBitCount = bitBuf, bitCount }()

	flush := func() bool {
		for bitCount >= 6 {
			if di >= len(dst) {
				return false
			}
			shift := bitCount - 6
			idx := (bitBuf >> shift) & 0x3F
			dst[di] = base64Alphabet[idx]
			di++
			bitCount -= 6
		}
		return true
	}
	closeB64 := func() bool {
		if bitCount > 0 {
			if di >= len(dst) {
				return false
			}
			idx := (bitBuf << (6 - bitCount)) & 0x3F
			dst[di] = base64Alphabet[idx]
			di++
			bitCount = 0
		}
		if di >= len(dst) {
			return false
		}
		dst[di] = '-'
		di++
		c.encodingInB64 = false
		return true
	}

	for si < len(src) {
		u := src[si]
		if isDirectD7(u) {
			if c.encodingInB64 {
				if !closeB64() {
					return si, di, InsufficientBuffer
				}
			}
			if di >= len(dst) {
				return si, di, InsufficientBuffer
			}
			dst[di] = byte(u)
			di++
			si++
			continue
		}
		if u == '+' {
			if c.encodingInB64 {
				if !closeB64() {
					return si, di, InsufficientBuffer
				}
			}
			if di+2 > len(dst) {
				return si, di, InsufficientBuffer
			}
			dst[di], dst[di+1] = '+', '-'
			di += 2
			si++
			continue
		}
		if !c.encodingInB64 {
			if di >= len(dst) {
				return si, di, InsufficientBuffer
			}
			dst[di] = '+'
			di++
			c.encodingInB64 = true
			bitBuf, bitCount = 0, 0
		}
		bitBuf = bitBuf<<16 | uint32(u)
		bitCount += 16
		if !flush() {
			return si, di, InsufficientBuffer
		}
		si++
	}
	if flags.Has(EndOfBuffer) && c.encodingInB64 {
		if !closeB64() {
			return si, di, InsufficientBuffer
		}
	}
	return si, di, Completed
}

func (c *utf7Codec) ToUnicode(dst []unicode.Char, src []byte, flags Flags, policy SubstitutionPolicy) (int, int, Result) {
	si, di := 0, 0
	emit := func(u unicode.Char) bool {
		if di >= len(dst) {
			return false
		}
		dst[di] = u
		di++
		return true
	}
	for si < len(src) {
		b := src[si]
		if !c.decodingInB64 {
			if b == '+' {
				c.decodingInB64 = true
				c.bitBuf, c.bitCount = 0, 0
				si++
				continue
			}
			if b > 0x7F {
				switch policy {
				case Replace:
					if !emit(0xFFFD) {
						return si, di, InsufficientBuffer
					}
					si++
					continue
				case Ignore:
					si++
					continue
				default:
					return si, di, MalformedInput
				}
			}
			if !emit(unicode.Char(b)) {
				return si, di, InsufficientBuffer
			}
			si++
			continue
		}
		// in BASE64
		if b == '-' {
			if c.bitCount == 0 {
				// "+-" escapes a literal '+'
				if !emit('+') {
					return si, di, InsufficientBuffer
				}
			}
			c.decodingInB64 = false
			si++
			continue
		}
		v := int8(-1)
		if b < 128 {
			v = base64Reverse[b]
		}
		if v < 0 {
			// non-BASE64 byte implicitly ends the shift sequence
			c.decodingInB64 = false
			continue
		}
		c.bitBuf = c.bitBuf<<6 | uint32(v)
		c.bitCount += 6
		si++
		if c.bitCount >= 16 {
			shift := c.bitCount - 16
			u := unicode.Char(c.bitBuf >> shift)
			c.bitCount -= 16
			c.bitBuf &= (1 << shift) - 1
			if !emit(u) {
				return si, di, InsufficientBuffer
			}
		}
	}
	if flags.Has(EndOfBuffer) {
		c.decodingInB64 = false
		c.bitCount = 0
	}
	return si, di, Completed
}
