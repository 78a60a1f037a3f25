package encoding

// Byte order marks recognized by the built-in Unicode codecs and the
// UnicodeAutoDetect detector. UTF-32 must be tested before UTF-16 since the
// UTF-32LE mark shares its first two bytes with the UTF-16LE mark.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
)

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if b[i] != p {
			return false
		}
	}
	return true
}

// stripBOM reports whether src begins with mark, returning the remaining
// slice and true if so.
func stripBOM(src, mark []byte) ([]byte, bool) {
	if hasPrefix(src, mark) {
		return src[len(mark):], true
	}
	return src, false
}
