package fileio

import (
	"bufio"
	"io"
	"strings"
	stdutf16 "unicode/utf16"

	"github.com/exeal/ascension/internal/document"
	"github.com/exeal/ascension/internal/encoding"
	"github.com/exeal/ascension/internal/unicode"
)

// decodeChunkUnits is the number of UTF-16 code units decoded per Codec
// call. Kept small enough that a malformed-input error reports a sensible
// byte offset, large enough that decoding a typical file takes a handful of
// calls rather than one per rune.
const decodeChunkUnits = 4096

// TextFileStreamBuffer decodes a byte stream through an encoding.Codec in
// bounded chunks, accumulating the result in a strings.Builder. The whole
// decoded text is handed to Document.Insert as one call, which already
// knows how to split it into Lines at each of the six literal newline
// kinds (document.splitIntoLines) — reimplementing that recognition here
// would just be a worse copy of it.
type TextFileStreamBuffer struct {
	codec   encoding.Codec
	policy  encoding.SubstitutionPolicy
	builder strings.Builder
	bom     bool
}

// NewTextFileStreamBuffer returns a buffer that decodes with codec. If bom
// is true, a UTF byte order mark is expected on Decode and emitted on
// Encode.
func NewTextFileStreamBuffer(codec encoding.Codec, policy encoding.SubstitutionPolicy, bom bool) *TextFileStreamBuffer {
	return &TextFileStreamBuffer{
		codec:  codec,
		policy: policy,
		bom:    bom,
	}
}

// Decode reads all of r, decoding through the buffer's codec into UTF-8 and
// appending to the internal builder. It returns the byte offset of the
// first malformed input encountered, if any, wrapped in a
// *MalformedInputError.
func (b *TextFileStreamBuffer) Decode(path string, r io.Reader) error {
	br := bufio.NewReaderSize(r, decodeChunkUnits*4)
	if b.bom {
		if err := consumeBOM(br, b.codec); err != nil {
			return err
		}
	}

	raw := make([]byte, decodeChunkUnits*4)
	dst := make([]unicode.Char, decodeChunkUnits)
	scratch := make([]byte, 0, decodeChunkUnits*4)
	var consumed int64
	b.codec.ResetDecodingState()

	for {
		n, readErr := br.Read(raw)
		if n > 0 {
			scratch = append(scratch, raw[:n]...)
			for len(scratch) > 0 {
				srcNext, dstNext, result := b.codec.ToUnicode(dst, scratch, 0, b.policy)
				if dstNext > 0 {
					b.builder.WriteString(charsToUTF8(dst[:dstNext]))
				}
				switch result {
				case encoding.MalformedInput:
					return &MalformedInputError{Path: path, Offset: consumed + int64(srcNext)}
				case encoding.InsufficientBuffer:
					scratch = scratch[srcNext:]
					consumed += int64(srcNext)
					continue
				default: // Completed
					scratch = scratch[srcNext:]
					consumed += int64(srcNext)
				}
				if srcNext == 0 && dstNext == 0 {
					// Codec needs more bytes than we have buffered; break
					// out to refill from the reader.
					break
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}
	return nil
}

// Text finalizes the decoded content as a single UTF-16 sequence, ready to
// feed through Document.Insert.
func (b *TextFileStreamBuffer) Text() []unicode.Char {
	return stringToUTF16(b.builder.String())
}

// Encode renders lines through the buffer's codec, emitting a BOM first if
// configured, and writes the result to w.
func (b *TextFileStreamBuffer) Encode(path string, w io.Writer, lines []document.Line, finalNewline document.Newline) error {
	if b.bom {
		if mark := bomFor(b.codec); mark != nil {
			if _, err := w.Write(mark); err != nil {
				return err
			}
		}
	}

	b.codec.ResetEncodingState()
	dst := make([]byte, decodeChunkUnits*4)
	for _, line := range lines {
		units := append([]unicode.Char(nil), line.Text...)
		nl := line.Newline
		if nl == document.DocumentInputNewline {
			nl = finalNewline
		}
		if nl.IsLiteral() {
			units = append(units, nl.UTF16()...)
		}
		for len(units) > 0 {
			srcNext, dstNext, result := b.codec.FromUnicode(dst, units, 0, b.policy)
			if dstNext > 0 {
				if _, err := w.Write(dst[:dstNext]); err != nil {
					return err
				}
			}
			if result == encoding.UnmappableCharacter {
				return &UnmappableCharacterError{Path: path}
			}
			if srcNext == 0 {
				break
			}
			units = units[srcNext:]
		}
	}
	return nil
}

var bomMarks = map[string][]byte{
	"UTF-8":    {0xEF, 0xBB, 0xBF},
	"UTF-16LE": {0xFF, 0xFE},
	"UTF-16BE": {0xFE, 0xFF},
	"UTF-32LE": {0xFF, 0xFE, 0x00, 0x00},
	"UTF-32BE": {0x00, 0x00, 0xFE, 0xFF},
}

// bomFor returns the byte order mark for codec's name, or nil if it has
// none (legacy single- and double-byte encodings never take a BOM).
func bomFor(codec encoding.Codec) []byte {
	return bomMarks[codec.Properties().Name]
}

// consumeBOM peeks for and discards the codec's byte order mark, if
// present, so the first decoded line doesn't carry it as a leading
// zero-width character.
func consumeBOM(br *bufio.Reader, codec encoding.Codec) error {
	mark := bomFor(codec)
	if mark == nil {
		return nil
	}
	peek, err := br.Peek(len(mark))
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	match := true
	for i, b := range mark {
		if peek[i] != b {
			match = false
			break
		}
	}
	if match {
		_, _ = br.Discard(len(mark))
	}
	return nil
}

func charsToUTF8(src []unicode.Char) string {
	return string(stdutf16.Decode(src))
}

func stringToUTF16(s string) []unicode.Char {
	return stdutf16.Encode([]rune(s))
}
