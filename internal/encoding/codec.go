package encoding

import "github.com/exeal/ascension/internal/unicode"

// Result is the outcome of a single fromUnicode/toUnicode call.
type Result uint8

const (
	// Completed means the whole input was consumed (subject to buffer limits).
	Completed Result = iota
	// InsufficientBuffer means the destination ran out of room; call again
	// with a larger buffer, resuming from the returned *Next offsets.
	InsufficientBuffer
	// UnmappableCharacter means a source unit has no target representation
	// and the active SubstitutionPolicy is Abort.
	UnmappableCharacter
	// MalformedInput means the source bytes are not valid input for this
	// codec's decoding direction. Never returned by FromUnicode.
	MalformedInput
)

func (r Result) String() string {
	switch r {
	case Completed:
		return "COMPLETED"
	case InsufficientBuffer:
		return "INSUFFICIENT_BUFFER"
	case UnmappableCharacter:
		return "UNMAPPABLE_CHARACTER"
	case MalformedInput:
		return "MALFORMED_INPUT"
	default:
		return "UNKNOWN"
	}
}

// SubstitutionPolicy controls how a codec reacts to characters or bytes it
// cannot convert.
type SubstitutionPolicy uint8

const (
	// Abort stops the conversion and reports UnmappableCharacter/MalformedInput.
	Abort SubstitutionPolicy = iota
	// Replace substitutes the codec's substitution byte (encoding) or U+FFFD
	// (decoding) and continues.
	Replace
	// Ignore drops the offending unit and continues.
	Ignore
)

// Flags is an OR-set of conversion hints passed to FromUnicode/ToUnicode.
type Flags uint8

const (
	// BeginningOfBuffer marks the first call of a conversion: BOM handling
	// only triggers when this flag is set.
	BeginningOfBuffer Flags = 1 << iota
	// EndOfBuffer marks the final call: codecs that accept an implicit
	// terminator (UTF-7's trailing BASE64 flush) only do so when set.
	EndOfBuffer
	// UnicodeBOM requests (on encode) or reports (on decode) a byte order mark.
	UnicodeBOM
)

// Has reports whether all bits of want are set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Properties describes a codec's identity and capacity characteristics.
type Properties struct {
	Name                   string
	MIBenum                int
	Aliases                []string
	MaximumNativeBytesPerChar int
	MaximumCharsPerNative  int
	SubstitutionByte       byte
	DisplayName            string
}

// Codec converts between a document's native UTF-16 Char sequence and the
// bytes of some external encoding. Implementations may carry one byte of
// state across calls (UTF-7's in-BASE64 flag); ResetEncodingState and
// ResetDecodingState clear it for a fresh stream.
type Codec interface {
	Properties() Properties

	// FromUnicode encodes src[0:srcEnd] into dst[0:dstEnd], returning how far
	// it got in each and the outcome. It never returns MalformedInput.
	FromUnicode(dst []byte, src []unicode.Char, flags Flags, policy SubstitutionPolicy) (srcNext, dstNext int, result Result)

	// ToUnicode decodes src[0:srcEnd] into dst[0:dstEnd] (a Char buffer),
	// returning how far it got in each and the outcome.
	ToUnicode(dst []unicode.Char, src []byte, flags Flags, policy SubstitutionPolicy) (srcNext, dstNext int, result Result)

	ResetEncodingState()
	ResetDecodingState()
}

// UnsupportedEncodingError is returned when a codec lookup by name, MIB, or
// platform id fails to resolve to a registered Codec.
type UnsupportedEncodingError struct {
	Name string
}

func (e *UnsupportedEncodingError) Error() string {
	return "encoding: unsupported encoding " + e.Name
}

// UnmappableCharacterError is raised by callers driving a codec under
// SubstitutionPolicy Abort when FromUnicode/ToUnicode reports
// UnmappableCharacter.
type UnmappableCharacterError struct {
	Codec string
}

func (e *UnmappableCharacterError) Error() string {
	return "encoding: unmappable character for " + e.Codec
}

// MalformedInputError is raised by callers driving a codec under
// SubstitutionPolicy Abort when ToUnicode reports MalformedInput.
type MalformedInputError struct {
	Codec string
	Offset int
}

func (e *MalformedInputError) Error() string {
	return "encoding: malformed input for " + e.Codec
}
