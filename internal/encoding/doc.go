// Package encoding implements the codec framework used to translate between
// a document's internal UTF-16 representation and the bytes of a file on
// disk: a Codec trait, a registry keyed by MIBenum and name, the built-in
// Unicode transformation formats (UTF-8/16/32/7/5), a family of legacy
// single- and double-byte codecs built on golang.org/x/text/encoding, and an
// EncodingDetector that guesses a byte stream's encoding from its leading
// bytes.
//
// Every codec speaks the same four-value Result protocol (COMPLETED,
// INSUFFICIENT_BUFFER, UNMAPPABLE_CHARACTER, MALFORMED_INPUT) so callers can
// drive a conversion loop uniformly regardless of which codec is plugged in:
// grow the destination buffer on INSUFFICIENT_BUFFER, apply the configured
// SubstitutionPolicy on UNMAPPABLE_CHARACTER/MALFORMED_INPUT, and otherwise
// stop. fromUnicode never reports MALFORMED_INPUT: a UTF-16 document is
// always well-formed UTF-16 to the encoder's eyes (isolated surrogates are
// handled by policy, not rejected as malformed).
package encoding
