package encoding

import (
	"strconv"
	"strings"
)

// registry is the process-wide codec table, keyed by MIBenum and by
// case-folded name. It is populated once at package init from the built-in
// Unicode codecs and the legacy codepage table.
type registry struct {
	byMIB  map[int]Codec
	byName map[string]Codec
	all    []Properties
}

var globalRegistry = newRegistry()

func newRegistry() *registry {
	r := &registry{
		byMIB:  make(map[int]Codec),
		byName: make(map[string]Codec),
	}
	r.register(newUTF8Codec())
	r.register(newUTF16Codec(false))
	r.register(newUTF16Codec(true))
	r.register(newUTF32Codec(false))
	r.register(newUTF32Codec(true))
	r.register(newUTF7Codec())
	r.register(newUTF5Codec())
	r.register(newASCIICodec())
	for _, e := range legacyTable {
		r.register(newLegacyCodec(e.props, e.enc))
	}
	return r
}

func (r *registry) register(c Codec) {
	props := c.Properties()
	if props.MIBenum != 0 {
		r.byMIB[props.MIBenum] = c
	}
	r.byName[foldName(props.Name)] = c
	for _, a := range props.Aliases {
		r.byName[foldName(a)] = c
	}
	r.all = append(r.all, props)
}

// foldName normalizes a charset name per UTS #22 §1.4: case-fold, drop
// everything that isn't alphanumeric, and strip leading zeros that follow a
// non-alphanumeric boundary (so "ISO-8859-1" and "iso_8859_01" match but
// "UTF-80" does not collapse into "UTF-8").
func foldName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	prevWasBoundary := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if r == '0' && prevWasBoundary {
				// leading zero right after a non-alnum boundary: drop it
				continue
			}
			b.WriteRune(r)
			prevWasBoundary = false
		default:
			prevWasBoundary = true
		}
	}
	return b.String()
}

// ForMib looks up a codec by IANA MIBenum.
func ForMib(id int) (Codec, error) {
	if c, ok := globalRegistry.byMIB[id]; ok {
		return c, nil
	}
	return nil, &UnsupportedEncodingError{Name: "<mib:" + strconv.Itoa(id) + ">"}
}

// ForName looks up a codec by its primary name or any registered alias,
// using UTS #22 charset-name matching rules.
func ForName(name string) (Codec, error) {
	if c, ok := globalRegistry.byName[foldName(name)]; ok {
		return c, nil
	}
	return nil, &UnsupportedEncodingError{Name: name}
}

// windowsCodePageToMIB maps a Windows codepage number to its MIBenum, for
// the subset this registry carries.
var windowsCodePageToMIB = map[int]int{
	1250: 2250, 1251: 2251, 1252: 2252, 1253: 2253, 1254: 2254,
	1255: 2255, 1256: 2256, 1257: 2257, 1258: 2258,
	932: 17, // Shift_JIS
	949: 38, // EUC-KR is the closest registered relative of cp949
	936: 113, // GBK
	950: 2026, // Big5
	65001: 106, // UTF-8
}

// ForWindowsCodePage looks up a codec by Windows codepage number.
func ForWindowsCodePage(cp int) (Codec, error) {
	if mib, ok := windowsCodePageToMIB[cp]; ok {
		return ForMib(mib)
	}
	return nil, &UnsupportedEncodingError{Name: "<cp:" + strconv.Itoa(cp) + ">"}
}

// ccsidToMIB maps a subset of IBM CCSIDs onto MIBenum, for legacy
// EBCDIC-adjacent interchange: three ASCII-compatible entries plus UTF-16
// (CCSID 1200). No codec is registered under MIB 1015, so ForCcsid(1200)
// returns an UnsupportedEncodingError.
var ccsidToMIB = map[int]int{
	367: 3,   // US-ASCII
	819: 4,   // ISO-8859-1
	1208: 106, // UTF-8
	1200: 1015, // UTF-16
}

// ForCcsid looks up a codec by IBM Coded Character Set Identifier.
func ForCcsid(id int) (Codec, error) {
	if mib, ok := ccsidToMIB[id]; ok {
		return ForMib(mib)
	}
	return nil, &UnsupportedEncodingError{Name: "<ccsid:" + strconv.Itoa(id) + ">"}
}

// Aliases returns the registered alias names for the codec known by name
// (its primary name or any existing alias), grounded on
// original_source/.../corelib/encoder.hpp's per-MIB alias table.
func Aliases(name string) ([]string, error) {
	c, err := ForName(name)
	if err != nil {
		return nil, err
	}
	return c.Properties().Aliases, nil
}

// AvailableEncodings returns the Properties of every registered codec.
func AvailableEncodings() []Properties {
	out := make([]Properties, len(globalRegistry.all))
	copy(out, globalRegistry.all)
	return out
}

// DefaultInstance returns the platform default codec. Ascension has no
// locale-detection story of its own, so this is pinned to UTF-8, the
// universal safe default for source text.
func DefaultInstance() Codec {
	c, _ := ForMib(106)
	return c
}

