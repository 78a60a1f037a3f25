package encoding

import (
	gencoding "github.com/gdamore/encoding"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// legacyEntry binds one legacy codepage's properties to the x/text
// encoding.Encoding that implements its byte<->Unicode mapping. The MIBenum
// assignments mirror the IANA charset registry, the same table
// gdamore/encoding's charset-alias file draws from for its own codepage
// registrations.
type legacyEntry struct {
	props Properties
	enc   xencoding.Encoding
}

var legacyTable = []legacyEntry{
	{Properties{Name: "ISO-8859-1", MIBenum: 4, Aliases: []string{"latin1", "l1", "ISO_8859-1"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Western European (ISO-8859-1)"}, charmap.ISO8859_1},
	{Properties{Name: "ISO-8859-2", MIBenum: 5, Aliases: []string{"latin2", "l2"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Central European (ISO-8859-2)"}, charmap.ISO8859_2},
	{Properties{Name: "ISO-8859-3", MIBenum: 6, Aliases: []string{"latin3", "l3"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "South European (ISO-8859-3)"}, charmap.ISO8859_3},
	{Properties{Name: "ISO-8859-4", MIBenum: 7, Aliases: []string{"latin4", "l4"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "North European (ISO-8859-4)"}, charmap.ISO8859_4},
	{Properties{Name: "ISO-8859-5", MIBenum: 8, Aliases: []string{"cyrillic"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Cyrillic (ISO-8859-5)"}, charmap.ISO8859_5},
	{Properties{Name: "ISO-8859-6", MIBenum: 9, Aliases: []string{"arabic"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Arabic (ISO-8859-6)"}, charmap.ISO8859_6},
	{Properties{Name: "ISO-8859-7", MIBenum: 10, Aliases: []string{"greek", "greek8"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Greek (ISO-8859-7)"}, charmap.ISO8859_7},
	{Properties{Name: "ISO-8859-8", MIBenum: 11, Aliases: []string{"hebrew"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Hebrew (ISO-8859-8)"}, charmap.ISO8859_8},
	{Properties{Name: "ISO-8859-9", MIBenum: 12, Aliases: []string{"latin5", "l5"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Turkish (ISO-8859-9)"}, charmap.ISO8859_9},
	{Properties{Name: "ISO-8859-10", MIBenum: 13, Aliases: []string{"latin6", "l6"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Nordic (ISO-8859-10)"}, charmap.ISO8859_10},
	{Properties{Name: "ISO-8859-13", MIBenum: 109, Aliases: []string{"latin7"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Baltic (ISO-8859-13)"}, charmap.ISO8859_13},
	{Properties{Name: "ISO-8859-14", MIBenum: 110, Aliases: []string{"latin8"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Celtic (ISO-8859-14)"}, charmap.ISO8859_14},
	{Properties{Name: "ISO-8859-15", MIBenum: 111, Aliases: []string{"latin9"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Western European (ISO-8859-15)"}, charmap.ISO8859_15},
	{Properties{Name: "ISO-8859-16", MIBenum: 112, Aliases: []string{"latin10"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "South-Eastern European (ISO-8859-16)"}, charmap.ISO8859_16},
	{Properties{Name: "KOI8-R", MIBenum: 2084, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Russian (KOI8-R)"}, charmap.KOI8R},
	{Properties{Name: "KOI8-U", MIBenum: 2088, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Ukrainian (KOI8-U)"}, charmap.KOI8U},
	{Properties{Name: "TIS-620", MIBenum: 2259, Aliases: []string{"ISO-8859-11"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Thai (TIS-620)"}, charmap.Windows874}, // TIS-620 is a near-subset of cp874

	{Properties{Name: "windows-1250", MIBenum: 2250, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Central European (Windows-1250)"}, charmap.Windows1250},
	{Properties{Name: "windows-1251", MIBenum: 2251, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Cyrillic (Windows-1251)"}, charmap.Windows1251},
	{Properties{Name: "windows-1252", MIBenum: 2252, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Western European (Windows-1252)"}, charmap.Windows1252},
	{Properties{Name: "windows-1253", MIBenum: 2253, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Greek (Windows-1253)"}, charmap.Windows1253},
	{Properties{Name: "windows-1254", MIBenum: 2254, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Turkish (Windows-1254)"}, charmap.Windows1254},
	{Properties{Name: "windows-1255", MIBenum: 2255, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Hebrew (Windows-1255)"}, charmap.Windows1255},
	{Properties{Name: "windows-1256", MIBenum: 2256, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Arabic (Windows-1256)"}, charmap.Windows1256},
	{Properties{Name: "windows-1257", MIBenum: 2257, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Baltic (Windows-1257)"}, charmap.Windows1257},
	{Properties{Name: "windows-1258", MIBenum: 2258, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "Vietnamese (Windows-1258)"}, charmap.Windows1258},

	{Properties{Name: "Shift_JIS", MIBenum: 17, Aliases: []string{"SJIS", "MS_Kanji"}, MaximumNativeBytesPerChar: 2, MaximumCharsPerNative: 1, DisplayName: "Japanese (Shift-JIS)"}, japanese.ShiftJIS},
	{Properties{Name: "EUC-JP", MIBenum: 18, Aliases: []string{"csEUCPkdFmtJapanese", "x-euc-jp"}, MaximumNativeBytesPerChar: 2, MaximumCharsPerNative: 1, DisplayName: "Japanese (EUC-JP)"}, japanese.EUCJP},
	{Properties{Name: "ISO-2022-JP", MIBenum: 39, MaximumNativeBytesPerChar: 8, MaximumCharsPerNative: 1, DisplayName: "Japanese (ISO-2022-JP)"}, japanese.ISO2022JP},

	{Properties{Name: "EUC-KR", MIBenum: 38, Aliases: []string{"csEUCKR"}, MaximumNativeBytesPerChar: 2, MaximumCharsPerNative: 1, DisplayName: "Korean (EUC-KR)"}, korean.EUCKR},

	{Properties{Name: "GB2312", MIBenum: 2025, Aliases: []string{"csGB2312", "EUC-CN"}, MaximumNativeBytesPerChar: 2, MaximumCharsPerNative: 1, DisplayName: "Simplified Chinese (GB2312)"}, simplifiedchinese.GBK},
	{Properties{Name: "GBK", MIBenum: 113, MaximumNativeBytesPerChar: 2, MaximumCharsPerNative: 1, DisplayName: "Simplified Chinese (GBK)"}, simplifiedchinese.GBK},
	{Properties{Name: "GB18030", MIBenum: 114, MaximumNativeBytesPerChar: 4, MaximumCharsPerNative: 1, DisplayName: "Simplified Chinese (GB18030)"}, simplifiedchinese.GB18030},

	{Properties{Name: "Big5", MIBenum: 2026, Aliases: []string{"csBig5", "big-5"}, MaximumNativeBytesPerChar: 2, MaximumCharsPerNative: 1, DisplayName: "Traditional Chinese (Big5)"}, traditionalchinese.Big5},

	// DOS/terminal codepages: the viewport component talks to a terminal
	// over tcell, which carries gdamore/encoding for exactly this family,
	// so the registry picks up the two most common ones rather than
	// leaving the dependency unexercised.
	{Properties{Name: "IBM437", MIBenum: 2011, Aliases: []string{"cp437", "437", "csPC8CodePage437"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "DOS Latin US (CP437)"}, gencoding.CP437},
	{Properties{Name: "IBM850", MIBenum: 2009, Aliases: []string{"cp850", "850", "csPC850Multilingual"}, MaximumNativeBytesPerChar: 1, MaximumCharsPerNative: 1, DisplayName: "DOS Latin 1 (CP850)"}, gencoding.CP850},
}
