package encoding

// Detection reports an EncodingDetector's guess: the codec it believes
// matches, and how many leading bytes of the input back that guess.
type Detection struct {
	Codec      Codec
	Confidence int
}

// EncodingDetector guesses the encoding of a byte stream from a sample of
// its leading bytes.
type EncodingDetector interface {
	Name() string
	Detect(sample []byte) (Detection, error)
}

// unicodeAutoDetect is the built-in detector: it recognizes the three
// Unicode byte order marks (testing UTF-32 before UTF-16, since the UTF-32LE
// mark and the UTF-16LE mark share their first two bytes) and otherwise
// falls back to UTF-8, reporting as confidence the length of the leading run
// of bytes that contains none of 0xC0, 0xC1, or >= 0xF5 (bytes that never
// occur in well-formed UTF-8).
type unicodeAutoDetect struct{}

// UnicodeAutoDetect is the registry's default EncodingDetector.
var UnicodeAutoDetect EncodingDetector = unicodeAutoDetect{}

func (unicodeAutoDetect) Name() string { return "UnicodeAutoDetect" }

func (unicodeAutoDetect) Detect(sample []byte) (Detection, error) {
	if hasPrefix(sample, bomUTF8) {
		c, _ := ForMib(106)
		return Detection{Codec: c, Confidence: len(sample)}, nil
	}
	if hasPrefix(sample, bomUTF32LE) {
		c, _ := ForMib(1019)
		return Detection{Codec: c, Confidence: len(bomUTF32LE)}, nil
	}
	if hasPrefix(sample, bomUTF32BE) {
		c, _ := ForMib(1018)
		return Detection{Codec: c, Confidence: len(bomUTF32BE)}, nil
	}
	if hasPrefix(sample, bomUTF16LE) {
		c, _ := ForMib(1014)
		return Detection{Codec: c, Confidence: len(bomUTF16LE)}, nil
	}
	if hasPrefix(sample, bomUTF16BE) {
		c, _ := ForMib(1013)
		return Detection{Codec: c, Confidence: len(bomUTF16BE)}, nil
	}

	confidence := len(sample)
	for i, b := range sample {
		if b == 0xC0 || b == 0xC1 || b >= 0xF5 {
			confidence = i
			break
		}
	}
	c, _ := ForMib(106)
	return Detection{Codec: c, Confidence: confidence}, nil
}

var detectorRegistry = map[string]EncodingDetector{
	"UnicodeAutoDetect": UnicodeAutoDetect,
}

// RegisterDetector adds or replaces a named EncodingDetector.
func RegisterDetector(d EncodingDetector) {
	detectorRegistry[d.Name()] = d
}

// DetectorByName looks up a registered EncodingDetector.
func DetectorByName(name string) (EncodingDetector, error) {
	if d, ok := detectorRegistry[name]; ok {
		return d, nil
	}
	return nil, &UnsupportedEncodingError{Name: name}
}
