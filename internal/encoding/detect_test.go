package encoding

import "testing"

func TestUnicodeAutoDetectBOMs(t *testing.T) {
	tests := []struct {
		name   string
		sample []byte
		want   string
	}{
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'x'}, "UTF-8"},
		{"utf32le bom", []byte{0xFF, 0xFE, 0x00, 0x00, 'x'}, "UTF-32LE"},
		{"utf32be bom", []byte{0x00, 0x00, 0xFE, 0xFF, 'x'}, "UTF-32BE"},
		{"utf16le bom", []byte{0xFF, 0xFE, 'x', 0x00}, "UTF-16LE"},
		{"utf16be bom", []byte{0xFE, 0xFF, 0x00, 'x'}, "UTF-16BE"},
		{"no bom, ascii", []byte("plain text"), "UTF-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := UnicodeAutoDetect.Detect(tt.sample)
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if d.Codec.Properties().Name != tt.want {
				t.Errorf("detected %s, want %s", d.Codec.Properties().Name, tt.want)
			}
		})
	}
}

func TestUnicodeAutoDetectConfidenceStopsAtBadByte(t *testing.T) {
	sample := []byte{'a', 'b', 0xC0, 'c'}
	d, err := UnicodeAutoDetect.Detect(sample)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if d.Confidence != 2 {
		t.Errorf("confidence = %d, want 2", d.Confidence)
	}
}

func TestDetectorByName(t *testing.T) {
	if _, err := DetectorByName("UnicodeAutoDetect"); err != nil {
		t.Fatalf("DetectorByName: %v", err)
	}
	if _, err := DetectorByName("nonexistent"); err == nil {
		t.Fatal("expected error for unknown detector")
	}
}
