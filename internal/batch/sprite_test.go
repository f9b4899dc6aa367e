package batch

import "testing"

func TestColorPackRoundTrip(t *testing.T) {
	var s SpriteRenderData
	s.SetColorRGBA(10, 20, 30, 40)

	r, g, b, a := UnpackRGBA(s.Color)
	if r != 10 || g != 20 || b != 30 || a != 40 {
		t.Errorf("Expected (10,20,30,40), got (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestColorPackLayout(t *testing.T) {
	// Wire contract: (A<<24)|(B<<16)|(G<<8)|R.
	c := PackRGBA(0x01, 0x02, 0x03, 0x04)
	if c != 0x04030201 {
		t.Errorf("Expected 0x04030201, got 0x%08x", c)
	}
}

func TestSetColorHex(t *testing.T) {
	var hexed, rgba SpriteRenderData
	hexed.SetColorHex(0x112233)
	rgba.SetColorRGBA(0x11, 0x22, 0x33, 255)

	if hexed.Color != rgba.Color {
		t.Errorf("SetColorHex(0x112233) = 0x%08x, want 0x%08x", hexed.Color, rgba.Color)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in    string
		alpha float64
		want  uint32
	}{
		{"#ffffff", 1.0, PackRGBA(255, 255, 255, 255)},
		{"#112233", 1.0, PackRGBA(0x11, 0x22, 0x33, 255)},
		{"#1af", 1.0, PackRGBA(0x11, 0xaa, 0xff, 255)},
		{"#000", 0.5, PackRGBA(0, 0, 0, 128)},
		{"112233", 0.0, PackRGBA(0x11, 0x22, 0x33, 0)},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in, tt.alpha)
		if err != nil {
			t.Errorf("ParseHexColor(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q, %v) = 0x%08x, want 0x%08x", tt.in, tt.alpha, got, tt.want)
		}
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "#gggggg", "#1234567"} {
		if _, err := ParseHexColor(in, 1.0); err == nil {
			t.Errorf("ParseHexColor(%q): expected error, got nil", in)
		}
	}
}

func TestParseHexColorAlphaClamped(t *testing.T) {
	over, _ := ParseHexColor("#fff", 2.0)
	under, _ := ParseHexColor("#fff", -1.0)

	_, _, _, a := UnpackRGBA(over)
	if a != 255 {
		t.Errorf("Alpha above 1 should clamp to 255, got %d", a)
	}
	_, _, _, a = UnpackRGBA(under)
	if a != 0 {
		t.Errorf("Alpha below 0 should clamp to 0, got %d", a)
	}
}
