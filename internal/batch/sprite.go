package batch

import (
	"fmt"
	"math"
	"strings"
)

// SpriteRenderData is one drawable sprite for a single frame. Instances are
// created per-entity per-frame, handed to a Batcher, and discarded after
// submission; nothing retains them across frames.
type SpriteRenderData struct {
	X, Y             float32
	Rotation         float32 // degrees
	ScaleX, ScaleY   float32
	OriginX, OriginY float32
	TextureID        uint32
	UV               [4]float32 // u0, v0, u1, v1
	Color            uint32     // packed 0xAABBGGRR, see PackRGBA
	MaterialID       uint32     // 0 = default material
}

// PackRGBA packs color bytes as (A<<24)|(B<<16)|(G<<8)|R. This layout is the
// wire contract with the renderer and must not change.
func PackRGBA(r, g, b, a byte) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// UnpackRGBA extracts the color bytes packed by PackRGBA.
func UnpackRGBA(c uint32) (r, g, b, a byte) {
	return byte(c), byte(c >> 8), byte(c >> 16), byte(c >> 24)
}

// SetColorRGBA sets the sprite color from individual bytes.
func (s *SpriteRenderData) SetColorRGBA(r, g, b, a byte) {
	s.Color = PackRGBA(r, g, b, a)
}

// SetColorHex sets the sprite color from a 0xRRGGBB value with full alpha.
func (s *SpriteRenderData) SetColorHex(rgb uint32) {
	s.SetColorRGBA(byte(rgb>>16), byte(rgb>>8), byte(rgb), 255)
}

// ParseHexColor parses "#RGB" or "#RRGGBB" and packs it with the given alpha
// in [0,1], rounded to the nearest byte. 3-digit shorthand expands by
// doubling each nybble ("#1af" -> "#11aaff").
func ParseHexColor(s string, alpha float64) (uint32, error) {
	hex := strings.TrimPrefix(s, "#")

	var r, g, b byte
	switch len(hex) {
	case 3:
		n, err := parseNybbles(hex)
		if err != nil {
			return 0, fmt.Errorf("parse hex color %q: %w", s, err)
		}
		r = byte(n[0]<<4 | n[0])
		g = byte(n[1]<<4 | n[1])
		b = byte(n[2]<<4 | n[2])
	case 6:
		n, err := parseNybbles(hex)
		if err != nil {
			return 0, fmt.Errorf("parse hex color %q: %w", s, err)
		}
		r = byte(n[0]<<4 | n[1])
		g = byte(n[2]<<4 | n[3])
		b = byte(n[4]<<4 | n[5])
	default:
		return 0, fmt.Errorf("parse hex color %q: want 3 or 6 hex digits", s)
	}

	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	a := byte(math.Round(alpha * 255))

	return PackRGBA(r, g, b, a), nil
}

func parseNybbles(hex string) ([]uint32, error) {
	out := make([]uint32, len(hex))
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		switch {
		case c >= '0' && c <= '9':
			out[i] = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			out[i] = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			out[i] = uint32(c-'A') + 10
		default:
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return out, nil
}
