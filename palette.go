package grove

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Palette is the set of saturated colors RandomColor picks from.
var Palette = []string{
	"#000080", "#800000", "#008000", "#800080", "#008080", "#0000FF",
	"#8B0000", "#006400", "#8B008B", "#008B8B", "#8B4513", "#00008B",
	"#FF0000", "#00FF00", "#FF00FF", "#00FFFF", "#FFFF00", "#FF00FF",
	"#FF4500", "#FFD700", "#FF1493", "#FF69B4", "#FF8C00",
}

// RandomColor returns a random Palette entry. A nil rng uses the global source.
func RandomColor(rng *rand.Rand) Color {
	var i int
	if rng != nil {
		i = rng.IntN(len(Palette))
	} else {
		i = rand.IntN(len(Palette))
	}
	c, _ := ParseHexColor(Palette[i])
	return c
}

// ParseHexColor parses "#RRGGBB", "#RRGGBBAA" or "#RGB".
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Hex formats c as "#RRGGBB", dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X",
		uint8(clamp01(c.R)*255+0.5), uint8(clamp01(c.G)*255+0.5), uint8(clamp01(c.B)*255+0.5))
}
