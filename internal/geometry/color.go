package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a parsed CSS color. Channels are 0-255, alpha is 0-1.
type Color struct {
	R, G, B uint8
	A       float64
}

var namedColors = map[string]Color{
	"black":       {0, 0, 0, 1},
	"white":       {255, 255, 255, 1},
	"red":         {255, 0, 0, 1},
	"green":       {0, 128, 0, 1},
	"lime":        {0, 255, 0, 1},
	"blue":        {0, 0, 255, 1},
	"yellow":      {255, 255, 0, 1},
	"cyan":        {0, 255, 255, 1},
	"magenta":     {255, 0, 255, 1},
	"gray":        {128, 128, 128, 1},
	"orange":      {255, 165, 0, 1},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses hex (#rgb, #rgba, #rrggbb, #rrggbbaa), rgb(...),
// rgba(...) and a small set of named CSS colors.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")") {
		return parseRGBFunc(s[5:len(s)-1], true)
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		return parseRGBFunc(s[4:len(s)-1], false)
	}
	return Color{}, fmt.Errorf("unparseable color %q", s)
}

func parseHexColor(hex string) (Color, error) {
	var digits []uint8
	for i := 0; i < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i:i+1], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q", "#"+hex)
		}
		digits = append(digits, uint8(v))
	}

	c := Color{A: 1}
	switch len(digits) {
	case 3:
		c.R, c.G, c.B = digits[0]*17, digits[1]*17, digits[2]*17
	case 4:
		c.R, c.G, c.B = digits[0]*17, digits[1]*17, digits[2]*17
		c.A = float64(digits[3]*17) / 255
	case 6:
		c.R = digits[0]<<4 | digits[1]
		c.G = digits[2]<<4 | digits[3]
		c.B = digits[4]<<4 | digits[5]
	case 8:
		c.R = digits[0]<<4 | digits[1]
		c.G = digits[2]<<4 | digits[3]
		c.B = digits[4]<<4 | digits[5]
		c.A = float64(digits[6]<<4|digits[7]) / 255
	default:
		return Color{}, fmt.Errorf("invalid hex color %q", "#"+hex)
	}
	return c, nil
}

func parseRGBFunc(args string, hasAlpha bool) (Color, error) {
	parts := strings.Split(args, ",")
	want := 3
	if hasAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("expected %d components, got %d", want, len(parts))
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color component %q", parts[i])
		}
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		ch[i] = uint8(v + 0.5)
	}

	c := Color{R: ch[0], G: ch[1], B: ch[2], A: 1}
	if hasAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha %q", parts[3])
		}
		if a < 0 {
			a = 0
		}
		if a > 1 {
			a = 1
		}
		c.A = a
	}
	return c, nil
}

// String renders the color as rgba(...) when the alpha differs from 1 and
// rgb(...) otherwise. Alpha is always explicit in the rgba form.
func (c Color) String() string {
	if c.A != 1 {
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B,
			strconv.FormatFloat(c.A, 'g', -1, 64))
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// encodeStyleColor folds a native style triple (enabled flag, color string,
// opacity) into a single canonical color string. A disabled channel is
// always fully transparent black regardless of the supplied color.
func encodeStyleColor(enabled bool, value string, opacity float64) string {
	if !enabled {
		return "rgba(0,0,0,0)"
	}
	c, err := ParseColor(value)
	if err != nil {
		c = Color{A: 1}
	}
	c.A *= opacity
	if c.A == 1 {
		// Opaque colors pass through unchanged (hex stays hex).
		if err == nil {
			return value
		}
		return c.String()
	}
	return c.String()
}
