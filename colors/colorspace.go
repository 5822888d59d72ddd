// Package colors holds the hex, RGB and HSL conversions the palette engine is
// built on, the tint/shade/harmony generators and the perceptual similarity check.
package colors

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	Black = "#000000"
	White = "#ffffff"
)

var hexPattern = regexp.MustCompile(`^#?([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// ErrInvalidHex is returned when a string is not a 3 or 6 digit hex color
var ErrInvalidHex = fmt.Errorf("invalid hex color")

// RGB channels are integers in [0,255]
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSL holds hue in degrees [0,360) and saturation/lightness in percent [0,100]
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// IsValidHex reports whether s is a 3 or 6 digit hex color, with or without a leading '#'
func IsValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// Canonical returns the 6 digit uppercase "#RRGGBB" form of a valid hex color
func Canonical(s string) (string, error) {
	m := hexPattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	digits := m[1]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}

	return "#" + strings.ToUpper(digits), nil
}

// HexToRGB parses a hex color. Malformed input yields black, so callers validate first.
func HexToRGB(hex string) RGB {
	canonical, err := Canonical(hex)
	if err != nil {
		return RGB{}
	}

	v, err := strconv.ParseUint(canonical[1:], 16, 32)
	if err != nil {
		return RGB{}
	}

	return RGB{
		R: int(v >> 16 & 0xff),
		G: int(v >> 8 & 0xff),
		B: int(v & 0xff),
	}
}

// RGBToHex formats lowercase "#rrggbb", clamping every channel to [0,255]
func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", clampChannel(r), clampChannel(g), clampChannel(b))
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// HexToHSL converts a hex color to integer HSL. Achromatic colors have h=0, s=0.
func HexToHSL(hex string) HSL {
	rgb := HexToRGB(hex)
	r := float64(rgb.R) / 255
	g := float64(rgb.G) / 255
	b := float64(rgb.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	diff := max - min

	var h, s float64
	l := (max + min) / 2

	if diff != 0 {
		if l > 0.5 {
			s = diff / (2 - max - min)
		} else {
			s = diff / (max + min)
		}

		switch max {
		case r:
			h = (g - b) / diff
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/diff + 2
		default:
			h = (r-g)/diff + 4
		}
		h /= 6
	}

	return HSL{
		H: int(math.Round(h*360)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// HSLToHex converts HSL to lowercase hex. The hue wraps modulo 360, s and l are
// percentages clamped to [0,100].
func HSLToHex(h, s, l float64) string {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	sNorm := clampPercent(s) / 100
	lNorm := clampPercent(l) / 100

	c := (1 - math.Abs(2*lNorm-1)) * sNorm
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := lNorm - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGBToHex(
		int(math.Round((r+m)*255)),
		int(math.Round((g+m)*255)),
		int(math.Round((b+m)*255)),
	)
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// ContrastColor picks black or white overlay text for a background color using
// the weighted brightness (299r+587g+114b)/1000.
func ContrastColor(hex string) string {
	rgb := HexToRGB(hex)
	brightness := float64(rgb.R*299+rgb.G*587+rgb.B*114) / 1000
	if brightness > 128 {
		return Black
	}
	return White
}
