// Package colors implements the small color algebra the seat renderer needs:
// hex parsing/formatting, HSL-based lightening, alpha fading, and a
// lightness-driven foreground picker.
package colors

import (
	"fmt"
	"math"
	"strings"

	dErrors "boxoffice/pkg/domain-errors"
)

// Color is an RGB color with an alpha channel in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Fixed foreground candidates.
var (
	White = Color{R: 255, G: 255, B: 255, A: 1}
	Black = Color{R: 0, G: 0, B: 0, A: 1}
)

// Parse accepts "#RGB", "#RRGGBB" or "#RRGGBBAA" (leading '#' optional,
// case-insensitive) and returns the color with alpha defaulting to 1.
func Parse(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[2*i] = hex[i]
			expanded[2*i+1] = hex[i]
		}
		hex = string(expanded)
	case 6, 8:
	default:
		return Color{}, dErrors.Newf(dErrors.CodeInvalidInput, "invalid hex color: %q", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(hex[:6], "%02x%02x%02x", &r, &g, &b); err != nil {
		return Color{}, dErrors.Newf(dErrors.CodeInvalidInput, "invalid hex color: %q", s)
	}
	c := Color{R: r, G: g, B: b, A: 1}
	if len(hex) == 8 {
		var a uint8
		if _, err := fmt.Sscanf(hex[6:8], "%02x", &a); err != nil {
			return Color{}, dErrors.Newf(dErrors.CodeInvalidInput, "invalid hex color: %q", s)
		}
		c.A = float64(a) / 255
	}
	return c, nil
}

// MustParse is Parse for compile-time constants; it panics on invalid input.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex renders the color as an uppercase "#RRGGBBAA" string.
func (c Color) Hex() string {
	a := uint8(math.Round(clamp01(c.A) * 255))
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, a)
}

// Lighten raises the HSL lightness by the given relative ratio
// (l' = l + l*ratio), clamped to 1.
func (c Color) Lighten(ratio float64) Color {
	h, s, l := c.hsl()
	l = clamp01(l + l*ratio)
	out := fromHSL(h, s, l)
	out.A = c.A
	return out
}

// Fade lowers the alpha channel by the given relative ratio (a' = a - a*ratio).
func (c Color) Fade(ratio float64) Color {
	c.A = clamp01(c.A - c.A*ratio)
	return c
}

// Lightness returns the HSL lightness in [0, 1].
func (c Color) Lightness() float64 {
	_, _, l := c.hsl()
	return l
}

// Foreground returns the higher-contrast of the two fixed candidates against the
// fill: white unless the fill's lightness exceeds the mid threshold, then black.
func Foreground(fill Color) Color {
	if fill.Lightness() > 0.5 {
		return Black
	}
	return White
}

func (c Color) hsl() (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6
	return h, s, l
}

func fromHSL(h, s, l float64) Color {
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return Color{R: v, G: v, B: v, A: 1}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r := hueToRGB(p, q, h+1.0/3)
	g := hueToRGB(p, q, h)
	b := hueToRGB(p, q, h-1.0/3)
	return Color{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
		A: 1,
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
