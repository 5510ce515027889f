// Package colorutil implements color arithmetic over packed 32-bit ARGB
// values: channel accessors, sRGB↔HSL conversion, XYZ relative luminance,
// WCAG contrast ratios and minimum-alpha search, and alpha compositing.
//
// All packed colors follow the A<<24 | R<<16 | G<<8 | B layout with each
// channel in [0, 255]. Functions that take channel or alpha arguments
// treat out-of-range values as programmer error and panic.
package colorutil

import (
	"fmt"
	"math"
)

// White and Black are the fully opaque endpoint colors.
const (
	White uint32 = 0xFFFFFFFF
	Black uint32 = 0xFF000000
)

const (
	minAlphaSearchMaxIterations = 10
	minAlphaSearchPrecision     = 1
)

// HSL is a hue/saturation/lightness triple.
// H is in degrees [0, 360); S and L are in [0, 1].
type HSL struct {
	H, S, L float64
}

// Alpha returns the alpha component of a packed color.
func Alpha(c uint32) int { return int(c >> 24) }

// Red returns the red component of a packed color.
func Red(c uint32) int { return int(c>>16) & 0xFF }

// Green returns the green component of a packed color.
func Green(c uint32) int { return int(c>>8) & 0xFF }

// Blue returns the blue component of a packed color.
func Blue(c uint32) int { return int(c) & 0xFF }

// RGB packs red, green and blue channels into a fully opaque color.
func RGB(r, g, b int) uint32 {
	return ARGB(0xFF, r, g, b)
}

// ARGB packs the four channels into a single color value.
func ARGB(a, r, g, b int) uint32 {
	checkChannel("alpha", a)
	checkChannel("red", r)
	checkChannel("green", g)
	checkChannel("blue", b)
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// WithAlpha returns the color with its alpha component replaced.
func WithAlpha(c uint32, alpha int) uint32 {
	checkChannel("alpha", alpha)
	return c&0x00FFFFFF | uint32(alpha)<<24
}

func checkChannel(name string, v int) {
	if v < 0 || v > 255 {
		panic(fmt.Sprintf("colorutil: %s channel out of range: %d", name, v))
	}
}

// RGBToHSL converts 8-bit sRGB channels to HSL.
func RGBToHSL(r, g, b int) HSL {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	delta := max - min

	l := (max + min) / 2
	var h, s float64
	if max != min {
		switch max {
		case rf:
			h = math.Mod((gf-bf)/delta, 6)
		case gf:
			h = (bf-rf)/delta + 2
		default:
			h = (rf-gf)/delta + 4
		}
		s = delta / (1 - math.Abs(2*l-1))
	}

	h = math.Mod(h*60, 360)
	if h < 0 {
		h += 360
	}
	return HSL{H: h, S: clamp01(s), L: clamp01(l)}
}

// HSLToRGB converts an HSL triple to a packed opaque color.
func HSLToRGB(hsl HSL) uint32 {
	c := (1 - math.Abs(2*hsl.L-1)) * hsl.S
	m := hsl.L - 0.5*c
	x := c * (1 - math.Abs(math.Mod(hsl.H/60, 2)-1))

	var r, g, b int
	switch int(hsl.H) / 60 {
	case 0:
		r, g, b = round255(c+m), round255(x+m), round255(m)
	case 1:
		r, g, b = round255(x+m), round255(c+m), round255(m)
	case 2:
		r, g, b = round255(m), round255(c+m), round255(x+m)
	case 3:
		r, g, b = round255(m), round255(x+m), round255(c+m)
	case 4:
		r, g, b = round255(x+m), round255(m), round255(c+m)
	case 5, 6:
		r, g, b = round255(c+m), round255(m), round255(x+m)
	}
	return RGB(clampChannel(r), clampChannel(g), clampChannel(b))
}

// RGBToXYZ converts 8-bit sRGB channels to CIE XYZ (D65, Y in [0, 100]).
func RGBToXYZ(r, g, b int) (x, y, z float64) {
	sr := linearize(r)
	sg := linearize(g)
	sb := linearize(b)

	x = 100 * (sr*0.4124 + sg*0.3576 + sb*0.1805)
	y = 100 * (sr*0.2126 + sg*0.7152 + sb*0.0722)
	z = 100 * (sr*0.0193 + sg*0.1192 + sb*0.9505)
	return x, y, z
}

// Luminance returns the WCAG relative luminance of a color in [0, 1].
func Luminance(c uint32) float64 {
	_, y, _ := RGBToXYZ(Red(c), Green(c), Blue(c))
	return y / 100
}

// linearize applies the sRGB gamma decode to one 8-bit channel.
func linearize(ch int) float64 {
	s := float64(ch) / 255
	if s < 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// Contrast returns the WCAG contrast ratio between a foreground and a fully
// opaque background. A translucent foreground is composited over the
// background first. Panics when the background is not opaque.
func Contrast(fg, bg uint32) float64 {
	if Alpha(bg) != 255 {
		panic(fmt.Sprintf("colorutil: background must be opaque, got %08X", bg))
	}
	if Alpha(fg) < 255 {
		fg = Composite(fg, bg)
	}
	l1 := Luminance(fg) + 0.05
	l2 := Luminance(bg) + 0.05
	return math.Max(l1, l2) / math.Min(l1, l2)
}

// MinimumAlpha binary-searches the smallest foreground alpha that keeps the
// contrast against bg at or above minContrast. Returns -1 when even a fully
// opaque foreground cannot reach the ratio. The returned alpha is the upper
// search bound, so it always satisfies the ratio.
func MinimumAlpha(fg, bg uint32, minContrast float64) int {
	if Alpha(bg) != 255 {
		panic(fmt.Sprintf("colorutil: background must be opaque, got %08X", bg))
	}

	if Contrast(WithAlpha(fg, 255), bg) < minContrast {
		return -1
	}

	lo, hi := 0, 255
	for i := 0; i <= minAlphaSearchMaxIterations && hi-lo > minAlphaSearchPrecision; i++ {
		mid := (lo + hi) / 2
		if Contrast(WithAlpha(fg, mid), bg) < minContrast {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// Composite source-over composites fg on top of bg.
func Composite(fg, bg uint32) uint32 {
	bgA := Alpha(bg)
	fgA := Alpha(fg)
	a := compositeAlpha(fgA, bgA)

	r := compositeComponent(Red(fg), fgA, Red(bg), bgA, a)
	g := compositeComponent(Green(fg), fgA, Green(bg), bgA, a)
	b := compositeComponent(Blue(fg), fgA, Blue(bg), bgA, a)
	return ARGB(a, r, g, b)
}

func compositeAlpha(fgA, bgA int) int {
	return 0xFF - ((0xFF - bgA) * (0xFF - fgA) / 0xFF)
}

func compositeComponent(fgC, fgA, bgC, bgA, a int) int {
	if a == 0 {
		return 0
	}
	return (0xFF*fgC*fgA + bgC*bgA*(0xFF-fgA)) / (a * 0xFF)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
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

func round255(v float64) int {
	return int(math.Round(255 * v))
}
