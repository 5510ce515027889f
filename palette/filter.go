package palette

// HSL is a hue/saturation/lightness triple. H is in degrees [0, 360);
// S and L are in [0, 1].
type HSL struct {
	H, S, L float64
}

// Filter restricts the colors allowed into a generated palette.
// rgb is the fully opaque packed color being considered together with its
// HSL representation; return false to exclude it.
type Filter func(rgb uint32, hsl HSL) bool

const (
	// blackMaxLightness is the maximum lightness the default filter still
	// treats as black.
	blackMaxLightness = 0.05

	// whiteMinLightness is the minimum lightness the default filter still
	// treats as white.
	whiteMinLightness = 0.95
)

// DefaultFilter rejects colors near black, near white and those close to
// the red side of the I line, which tend to read as skin tones.
var DefaultFilter Filter = func(rgb uint32, hsl HSL) bool {
	return !isBlack(hsl) && !isWhite(hsl) && !isNearRedILine(hsl)
}

func isBlack(hsl HSL) bool {
	return hsl.L <= blackMaxLightness
}

func isWhite(hsl HSL) bool {
	return hsl.L >= whiteMinLightness
}

func isNearRedILine(hsl HSL) bool {
	return hsl.H >= 10 && hsl.H <= 37 && hsl.S <= 0.82
}
