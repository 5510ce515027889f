package palette

import (
	"fmt"
	"sync"

	"github.com/shawnthye/swift-palette/internal/colorutil"
)

const (
	minContrastTitleText = 3.0
	minContrastBodyText  = 4.5
)

// Swatch is one representative color of a palette together with the number
// of source pixels it stands for. Title and body text colors legible
// against the swatch are derived on first access and cached.
type Swatch struct {
	red, green, blue int
	rgb              uint32
	population       int
	hsl              HSL

	textOnce       sync.Once
	titleTextColor uint32
	bodyTextColor  uint32
}

// NewSwatch creates a swatch for a packed color (alpha forced opaque) and
// its pixel population.
func NewSwatch(rgb uint32, population int) *Swatch {
	rgb = colorutil.WithAlpha(rgb, 0xFF)
	r := colorutil.Red(rgb)
	g := colorutil.Green(rgb)
	b := colorutil.Blue(rgb)
	return &Swatch{
		red:        r,
		green:      g,
		blue:       b,
		rgb:        rgb,
		population: population,
		hsl:        HSL(colorutil.RGBToHSL(r, g, b)),
	}
}

// RGB returns the swatch color as an opaque packed ARGB value.
func (s *Swatch) RGB() uint32 { return s.rgb }

// HSL returns the swatch color in HSL space.
func (s *Swatch) HSL() HSL { return s.hsl }

// Population returns the number of source pixels represented by the swatch.
func (s *Swatch) Population() int { return s.population }

// TitleTextColor returns a packed ARGB color guaranteed legible for large
// title text drawn over the swatch.
func (s *Swatch) TitleTextColor() uint32 {
	s.ensureTextColors()
	return s.titleTextColor
}

// BodyTextColor returns a packed ARGB color guaranteed legible for body
// text drawn over the swatch.
func (s *Swatch) BodyTextColor() uint32 {
	s.ensureTextColors()
	return s.bodyTextColor
}

// Equal reports whether two swatches represent the same color with the same
// population. Two swatches with equal color but different population are
// distinct.
func (s *Swatch) Equal(other *Swatch) bool {
	if other == nil {
		return false
	}
	return s.rgb == other.rgb && s.population == other.population
}

func (s *Swatch) String() string {
	return fmt.Sprintf("[RGB: #%06X] [HSL: %.2f, %.3f, %.3f] [Population: %d]",
		s.rgb&0xFFFFFF, s.hsl.H, s.hsl.S, s.hsl.L, s.population)
}

// ensureTextColors computes the minimum-alpha white or black overlays that
// satisfy both the title and body contrast thresholds. White wins when it
// satisfies both; black is the second choice; otherwise each threshold
// falls back independently, preferring white where available.
func (s *Swatch) ensureTextColors() {
	s.textOnce.Do(func() {
		lightBody := colorutil.MinimumAlpha(colorutil.White, s.rgb, minContrastBodyText)
		lightTitle := colorutil.MinimumAlpha(colorutil.White, s.rgb, minContrastTitleText)

		if lightBody != -1 && lightTitle != -1 {
			s.bodyTextColor = colorutil.WithAlpha(colorutil.White, lightBody)
			s.titleTextColor = colorutil.WithAlpha(colorutil.White, lightTitle)
			return
		}

		darkBody := colorutil.MinimumAlpha(colorutil.Black, s.rgb, minContrastBodyText)
		darkTitle := colorutil.MinimumAlpha(colorutil.Black, s.rgb, minContrastTitleText)

		if darkBody != -1 && darkTitle != -1 {
			s.bodyTextColor = colorutil.WithAlpha(colorutil.Black, darkBody)
			s.titleTextColor = colorutil.WithAlpha(colorutil.Black, darkTitle)
			return
		}

		// No single color satisfies both thresholds; mix and match.
		if lightBody != -1 {
			s.bodyTextColor = colorutil.WithAlpha(colorutil.White, lightBody)
		} else {
			s.bodyTextColor = colorutil.WithAlpha(colorutil.Black, darkBody)
		}
		if lightTitle != -1 {
			s.titleTextColor = colorutil.WithAlpha(colorutil.White, lightTitle)
		} else {
			s.titleTextColor = colorutil.WithAlpha(colorutil.Black, darkTitle)
		}
	})
}
