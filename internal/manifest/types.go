package manifest

import (
	"fmt"

	"github.com/shawnthye/swift-palette/palette"
)

// Manifest is the top-level output of a batch palette build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers   int `json:"workers"`
	MaxColors int `json:"max_colors"`
}

// Asset holds the palette extracted from one source image.
type Asset struct {
	Source   SourceInfo            `json:"source"`
	Swatches []SwatchInfo          `json:"swatches"`
	Targets  map[string]SwatchInfo `json:"targets"` // absent key = no swatch qualified
}

// SourceInfo holds metadata about the source image.
type SourceInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"` // 16 hex chars of xxhash64 over the file bytes
}

// SwatchInfo is the JSON shape of one swatch.
type SwatchInfo struct {
	Hex        string  `json:"hex"` // #RRGGBB
	Red        int     `json:"r"`
	Green      int     `json:"g"`
	Blue       int     `json:"b"`
	Population int     `json:"population"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
	TitleText  string  `json:"title_text"` // #AARRGGBB overlay color
	BodyText   string  `json:"body_text"`  // #AARRGGBB overlay color
}

// Stats aggregates build metrics.
type Stats struct {
	TotalAssets   int `json:"total_assets"`
	TotalSwatches int `json:"total_swatches"`
	TargetHits    int `json:"target_hits"`   // target selections across all assets
	TargetMisses  int `json:"target_misses"` // targets with no qualifying swatch
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// TargetNames lists the canonical target keys in manifest order.
var TargetNames = []string{
	"vibrant", "light_vibrant", "dark_vibrant",
	"light_muted", "muted", "dark_muted",
}

// CanonicalTarget maps a manifest target key to its palette target.
func CanonicalTarget(name string) *palette.Target {
	switch name {
	case "vibrant":
		return palette.Vibrant
	case "light_vibrant":
		return palette.LightVibrant
	case "dark_vibrant":
		return palette.DarkVibrant
	case "light_muted":
		return palette.LightMuted
	case "muted":
		return palette.Muted
	case "dark_muted":
		return palette.DarkMuted
	}
	return nil
}

// FromSwatch converts a palette swatch to its manifest shape.
func FromSwatch(s *palette.Swatch) SwatchInfo {
	hsl := s.HSL()
	rgb := s.RGB()
	return SwatchInfo{
		Hex:        fmt.Sprintf("#%06X", rgb&0xFFFFFF),
		Red:        int(rgb>>16) & 0xFF,
		Green:      int(rgb>>8) & 0xFF,
		Blue:       int(rgb) & 0xFF,
		Population: s.Population(),
		Hue:        hsl.H,
		Saturation: hsl.S,
		Lightness:  hsl.L,
		TitleText:  fmt.Sprintf("#%08X", s.TitleTextColor()),
		BodyText:   fmt.Sprintf("#%08X", s.BodyTextColor()),
	}
}

// FromPalette converts a generated palette to a manifest asset body:
// the full swatch list plus the selection for each canonical target.
func FromPalette(p *palette.Palette) ([]SwatchInfo, map[string]SwatchInfo) {
	swatches := make([]SwatchInfo, 0, len(p.Swatches()))
	for _, s := range p.Swatches() {
		swatches = append(swatches, FromSwatch(s))
	}

	targets := make(map[string]SwatchInfo)
	for _, name := range TargetNames {
		if s := p.SwatchForTarget(CanonicalTarget(name)); s != nil {
			targets[name] = FromSwatch(s)
		}
	}
	return swatches, targets
}
