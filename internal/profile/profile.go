// Package profile defines named extraction presets for the CLI.
package profile

import (
	"github.com/shawnthye/swift-palette/palette"
)

// Profile bundles the generation parameters for a use case.
type Profile struct {
	Name          string
	MaxColors     int
	ResizeArea    int               // max pixel area before quantization
	DefaultFilter bool              // keep the near-black/near-white/red-I-line filter
	Targets       []*palette.Target // nil = the six canonical targets
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:          "default",
		MaxColors:     16,
		ResizeArea:    palette.DefaultResizeBitmapArea,
		DefaultFilter: true,
	},
	// Album art and posters: more colors and a larger working image so
	// small accent regions survive quantization.
	"artwork": {
		Name:          "artwork",
		MaxColors:     24,
		ResizeArea:    160 * 160,
		DefaultFilter: true,
	},
	// Muted roles only, near-black/white allowed; for subdued UI themes.
	"mono": {
		Name:          "mono",
		MaxColors:     8,
		ResizeArea:    96 * 96,
		DefaultFilter: false,
		Targets: []*palette.Target{
			palette.Muted, palette.LightMuted, palette.DarkMuted,
		},
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["default"]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profile names.
func Names() []string {
	return []string{"default", "artwork", "mono"}
}

// Apply configures a palette builder with the profile's parameters.
func (p Profile) Apply(b *palette.Builder) *palette.Builder {
	b.MaximumColorCount(p.MaxColors)
	b.ResizeImageArea(p.ResizeArea)
	if !p.DefaultFilter {
		b.ClearFilters()
	}
	if p.Targets != nil {
		b.ClearTargets()
		for _, t := range p.Targets {
			b.AddTarget(t)
		}
	}
	return b
}
