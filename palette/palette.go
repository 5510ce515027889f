// Package palette extracts a small set of representative colors from an
// image and selects perceptually meaningful ones — vibrant, muted, light,
// dark — together with text colors guaranteed legible against each.
//
// Typical use:
//
//	p, err := palette.From(img).Generate()
//	if s := p.VibrantSwatch(); s != nil {
//		accent := s.RGB()
//		title := s.TitleTextColor()
//	}
package palette

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/shawnthye/swift-palette/internal/colorutil"
	"github.com/shawnthye/swift-palette/internal/pixels"
	"github.com/shawnthye/swift-palette/internal/quantizer"
)

const (
	// DefaultCalculateNumberColors is the default quantization target.
	DefaultCalculateNumberColors = 16

	// DefaultResizeBitmapArea is the default maximum pixel area an image is
	// scaled down to before quantization.
	DefaultResizeBitmapArea = 112 * 112
)

// Palette is the immutable result of one generation run: the full swatch
// list plus the best-matching swatch per target.
type Palette struct {
	swatches []*Swatch
	targets  []*Target
	selected map[*Target]*Swatch
	dominant *Swatch
}

// From starts building a palette from an image. Panics when img is nil.
func From(img image.Image) *Builder {
	if img == nil {
		panic("palette: image must not be nil")
	}
	return &Builder{
		img:        img,
		maxColors:  DefaultCalculateNumberColors,
		resizeArea: DefaultResizeBitmapArea,
		filters:    []Filter{DefaultFilter},
		targets:    defaultTargets(),
	}
}

// FromSwatches builds a palette directly from pre-computed swatches,
// running target selection over them with the default targets. Panics when
// the list is empty.
func FromSwatches(swatches []*Swatch) *Palette {
	if len(swatches) == 0 {
		panic("palette: swatch list must not be empty")
	}
	p := &Palette{
		swatches: swatches,
		targets:  defaultTargets(),
		selected: make(map[*Target]*Swatch),
		dominant: findDominantSwatch(swatches),
	}
	p.generate()
	return p
}

func defaultTargets() []*Target {
	return []*Target{Vibrant, LightVibrant, DarkVibrant, LightMuted, Muted, DarkMuted}
}

// Swatches returns all swatches in the palette.
func (p *Palette) Swatches() []*Swatch {
	out := make([]*Swatch, len(p.swatches))
	copy(out, p.swatches)
	return out
}

// Targets returns the targets used to generate the palette.
func (p *Palette) Targets() []*Target {
	out := make([]*Target, len(p.targets))
	copy(out, p.targets)
	return out
}

// SwatchForTarget returns the selected swatch for a target, or nil when no
// swatch qualified.
func (p *Palette) SwatchForTarget(t *Target) *Swatch {
	return p.selected[t]
}

// ColorForTarget returns the selected swatch color for a target, or
// defaultColor when no swatch qualified.
func (p *Palette) ColorForTarget(t *Target, defaultColor uint32) uint32 {
	if s := p.selected[t]; s != nil {
		return s.RGB()
	}
	return defaultColor
}

// VibrantSwatch returns the vibrant swatch, or nil.
func (p *Palette) VibrantSwatch() *Swatch { return p.SwatchForTarget(Vibrant) }

// LightVibrantSwatch returns the light vibrant swatch, or nil.
func (p *Palette) LightVibrantSwatch() *Swatch { return p.SwatchForTarget(LightVibrant) }

// DarkVibrantSwatch returns the dark vibrant swatch, or nil.
func (p *Palette) DarkVibrantSwatch() *Swatch { return p.SwatchForTarget(DarkVibrant) }

// MutedSwatch returns the muted swatch, or nil.
func (p *Palette) MutedSwatch() *Swatch { return p.SwatchForTarget(Muted) }

// LightMutedSwatch returns the light muted swatch, or nil.
func (p *Palette) LightMutedSwatch() *Swatch { return p.SwatchForTarget(LightMuted) }

// DarkMutedSwatch returns the dark muted swatch, or nil.
func (p *Palette) DarkMutedSwatch() *Swatch { return p.SwatchForTarget(DarkMuted) }

// VibrantColor returns the vibrant swatch color, or defaultColor.
func (p *Palette) VibrantColor(defaultColor uint32) uint32 {
	return p.ColorForTarget(Vibrant, defaultColor)
}

// LightVibrantColor returns the light vibrant swatch color, or defaultColor.
func (p *Palette) LightVibrantColor(defaultColor uint32) uint32 {
	return p.ColorForTarget(LightVibrant, defaultColor)
}

// DarkVibrantColor returns the dark vibrant swatch color, or defaultColor.
func (p *Palette) DarkVibrantColor(defaultColor uint32) uint32 {
	return p.ColorForTarget(DarkVibrant, defaultColor)
}

// MutedColor returns the muted swatch color, or defaultColor.
func (p *Palette) MutedColor(defaultColor uint32) uint32 {
	return p.ColorForTarget(Muted, defaultColor)
}

// LightMutedColor returns the light muted swatch color, or defaultColor.
func (p *Palette) LightMutedColor(defaultColor uint32) uint32 {
	return p.ColorForTarget(LightMuted, defaultColor)
}

// DarkMutedColor returns the dark muted swatch color, or defaultColor.
func (p *Palette) DarkMutedColor(defaultColor uint32) uint32 {
	return p.ColorForTarget(DarkMuted, defaultColor)
}

// DominantSwatch returns the swatch with the highest population, or nil for
// an empty palette.
func (p *Palette) DominantSwatch() *Swatch { return p.dominant }

// DominantColor returns the dominant swatch color, or defaultColor.
func (p *Palette) DominantColor(defaultColor uint32) uint32 {
	if p.dominant != nil {
		return p.dominant.RGB()
	}
	return defaultColor
}

// generate scores each target against all swatches, in target-list order:
// exclusive selections accumulate into the used set consulted by later
// targets. The used set is generation-scoped working state.
func (p *Palette) generate() {
	used := make(map[uint32]bool)
	for _, t := range p.targets {
		t.normalizeWeights()
		if s := p.scoredSwatchForTarget(t, used); s != nil {
			p.selected[t] = s
			if t.exclusive {
				used[s.RGB()] = true
			}
		}
	}
}

func (p *Palette) scoredSwatchForTarget(t *Target, used map[uint32]bool) *Swatch {
	var best *Swatch
	bestScore := 0.0
	for _, s := range p.swatches {
		if !shouldBeScoredForTarget(s, t, used) {
			continue
		}
		score := p.scoreSwatch(s, t)
		if best == nil || score > bestScore {
			best = s
			bestScore = score
		}
	}
	return best
}

func shouldBeScoredForTarget(s *Swatch, t *Target, used map[uint32]bool) bool {
	hsl := s.HSL()
	return hsl.S >= t.saturation[indexMin] && hsl.S <= t.saturation[indexMax] &&
		hsl.L >= t.lightness[indexMin] && hsl.L <= t.lightness[indexMax] &&
		!used[s.RGB()]
}

func (p *Palette) scoreSwatch(s *Swatch, t *Target) float64 {
	hsl := s.HSL()

	maxPopulation := 1.0
	if p.dominant != nil {
		maxPopulation = float64(p.dominant.Population())
	}

	var saturationScore, lightnessScore, populationScore float64
	if w := t.weights[indexWeightSaturation]; w > 0 {
		saturationScore = w * (1 - math.Abs(hsl.S-t.saturation[indexTarget]))
	}
	if w := t.weights[indexWeightLuma]; w > 0 {
		lightnessScore = w * (1 - math.Abs(hsl.L-t.lightness[indexTarget]))
	}
	if w := t.weights[indexWeightPopulation]; w > 0 {
		populationScore = w * (float64(s.Population()) / maxPopulation)
	}
	return saturationScore + lightnessScore + populationScore
}

func findDominantSwatch(swatches []*Swatch) *Swatch {
	var dominant *Swatch
	for _, s := range swatches {
		if dominant == nil || s.Population() > dominant.Population() {
			dominant = s
		}
	}
	return dominant
}

// Builder configures palette generation from an image.
type Builder struct {
	img        image.Image
	maxColors  int
	resizeArea int
	resizeDim  int
	region     *image.Rectangle
	filters    []Filter
	targets    []*Target
}

// MaximumColorCount sets the quantization target: the maximum number of
// colors in the generated palette. Smaller values run faster; 10-16 suits
// landscapes while face-dominated images benefit from 24-32.
func (b *Builder) MaximumColorCount(count int) *Builder {
	b.maxColors = count
	return b
}

// ResizeImageArea scales the image down so its pixel count is at most area
// before quantization, preserving aspect ratio. Pass a value <= 0 to
// disable resizing. Replaces any maximum-dimension hint.
func (b *Builder) ResizeImageArea(area int) *Builder {
	b.resizeArea = area
	b.resizeDim = -1
	return b
}

// ResizeImageDimension scales the image down so its largest dimension is at
// most maxDimension before quantization. Pass a value <= 0 to disable
// resizing. Replaces any area hint.
//
// Deprecated: use ResizeImageArea, which handles extreme aspect ratios
// better.
func (b *Builder) ResizeImageDimension(maxDimension int) *Builder {
	b.resizeDim = maxDimension
	b.resizeArea = -1
	return b
}

// Region restricts generation to a rectangle of the image, in image
// coordinates. The region must intersect the image bounds by the time
// Generate runs.
func (b *Builder) Region(r image.Rectangle) *Builder {
	b.region = &r
	return b
}

// ClearRegion removes any region restriction.
func (b *Builder) ClearRegion() *Builder {
	b.region = nil
	return b
}

// AddFilter appends an exclusion filter. A color is excluded when any
// filter rejects it.
func (b *Builder) AddFilter(f Filter) *Builder {
	if f != nil {
		b.filters = append(b.filters, f)
	}
	return b
}

// ClearFilters removes all filters, including the default one.
func (b *Builder) ClearFilters() *Builder {
	b.filters = nil
	return b
}

// AddTarget appends a scoring target to the generation run.
func (b *Builder) AddTarget(t *Target) *Builder {
	for _, existing := range b.targets {
		if existing == t {
			return b
		}
	}
	b.targets = append(b.targets, t)
	return b
}

// ClearTargets removes all targets, including the defaults.
func (b *Builder) ClearTargets() *Builder {
	b.targets = nil
	return b
}

// Generate runs quantization and target selection synchronously and
// returns the palette.
func (b *Builder) Generate() (*Palette, error) {
	scaled, ratio := b.scaleImageDown(b.img)

	region := scaled.Bounds()
	if b.region != nil {
		r := *b.region
		if ratio != 1 {
			r = image.Rect(
				int(math.Floor(float64(r.Min.X)*ratio)),
				int(math.Floor(float64(r.Min.Y)*ratio)),
				int(math.Ceil(float64(r.Max.X)*ratio)),
				int(math.Ceil(float64(r.Max.Y)*ratio)),
			)
		}
		region = r.Intersect(scaled.Bounds())
		if region.Empty() {
			panic("palette: region must intersect the image bounds")
		}
	}

	px := pixels.Grab(scaled, region)
	if len(px) == 0 {
		return nil, errors.New("palette: image has no pixels")
	}

	colors := quantizer.Quantize(px, b.maxColors, wrapFilters(b.filters))
	swatches := make([]*Swatch, 0, len(colors))
	for _, c := range colors {
		swatches = append(swatches, NewSwatch(c.RGB, c.Population))
	}

	p := &Palette{
		swatches: swatches,
		targets:  b.targets,
		selected: make(map[*Target]*Swatch),
		dominant: findDominantSwatch(swatches),
	}
	p.generate()
	return p, nil
}

// GenerateAsync runs Generate on a new goroutine and invokes fn exactly
// once with the result.
func (b *Builder) GenerateAsync(fn func(*Palette, error)) {
	go func() {
		fn(b.Generate())
	}()
}

// scaleImageDown applies the resize hint, returning the working image and
// the scale ratio applied (1 when untouched).
func (b *Builder) scaleImageDown(img image.Image) (image.Image, float64) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	ratio := -1.0
	if b.resizeArea > 0 {
		if area := w * h; area > b.resizeArea {
			ratio = math.Sqrt(float64(b.resizeArea) / float64(area))
		}
	} else if b.resizeDim > 0 {
		if maxDim := max(w, h); maxDim > b.resizeDim {
			ratio = float64(b.resizeDim) / float64(maxDim)
		}
	}
	if ratio <= 0 {
		return img, 1
	}

	scaled := imaging.Resize(img,
		int(math.Ceil(float64(w)*ratio)),
		int(math.Ceil(float64(h)*ratio)),
		imaging.Lanczos)
	return scaled, ratio
}

// wrapFilters adapts the public filter signature to the quantizer's.
func wrapFilters(filters []Filter) []quantizer.Filter {
	if len(filters) == 0 {
		return nil
	}
	out := make([]quantizer.Filter, len(filters))
	for i, f := range filters {
		f := f
		out[i] = func(rgb uint32, hsl colorutil.HSL) bool {
			return f(rgb, HSL(hsl))
		}
	}
	return out
}
