package palette

import (
	"image"
	"image/color"
	"testing"
)

// bluesImage lays out 24 pixels over five bucket-aligned blue tones with
// known populations, small enough that no downscale kicks in.
func bluesImage() *image.NRGBA {
	var px []color.NRGBA
	add := func(r, g, b uint8, count int) {
		for i := 0; i < count; i++ {
			px = append(px, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	add(0x30, 0x68, 0x90, 1)
	add(0x38, 0x60, 0x90, 1)
	add(0x38, 0x68, 0x90, 10)
	add(0x40, 0x70, 0x98, 8)
	add(0x48, 0x78, 0xA0, 4)

	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for i, c := range px {
		img.SetNRGBA(i%6, i/6, c)
	}
	return img
}

func TestGenerateExactSwatches(t *testing.T) {
	p, err := From(bluesImage()).ClearFilters().Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := map[uint32]int{
		0xFF306890: 1,
		0xFF386090: 1,
		0xFF386890: 10,
		0xFF407098: 8,
		0xFF4878A0: 4,
	}
	swatches := p.Swatches()
	if len(swatches) != len(want) {
		t.Fatalf("got %d swatches, want %d", len(swatches), len(want))
	}
	for _, s := range swatches {
		pop, ok := want[s.RGB()]
		if !ok {
			t.Errorf("unexpected swatch %08X", s.RGB())
			continue
		}
		if s.Population() != pop {
			t.Errorf("swatch %08X population = %d, want %d", s.RGB(), s.Population(), pop)
		}
	}

	dominant := p.DominantSwatch()
	if dominant == nil || dominant.RGB() != 0xFF386890 {
		t.Errorf("dominant = %v, want 0xFF386890", dominant)
	}
	if got := p.DominantColor(0); got != 0xFF386890 {
		t.Errorf("DominantColor = %08X", got)
	}
}

func TestGenerateRegion(t *testing.T) {
	// Left half red, right half teal; restricting to the right half must
	// exclude red entirely.
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			c := color.NRGBA{R: 0xC8, G: 0x20, B: 0x20, A: 255}
			if x >= 4 {
				c = color.NRGBA{R: 0x20, G: 0xA0, B: 0x98, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	p, err := From(img).ClearFilters().Region(image.Rect(4, 0, 8, 4)).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, s := range p.Swatches() {
		if s.RGB() == 0xFFC82020 {
			t.Error("region should exclude the left half")
		}
	}
	if total := totalPopulation(p); total != 16 {
		t.Errorf("population = %d, want 16 pixels of the region", total)
	}
}

func TestGenerateRegionOutsideBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Generate should panic when the region misses the image")
		}
	}()
	From(bluesImage()).Region(image.Rect(100, 100, 200, 200)).Generate()
}

func TestGenerateAllFiltered(t *testing.T) {
	// A pure black image is fully rejected by the default filter.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: 255})
		}
	}

	p, err := From(img).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(p.Swatches()) != 0 {
		t.Errorf("got %d swatches, want none", len(p.Swatches()))
	}
	if p.DominantSwatch() != nil {
		t.Error("dominant should be nil for an empty palette")
	}
	if got := p.DominantColor(0xFF123456); got != 0xFF123456 {
		t.Errorf("DominantColor fallback = %08X", got)
	}
	if got := p.VibrantColor(0xFF654321); got != 0xFF654321 {
		t.Errorf("VibrantColor fallback = %08X", got)
	}
}

func TestGenerateDownscalesLargeImages(t *testing.T) {
	// 400x400 is over the default area, so quantization sees at most
	// DefaultResizeBitmapArea pixels (give or take ceil rounding).
	img := image.NewNRGBA(image.Rect(0, 0, 400, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x / 2), G: 0x80, B: uint8(y / 2), A: 255})
		}
	}

	p, err := From(img).ClearFilters().Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if total := totalPopulation(p); total > (112+1)*(112+1) {
		t.Errorf("population %d exceeds the resize area", total)
	}
	if len(p.Swatches()) == 0 || len(p.Swatches()) > DefaultCalculateNumberColors {
		t.Errorf("swatch count = %d", len(p.Swatches()))
	}
}

func TestTargetSelection(t *testing.T) {
	// Hand-built swatches with unambiguous roles.
	vibrant := NewSwatch(0xFF0080FF, 50)  // saturated, mid lightness
	dark := NewSwatch(0xFF003060, 20)     // saturated, dark
	mutedGray := NewSwatch(0xFF6E7A85, 80) // low saturation, mid lightness

	p := FromSwatches([]*Swatch{vibrant, dark, mutedGray})

	if s := p.VibrantSwatch(); s == nil || !s.Equal(vibrant) {
		t.Errorf("vibrant = %v, want %v", s, vibrant)
	}
	if s := p.DarkVibrantSwatch(); s == nil || !s.Equal(dark) {
		t.Errorf("dark vibrant = %v, want %v", s, dark)
	}
	if s := p.MutedSwatch(); s == nil || !s.Equal(mutedGray) {
		t.Errorf("muted = %v, want %v", s, mutedGray)
	}
	if s := p.DominantSwatch(); s == nil || !s.Equal(mutedGray) {
		t.Errorf("dominant = %v, want %v", s, mutedGray)
	}
}

func TestExclusiveTargetsClaimSwatches(t *testing.T) {
	// Two targets with identical criteria compete over the two most
	// saturated blues; the first claims the better-scoring one, forcing
	// the second onto the runner-up.
	first := NewTargetBuilder().MinimumSaturation(0.42).Build()
	second := NewTargetBuilder().MinimumSaturation(0.42).Build()

	img := bluesImage()
	b := From(img).ClearFilters().ClearTargets().AddTarget(first).AddTarget(second)
	p, err := b.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	a := p.SwatchForTarget(first)
	c := p.SwatchForTarget(second)
	if a == nil || c == nil {
		t.Fatalf("both targets should select a swatch, got %v and %v", a, c)
	}
	if c.RGB() == a.RGB() {
		t.Error("exclusive targets must not share a swatch")
	}
}

func TestNonExclusiveTargetsShare(t *testing.T) {
	first := NewTargetBuilder().Exclusive(false).Build()
	second := NewTargetBuilder().Exclusive(false).Build()

	p, err := From(bluesImage()).ClearFilters().
		ClearTargets().AddTarget(first).AddTarget(second).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	a := p.SwatchForTarget(first)
	c := p.SwatchForTarget(second)
	if a == nil || c == nil {
		t.Fatal("both targets should select a swatch")
	}
	if a.RGB() != c.RGB() {
		t.Errorf("identical non-exclusive targets should agree: %08X vs %08X", a.RGB(), c.RGB())
	}
}

func TestAddTargetDeduplicates(t *testing.T) {
	target := NewTargetBuilder().Build()
	b := From(bluesImage()).ClearTargets().AddTarget(target).AddTarget(target)
	p, err := b.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(p.Targets()) != 1 {
		t.Errorf("targets = %d, want 1", len(p.Targets()))
	}
}

func TestGenerateAsync(t *testing.T) {
	done := make(chan struct{})
	var got *Palette
	var gotErr error

	From(bluesImage()).ClearFilters().GenerateAsync(func(p *Palette, err error) {
		got, gotErr = p, err
		close(done)
	})

	<-done
	if gotErr != nil {
		t.Fatalf("GenerateAsync: %v", gotErr)
	}
	if got == nil || len(got.Swatches()) != 5 {
		t.Fatalf("async palette = %v", got)
	}
}

func TestFromSwatchesPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("FromSwatches should panic on an empty list")
		}
	}()
	FromSwatches(nil)
}

func TestFromPanicsOnNilImage(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("From should panic on a nil image")
		}
	}()
	From(nil)
}

func TestDefaultFilter(t *testing.T) {
	tests := []struct {
		name string
		hsl  HSL
		want bool
	}{
		{"near black", HSL{200, 0.5, 0.03}, false},
		{"near white", HSL{200, 0.5, 0.97}, false},
		{"red I line", HSL{20, 0.5, 0.5}, false},
		{"saturated orange passes", HSL{20, 0.9, 0.5}, true},
		{"mid blue passes", HSL{210, 0.5, 0.45}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultFilter(0, tt.hsl); got != tt.want {
				t.Errorf("DefaultFilter(%+v) = %v, want %v", tt.hsl, got, tt.want)
			}
		})
	}
}

func totalPopulation(p *Palette) int {
	total := 0
	for _, s := range p.Swatches() {
		total += s.Population()
	}
	return total
}

func BenchmarkGenerate(b *testing.B) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := From(img).Generate(); err != nil {
			b.Fatal(err)
		}
	}
}
