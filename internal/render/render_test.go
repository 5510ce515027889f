package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/shawnthye/swift-palette/palette"
)

func testPalette(t *testing.T) *palette.Palette {
	t.Helper()
	return palette.FromSwatches([]*palette.Swatch{
		palette.NewSwatch(0x4878A0, 12),
		palette.NewSwatch(0xC06030, 30),
		palette.NewSwatch(0x2F5F2F, 5),
	})
}

func TestSheetDimensions(t *testing.T) {
	p := testPalette(t)
	sheet := Sheet(p, 64)

	bounds := sheet.Bounds()
	if bounds.Dx() != 64*3 || bounds.Dy() != 64 {
		t.Errorf("sheet bounds = %v, want 192x64", bounds)
	}
}

func TestSheetOrdersByPopulation(t *testing.T) {
	p := testPalette(t)
	sheet := Sheet(p, 64)

	// The most populous swatch fills the first block.
	c := sheet.NRGBAAt(0, 0)
	if c.R != 0xC0 || c.G != 0x60 || c.B != 0x30 {
		t.Errorf("first block = %v, want the dominant color", c)
	}
	// The least populous fills the last block.
	c = sheet.NRGBAAt(64*2, 0)
	if c.R != 0x2F || c.G != 0x5F || c.B != 0x2F {
		t.Errorf("last block = %v, want the rarest color", c)
	}
}

func TestSheetTextBars(t *testing.T) {
	p := palette.FromSwatches([]*palette.Swatch{palette.NewSwatch(0xFFFFFF, 1)})
	sheet := Sheet(p, 96)

	top := sheet.NRGBAAt(48, 0)
	barBody := sheet.NRGBAAt(48, 95)
	// The body bar composites a dark overlay onto the white swatch, so it
	// must be darker than the swatch itself.
	if !(barBody.R < top.R && barBody.G < top.G && barBody.B < top.B) {
		t.Errorf("body bar %v should be darker than swatch %v", barBody, top)
	}
}

func TestSheetDefaultsBlockSize(t *testing.T) {
	p := testPalette(t)
	sheet := Sheet(p, 0)
	if sheet.Bounds().Dy() != DefaultBlockSize {
		t.Errorf("height = %d, want %d", sheet.Bounds().Dy(), DefaultBlockSize)
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	p := testPalette(t)
	sheet := Sheet(p, 32)

	data, err := EncodePNG(sheet)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !decoded.Bounds().Eq(sheet.Bounds()) {
		t.Errorf("decoded bounds = %v, want %v", decoded.Bounds(), sheet.Bounds())
	}
}

func TestSheetEmptyPalette(t *testing.T) {
	// A pure black image is fully rejected by the default filter; the
	// empty palette still renders a placeholder block.
	black := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	pal, err := palette.From(black).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(pal.Swatches()) != 0 {
		t.Fatalf("expected an empty palette, got %d swatches", len(pal.Swatches()))
	}

	sheet := Sheet(pal, 32)
	if sheet.Bounds().Dx() != 32 || sheet.Bounds().Dy() != 32 {
		t.Errorf("placeholder bounds = %v, want 32x32", sheet.Bounds())
	}
}
