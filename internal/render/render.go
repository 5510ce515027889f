// Package render draws extracted palettes as swatch sheet images,
// useful for eyeballing extraction results without a UI.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sort"

	"github.com/shawnthye/swift-palette/internal/colorutil"
	"github.com/shawnthye/swift-palette/palette"
)

// DefaultBlockSize is the side length of one swatch block in pixels.
const DefaultBlockSize = 96

// textBarFraction divides the block height to size each text bar.
const textBarFraction = 6

// Sheet renders the palette as a horizontal strip of swatch blocks.
// Each block shows the swatch color with its title and body text colors
// drawn as bars along the bottom edge. Blocks are ordered by population,
// most populous first.
func Sheet(p *palette.Palette, blockSize int) *image.NRGBA {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	swatches := p.Swatches()
	if len(swatches) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, blockSize, blockSize))
	}
	sort.SliceStable(swatches, func(i, j int) bool {
		return swatches[i].Population() > swatches[j].Population()
	})

	img := image.NewNRGBA(image.Rect(0, 0, blockSize*len(swatches), blockSize))
	barH := blockSize / textBarFraction

	for i, s := range swatches {
		x0 := i * blockSize
		block := image.Rect(x0, 0, x0+blockSize, blockSize)
		fill(img, block, rgbColor(s.RGB()))

		// Text colors are translucent overlays; composite them against
		// the swatch so the bars show the effective on-screen color.
		title := colorutil.Composite(s.TitleTextColor(), s.RGB())
		body := colorutil.Composite(s.BodyTextColor(), s.RGB())

		titleBar := image.Rect(x0, blockSize-2*barH, x0+blockSize, blockSize-barH)
		bodyBar := image.Rect(x0, blockSize-barH, x0+blockSize, blockSize)
		fill(img, titleBar, rgbColor(title))
		fill(img, bodyBar, rgbColor(body))
	}

	return img
}

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func rgbColor(rgb uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 0xFF,
	}
}

// EncodePNG serializes a sheet to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(64 * 1024)

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
