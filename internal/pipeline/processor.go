package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/shawnthye/swift-palette/internal/hasher"
	"github.com/shawnthye/swift-palette/internal/manifest"
	"github.com/shawnthye/swift-palette/internal/render"
	"github.com/shawnthye/swift-palette/palette"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage handles a single source image: decode, extract, convert.
func processImage(src Source, cfg Config) processResult {
	result := processResult{key: src.Key}

	// Read once: the same bytes feed both the hash and the decoder.
	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()

	b := palette.From(img)
	cfg.Profile.Apply(b)
	p, err := b.Generate()
	if err != nil {
		result.err = fmt.Errorf("extract %s: %w", src.RelPath, err)
		return result
	}

	swatches, targets := manifest.FromPalette(p)

	result.asset = manifest.Asset{
		Source: manifest.SourceInfo{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Format: src.Format,
			Size:   src.Size,
			Hash:   hasher.ContentHash(data),
		},
		Swatches: swatches,
		Targets:  targets,
	}

	if cfg.PreviewDir != "" {
		if err := writePreview(src, cfg, p); err != nil {
			result.err = err
			return result
		}
	}

	return result
}

// writePreview renders the palette as a swatch sheet PNG next to the manifest.
func writePreview(src Source, cfg Config, p *palette.Palette) error {
	sheet := render.Sheet(p, render.DefaultBlockSize)
	data, err := render.EncodePNG(sheet)
	if err != nil {
		return fmt.Errorf("preview %s: %w", src.RelPath, err)
	}

	name := strings.ReplaceAll(src.Key, "/", "_") + ".palette.png"
	outPath := filepath.Join(cfg.PreviewDir, name)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write preview %s: %w", name, err)
	}
	return nil
}
