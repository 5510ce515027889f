package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"github.com/shawnthye/swift-palette/internal/hasher"
	"github.com/shawnthye/swift-palette/internal/manifest"
	"github.com/shawnthye/swift-palette/internal/profile"
	"github.com/shawnthye/swift-palette/internal/render"
	"github.com/shawnthye/swift-palette/palette"
	"github.com/spf13/cobra"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	extractMaxColors  int
	extractResizeArea int
	extractRegion     string
	extractProfile    string
	extractNoFilter   bool
	extractJSON       bool
	extractPreview    string
)

var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract the palette of a single image",
	Long: `Decodes one image (png, jpeg, gif, webp, bmp, tiff), runs median-cut
quantization, and prints the resolved targets and full swatch list.

Use --json for machine-readable output and --preview to render the
palette as a swatch sheet PNG.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().IntVarP(&extractMaxColors, "max-colors", "n", 0, "maximum palette size (0 = profile default)")
	extractCmd.Flags().IntVar(&extractResizeArea, "resize-area", 0, "downscale threshold in pixels (0 = profile default)")
	extractCmd.Flags().StringVar(&extractRegion, "region", "", "restrict extraction to x0,y0,x1,y1")
	extractCmd.Flags().StringVarP(&extractProfile, "profile", "p", "default", "extraction profile")
	extractCmd.Flags().BoolVar(&extractNoFilter, "no-default-filter", false, "keep near-black, near-white and red I-line colors")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print the asset as JSON")
	extractCmd.Flags().StringVar(&extractPreview, "preview", "", "write a swatch sheet PNG to this path")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	prof := profile.Get(extractProfile)
	logVerbose("profile: %s (max-colors=%d, resize-area=%d)",
		prof.Name, prof.MaxColors, prof.ResizeArea)

	b := palette.From(img)
	prof.Apply(b)
	if extractMaxColors > 0 {
		b.MaximumColorCount(extractMaxColors)
	}
	if extractResizeArea > 0 {
		b.ResizeImageArea(extractResizeArea)
	}
	if extractNoFilter {
		b.ClearFilters()
	}
	if extractRegion != "" {
		r, err := parseRegion(extractRegion)
		if err != nil {
			return err
		}
		b.Region(r)
	}

	p, err := b.Generate()
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	if extractPreview != "" {
		sheet := render.Sheet(p, render.DefaultBlockSize)
		png, err := render.EncodePNG(sheet)
		if err != nil {
			return fmt.Errorf("render preview: %w", err)
		}
		if err := os.WriteFile(extractPreview, png, 0o644); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		logVerbose("preview: %s", extractPreview)
	}

	if extractJSON {
		swatches, targets := manifest.FromPalette(p)
		bounds := img.Bounds()
		asset := manifest.Asset{
			Source: manifest.SourceInfo{
				Width:  bounds.Dx(),
				Height: bounds.Dy(),
				Format: format,
				Size:   int64(len(data)),
				Hash:   hasher.ContentHash(data),
			},
			Swatches: swatches,
			Targets:  targets,
		}
		out, err := json.MarshalIndent(asset, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printPalette(p)
	return nil
}

// parseRegion parses "x0,y0,x1,y1" into a rectangle.
func parseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("region must be x0,y0,x1,y1, got %q", s)
	}
	var coords [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("region coordinate %q: %w", p, err)
		}
		coords[i] = v
	}
	return image.Rect(coords[0], coords[1], coords[2], coords[3]), nil
}

func printPalette(p *palette.Palette) {
	fmt.Println()
	fmt.Println("  Targets:")
	for _, name := range manifest.TargetNames {
		s := p.SwatchForTarget(manifest.CanonicalTarget(name))
		if s == nil {
			fmt.Printf("    %-14s —\n", name)
			continue
		}
		fmt.Printf("    %-14s %s  pop=%d\n", name, hexRGB(s.RGB()), s.Population())
	}
	fmt.Println()

	if d := p.DominantSwatch(); d != nil {
		fmt.Printf("  Dominant: %s  pop=%d\n", hexRGB(d.RGB()), d.Population())
		fmt.Println()
	}

	swatches := p.Swatches()
	fmt.Printf("  Swatches (%d):\n", len(swatches))
	for _, s := range swatches {
		hsl := s.HSL()
		fmt.Printf("    %s  pop=%-6d h=%5.1f s=%.2f l=%.2f  title=%s body=%s\n",
			hexRGB(s.RGB()), s.Population(), hsl.H, hsl.S, hsl.L,
			hexARGB(s.TitleTextColor()), hexARGB(s.BodyTextColor()))
	}
	fmt.Println()
}

func hexRGB(c uint32) string  { return fmt.Sprintf("#%06X", c&0xFFFFFF) }
func hexARGB(c uint32) string { return fmt.Sprintf("#%08X", c) }
