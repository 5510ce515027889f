package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/shawnthye/swift-palette/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a swatch manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

var (
	hexRGBPattern  = regexp.MustCompile(`^#[0-9A-F]{6}$`)
	hexARGBPattern = regexp.MustCompile(`^#[0-9A-F]{8}$`)
	hashPattern    = regexp.MustCompile(`^[0-9a-f]{16}$`)
)

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	errors := validateManifest(&m)

	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d assets, %d swatches — all entries well-formed\n",
			m.Stats.TotalAssets, m.Stats.TotalSwatches)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateManifest(m *manifest.Manifest) []string {
	var errs []string

	// Check version.
	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	knownTargets := map[string]bool{}
	for _, name := range manifest.TargetNames {
		knownTargets[name] = true
	}

	// Check each asset.
	for key, asset := range m.Assets {
		// Check source metadata.
		if asset.Source.Width <= 0 || asset.Source.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid source dimensions %dx%d",
				key, asset.Source.Width, asset.Source.Height))
		}
		if !hashPattern.MatchString(asset.Source.Hash) {
			errs = append(errs, fmt.Sprintf("asset %q: malformed content hash %q", key, asset.Source.Hash))
		}

		// Check swatches.
		if len(asset.Swatches) == 0 {
			errs = append(errs, fmt.Sprintf("asset %q: empty palette", key))
		}
		for i, s := range asset.Swatches {
			errs = append(errs, validateSwatch(key, fmt.Sprintf("swatch[%d]", i), s)...)
		}

		// Check target selections reference known targets and carry
		// well-formed swatches.
		for name, s := range asset.Targets {
			if !knownTargets[name] {
				errs = append(errs, fmt.Sprintf("asset %q: unknown target %q", key, name))
			}
			errs = append(errs, validateSwatch(key, "target "+name, s)...)
		}
	}

	// Verify stats consistency.
	assetCount := len(m.Assets)
	swatchCount := 0
	hitCount := 0
	for _, a := range m.Assets {
		swatchCount += len(a.Swatches)
		hitCount += len(a.Targets)
	}
	if m.Stats.TotalAssets != assetCount {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, assetCount))
	}
	if m.Stats.TotalSwatches != swatchCount {
		errs = append(errs, fmt.Sprintf("stats.total_swatches mismatch: %d != %d", m.Stats.TotalSwatches, swatchCount))
	}
	if m.Stats.TargetHits != hitCount {
		errs = append(errs, fmt.Sprintf("stats.target_hits mismatch: %d != %d", m.Stats.TargetHits, hitCount))
	}

	return errs
}

func validateSwatch(key, where string, s manifest.SwatchInfo) []string {
	var errs []string
	if !hexRGBPattern.MatchString(s.Hex) {
		errs = append(errs, fmt.Sprintf("asset %q %s: malformed hex %q", key, where, s.Hex))
	}
	for _, c := range []struct {
		name  string
		value int
	}{{"r", s.Red}, {"g", s.Green}, {"b", s.Blue}} {
		if c.value < 0 || c.value > 255 {
			errs = append(errs, fmt.Sprintf("asset %q %s: channel %s out of range: %d", key, where, c.name, c.value))
		}
	}
	if s.Population <= 0 {
		errs = append(errs, fmt.Sprintf("asset %q %s: non-positive population %d", key, where, s.Population))
	}
	if s.Hue < 0 || s.Hue >= 360 {
		errs = append(errs, fmt.Sprintf("asset %q %s: hue out of range: %v", key, where, s.Hue))
	}
	if s.Saturation < 0 || s.Saturation > 1 {
		errs = append(errs, fmt.Sprintf("asset %q %s: saturation out of range: %v", key, where, s.Saturation))
	}
	if s.Lightness < 0 || s.Lightness > 1 {
		errs = append(errs, fmt.Sprintf("asset %q %s: lightness out of range: %v", key, where, s.Lightness))
	}
	if !hexARGBPattern.MatchString(s.TitleText) {
		errs = append(errs, fmt.Sprintf("asset %q %s: malformed title text color %q", key, where, s.TitleText))
	}
	if !hexARGBPattern.MatchString(s.BodyText) {
		errs = append(errs, fmt.Sprintf("asset %q %s: malformed body text color %q", key, where, s.BodyText))
	}
	return errs
}
