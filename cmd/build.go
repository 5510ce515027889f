package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shawnthye/swift-palette/internal/manifest"
	"github.com/shawnthye/swift-palette/internal/pipeline"
	"github.com/shawnthye/swift-palette/internal/profile"
	"github.com/spf13/cobra"
)

var (
	buildOutDir    string
	buildProfile   string
	buildWorkers   int
	buildMaxColors int
	buildPreview   bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Extract palettes for a directory of images and write a manifest",
	Long: `Scans the input directory for images (png, jpg, jpeg, webp, gif,
bmp, tiff), extracts a palette per image in parallel, and writes
swatch.manifest.json to the output directory.

With --preview each asset also gets a rendered swatch sheet PNG.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./swatch_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", "default", "extraction profile")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().IntVarP(&buildMaxColors, "max-colors", "n", 0, "maximum palette size (overrides profile)")
	buildCmd.Flags().BoolVar(&buildPreview, "preview", false, "render a swatch sheet PNG per asset")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Load profile.
	prof := profile.Get(buildProfile)
	if buildMaxColors > 0 {
		prof.MaxColors = buildMaxColors
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (max-colors=%d, resize-area=%d)",
		prof.Name, prof.MaxColors, prof.ResizeArea)

	// Create output dir.
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	previewDir := ""
	if buildPreview {
		previewDir = filepath.Join(absOutput, "previews")
	}

	// Run pipeline.
	p := pipeline.New(pipeline.Config{
		InputDir:   absInput,
		Profile:    prof,
		Workers:    buildWorkers,
		Verbose:    verbose,
		PreviewDir: previewDir,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	// Write manifest.
	manifestPath := filepath.Join(absOutput, "swatch.manifest.json")
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	elapsed := time.Since(start)

	// Print report.
	printBuildReport(m, elapsed)

	return nil
}

func printBuildReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║             swatch build complete                ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	totalTargets := stats.TargetHits + stats.TargetMisses
	coverage := float64(0)
	if totalTargets > 0 {
		coverage = float64(stats.TargetHits) / float64(totalTargets) * 100
	}

	fmt.Printf("  Assets:        %d\n", stats.TotalAssets)
	fmt.Printf("  Swatches:      %d\n", stats.TotalSwatches)
	fmt.Printf("  Target hits:   %d of %d (%.1f%%)\n", stats.TargetHits, totalTargets, coverage)
	fmt.Printf("  Time:          %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:       %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	// Per-target coverage.
	hits := map[string]int{}
	for _, a := range m.Assets {
		for name := range a.Targets {
			hits[name]++
		}
	}
	fmt.Println("  Target coverage:")
	for _, name := range manifest.TargetNames {
		fmt.Printf("    %-14s %4d / %d assets\n", name, hits[name], stats.TotalAssets)
	}
	fmt.Println()

	// Assets with the fewest resolved targets first; these are the ones
	// worth a second look.
	if len(m.Assets) > 0 {
		type assetHits struct {
			key  string
			hits int
		}
		var items []assetHits
		for key, a := range m.Assets {
			items = append(items, assetHits{key, len(a.Targets)})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].hits != items[j].hits {
				return items[i].hits < items[j].hits
			}
			return items[i].key < items[j].key
		})
		n := len(items)
		if n > 10 {
			n = 10
		}
		fmt.Printf("  Sparsest %d assets (resolved targets):\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %d / %d\n", truncKey(it.key, 40), it.hits, len(manifest.TargetNames))
		}
		fmt.Println()
	}

	fmt.Println("  Manifest:      swatch.manifest.json")
	fmt.Println()
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
