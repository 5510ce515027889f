package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shawnthye/swift-palette/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a built palette manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, "swatch.manifest.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	printStats(&m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Printf("  Max colors:       %d\n", m.BuildInfo.MaxColors)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	fmt.Printf("  Total swatches:   %d\n", s.TotalSwatches)
	fmt.Printf("  Target hits:      %d\n", s.TargetHits)
	fmt.Printf("  Target misses:    %d\n", s.TargetMisses)
	if total := s.TargetHits + s.TargetMisses; total > 0 {
		fmt.Printf("  Coverage:         %.1f%%\n", float64(s.TargetHits)/float64(total)*100)
	}
	fmt.Println()

	// Per-target breakdown.
	hits := map[string]int{}
	for _, a := range m.Assets {
		for name := range a.Targets {
			hits[name]++
		}
	}
	fmt.Println("  Target breakdown:")
	for _, name := range manifest.TargetNames {
		fmt.Printf("    %-14s %4d assets\n", name, hits[name])
	}
	fmt.Println()

	// Palette size distribution.
	sizeDist := map[int]int{}
	for _, a := range m.Assets {
		sizeDist[len(a.Swatches)]++
	}
	var sizes []int
	for n := range sizeDist {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)
	fmt.Println("  Palette size distribution:")
	for _, n := range sizes {
		fmt.Printf("    %3d swatches  %4d assets\n", n, sizeDist[n])
	}
	fmt.Println()

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if len(a.Swatches) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q has an empty palette", key))
		}
		if len(a.Targets) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q resolved no targets", key))
		}
		if a.Source.Hash == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q missing content hash", key))
		}
	}
	if len(warnings) > 0 {
		sort.Strings(warnings)
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}
