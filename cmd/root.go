package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "swatch",
	Short: "Extract prominent color palettes from images",
	Long: `swatch — median-cut palette extraction with perceptual target
selection, the way mobile UIs pick vibrant and muted accent colors.

Extracts up to N dominant colors per image, resolves vibrant/muted
targets at three lightness levels, and computes legible title and
body text colors for every swatch.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"swatch %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[swatch] "+format+"\n", args...)
	}
}
