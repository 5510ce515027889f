package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/shawnthye/swift-palette/internal/manifest"
	"github.com/shawnthye/swift-palette/internal/profile"
)

// Config holds all parameters for a batch extraction run.
type Config struct {
	InputDir   string
	Profile    profile.Profile
	Workers    int
	Verbose    bool
	PreviewDir string // when non-empty, write a swatch sheet PNG per asset
}

// Pipeline orchestrates palette extraction over a directory of images.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{cfg: cfg}
}

// Run executes the full extraction pipeline and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[swatch] found %d images\n", len(sources))
	}

	if p.cfg.PreviewDir != "" {
		if err := os.MkdirAll(p.cfg.PreviewDir, 0o755); err != nil {
			return nil, fmt.Errorf("preview dir: %w", err)
		}
	}

	// Step 2: Process images in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[swatch] processing: %s\n", s.Key)
			}

			results[idx] = processImage(s, p.cfg)

			if p.cfg.Verbose && results[idx].err == nil {
				fmt.Fprintf(os.Stderr, "[swatch] done: %s (%d swatches, %d targets)\n",
					s.Key, len(results[idx].asset.Swatches), len(results[idx].asset.Targets))
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name)

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
	}

	// Report errors but don't fail the entire build for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[swatch] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[swatch] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:   p.cfg.Workers,
		MaxColors: p.cfg.Profile.MaxColors,
	}
	m.ComputeStats()
	return m, nil
}
