package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/shawnthye/swift-palette/internal/profile"
)

func writeFixture(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestScanImages(t *testing.T) {
	dir := t.TempDir()
	teal := color.NRGBA{R: 0x20, G: 0xA0, B: 0x98, A: 255}

	writeFixture(t, filepath.Join(dir, "a.png"), 4, 4, teal)
	writeFixture(t, filepath.Join(dir, "covers", "b.png"), 4, 4, teal)
	writeFixture(t, filepath.Join(dir, ".hidden", "c.png"), 4, 4, teal)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatalf("ScanImages: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("found %d sources, want 2", len(sources))
	}

	keys := map[string]bool{}
	for _, s := range sources {
		keys[s.Key] = true
		if s.Format != "png" {
			t.Errorf("source %q format = %q", s.Key, s.Format)
		}
		if s.Size <= 0 {
			t.Errorf("source %q has no size", s.Key)
		}
	}
	if !keys["a"] || !keys["covers/b"] {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestScanImagesNormalizesFormats(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "x.jpg"), 2, 2, color.NRGBA{A: 255})

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatalf("ScanImages: %v", err)
	}
	// Decoding is not attempted during the scan, so the mislabeled PNG
	// still scans; only the format label is under test.
	if len(sources) != 1 || sources[0].Format != "jpeg" {
		t.Fatalf("sources = %+v, want one jpeg", sources)
	}
}

func TestPipelineRun(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "teal.png"), 8, 8, color.NRGBA{R: 0x20, G: 0xA0, B: 0x98, A: 255})
	writeFixture(t, filepath.Join(dir, "covers", "indigo.png"), 8, 8, color.NRGBA{R: 0x20, G: 0x40, B: 0xB0, A: 255})

	p := New(Config{
		InputDir: dir,
		Profile:  profile.Get("default"),
		Workers:  2,
	})
	m, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(m.Assets) != 2 {
		t.Fatalf("assets = %d, want 2", len(m.Assets))
	}
	for key, a := range m.Assets {
		if a.Source.Width != 8 || a.Source.Height != 8 {
			t.Errorf("asset %q dimensions = %dx%d", key, a.Source.Width, a.Source.Height)
		}
		if a.Source.Hash == "" {
			t.Errorf("asset %q missing hash", key)
		}
		if len(a.Swatches) == 0 {
			t.Errorf("asset %q has no swatches", key)
		}
	}
	if m.Stats.TotalAssets != 2 {
		t.Errorf("stats.TotalAssets = %d, want 2", m.Stats.TotalAssets)
	}
	if m.BuildInfo == nil || m.BuildInfo.Workers != 2 {
		t.Errorf("build info = %+v", m.BuildInfo)
	}
}

func TestPipelineRunWritesPreviews(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	writeFixture(t, filepath.Join(dir, "covers", "teal.png"), 8, 8, color.NRGBA{R: 0x20, G: 0xA0, B: 0x98, A: 255})

	p := New(Config{
		InputDir:   dir,
		Profile:    profile.Get("default"),
		PreviewDir: out,
	})
	if _, err := p.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "covers_teal.palette.png")); err != nil {
		t.Errorf("preview not written: %v", err)
	}
}

func TestPipelineRunEmptyDir(t *testing.T) {
	if _, err := New(Config{InputDir: t.TempDir(), Profile: profile.Get("default")}).Run(); err == nil {
		t.Fatal("Run should fail when no images are found")
	}
}

func TestPipelineRunPartialFailure(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, filepath.Join(dir, "good.png"), 8, 8, color.NRGBA{R: 0x20, G: 0xA0, B: 0x98, A: 255})
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := New(Config{InputDir: dir, Profile: profile.Get("default")}).Run()
	if err != nil {
		t.Fatalf("partial failure should not fail the run: %v", err)
	}
	if len(m.Assets) != 1 {
		t.Errorf("assets = %d, want the one good image", len(m.Assets))
	}

	// All-broken input does fail.
	broken := t.TempDir()
	if err := os.WriteFile(filepath.Join(broken, "only.png"), []byte("still not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(Config{InputDir: broken, Profile: profile.Get("default")}).Run(); err == nil {
		t.Fatal("all-broken input should fail the run")
	}
}
