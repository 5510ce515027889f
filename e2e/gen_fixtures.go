//go:build ignore

// gen_fixtures creates small test images for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "covers"), 0o755)

	// Sunset gradient (JPEG, 400x225): warm vibrant band over a dark band,
	// should resolve both vibrant and dark targets.
	writeJPEG(filepath.Join(dir, "sunset.jpg"), sunset(400, 225))

	// Covers (PNG, 200x150 each): a dominant block plus two accents.
	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("cover-%d.png", i)
		writeImage(filepath.Join(dir, "covers", name), blocks(200, 150, uint8(i*60)))
	}

	// Mostly-white image: the default filter drops near-white, so the
	// palette comes from the accent stripe only.
	writeImage(filepath.Join(dir, "paper.png"), accentOnWhite(100, 100))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 5 fixtures in %s\n", dir)
}

func sunset(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y < h/2 {
				img.SetNRGBA(x, y, color.NRGBA{
					R: 230, G: uint8(120 + y*100/h), B: 40, A: 255,
				})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{
					R: 30, G: 20, B: uint8(60 + y*60/h), A: 255,
				})
			}
		}
	}
	return img
}

func blocks(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			switch {
			case x < w/5:
				c = color.NRGBA{R: base + 120, G: 40, B: 40, A: 255}
			case x >= w-w/5:
				c = color.NRGBA{R: 40, G: base + 120, B: 60, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func accentOnWhite(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 250, G: 250, B: 250, A: 255}
			if y > h/2-h/10 && y < h/2+h/10 {
				c = color.NRGBA{R: 40, G: 90, B: 200, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
