// Package pixels extracts flat, row-major packed-ARGB pixel arrays from
// decoded images. Type switches over the common decoded formats avoid the
// per-pixel image.At interface dispatch; everything else goes through the
// generic fallback.
package pixels

import (
	"image"
	"image/color"
)

// Grab returns the packed 0xAARRGGBB pixels of the region within img, in
// row-major order. The region must be a non-empty sub-rectangle of the
// image bounds; violating that is a programmer error.
func Grab(img image.Image, region image.Rectangle) []uint32 {
	if region.Empty() || !region.In(img.Bounds()) {
		panic("pixels: region must be a non-empty sub-rectangle of the image bounds")
	}

	w := region.Dx()
	h := region.Dy()
	out := make([]uint32, w*h)

	switch src := img.(type) {
	case *image.NRGBA:
		grabNRGBA(src, region, w, h, out)
	case *image.RGBA:
		grabRGBA(src, region, w, h, out)
	case *image.YCbCr:
		grabYCbCr(src, region, w, h, out)
	case *image.Gray:
		grabGray(src, region, w, h, out)
	default:
		grabGeneric(img, region, w, h, out)
	}
	return out
}

// grabNRGBA — non-premultiplied RGBA (PNG). Direct byte reads.
func grabNRGBA(src *image.NRGBA, region image.Rectangle, w, h int, out []uint32) {
	pix := src.Pix
	stride := src.Stride
	bY := region.Min.Y - src.Rect.Min.Y
	bX4 := (region.Min.X - src.Rect.Min.X) * 4

	di := 0
	for y := 0; y < h; y++ {
		off := (bY+y)*stride + bX4
		for x := 0; x < w; x++ {
			out[di] = uint32(pix[off+3])<<24 |
				uint32(pix[off])<<16 |
				uint32(pix[off+1])<<8 |
				uint32(pix[off+2])
			off += 4
			di++
		}
	}
}

// grabRGBA — premultiplied RGBA. Un-premultiplies each channel.
func grabRGBA(src *image.RGBA, region image.Rectangle, w, h int, out []uint32) {
	pix := src.Pix
	stride := src.Stride
	bY := region.Min.Y - src.Rect.Min.Y
	bX4 := (region.Min.X - src.Rect.Min.X) * 4

	di := 0
	for y := 0; y < h; y++ {
		off := (bY+y)*stride + bX4
		for x := 0; x < w; x++ {
			a := uint32(pix[off+3])
			var r, g, b uint32
			if a > 0 {
				r = uint32(pix[off]) * 0xFF / a
				g = uint32(pix[off+1]) * 0xFF / a
				b = uint32(pix[off+2]) * 0xFF / a
			}
			out[di] = a<<24 | r<<16 | g<<8 | b
			off += 4
			di++
		}
	}
}

// grabYCbCr — JPEG path. Uses the stdlib conversion with direct subsample
// addressing; always opaque.
func grabYCbCr(src *image.YCbCr, region image.Rectangle, w, h int, out []uint32) {
	yData, cbData, crData := src.Y, src.Cb, src.Cr
	yStride := src.YStride
	ryBase := region.Min.Y - src.Rect.Min.Y
	rxBase := region.Min.X - src.Rect.Min.X

	di := 0
	for y := 0; y < h; y++ {
		yOff := (ryBase+y)*yStride + rxBase
		for x := 0; x < w; x++ {
			ci := src.COffset(region.Min.X+x, region.Min.Y+y)
			r, g, b := color.YCbCrToRGB(yData[yOff+x], cbData[ci], crData[ci])
			out[di] = 0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
			di++
		}
	}
}

// grabGray — grayscale; replicate the value across channels.
func grabGray(src *image.Gray, region image.Rectangle, w, h int, out []uint32) {
	pix := src.Pix
	stride := src.Stride
	bY := region.Min.Y - src.Rect.Min.Y
	bX := region.Min.X - src.Rect.Min.X

	di := 0
	for y := 0; y < h; y++ {
		off := (bY+y)*stride + bX
		for x := 0; x < w; x++ {
			v := uint32(pix[off])
			out[di] = 0xFF000000 | v<<16 | v<<8 | v
			off++
			di++
		}
	}
}

// grabGeneric — interface dispatch per pixel via the NRGBA color model.
func grabGeneric(img image.Image, region image.Rectangle, w, h int, out []uint32) {
	di := 0
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out[di] = uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
			di++
		}
	}
}
