// Package quantizer reduces an arbitrary pixel population to a bounded set
// of representative colors using median-cut over the RGB cube.
//
// Pixels are first bucketed into a 5-bit-per-channel histogram. When the
// surviving bucket count already fits the requested palette size the buckets
// are emitted directly; otherwise the distinct colors are partitioned by
// recursively splitting the largest-volume bounding box at its population
// median until the target count is reached.
package quantizer

import (
	"container/heap"
	"fmt"

	"github.com/shawnthye/swift-palette/internal/colorutil"
)

const (
	// wordWidth is the reduced per-channel bit depth used for histogram
	// bucketing.
	wordWidth = 5
	wordMask  = (1 << wordWidth) - 1
	wordMax   = wordMask
)

// Filter decides whether a color may appear in the quantized output.
// rgb is a fully opaque packed color; returning false excludes it.
type Filter func(rgb uint32, hsl colorutil.HSL) bool

// Color is one representative output color and the number of source pixels
// it stands for.
type Color struct {
	RGB        uint32
	Population int
}

// Quantize reduces pixels (packed ARGB values, alpha ignored) to at most
// maxColors representative colors. Colors rejected by any filter are
// excluded both from bucketing and, for split boxes, from the averaged
// result. Panics when maxColors is less than 1.
func Quantize(pixels []uint32, maxColors int, filters []Filter) []Color {
	if maxColors < 1 {
		panic(fmt.Sprintf("quantizer: maxColors must be at least 1, got %d", maxColors))
	}

	// Bucket every pixel into the reduced color space.
	hist := make([]int, 1<<(3*wordWidth))
	for _, px := range pixels {
		hist[quantizeFromRGB888(px)]++
	}

	// Zero out buckets the filters reject, keeping the slot so population
	// accounting over the reduced space stays stable.
	distinctCount := 0
	for q, count := range hist {
		if count > 0 && shouldIgnore(uint16(q), filters) {
			hist[q] = 0
			count = 0
		}
		if count > 0 {
			distinctCount++
		}
	}

	colors := make([]uint16, 0, distinctCount)
	for q, count := range hist {
		if count > 0 {
			colors = append(colors, uint16(q))
		}
	}

	if distinctCount <= maxColors {
		// The image has fewer distinct colors than requested; return the
		// buckets as-is without any splitting.
		out := make([]Color, 0, distinctCount)
		for _, q := range colors {
			out = append(out, Color{
				RGB:        quantizedToRGB888(q),
				Population: hist[q],
			})
		}
		return out
	}

	return quantizePixels(colors, hist, maxColors, filters)
}

// quantizePixels runs the priority-queue-driven box splitting and averages
// each remaining box into an output color.
func quantizePixels(colors []uint16, hist []int, maxColors int, filters []Filter) []Color {
	pq := &vboxQueue{}
	heap.Init(pq)
	heap.Push(pq, newVbox(colors, hist, 0, len(colors)-1))

	splitBoxes(pq, maxColors)

	out := make([]Color, 0, pq.Len())
	for _, box := range *pq {
		avg := box.averageColor()
		// A box's mean can land in a region the filters exclude even when
		// none of its member colors did.
		if !shouldIgnoreRGB(avg.RGB, filters) {
			out = append(out, avg)
		}
	}
	return out
}

// splitBoxes pops the largest-volume box, splits it at its population
// median and reinserts both halves, until the queue holds maxColors boxes.
// When the popped box cannot split, the loop stops entirely: the remaining
// boxes are assumed no larger, so further attempts would fail too.
func splitBoxes(pq *vboxQueue, maxColors int) {
	for pq.Len() < maxColors {
		box := heap.Pop(pq).(*vbox)
		if !box.canSplit() {
			heap.Push(pq, box)
			return
		}
		lower, upper := box.split()
		heap.Push(pq, lower)
		heap.Push(pq, upper)
	}
}

func shouldIgnore(quantized uint16, filters []Filter) bool {
	return shouldIgnoreRGB(quantizedToRGB888(quantized), filters)
}

func shouldIgnoreRGB(rgb uint32, filters []Filter) bool {
	if len(filters) == 0 {
		return false
	}
	hsl := colorutil.RGBToHSL(colorutil.Red(rgb), colorutil.Green(rgb), colorutil.Blue(rgb))
	for _, allowed := range filters {
		if !allowed(rgb, hsl) {
			return true
		}
	}
	return false
}

// quantizeFromRGB888 reduces a packed 8-bit color to its histogram bucket key.
func quantizeFromRGB888(c uint32) uint16 {
	r := modifyWordWidth(colorutil.Red(c), 8, wordWidth)
	g := modifyWordWidth(colorutil.Green(c), 8, wordWidth)
	b := modifyWordWidth(colorutil.Blue(c), 8, wordWidth)
	return uint16(r<<(wordWidth*2) | g<<wordWidth | b)
}

// quantizedToRGB888 reconstructs a display-precision color from a bucket key.
func quantizedToRGB888(q uint16) uint32 {
	return approximateToRGB888(quantizedRed(q), quantizedGreen(q), quantizedBlue(q))
}

func approximateToRGB888(r, g, b int) uint32 {
	return colorutil.RGB(
		modifyWordWidth(r, wordWidth, 8),
		modifyWordWidth(g, wordWidth, 8),
		modifyWordWidth(b, wordWidth, 8),
	)
}

// modifyWordWidth reinterprets value from currentWidth bits to targetWidth
// bits, keeping the most significant bits. Narrowing discards the low bits,
// widening shifts without filling them in.
func modifyWordWidth(value, currentWidth, targetWidth int) int {
	var newValue int
	if targetWidth > currentWidth {
		newValue = value << (targetWidth - currentWidth)
	} else {
		newValue = value >> (currentWidth - targetWidth)
	}
	return newValue & ((1 << targetWidth) - 1)
}

func quantizedRed(c uint16) int   { return int(c>>(wordWidth*2)) & wordMask }
func quantizedGreen(c uint16) int { return int(c>>wordWidth) & wordMask }
func quantizedBlue(c uint16) int  { return int(c) & wordMask }

// vboxQueue is a max-heap of boxes ordered by volume.
type vboxQueue []*vbox

func (q vboxQueue) Len() int            { return len(q) }
func (q vboxQueue) Less(i, j int) bool  { return q[i].volume() > q[j].volume() }
func (q vboxQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *vboxQueue) Push(x any)         { *q = append(*q, x.(*vbox)) }
func (q *vboxQueue) Pop() any {
	old := *q
	n := len(old)
	box := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return box
}
