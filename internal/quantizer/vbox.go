package quantizer

import (
	"math"
	"slices"
)

// dimension selects one RGB channel of the quantized color cube.
type dimension int

const (
	dimRed dimension = iota
	dimGreen
	dimBlue
)

// vbox is an axis-aligned bounding box over a contiguous range of the shared
// distinct-color slice. It owns no color data: every box is a view of
// [lower, upper] (inclusive) into the same slice and histogram, so at most
// one split may reorder that range at a time.
type vbox struct {
	colors []uint16
	hist   []int

	lower, upper int
	population   int

	minR, maxR int
	minG, maxG int
	minB, maxB int
}

// newVbox constructs a fitted box over colors[lower..upper].
func newVbox(colors []uint16, hist []int, lower, upper int) *vbox {
	v := &vbox{colors: colors, hist: hist, lower: lower, upper: upper}
	v.fit()
	return v
}

// fit recomputes the channel bounds and total population for the box's
// current index range. O(upper - lower).
func (v *vbox) fit() {
	minR, minG, minB := wordMax, wordMax, wordMax
	maxR, maxG, maxB := 0, 0, 0
	population := 0

	for i := v.lower; i <= v.upper; i++ {
		c := v.colors[i]
		population += v.hist[c]

		r := quantizedRed(c)
		g := quantizedGreen(c)
		b := quantizedBlue(c)
		if r < minR {
			minR = r
		}
		if r > maxR {
			maxR = r
		}
		if g < minG {
			minG = g
		}
		if g > maxG {
			maxG = g
		}
		if b < minB {
			minB = b
		}
		if b > maxB {
			maxB = b
		}
	}

	v.minR, v.maxR = minR, maxR
	v.minG, v.maxG = minG, maxG
	v.minB, v.maxB = minB, maxB
	v.population = population
}

func (v *vbox) volume() int {
	return (v.maxR - v.minR + 1) * (v.maxG - v.minG + 1) * (v.maxB - v.minB + 1)
}

func (v *vbox) colorCount() int {
	return 1 + v.upper - v.lower
}

func (v *vbox) canSplit() bool {
	return v.colorCount() > 1
}

// split partitions the box at its population midpoint along the longest
// dimension and returns two freshly fitted boxes covering the halves.
// The receiver is not reused afterwards. Panics if the box holds a single
// distinct color.
func (v *vbox) split() (*vbox, *vbox) {
	if !v.canSplit() {
		panic("quantizer: cannot split a box with only 1 color")
	}

	splitPoint := v.findSplitPoint()
	return newVbox(v.colors, v.hist, v.lower, splitPoint),
		newVbox(v.colors, v.hist, splitPoint+1, v.upper)
}

// longestDimension returns the channel with the widest span.
// Ties resolve red over green over blue.
func (v *vbox) longestDimension() dimension {
	lenR := v.maxR - v.minR
	lenG := v.maxG - v.minG
	lenB := v.maxB - v.minB

	switch {
	case lenR >= lenG && lenR >= lenB:
		return dimRed
	case lenG >= lenR && lenG >= lenB:
		return dimGreen
	default:
		return dimBlue
	}
}

// findSplitPoint sorts the box's sub-range along its longest dimension and
// returns the index where the cumulative population first reaches half of
// the box total, clamped so the upper half is never empty.
func (v *vbox) findSplitPoint() int {
	dim := v.longestDimension()

	// Rotate the chosen channel into the most significant bits so one
	// ascending sort orders the range along any dimension, then restore
	// the canonical packing.
	modifySignificantOctet(v.colors, dim, v.lower, v.upper)
	slices.Sort(v.colors[v.lower : v.upper+1])
	modifySignificantOctet(v.colors, dim, v.lower, v.upper)

	midPoint := v.population / 2
	count := 0
	for i := v.lower; i <= v.upper; i++ {
		count += v.hist[v.colors[i]]
		if count >= midPoint {
			return min(v.upper-1, i)
		}
	}
	return v.lower
}

// modifySignificantOctet cyclically rotates the packed channels of
// colors[lower..upper] so that dim occupies the most significant word.
// Applying it twice with the same dimension restores the original packing
// for green and blue; red is the canonical layout and needs no change.
func modifySignificantOctet(colors []uint16, dim dimension, lower, upper int) {
	switch dim {
	case dimRed:
		// Already the most significant word.
	case dimGreen:
		for i := lower; i <= upper; i++ {
			c := colors[i]
			colors[i] = uint16(quantizedGreen(c))<<(wordWidth*2) |
				uint16(quantizedRed(c))<<wordWidth |
				uint16(quantizedBlue(c))
		}
	case dimBlue:
		for i := lower; i <= upper; i++ {
			c := colors[i]
			colors[i] = uint16(quantizedBlue(c))<<(wordWidth*2) |
				uint16(quantizedGreen(c))<<wordWidth |
				uint16(quantizedRed(c))
		}
	}
}

// averageColor returns the population-weighted mean color of the box in
// full 8-bit precision.
func (v *vbox) averageColor() Color {
	var rSum, gSum, bSum, total int
	for i := v.lower; i <= v.upper; i++ {
		c := v.colors[i]
		p := v.hist[c]
		total += p
		rSum += p * quantizedRed(c)
		gSum += p * quantizedGreen(c)
		bSum += p * quantizedBlue(c)
	}
	if total == 0 {
		// A fitted box always has population; guard the division anyway.
		total = 1
	}

	r := int(math.Round(float64(rSum) / float64(total)))
	g := int(math.Round(float64(gSum) / float64(total)))
	b := int(math.Round(float64(bSum) / float64(total)))
	return Color{
		RGB:        approximateToRGB888(r, g, b),
		Population: total,
	}
}
