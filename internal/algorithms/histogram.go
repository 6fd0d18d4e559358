// Histogram computation and CDF equalization
package algorithms

import (
	"math"

	"image-processing-engine/internal/core"
)

// Levels is the number of intensity buckets
const Levels = 256

// Histogram counts pixels per intensity level
type Histogram [Levels]int

// Total returns the number of counted pixels
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}

// Max returns the largest bucket count
func (h *Histogram) Max() int {
	m := 0
	for _, c := range h {
		m = max(m, c)
	}
	return m
}

// ComputeHistogram builds the luma histogram in a single pass
func ComputeHistogram(src *core.PixelBuffer) (Histogram, error) {
	var h Histogram
	if err := checkUnary("histogram", src); err != nil {
		return h, err
	}

	for i := 0; i < len(src.Pix); i += core.Channels {
		h[Luma(src.Pix[i], src.Pix[i+1], src.Pix[i+2])]++
	}
	return h, nil
}

// ChannelHistograms builds independent R, G and B histograms
func ChannelHistograms(src *core.PixelBuffer) ([3]Histogram, error) {
	var hs [3]Histogram
	if err := checkUnary("channelHistogram", src); err != nil {
		return hs, err
	}

	for i := 0; i < len(src.Pix); i += core.Channels {
		hs[0][src.Pix[i]]++
		hs[1][src.Pix[i+1]]++
		hs[2][src.Pix[i+2]]++
	}
	return hs, nil
}

// equalizationTable maps each level through the normalized CDF
func equalizationTable(h *Histogram, total int) [Levels]uint8 {
	var lut [Levels]uint8
	cdf := 0
	for i, c := range h {
		cdf += c
		lut[i] = uint8(math.Min(255, roundHalfUp(float64(cdf)/float64(total)*255)))
	}
	return lut
}

// Equalize remaps R, G and B independently through their own CDF.
// Alpha is left untouched.
func Equalize(src *core.PixelBuffer) (*core.PixelBuffer, error) {
	if err := checkUnary("equalize", src); err != nil {
		return nil, err
	}
	hs, err := ChannelHistograms(src)
	if err != nil {
		return nil, err
	}

	total := src.Width * src.Height
	var luts [3][Levels]uint8
	for c := range hs {
		luts[c] = equalizationTable(&hs[c], total)
	}

	out := src.Clone()
	stride := src.Width * core.Channels
	parallelRows(src.Height, func(start, end int) {
		for i := start * stride; i < end*stride; i += core.Channels {
			out.Pix[i] = luts[0][src.Pix[i]]
			out.Pix[i+1] = luts[1][src.Pix[i+1]]
			out.Pix[i+2] = luts[2][src.Pix[i+2]]
		}
	})
	return out, nil
}
