// Order-statistic and smoothing filters over a square neighborhood
package algorithms

import (
	"slices"

	"image-processing-engine/internal/core"
)

// windowFilter gathers the size×size clamp-to-edge neighborhood of each pixel per
// channel and writes pick(window). Alpha is copied from the source.
func windowFilter(op string, src *core.PixelBuffer, size int, pick func(window []uint8) uint8) (*core.PixelBuffer, error) {
	if err := validateKernelSize(op, size); err != nil {
		return nil, err
	}
	if err := checkUnary(op, src); err != nil {
		return nil, err
	}

	out := core.NewPixelBuffer(src.Width, src.Height)
	radius := (size - 1) / 2
	parallelRows(src.Height, func(start, end int) {
		window := make([]uint8, 0, size*size)
		for y := start; y < end; y++ {
			for x := 0; x < src.Width; x++ {
				o := out.Offset(x, y)
				for c := 0; c < 3; c++ {
					window = window[:0]
					for ky := -radius; ky <= radius; ky++ {
						for kx := -radius; kx <= radius; kx++ {
							window = append(window, src.Pix[src.SampleOffset(x+kx, y+ky)+c])
						}
					}
					out.Pix[o+c] = pick(window)
				}
				out.Pix[o+3] = src.Pix[o+3]
			}
		}
	})
	return out, nil
}

// Mean replaces each channel with the rounded neighborhood average
func Mean(src *core.PixelBuffer, size int) (*core.PixelBuffer, error) {
	return windowFilter("mean", src, size, func(window []uint8) uint8 {
		sum := 0
		for _, v := range window {
			sum += int(v)
		}
		return toByte(roundHalfUp(float64(sum) / float64(len(window))))
	})
}

// Median takes index floor(N/2) of the sorted neighborhood
func Median(src *core.PixelBuffer, size int) (*core.PixelBuffer, error) {
	return windowFilter("median", src, size, func(window []uint8) uint8 {
		slices.Sort(window)
		return window[len(window)/2]
	})
}

// Order is a rank filter: index order of the sorted neighborhood, clamped to [0, N-1].
// 0 behaves like Min, N-1 like Max and N/2 like Median.
func Order(src *core.PixelBuffer, size, order int) (*core.PixelBuffer, error) {
	return windowFilter("order", src, size, func(window []uint8) uint8 {
		slices.Sort(window)
		return window[core.Clamp(order, 0, len(window)-1)]
	})
}

// Max takes the neighborhood maximum
func Max(src *core.PixelBuffer, size int) (*core.PixelBuffer, error) {
	return windowFilter("max", src, size, func(window []uint8) uint8 {
		return slices.Max(window)
	})
}

// Min takes the neighborhood minimum
func Min(src *core.PixelBuffer, size int) (*core.PixelBuffer, error) {
	return windowFilter("min", src, size, func(window []uint8) uint8 {
		return slices.Min(window)
	})
}

// Conservative clamps each channel into the [min, max] of its neighbors, center
// excluded. Values already inside the range are kept exactly.
func Conservative(src *core.PixelBuffer, size int) (*core.PixelBuffer, error) {
	const op = "conservative"
	if err := validateKernelSize(op, size); err != nil {
		return nil, err
	}
	if size < 3 {
		return nil, core.Errorf(op, core.ErrInvalidParameter, "kernelSize must be at least 3, got %d", size)
	}
	if err := checkUnary(op, src); err != nil {
		return nil, err
	}

	out := core.NewPixelBuffer(src.Width, src.Height)
	radius := (size - 1) / 2
	parallelRows(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < src.Width; x++ {
				lo := [3]uint8{255, 255, 255}
				hi := [3]uint8{0, 0, 0}
				for ky := -radius; ky <= radius; ky++ {
					for kx := -radius; kx <= radius; kx++ {
						if kx == 0 && ky == 0 {
							continue
						}
						i := src.SampleOffset(x+kx, y+ky)
						for c := 0; c < 3; c++ {
							lo[c] = min(lo[c], src.Pix[i+c])
							hi[c] = max(hi[c], src.Pix[i+c])
						}
					}
				}

				o := out.Offset(x, y)
				for c := 0; c < 3; c++ {
					out.Pix[o+c] = min(hi[c], max(lo[c], src.Pix[o+c]))
				}
				out.Pix[o+3] = src.Pix[o+3]
			}
		}
	})
	return out, nil
}
